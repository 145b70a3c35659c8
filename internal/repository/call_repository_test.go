package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

func TestSearchConditions(t *testing.T) {
	tests := []struct {
		name      string
		filter    model.CallFilter
		wantWhere []string
		wantArgs  []any
	}{
		{
			name:      "empty filter contributes nothing",
			filter:    model.CallFilter{},
			wantWhere: []string{},
			wantArgs:  []any{},
		},
		{
			name:      "caller only",
			filter:    model.CallFilter{CallerID: "555"},
			wantWhere: []string{"callerid LIKE ?"},
			wantArgs:  []any{"%555%"},
		},
		{
			name:      "destination only",
			filter:    model.CallFilter{Destination: "4420"},
			wantWhere: []string{"dst LIKE ?"},
			wantArgs:  []any{"%4420%"},
		},
		{
			name:      "date range",
			filter:    model.CallFilter{DateFrom: "2026-01-01", DateTo: "2026-01-31"},
			wantWhere: []string{"DATE(starttime) >= ?", "DATE(starttime) <= ?"},
			wantArgs:  []any{"2026-01-01", "2026-01-31"},
		},
		{
			name: "all fields in declaration order",
			filter: model.CallFilter{
				CallerID:    "555",
				Destination: "4420",
				DateFrom:    "2026-01-01",
				DateTo:      "2026-01-31",
			},
			wantWhere: []string{
				"callerid LIKE ?",
				"dst LIKE ?",
				"DATE(starttime) >= ?",
				"DATE(starttime) <= ?",
			},
			wantArgs: []any{"%555%", "%4420%", "2026-01-01", "2026-01-31"},
		},
		{
			name:      "wildcards in the term are passed through",
			filter:    model.CallFilter{Destination: "44%20"},
			wantWhere: []string{"dst LIKE ?"},
			wantArgs:  []any{"%44%20%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := searchConditions(tt.filter)
			require.Equal(t, tt.wantWhere, where)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, normalizeLimit(0))
	require.Equal(t, DefaultLimit, normalizeLimit(-5))
	require.Equal(t, 1, normalizeLimit(1))
	require.Equal(t, 250, normalizeLimit(250))
}
