package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// Known SHA-1 vectors; the billing store keeps exactly these digests.
	tests := []struct {
		name  string
		plain string
		want  string
	}{
		{
			name:  "common password",
			plain: "password",
			want:  "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8",
		},
		{
			name:  "empty string",
			plain: "",
			want:  "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		},
		{
			name:  "unicode",
			plain: "pässwörd",
			want:  "f517ddf1d32a112ff1ad55c66d1b12cb38e7e8f7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HashPassword(tt.plain))
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	stored := HashPassword("s3cret")

	require.True(t, VerifyPassword(stored, "s3cret"))
	require.False(t, VerifyPassword(stored, "S3cret"))
	require.False(t, VerifyPassword(stored, ""))
	require.False(t, VerifyPassword("", "s3cret"))
}
