package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

// DefaultLimit bounds list queries when the caller passes no usable limit.
const DefaultLimit = 10

const callColumns = `id, starttime, COALESCE(callerid,''), COALESCE(dst,''),
	sessiontime, COALESCE(buycost,0), terminatecauseid, COALESCE(trunk,'')`

type CallRepo struct{ DB *sql.DB }

func NewCallRepo(db *sql.DB) *CallRepo { return &CallRepo{DB: db} }

// CountOn returns the number of calls whose start date equals date (YYYY-MM-DD).
func (r *CallRepo) CountOn(ctx context.Context, date string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pkg_cdr WHERE DATE(starttime) = ?", date).Scan(&n)
	return n, err
}

// SumDurationOn returns the total session time in seconds for the given date.
func (r *CallRepo) SumDurationOn(ctx context.Context, date string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(sessiontime),0) FROM pkg_cdr WHERE DATE(starttime) = ?", date).Scan(&n)
	return n, err
}

// SumRevenueOn returns SUM(buycost) for the given date.
func (r *CallRepo) SumRevenueOn(ctx context.Context, date string) (float64, error) {
	var v float64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(buycost),0) FROM pkg_cdr WHERE DATE(starttime) = ?", date).Scan(&v)
	return v, err
}

// ListRecent returns up to limit calls, newest start time first.
func (r *CallRepo) ListRecent(ctx context.Context, limit int) ([]model.Call, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+callColumns+" FROM pkg_cdr ORDER BY starttime DESC LIMIT ?",
		normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanCalls(rows, limit)
}

// Search returns up to limit calls matching the filter, newest first. Empty
// filter fields contribute no condition; with a fully empty filter this is
// equivalent to ListRecent.
func (r *CallRepo) Search(ctx context.Context, f model.CallFilter, limit int) ([]model.Call, error) {
	where, args := searchConditions(f)

	query := "SELECT " + callColumns + " FROM pkg_cdr"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY starttime DESC LIMIT ?"
	args = append(args, normalizeLimit(limit))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanCalls(rows, limit)
}

// searchConditions builds the WHERE fragments and bind arguments for a filter.
// Substring fields are wrapped in wildcards for contains matching; date bounds
// are inclusive on DATE(starttime).
func searchConditions(f model.CallFilter) ([]string, []any) {
	where := []string{}
	args := []any{}

	if f.CallerID != "" {
		where = append(where, "callerid LIKE ?")
		args = append(args, "%"+f.CallerID+"%")
	}
	if f.Destination != "" {
		where = append(where, "dst LIKE ?")
		args = append(args, "%"+f.Destination+"%")
	}
	if f.DateFrom != "" {
		where = append(where, "DATE(starttime) >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where = append(where, "DATE(starttime) <= ?")
		args = append(args, f.DateTo)
	}
	return where, args
}

func scanCalls(rows *sql.Rows, limit int) ([]model.Call, error) {
	defer rows.Close()

	out := make([]model.Call, 0, normalizeLimit(limit))
	for rows.Next() {
		var c model.Call
		if err := rows.Scan(&c.ID, &c.StartTime, &c.CallerID, &c.Destination,
			&c.SessionTime, &c.BuyCost, &c.TerminateCauseID, &c.Trunk); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeLimit coerces non-positive limits to the default.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
