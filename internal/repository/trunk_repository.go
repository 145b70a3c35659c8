package repository

import (
	"context"
	"database/sql"
)

type TrunkRepo struct{ DB *sql.DB }

func NewTrunkRepo(db *sql.DB) *TrunkRepo { return &TrunkRepo{DB: db} }

// CountActive returns the number of trunks with status = 1.
func (r *TrunkRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pkg_trunk WHERE status = 1").Scan(&n)
	return n, err
}
