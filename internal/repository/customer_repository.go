package repository

import (
	"context"
	"database/sql"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// List returns customers ordered by id descending. Non-positive limits fall
// back to the default; negative offsets are treated as zero.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, username, COALESCE(firstname,''), COALESCE(lastname,''),
		        COALESCE(email,''), COALESCE(phone1,''), credit, active, creationdate
		   FROM pkg_user WHERE id_user_type = ?
		  ORDER BY id DESC LIMIT ? OFFSET ?`,
		model.CustomerUserType, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0, normalizeLimit(limit))
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName,
			&c.Email, &c.Phone, &c.Credit, &c.Active, &c.CreationDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountActive returns the number of enabled customer accounts.
func (r *CustomerRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pkg_user WHERE id_user_type = ? AND active = 1",
		model.CustomerUserType).Scan(&n)
	return n, err
}
