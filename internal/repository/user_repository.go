// Package repository executes the parameterized read queries behind the bot.
// Every statement binds user input as placeholders; caller id, destination and
// date fields arrive as free text from chat users and must never be spliced
// into query text.
package repository

import (
	"context"
	"database/sql"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// FindByUsername fetches a user by exact username. Returns sql.ErrNoRows when
// no such user exists.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password, COALESCE(firstname,''), COALESCE(lastname,''),
		        COALESCE(email,''), id_user_type, credit, active
		   FROM pkg_user WHERE username = ? LIMIT 1`,
		username).Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName,
		&u.Email, &u.UserTypeID, &u.Credit, &u.Active)
	return u, err
}
