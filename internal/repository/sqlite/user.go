package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillsphere/backend/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (email, password_hash, created, updated) VALUES (?, ?, ?, ?)`, u.Email, u.PasswordHash, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByEmail looks a user up by email. Matching is case-insensitive via the
// NOCASE collation on the column.
func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, password_hash, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &pw, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}
