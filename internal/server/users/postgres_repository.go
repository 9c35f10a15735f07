package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/dkotenko/botgate/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (telegram_id, full_name, password_hash, is_admin)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	created := *user
	err := r.db.QueryRowContext(ctx, query,
		user.TelegramID, user.FullName, nullIfEmpty(user.PasswordHash), user.IsAdmin).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return &created, nil
}

func (r *PostgresRepository) GetByTelegramID(ctx context.Context, telegramID string) (*User, error) {
	query :=
		`SELECT id, telegram_id, full_name, password_hash, is_admin, created_at FROM users
		 WHERE telegram_id = $1
		 `

	user := &User{}
	var passwordHash sql.NullString
	err := r.db.QueryRowContext(ctx, query, telegramID).
		Scan(&user.ID, &user.TelegramID, &user.FullName, &passwordHash, &user.IsAdmin, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	user.PasswordHash = passwordHash.String
	return user, nil
}

// Save overwrites the full record identified by the user's telegram id.
func (r *PostgresRepository) Save(ctx context.Context, user *User) (*User, error) {
	query :=
		`UPDATE users SET full_name = $2, password_hash = $3, is_admin = $4
		 WHERE telegram_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.TelegramID, user.FullName, nullIfEmpty(user.PasswordHash), user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return user, nil
}

func (r *PostgresRepository) ListAdmins(ctx context.Context) ([]*User, error) {
	query :=
		`SELECT id, telegram_id, full_name, password_hash, is_admin, created_at FROM users
		 WHERE is_admin = true
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var admins []*User
	for rows.Next() {
		user := &User{}
		var passwordHash sql.NullString
		if err := rows.Scan(&user.ID, &user.TelegramID, &user.FullName, &passwordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %w", err)
		}
		user.PasswordHash = passwordHash.String
		admins = append(admins, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return admins, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
