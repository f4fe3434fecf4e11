package repository

import (
	"context"
	"errors"
	"fmt"

	"skilltrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, refresh_token, refresh_token_expires_at, created_at`

func (r *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.RefreshToken,
		&u.RefreshTokenExpiresAt,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(row)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scanUser(row)
}

func (r *PostgresUserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
	return r.scanUser(row)
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, refresh_token, refresh_token_expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash, u.RefreshToken, u.RefreshTokenExpiresAt,
	).Scan(&u.CreatedAt)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u *domain.User) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $1, password_hash = $2, refresh_token = $3, refresh_token_expires_at = $4
		 WHERE id = $5`,
		u.Email, u.PasswordHash, u.RefreshToken, u.RefreshTokenExpiresAt, u.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	return nil
}
