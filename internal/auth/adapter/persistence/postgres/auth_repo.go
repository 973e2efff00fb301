package postgres

import (
	"context"
	"errors"
	"fmt"

	"session-auth/internal/auth/domain/model"
	"session-auth/internal/auth/domain/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresAuthRepository implements the AuthRepository interface on a pgx
// connection pool. Every operation is a single-row statement; connections are
// acquired per call and released unconditionally by the pool.
type PostgresAuthRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAuthRepository creates a Postgres-backed auth repository.
func NewPostgresAuthRepository(pool *pgxpool.Pool) *PostgresAuthRepository {
	return &PostgresAuthRepository{pool: pool}
}

// CreateUser inserts a new user row and assigns the generated id.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, user *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt).Scan(&user.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail loads a user by exact email match.
func (r *PostgresAuthRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := r.pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, is_active, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &user, nil
}

// GetUserByID loads a user by primary key.
func (r *PostgresAuthRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	err := r.pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, is_active, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return &user, nil
}

// CreateSession inserts a new session row and assigns the generated id.
func (r *PostgresAuthRepository) CreateSession(ctx context.Context, session *model.Session) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (user_id, refresh_token_hash, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, session.UserID, session.RefreshTokenHash, session.ExpiresAt, session.IsActive, session.CreatedAt).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSessionByID loads a session row by primary key.
func (r *PostgresAuthRepository) GetSessionByID(ctx context.Context, id int64) (*model.Session, error) {
	var session model.Session

	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, refresh_token_hash, expires_at, is_active, created_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshTokenHash,
		&session.ExpiresAt,
		&session.IsActive,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session by id: %w", err)
	}

	return &session, nil
}

// UpdateSession persists the mutable session fields. The only mutation in
// scope is flipping is_active on revocation; expires_at never changes after
// creation.
func (r *PostgresAuthRepository) UpdateSession(ctx context.Context, session *model.Session) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET is_active = $2, refresh_token_hash = $3
		WHERE id = $1
	`, session.ID, session.IsActive, session.RefreshTokenHash)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrSessionNotFound
	}
	return nil
}

// Ensure PostgresAuthRepository implements the AuthRepository interface
var _ repository.AuthRepository = (*PostgresAuthRepository)(nil)
