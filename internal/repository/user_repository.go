package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
)

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	// Pre-check mirrors the unique index so duplicates surface as a
	// conflict instead of a generic constraint error.
	var existing int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM brugere WHERE email = ?`, email).Scan(&existing)
	if err == nil {
		return 0, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing user: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO brugere (email, password_hash) VALUES (?, ?)`,
		email, passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return id, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, oprettet_dato FROM brugere WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}
