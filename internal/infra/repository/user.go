package repository

import (
	"context"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const updateLastLoginQuery = `
UPDATE users
SET last_login_at = now(), updated_at = now()
WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, updateLastLoginQuery, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
