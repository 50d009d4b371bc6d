package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role-assignment data access.
// A user with no rows is an ordinary visitor, not an error.
type RoleRepository interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID, role string) error
	Revoke(ctx context.Context, userID uuid.UUID, role string) error
}

type roleRepository struct {
	db *sql.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *sql.DB) RoleRepository {
	return &roleRepository{db: db}
}

// HasRole reports whether a role-assignment row exists for the user. The
// query matches zero or one row; absence is a normal false result.
func (r *roleRepository) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, role).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up role assignment: %w", err)
	}

	return exists, nil
}

// Grant assigns a role to a user. Granting an already-held role is a no-op.
func (r *roleRepository) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), userID, role, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "uq_user_roles_user_role") {
			return nil
		}
		return fmt.Errorf("failed to grant role: %w", err)
	}

	return nil
}

// Revoke removes a role assignment. Revoking an absent role is a no-op.
func (r *roleRepository) Revoke(ctx context.Context, userID uuid.UUID, role string) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`

	_, err := r.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	return nil
}
