package repository

import (
	"context"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// UserRepository describes persistence operations for dashboard users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetWarehouse(ctx context.Context, id, warehouseID int64) error
	// SessionsForSync returns one session per warehouse that has a usable API token.
	SessionsForSync(ctx context.Context, limit int) ([]model.Session, error)
}
