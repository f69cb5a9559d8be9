package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// Session resolves the working context of a user. Users without a selected
// warehouse work in the configured default one.
func (u *AuthUseCase) Session(ctx context.Context, userID int64) (*model.User, model.Session, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, model.Session{}, err
	}
	return usr, model.Session{
		UserID:      usr.ID,
		WarehouseID: u.warehouseOrDefault(usr.WarehouseID),
		APIToken:    usr.APIToken,
	}, nil
}

// SelectWarehouse switches the warehouse the user works in.
func (u *AuthUseCase) SelectWarehouse(ctx context.Context, userID, warehouseID int64) error {
	if warehouseID <= 0 {
		return domainErrors.ErrMissingWarehouse
	}
	return u.users.SetWarehouse(ctx, userID, warehouseID)
}

// SessionsForSync returns at most limit sessions, one per effective warehouse.
func (u *AuthUseCase) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	sessions, err := u.users.SessionsForSync(ctx, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(sessions))
	result := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		s.WarehouseID = u.warehouseOrDefault(s.WarehouseID)
		if _, dup := seen[s.WarehouseID]; dup {
			continue
		}
		seen[s.WarehouseID] = struct{}{}
		result = append(result, s)
	}
	return result, nil
}

func (u *AuthUseCase) warehouseOrDefault(id int64) int64 {
	if id > 0 {
		return id
	}
	return u.defaults.WarehouseID
}
