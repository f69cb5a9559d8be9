package repository

import (
	"context"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// OrderSnapshotRepository stores the list view copy of warehouse orders.
type OrderSnapshotRepository interface {
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]model.Order, error)
	ReplaceWarehouse(ctx context.Context, warehouseID int64, orders []model.Order) error
	// Upsert patches one row and reports whether it already existed.
	Upsert(ctx context.Context, order model.Order) (bool, error)
}

// StatusChangeRepository keeps the audit trail of status transitions.
type StatusChangeRepository interface {
	Record(ctx context.Context, change model.StatusChange) (*model.StatusChange, error)
	ListByOrder(ctx context.Context, warehouseID, orderID int64) ([]model.StatusChange, error)
}
