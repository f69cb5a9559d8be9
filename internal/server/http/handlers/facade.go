package handlers

import (
	"context"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, form model.Registration) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// SessionFacade resolves the working context of the signed in user.
type SessionFacade interface {
	Session(ctx context.Context, userID int64) (*model.User, model.Session, error)
	SelectWarehouse(ctx context.Context, userID, warehouseID int64) error
	Warehouse(ctx context.Context, userID int64) (*model.Warehouse, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64, refresh bool) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ChangeOrderStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error)
	OrderHistory(ctx context.Context, userID, orderID int64) ([]model.StatusChange, error)
}

// MedicineFacade provides warehouse stock operations.
type MedicineFacade interface {
	Medicines(ctx context.Context, userID int64, query model.MedicineQuery) (*model.MedicineListing, error)
	Medicine(ctx context.Context, userID, medicineID int64) (*model.Medicine, error)
	UpdateMedicine(ctx context.Context, userID, medicineID int64, update model.MedicineUpdate) error
	DeleteMedicine(ctx context.Context, userID, medicineID int64) error
}

// EventFacade streams order updates of the user's warehouse.
type EventFacade interface {
	OrderUpdates(ctx context.Context, userID int64) (<-chan int64, func(), error)
}

// HealthFacade reports service health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	AuthFacade
	SessionFacade
	OrderFacade
	MedicineFacade
	EventFacade
	HealthFacade
}
