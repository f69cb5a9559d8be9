package test

import (
	"context"
	"sync"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// SessionFacadeStub provides controllable session and warehouse behaviour.
type SessionFacadeStub struct {
	SessionFn   func(context.Context, int64) (*model.User, model.Session, error)
	SelectFn    func(context.Context, int64, int64) error
	WarehouseFn func(context.Context, int64) (*model.Warehouse, error)
}

// Session returns configured session or a user in warehouse 73.
func (s SessionFacadeStub) Session(ctx context.Context, userID int64) (*model.User, model.Session, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, userID)
	}
	return &model.User{ID: userID, Login: "user", Email: "user@example.com"},
		model.Session{UserID: userID, WarehouseID: 73, APIToken: "api"}, nil
}

// SelectWarehouse delegates to provided function.
func (s SessionFacadeStub) SelectWarehouse(ctx context.Context, userID, warehouseID int64) error {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, userID, warehouseID)
	}
	return nil
}

// Warehouse returns a trusted warehouse unless overridden.
func (s SessionFacadeStub) Warehouse(ctx context.Context, userID int64) (*model.Warehouse, error) {
	if s.WarehouseFn != nil {
		return s.WarehouseFn(ctx, userID)
	}
	return &model.Warehouse{ID: 73, Trusted: true}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn  func(context.Context, int64, bool) ([]model.Order, error)
	OrderFn   func(context.Context, int64, int64) (*model.Order, error)
	ChangeFn  func(context.Context, int64, int64, model.OrderStatus) (*model.Order, error)
	HistoryFn func(context.Context, int64, int64) ([]model.StatusChange, error)
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, refresh bool) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, refresh)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusOrdered}}, nil
}

// Order returns the requested order in Ordered status.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusOrdered}, nil
}

// ChangeOrderStatus returns the order moved to status.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, userID, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// OrderHistory returns configured history or nothing.
func (s OrderFacadeStub) OrderHistory(ctx context.Context, userID, orderID int64) ([]model.StatusChange, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID, orderID)
	}
	return nil, nil
}

// MedicineFacadeStub simulates medicine operations.
type MedicineFacadeStub struct {
	ListFn   func(context.Context, int64, model.MedicineQuery) (*model.MedicineListing, error)
	GetFn    func(context.Context, int64, int64) (*model.Medicine, error)
	UpdateFn func(context.Context, int64, int64, model.MedicineUpdate) error
	DeleteFn func(context.Context, int64, int64) error
}

// Medicines returns configured listing or an empty trusted page.
func (s MedicineFacadeStub) Medicines(ctx context.Context, userID int64, query model.MedicineQuery) (*model.MedicineListing, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, query)
	}
	return &model.MedicineListing{Page: 1, PageSize: 10, TotalPages: 1, Trusted: true}, nil
}

// Medicine returns configured medicine.
func (s MedicineFacadeStub) Medicine(ctx context.Context, userID, medicineID int64) (*model.Medicine, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, medicineID)
	}
	return &model.Medicine{ID: medicineID}, nil
}

// UpdateMedicine executes configured update handler.
func (s MedicineFacadeStub) UpdateMedicine(ctx context.Context, userID, medicineID int64, update model.MedicineUpdate) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, medicineID, update)
	}
	return nil
}

// DeleteMedicine executes configured delete handler.
func (s MedicineFacadeStub) DeleteMedicine(ctx context.Context, userID, medicineID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, userID, medicineID)
	}
	return nil
}

// EventFacadeStub serves order update streams and health checks.
type EventFacadeStub struct {
	UpdatesFn func(context.Context, int64) (<-chan int64, func(), error)
	HealthFn  func(context.Context) error
}

// OrderUpdates returns configured stream or a closed channel.
func (s EventFacadeStub) OrderUpdates(ctx context.Context, userID int64) (<-chan int64, func(), error) {
	if s.UpdatesFn != nil {
		return s.UpdatesFn(ctx, userID)
	}
	ch := make(chan int64)
	close(ch)
	return ch, func() {}, nil
}

// Health reports configured health result.
func (s EventFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// DashboardFacadeStub combines all handler facades.
type DashboardFacadeStub struct {
	AuthFacadeStub
	SessionFacadeStub
	OrderFacadeStub
	MedicineFacadeStub
	EventFacadeStub
}

// RefreshCall stores arguments of worker refresh invocations.
type RefreshCall struct {
	Session model.Session
	OrderID int64
	Full    bool
}

// SyncFacadeStub mimics worker interactions with the dashboard facade.
type SyncFacadeStub struct {
	SessionsFn  func(context.Context, int) ([]model.Session, error)
	RefreshErr  error
	Refreshes   []RefreshCall
	mu          sync.Mutex
	sessionCall int
}

// SessionsForSync returns configured sessions.
func (s *SyncFacadeStub) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	s.mu.Lock()
	s.sessionCall++
	s.mu.Unlock()
	if s.SessionsFn != nil {
		return s.SessionsFn(ctx, limit)
	}
	return nil, nil
}

// RefreshOrder records single order refresh.
func (s *SyncFacadeStub) RefreshOrder(ctx context.Context, session model.Session, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshes = append(s.Refreshes, RefreshCall{Session: session, OrderID: orderID})
	return s.RefreshErr
}

// RefreshWarehouse records full warehouse refresh.
func (s *SyncFacadeStub) RefreshWarehouse(ctx context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshes = append(s.Refreshes, RefreshCall{Session: session, Full: true})
	return s.RefreshErr
}

// Calls returns a copy of recorded refreshes.
func (s *SyncFacadeStub) Calls() []RefreshCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RefreshCall(nil), s.Refreshes...)
}

// SessionCalls returns how many times sessions were requested.
func (s *SyncFacadeStub) SessionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionCall
}
