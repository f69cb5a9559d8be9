package app

import (
	"context"
	"sync"

	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/relay"
	"github.com/polkiloo/pharmadash/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// UpdateSubscriber hands out order update subscriptions.
type UpdateSubscriber interface {
	Subscribe() (<-chan relay.OrderUpdate, func())
}

// DashboardFacade resolves the caller's session and dispatches to the use cases.
type DashboardFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	medicines *usecase.MedicineUseCase
	updates   UpdateSubscriber
	health    HealthChecker
}

func NewDashboardFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	medicines *usecase.MedicineUseCase,
	updates UpdateSubscriber,
	health HealthChecker,
) *DashboardFacade {
	return &DashboardFacade{auth: auth, orders: orders, medicines: medicines, updates: updates, health: health}
}

func (f *DashboardFacade) Register(ctx context.Context, form model.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, form)
	return token, err
}

func (f *DashboardFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *DashboardFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *DashboardFacade) Session(ctx context.Context, userID int64) (*model.User, model.Session, error) {
	return f.auth.Session(ctx, userID)
}

func (f *DashboardFacade) SelectWarehouse(ctx context.Context, userID, warehouseID int64) error {
	return f.auth.SelectWarehouse(ctx, userID, warehouseID)
}

func (f *DashboardFacade) Warehouse(ctx context.Context, userID int64) (*model.Warehouse, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.medicines.Warehouse(ctx, session)
}

func (f *DashboardFacade) Orders(ctx context.Context, userID int64, refresh bool) ([]model.Order, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.List(ctx, session, refresh)
}

func (f *DashboardFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.Get(ctx, session, orderID)
}

func (f *DashboardFacade) ChangeOrderStatus(ctx context.Context, userID, orderID int64, status model.OrderStatus) (*model.Order, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.UpdateStatus(ctx, session, orderID, status)
}

func (f *DashboardFacade) OrderHistory(ctx context.Context, userID, orderID int64) ([]model.StatusChange, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.orders.History(ctx, session, orderID)
}

func (f *DashboardFacade) Medicines(ctx context.Context, userID int64, query model.MedicineQuery) (*model.MedicineListing, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.medicines.List(ctx, session, query)
}

func (f *DashboardFacade) Medicine(ctx context.Context, userID, medicineID int64) (*model.Medicine, error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f.medicines.Get(ctx, session, medicineID)
}

func (f *DashboardFacade) UpdateMedicine(ctx context.Context, userID, medicineID int64, update model.MedicineUpdate) error {
	session, err := f.session(ctx, userID)
	if err != nil {
		return err
	}
	return f.medicines.Update(ctx, session, medicineID, update)
}

func (f *DashboardFacade) DeleteMedicine(ctx context.Context, userID, medicineID int64) error {
	session, err := f.session(ctx, userID)
	if err != nil {
		return err
	}
	return f.medicines.Delete(ctx, session, medicineID)
}

// OrderUpdates streams ids of orders changed in the caller's warehouse until
// ctx is done or the returned stop func is called.
func (f *DashboardFacade) OrderUpdates(ctx context.Context, userID int64) (<-chan int64, func(), error) {
	session, err := f.session(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	updates, unsubscribe := f.updates.Subscribe()
	out := make(chan int64)
	done := make(chan struct{})

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Session.WarehouseID != session.WarehouseID {
					continue
				}
				select {
				case out <- update.OrderID:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }
	return out, stop, nil
}

func (f *DashboardFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

// SessionsForSync lists sessions the snapshot worker refreshes.
func (f *DashboardFacade) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	return f.auth.SessionsForSync(ctx, limit)
}

func (f *DashboardFacade) RefreshOrder(ctx context.Context, session model.Session, orderID int64) error {
	return f.orders.Refresh(ctx, session, orderID)
}

func (f *DashboardFacade) RefreshWarehouse(ctx context.Context, session model.Session) error {
	return f.orders.RefreshWarehouse(ctx, session)
}

func (f *DashboardFacade) session(ctx context.Context, userID int64) (model.Session, error) {
	_, session, err := f.auth.Session(ctx, userID)
	return session, err
}
