package test

import (
	"context"
	"sync"

	"github.com/polkiloo/pharmadash/internal/adapter/events"
	"github.com/polkiloo/pharmadash/internal/adapter/pharmacy"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/relay"
)

// StatusUpdateCall stores arguments of UpdateOrderStatus invocations.
type StatusUpdateCall struct {
	Token   string
	OrderID int64
	Status  model.OrderStatus
}

// MedicineUpdateCall stores arguments of UpdateMedicine invocations.
type MedicineUpdateCall struct {
	WarehouseID int64
	MedicineID  int64
	Update      model.MedicineUpdate
}

// PharmacyClientStub serves canned pharmacy API answers.
type PharmacyClientStub struct {
	mu sync.Mutex

	Orders    map[int64][]model.Order
	OrdersErr error
	UpdateErr error

	Warehouses   map[int64]*model.Warehouse
	WarehouseErr error
	// TokenErrs rejects warehouse lookups made with the listed tokens.
	TokenErrs map[string]error

	Medicines   *model.MedicinePage
	ListErr     error
	Medicine    *model.Medicine
	MedicineErr error
	DeleteErr   error

	ListOrdersCalls int
	WarehouseTokens []string
	StatusUpdates   []StatusUpdateCall
	MedicineUpdates []MedicineUpdateCall
	Deleted         []int64
}

func (s *PharmacyClientStub) ListOrders(ctx context.Context, token string, warehouseID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListOrdersCalls++
	if s.OrdersErr != nil {
		return nil, s.OrdersErr
	}
	orders := make([]model.Order, 0, len(s.Orders[warehouseID]))
	for _, o := range s.Orders[warehouseID] {
		o.WarehouseID = warehouseID
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateOrderStatus records the call and applies the status to stored orders.
func (s *PharmacyClientStub) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{Token: token, OrderID: orderID, Status: status})
	for _, orders := range s.Orders {
		for i := range orders {
			if orders[i].ID == orderID {
				orders[i].Status = status
			}
		}
	}
	return nil
}

func (s *PharmacyClientStub) GetWarehouse(ctx context.Context, token string, warehouseID int64) (*model.Warehouse, error) {
	s.mu.Lock()
	s.WarehouseTokens = append(s.WarehouseTokens, token)
	s.mu.Unlock()
	if err, ok := s.TokenErrs[token]; ok {
		return nil, err
	}
	if s.WarehouseErr != nil {
		return nil, s.WarehouseErr
	}
	if w, ok := s.Warehouses[warehouseID]; ok {
		return w, nil
	}
	return &model.Warehouse{ID: warehouseID}, nil
}

func (s *PharmacyClientStub) ListMedicines(ctx context.Context, token string, warehouseID int64, page, pageSize int) (*model.MedicinePage, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	if s.Medicines != nil {
		result := *s.Medicines
		result.Page = page
		result.PageSize = pageSize
		return &result, nil
	}
	return &model.MedicinePage{Page: page, PageSize: pageSize, TotalPages: 1}, nil
}

func (s *PharmacyClientStub) GetMedicine(ctx context.Context, token string, warehouseID, medicineID int64) (*model.Medicine, error) {
	if s.MedicineErr != nil {
		return nil, s.MedicineErr
	}
	if s.Medicine != nil {
		return s.Medicine, nil
	}
	return &model.Medicine{ID: medicineID}, nil
}

func (s *PharmacyClientStub) UpdateMedicine(ctx context.Context, token string, warehouseID, medicineID int64, update model.MedicineUpdate) error {
	if s.MedicineErr != nil {
		return s.MedicineErr
	}
	s.MedicineUpdates = append(s.MedicineUpdates, MedicineUpdateCall{WarehouseID: warehouseID, MedicineID: medicineID, Update: update})
	return nil
}

func (s *PharmacyClientStub) DeleteMedicine(ctx context.Context, token string, warehouseID, medicineID int64) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Deleted = append(s.Deleted, medicineID)
	return nil
}

// ListCalls returns how many times orders were fetched.
func (s *PharmacyClientStub) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListOrdersCalls
}

// PublisherStub collects published status changes.
type PublisherStub struct {
	Events []model.StatusChange
	Err    error
	Closed bool
}

func (p *PublisherStub) PublishStatusChange(ctx context.Context, change model.StatusChange) error {
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, change)
	return nil
}

func (p *PublisherStub) Close() error {
	p.Closed = true
	return nil
}

// NotifierStub collects in-process order updates.
type NotifierStub struct {
	mu      sync.Mutex
	Updates []relay.OrderUpdate
}

// Publish records the update.
func (n *NotifierStub) Publish(update relay.OrderUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Updates = append(n.Updates, update)
}

var (
	_ pharmacy.Client  = (*PharmacyClientStub)(nil)
	_ events.Publisher = (*PublisherStub)(nil)
)
