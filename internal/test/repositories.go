package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	SessionsFn func(context.Context, int) ([]model.Session, error)
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless login or email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	for _, existing := range s.Users {
		if existing.Login == user.Login || (user.Email != "" && existing.Email == user.Email) {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := user
	created.ID = s.Next
	created.CreatedAt = time.Now()
	s.Next++
	s.Users[created.Login] = &created
	s.ByID[created.ID] = &created
	return &created, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetWarehouse updates the selected warehouse of a stored user.
func (s *UserRepositoryStub) SetWarehouse(ctx context.Context, id, warehouseID int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.WarehouseID = warehouseID
	return nil
}

// SessionsForSync returns sessions of users that have an API token.
func (s *UserRepositoryStub) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	if s.SessionsFn != nil {
		return s.SessionsFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var sessions []model.Session
	for id := int64(1); id < s.Next && len(sessions) < limit; id++ {
		user, ok := s.ByID[id]
		if !ok || user.APIToken == "" {
			continue
		}
		sessions = append(sessions, model.Session{UserID: user.ID, WarehouseID: user.WarehouseID, APIToken: user.APIToken})
	}
	return sessions, nil
}

// SnapshotRepositoryStub keeps warehouse snapshots in memory.
type SnapshotRepositoryStub struct {
	mu         sync.Mutex
	Warehouses map[int64][]model.Order

	ListErr    error
	ReplaceErr error
	UpsertErr  error

	ReplaceCalls int
	UpsertCalls  int
}

// NewSnapshotRepositoryStub constructs an empty snapshot store.
func NewSnapshotRepositoryStub() *SnapshotRepositoryStub {
	return &SnapshotRepositoryStub{Warehouses: make(map[int64][]model.Order)}
}

func (s *SnapshotRepositoryStub) ListByWarehouse(ctx context.Context, warehouseID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return append([]model.Order(nil), s.Warehouses[warehouseID]...), nil
}

func (s *SnapshotRepositoryStub) ReplaceWarehouse(ctx context.Context, warehouseID int64, orders []model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReplaceCalls++
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	if s.Warehouses == nil {
		s.Warehouses = make(map[int64][]model.Order)
	}
	stored := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		o.WarehouseID = warehouseID
		stored = append(stored, o)
	}
	s.Warehouses[warehouseID] = stored
	return nil
}

func (s *SnapshotRepositoryStub) Upsert(ctx context.Context, order model.Order) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertCalls++
	if s.UpsertErr != nil {
		return false, s.UpsertErr
	}
	if s.Warehouses == nil {
		s.Warehouses = make(map[int64][]model.Order)
	}
	orders := s.Warehouses[order.WarehouseID]
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			return true, nil
		}
	}
	s.Warehouses[order.WarehouseID] = append(orders, order)
	return false, nil
}

// Counts returns replace and upsert invocation counts.
func (s *SnapshotRepositoryStub) Counts() (replaces, upserts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ReplaceCalls, s.UpsertCalls
}

// StatusChangeRepositoryStub records status changes in memory.
type StatusChangeRepositoryStub struct {
	Changes   []model.StatusChange
	RecordErr error
	ListErr   error
}

func (s *StatusChangeRepositoryStub) Record(ctx context.Context, change model.StatusChange) (*model.StatusChange, error) {
	if s.RecordErr != nil {
		return nil, s.RecordErr
	}
	change.ID = int64(len(s.Changes) + 1)
	if change.ChangedAt.IsZero() {
		change.ChangedAt = time.Now()
	}
	s.Changes = append(s.Changes, change)
	return &change, nil
}

func (s *StatusChangeRepositoryStub) ListByOrder(ctx context.Context, warehouseID, orderID int64) ([]model.StatusChange, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.StatusChange
	for _, c := range s.Changes {
		if c.WarehouseID == warehouseID && c.OrderID == orderID {
			result = append(result, c)
		}
	}
	return result, nil
}

var (
	_ repository.UserRepository          = (*UserRepositoryStub)(nil)
	_ repository.OrderSnapshotRepository = (*SnapshotRepositoryStub)(nil)
	_ repository.StatusChangeRepository  = (*StatusChangeRepositoryStub)(nil)
)
