package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/polkiloo/pharmadash/internal/adapter/events"
	"github.com/polkiloo/pharmadash/internal/adapter/pharmacy"
	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/domain/repository"
	"github.com/polkiloo/pharmadash/internal/relay"
)

// OrderNotifier broadcasts order updates inside the process.
type OrderNotifier interface {
	Publish(update relay.OrderUpdate)
}

// OrderUseCase encapsulates order listing, details and status changes.
type OrderUseCase struct {
	client    pharmacy.Client
	snapshots repository.OrderSnapshotRepository
	changes   repository.StatusChangeRepository
	notifier  OrderNotifier
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	client pharmacy.Client,
	snapshots repository.OrderSnapshotRepository,
	changes repository.StatusChangeRepository,
	notifier OrderNotifier,
	publisher events.Publisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		client:    client,
		snapshots: snapshots,
		changes:   changes,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// List serves the warehouse snapshot. An empty snapshot or an explicit
// refresh reloads it from the pharmacy API first. Snapshot rows are served
// only after the session token is accepted for the warehouse.
func (u *OrderUseCase) List(ctx context.Context, session model.Session, refresh bool) ([]model.Order, error) {
	if !refresh {
		if err := u.authorize(ctx, session); err != nil {
			return nil, err
		}
		orders, err := u.snapshots.ListByWarehouse(ctx, session.WarehouseID)
		if err != nil {
			return nil, err
		}
		if len(orders) > 0 {
			return orders, nil
		}
	}

	orders, err := u.fetch(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := u.snapshots.ReplaceWarehouse(ctx, session.WarehouseID, orders); err != nil {
		u.logger.Warn("failed to store order snapshot",
			slog.Int64("warehouse_id", session.WarehouseID),
			slog.Any("error", err),
		)
	}
	return orders, nil
}

// Get returns the current state of one order from the pharmacy API.
func (u *OrderUseCase) Get(ctx context.Context, session model.Session, orderID int64) (*model.Order, error) {
	orders, err := u.fetch(ctx, session)
	if err != nil {
		return nil, err
	}
	order, ok := model.FindOrder(orders, orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// UpdateStatus moves the order to requested when the progression allows it.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, session model.Session, orderID int64, requested model.OrderStatus) (*model.Order, error) {
	if !requested.Valid() {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidStatus, requested)
	}

	order, err := u.Get(ctx, session, orderID)
	if err != nil {
		return nil, err
	}

	current := order.Status
	if !model.CanTransition(current, requested) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, current, requested)
	}

	if err := u.client.UpdateOrderStatus(ctx, session.APIToken, orderID, requested); err != nil {
		return nil, err
	}
	order.Status = requested

	logger := u.logger.With(
		slog.Int64("order_id", orderID),
		slog.Int64("warehouse_id", session.WarehouseID),
	)

	change, err := u.changes.Record(ctx, model.StatusChange{
		OrderID:     orderID,
		WarehouseID: session.WarehouseID,
		From:        current,
		To:          requested,
		ChangedBy:   session.UserID,
	})
	if err != nil {
		logger.Error("failed to record status change", slog.Any("error", err))
	}

	if _, err := u.snapshots.Upsert(ctx, *order); err != nil {
		logger.Warn("failed to patch order snapshot", slog.Any("error", err))
	}

	u.notifier.Publish(relay.OrderUpdate{OrderID: orderID, Session: session})

	if change != nil {
		if err := u.publisher.PublishStatusChange(ctx, *change); err != nil {
			logger.Warn("failed to publish status event", slog.Any("error", err))
		}
	}

	logger.Info("order status changed",
		slog.String("from", string(current)),
		slog.String("to", string(requested)),
	)
	return order, nil
}

// History returns recorded status changes of the order, oldest first.
func (u *OrderUseCase) History(ctx context.Context, session model.Session, orderID int64) ([]model.StatusChange, error) {
	if err := u.authorize(ctx, session); err != nil {
		return nil, err
	}
	return u.changes.ListByOrder(ctx, session.WarehouseID, orderID)
}

// Refresh reloads one order into the snapshot. When the snapshot did not hold
// the order, or the order is gone upstream, the whole warehouse is reloaded.
func (u *OrderUseCase) Refresh(ctx context.Context, session model.Session, orderID int64) error {
	orders, err := u.fetch(ctx, session)
	if err != nil {
		return err
	}

	if order, ok := model.FindOrder(orders, orderID); ok {
		existed, err := u.snapshots.Upsert(ctx, *order)
		if err != nil {
			return err
		}
		if existed {
			return nil
		}
	}

	return u.snapshots.ReplaceWarehouse(ctx, session.WarehouseID, orders)
}

// RefreshWarehouse replaces the snapshot of the session warehouse.
func (u *OrderUseCase) RefreshWarehouse(ctx context.Context, session model.Session) error {
	orders, err := u.fetch(ctx, session)
	if err != nil {
		return err
	}
	return u.snapshots.ReplaceWarehouse(ctx, session.WarehouseID, orders)
}

// authorize asks the pharmacy API whether the session token may read the
// session warehouse.
func (u *OrderUseCase) authorize(ctx context.Context, session model.Session) error {
	if session.WarehouseID <= 0 {
		return domainErrors.ErrMissingWarehouse
	}
	if _, err := u.client.GetWarehouse(ctx, session.APIToken, session.WarehouseID); err != nil {
		return fmt.Errorf("authorize warehouse %d: %w", session.WarehouseID, err)
	}
	return nil
}

func (u *OrderUseCase) fetch(ctx context.Context, session model.Session) ([]model.Order, error) {
	if session.WarehouseID <= 0 {
		return nil, domainErrors.ErrMissingWarehouse
	}
	orders, err := u.client.ListOrders(ctx, session.APIToken, session.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("list orders of warehouse %d: %w", session.WarehouseID, err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}
