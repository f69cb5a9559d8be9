package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

func TestStatusChangeRepositoryRecord(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &statusChangeRepository{storage: storage}

	change := model.StatusChange{OrderID: 5, WarehouseID: 73, From: model.OrderStatusOrdered, To: model.OrderStatusPreparing, ChangedBy: 1}
	changedAt := time.Now()

	mock.ExpectQuery("INSERT INTO status_changes").WithArgs(int64(5), int64(73), "Ordered", "Preparing", int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "changed_at"}).AddRow(int64(9), changedAt),
	)
	recorded, err := repo.Record(context.Background(), change)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded.ID != 9 || !recorded.ChangedAt.Equal(changedAt) || recorded.To != model.OrderStatusPreparing {
		t.Fatalf("unexpected change: %+v", recorded)
	}

	mock.ExpectQuery("INSERT INTO status_changes").WithArgs(int64(5), int64(73), "Ordered", "Preparing", int64(1)).WillReturnError(errors.New("insert"))
	if _, err := repo.Record(context.Background(), change); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestStatusChangeRepositoryListByOrder(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &statusChangeRepository{storage: storage}

	now := time.Now()
	columns := []string{"id", "order_id", "warehouse_id", "from_status", "to_status", "changed_by", "changed_at"}

	mock.ExpectQuery("FROM status_changes WHERE warehouse_id=").WithArgs(int64(73), int64(5)).WillReturnRows(
		pgxmockv3.NewRows(columns).
			AddRow(int64(1), int64(5), int64(73), model.OrderStatusOrdered, model.OrderStatusPreparing, int64(1), now).
			AddRow(int64(2), int64(5), int64(73), model.OrderStatusPreparing, model.OrderStatusDelivering, int64(1), now),
	)
	changes, err := repo.ListByOrder(context.Background(), 73, 5)
	if err != nil || len(changes) != 2 || changes[1].To != model.OrderStatusDelivering {
		t.Fatalf("unexpected result: %+v err=%v", changes, err)
	}

	mock.ExpectQuery("FROM status_changes WHERE warehouse_id=").WithArgs(int64(73), int64(6)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByOrder(context.Background(), 73, 6); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM status_changes WHERE warehouse_id=").WithArgs(int64(73), int64(7)).WillReturnRows(
		pgxmockv3.NewRows(columns).AddRow("bad", int64(5), int64(73), model.OrderStatusOrdered, model.OrderStatusPreparing, int64(1), now),
	)
	if _, err := repo.ListByOrder(context.Background(), 73, 7); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
