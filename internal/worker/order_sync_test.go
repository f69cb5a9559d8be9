package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/relay"
	testhelpers "github.com/polkiloo/pharmadash/internal/test"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewOrderSyncDefaults(t *testing.T) {
	s := NewOrderSync(&testhelpers.SyncFacadeStub{}, nil, 0, 0, 0, newTestLogger())
	if s.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", s.batchSize)
	}
	if s.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", s.workers)
	}
	if s.pollInterval != time.Minute {
		t.Fatalf("expected default poll interval, got %v", s.pollInterval)
	}
}

func TestOrderSyncRefreshesWarehouses(t *testing.T) {
	facade := &testhelpers.SyncFacadeStub{
		SessionsFn: func(ctx context.Context, limit int) ([]model.Session, error) {
			if limit != 5 {
				t.Errorf("unexpected limit %d", limit)
			}
			return []model.Session{{UserID: 1, WarehouseID: 7}, {UserID: 2, WarehouseID: 8}}, nil
		},
	}
	s := NewOrderSync(facade, nil, 10*time.Millisecond, 5, 2, newTestLogger())

	seen := func() map[int64]bool {
		result := map[int64]bool{}
		for _, call := range facade.Calls() {
			if !call.Full {
				t.Errorf("ticker must schedule full refreshes, got %+v", call)
			}
			result[call.Session.WarehouseID] = true
		}
		return result
	}

	s.Start(context.Background())
	waitFor(t, func() bool {
		got := seen()
		return got[7] && got[8]
	})
	s.Stop()
}

func TestOrderSyncRefreshesRelayedOrders(t *testing.T) {
	r := relay.New(4, newTestLogger())
	defer r.Close()
	facade := &testhelpers.SyncFacadeStub{}
	s := NewOrderSync(facade, r, time.Hour, 1, 1, newTestLogger())

	s.Start(context.Background())
	session := model.Session{UserID: 3, WarehouseID: 7, APIToken: "api"}
	r.Publish(relay.OrderUpdate{OrderID: 42, Session: session})

	waitFor(t, func() bool { return len(facade.Calls()) == 1 })
	s.Stop()

	call := facade.Calls()[0]
	if call.Full || call.OrderID != 42 || call.Session != session {
		t.Fatalf("unexpected refresh call %+v", call)
	}
}

func TestOrderSyncSurvivesFailures(t *testing.T) {
	attempts := 0
	facade := &testhelpers.SyncFacadeStub{
		SessionsFn: func(context.Context, int) ([]model.Session, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("db down")
			}
			return []model.Session{{WarehouseID: 7}}, nil
		},
		RefreshErr: errors.New("upstream"),
	}
	s := NewOrderSync(facade, nil, 5*time.Millisecond, 1, 1, newTestLogger())

	s.Start(context.Background())
	waitFor(t, func() bool { return len(facade.Calls()) >= 2 })
	s.Stop()

	if facade.SessionCalls() < 3 {
		t.Fatalf("expected polling to continue after errors, got %d calls", facade.SessionCalls())
	}
}

func TestOrderSyncClosedRelay(t *testing.T) {
	r := relay.New(1, newTestLogger())
	facade := &testhelpers.SyncFacadeStub{
		SessionsFn: func(context.Context, int) ([]model.Session, error) {
			return []model.Session{{WarehouseID: 7}}, nil
		},
	}
	s := NewOrderSync(facade, r, 5*time.Millisecond, 1, 1, newTestLogger())

	s.Start(context.Background())
	r.Close()
	waitFor(t, func() bool { return len(facade.Calls()) >= 1 })
	s.Stop()
}

func TestOrderSyncStartStop(t *testing.T) {
	s := NewOrderSync(&testhelpers.SyncFacadeStub{}, nil, time.Hour, 1, 2, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
}
