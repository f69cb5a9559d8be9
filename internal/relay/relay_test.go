package relay

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func receive(t *testing.T, ch <-chan OrderUpdate) OrderUpdate {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
	return OrderUpdate{}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	r := New(4, testLogger())
	first, cancelFirst := r.Subscribe()
	defer cancelFirst()
	second, cancelSecond := r.Subscribe()
	defer cancelSecond()

	update := OrderUpdate{OrderID: 12, Session: model.Session{UserID: 1, WarehouseID: 73}}
	r.Publish(update)

	assert.Equal(t, update, receive(t, first))
	assert.Equal(t, update, receive(t, second))
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	r := New(1, testLogger())
	ch, cancel := r.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		r.Publish(OrderUpdate{OrderID: 1})
		r.Publish(OrderUpdate{OrderID: 2})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	assert.Equal(t, int64(1), receive(t, ch).OrderID)
	select {
	case u := <-ch:
		t.Fatalf("expected dropped update, got %+v", u)
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	r := New(1, testLogger())
	ch, cancel := r.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	r.Publish(OrderUpdate{OrderID: 3})
}

func TestCloseClosesSubscribersAndIgnoresPublish(t *testing.T) {
	r := New(1, testLogger())
	ch, cancel := r.Subscribe()

	r.Close()
	r.Close()

	_, ok := <-ch
	assert.False(t, ok)

	r.Publish(OrderUpdate{OrderID: 4})
	cancel()

	late, lateCancel := r.Subscribe()
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok, "subscriptions after close must be closed")
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	r := New(8, testLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := r.Subscribe()
			cancel()
		}()
		go func(id int64) {
			defer wg.Done()
			r.Publish(OrderUpdate{OrderID: id})
		}(int64(i))
	}
	wg.Wait()
	r.Close()
}
