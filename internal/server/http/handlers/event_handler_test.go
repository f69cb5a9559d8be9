package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/server/http/dto"
	testhelpers "github.com/polkiloo/pharmadash/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newEventServer(t *testing.T, facade EventFacade) string {
	t.Helper()
	router := gin.New()
	router.GET("/events", asUser(3), NewEventHandler(facade, testLogger()).Stream)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
}

func TestEventHandlerStreamsUpdates(t *testing.T) {
	updates := make(chan int64, 2)
	stopped := make(chan struct{})
	facade := testhelpers.EventFacadeStub{UpdatesFn: func(ctx context.Context, userID int64) (<-chan int64, func(), error) {
		assert.Equal(t, int64(3), userID)
		return updates, func() { close(stopped) }, nil
	}}

	conn, resp, err := websocket.DefaultDialer.Dial(newEventServer(t, facade), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	updates <- 42
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg struct {
		Event string               `json:"event"`
		Data  dto.OrderUpdatedData `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, dto.EventOrderUpdated, msg.Event)
	assert.Equal(t, int64(42), msg.Data.OrderID)

	require.NoError(t, conn.Close())
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("subscription not released after client disconnect")
	}
}

func TestEventHandlerClosesWhenStreamEnds(t *testing.T) {
	conn, resp, err := websocket.DefaultDialer.Dial(newEventServer(t, testhelpers.EventFacadeStub{}), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error %v", err)
}

func TestEventHandlerSubscribeError(t *testing.T) {
	facade := testhelpers.EventFacadeStub{UpdatesFn: func(context.Context, int64) (<-chan int64, func(), error) {
		return nil, nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/events", NewEventHandler(facade, testLogger()).Stream, asUser(3), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEventHandlerRejectsPlainHTTP(t *testing.T) {
	stopped := false
	facade := testhelpers.EventFacadeStub{UpdatesFn: func(context.Context, int64) (<-chan int64, func(), error) {
		return make(chan int64), func() { stopped = true }, nil
	}}
	resp := performRequest(t, http.MethodGet, "/events", NewEventHandler(facade, testLogger()).Stream, asUser(3), nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.True(t, stopped)
}
