package dto

// ErrorResponse is the error banner body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}

// EventOrderUpdated is sent over the events stream when an order changes.
const EventOrderUpdated = "order_updated"

// EventMessage is a single websocket frame.
type EventMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// OrderUpdatedData identifies the changed order.
type OrderUpdatedData struct {
	OrderID int64 `json:"orderId"`
}
