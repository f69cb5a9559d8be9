package model

import "time"

// StatusChange records an accepted order status transition.
type StatusChange struct {
	ID          int64
	OrderID     int64
	WarehouseID int64
	From        OrderStatus
	To          OrderStatus
	ChangedBy   int64
	ChangedAt   time.Time
}
