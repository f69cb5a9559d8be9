package model

import "time"

// User represents a dashboard operator bound to a warehouse.
type User struct {
	ID           int64
	Login        string
	Email        string
	PasswordHash string
	WarehouseID  int64
	APIToken     string
	CreatedAt    time.Time
}

// Session is the request context every dashboard view works in.
type Session struct {
	UserID      int64
	WarehouseID int64
	APIToken    string
}

// Registration holds the sign-up form of a dashboard operator.
type Registration struct {
	Login           string
	Email           string
	Password        string
	ConfirmPassword string
	WarehouseID     int64
	APIToken        string
}
