package model

import "time"

// Order describes a pharmacy order placed against a warehouse.
type Order struct {
	ID           int64
	WarehouseID  int64
	TotalPrice   float64
	Quantity     int
	Status       OrderStatus
	PharmacyID   int64
	PharmacyName string
	OrderDate    time.Time
	Items        []OrderItem
}

// OrderItem is a single medicine line of an order.
type OrderItem struct {
	MedicineID   int64
	MedicineName string
	Quantity     int
	Price        float64
	Discount     float64
}

// FindOrder returns the order with the given id from the list.
func FindOrder(orders []Order, id int64) (*Order, bool) {
	for i := range orders {
		if orders[i].ID == id {
			order := orders[i]
			return &order, true
		}
	}
	return nil, false
}
