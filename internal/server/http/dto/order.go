package dto

import "time"

// OrderResponse describes an order row or details view.
type OrderResponse struct {
	ID           int64               `json:"id"`
	WarehouseID  int64               `json:"warehouseId"`
	TotalPrice   float64             `json:"totalPrice"`
	Quantity     int                 `json:"quantity"`
	Status       string              `json:"status"`
	StatusLabel  string              `json:"statusLabel"`
	WireStatus   int                 `json:"wireStatus"`
	PharmacyID   int64               `json:"pharmacyId"`
	PharmacyName string              `json:"pharmacyName"`
	OrderDate    time.Time           `json:"orderDate"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	NextStatuses []string            `json:"nextStatuses"`
}

// OrderItemResponse is one medicine line of an order.
type OrderItemResponse struct {
	MedicineID   int64   `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
}

// StatusUpdateRequest asks to move an order to another status.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusChangeResponse is one entry of order status history.
type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy int64     `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}
