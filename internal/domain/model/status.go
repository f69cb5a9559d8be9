package model

// OrderStatus describes order lifecycle as reported by the pharmacy API.
type OrderStatus string

const (
	OrderStatusOrdered    OrderStatus = "Ordered"
	OrderStatusPreparing  OrderStatus = "Preparing"
	OrderStatusDelivering OrderStatus = "Delivering"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

// AllOrderStatuses lists every known status in display order.
var AllOrderStatuses = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusPreparing,
	OrderStatusDelivering,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// forwardPath is the only ordering statuses may advance through.
var forwardPath = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusPreparing,
	OrderStatusDelivering,
	OrderStatusDelivered,
}

type statusInfo struct {
	wire     int
	label    string
	terminal bool
}

var statusTable = map[OrderStatus]statusInfo{
	OrderStatusOrdered:    {wire: 0, label: "تم الطلب"},
	OrderStatusDelivered:  {wire: 1, label: "تم التوصيل", terminal: true},
	OrderStatusCancelled:  {wire: 2, label: "ملغي", terminal: true},
	OrderStatusReturned:   {wire: 3, label: "مرتجع", terminal: true},
	OrderStatusPreparing:  {wire: 4, label: "قيد التحضير"},
	OrderStatusDelivering: {wire: 5, label: "قيد التوصيل"},
}

// ParseOrderStatus returns the status with the given name.
func ParseOrderStatus(name string) (OrderStatus, bool) {
	status := OrderStatus(name)
	_, ok := statusTable[status]
	return status, ok
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// WireValue returns the numeric enum the pharmacy API expects on mutation.
// Unknown statuses map to Ordered.
func (s OrderStatus) WireValue() int {
	return statusTable[s].wire
}

// Label returns the Arabic display name, or the raw name when unknown.
func (s OrderStatus) Label() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return string(s)
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return statusTable[s].terminal
}

func forwardIndex(s OrderStatus) int {
	for i, st := range forwardPath {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransition reports whether an order in current may move to requested.
func CanTransition(current, requested OrderStatus) bool {
	if !current.Valid() || !requested.Valid() || current.Terminal() {
		return false
	}

	switch requested {
	case OrderStatusCancelled, OrderStatusReturned:
		return current == OrderStatusOrdered
	}

	return forwardIndex(requested) > forwardIndex(current)
}

// NextStatuses lists statuses reachable from current in display order.
func NextStatuses(current OrderStatus) []OrderStatus {
	var next []OrderStatus
	for _, s := range AllOrderStatuses {
		if CanTransition(current, s) {
			next = append(next, s)
		}
	}
	return next
}
