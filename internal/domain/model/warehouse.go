package model

// Warehouse describes a supplier warehouse.
type Warehouse struct {
	ID      int64
	Name    string
	Trusted bool
}
