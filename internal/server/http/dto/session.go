package dto

const (
	LayoutAuth      = "auth"
	LayoutDashboard = "dashboard"
)

// LayoutResponse tells the client which shell to render.
type LayoutResponse struct {
	Layout    string             `json:"layout"`
	User      *UserResponse      `json:"user,omitempty"`
	Warehouse *WarehouseResponse `json:"warehouse,omitempty"`
}

// UserResponse describes the signed in operator.
type UserResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// WarehouseResponse describes a warehouse and its trust flag.
type WarehouseResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Trusted bool   `json:"trusted"`
}

// SelectWarehouseRequest switches the working warehouse.
type SelectWarehouseRequest struct {
	WarehouseID int64 `json:"warehouseId" binding:"required,gt=0"`
}
