package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRegistration  = errors.New("invalid registration data")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrWarehouseNotTrusted  = errors.New("warehouse is not trusted")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrMissingWarehouse     = errors.New("warehouse is not selected")
	ErrUpstreamUnauthorized = errors.New("pharmacy api rejected credentials")
)
