package test

import (
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// RandomLogin returns a unique login that passes registration length checks.
func RandomLogin() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// RandomPassword returns a unique password longer than the registration minimum.
func RandomPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RandomRegistration builds a valid registration form bound to warehouseID.
func RandomRegistration(warehouseID int64) model.Registration {
	login := RandomLogin()
	password := RandomPassword()
	return model.Registration{
		Login:           login,
		Email:           login + "@example.com",
		Password:        password,
		ConfirmPassword: password,
		WarehouseID:     warehouseID,
		APIToken:        "api-" + login,
	}
}
