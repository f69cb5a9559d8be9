package dto

// RegisterRequest describes the sign-up form.
type RegisterRequest struct {
	Login           string `json:"login" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	WarehouseID     int64  `json:"warehouseId" binding:"gte=0"`
	APIToken        string `json:"apiToken"`
}

// LoginRequest describes login/password payload.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued dashboard token.
type TokenResponse struct {
	Token string `json:"token"`
}
