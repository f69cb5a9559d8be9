package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/server/http/dto"
)

// SessionHandler serves the layout shell and warehouse selection.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Layout handles GET /api/layout. Anonymous callers, and tokens whose user no
// longer exists, get the auth layout.
func (h *SessionHandler) Layout(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusOK, dto.LayoutResponse{Layout: dto.LayoutAuth})
		return
	}

	user, session, err := h.facade.Session(c.Request.Context(), userID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		c.JSON(http.StatusOK, dto.LayoutResponse{Layout: dto.LayoutAuth})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardLayout(user, session))
}

// Session handles GET /api/session.
func (h *SessionHandler) Session(c *gin.Context) {
	user, session, err := h.facade.Session(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardLayout(user, session))
}

func dashboardLayout(user *model.User, session model.Session) dto.LayoutResponse {
	return dto.LayoutResponse{
		Layout:    dto.LayoutDashboard,
		User:      &dto.UserResponse{ID: user.ID, Login: user.Login, Email: user.Email},
		Warehouse: &dto.WarehouseResponse{ID: session.WarehouseID},
	}
}

// SelectWarehouse handles PUT /api/session/warehouse.
func (h *SessionHandler) SelectWarehouse(c *gin.Context) {
	var req dto.SelectWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "warehouseId must be a positive number")
		return
	}

	if err := h.facade.SelectWarehouse(c.Request.Context(), CurrentUserID(c), req.WarehouseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WarehouseResponse{ID: req.WarehouseID})
}

// Warehouse handles GET /api/warehouse.
func (h *SessionHandler) Warehouse(c *gin.Context) {
	w, err := h.facade.Warehouse(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WarehouseResponse{ID: w.ID, Name: w.Name, Trusted: w.Trusted})
}
