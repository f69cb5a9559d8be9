package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	refresh := false
	if raw := c.Query("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "invalid refresh flag")
			return
		}
		refresh = v
	}

	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o, false))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, true))
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	status, known := model.ParseOrderStatus(req.Status)
	if !known {
		badRequest(c, "unknown status "+strconv.Quote(req.Status))
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), CurrentUserID(c), orderID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, true))
}

// History handles GET /api/orders/:id/history.
func (h *OrderHandler) History(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	changes, err := h.facade.OrderHistory(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.StatusChangeResponse, 0, len(changes))
	for _, ch := range changes {
		response = append(response, dto.StatusChangeResponse{
			From:      string(ch.From),
			To:        string(ch.To),
			ChangedBy: ch.ChangedBy,
			ChangedAt: ch.ChangedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order, withItems bool) dto.OrderResponse {
	next := model.NextStatuses(order.Status)
	resp := dto.OrderResponse{
		ID:           order.ID,
		WarehouseID:  order.WarehouseID,
		TotalPrice:   order.TotalPrice,
		Quantity:     order.Quantity,
		Status:       string(order.Status),
		StatusLabel:  order.Status.Label(),
		WireStatus:   order.Status.WireValue(),
		PharmacyID:   order.PharmacyID,
		PharmacyName: order.PharmacyName,
		OrderDate:    order.OrderDate,
		NextStatuses: make([]string, 0, len(next)),
	}
	for _, s := range next {
		resp.NextStatuses = append(resp.NextStatuses, string(s))
	}
	if withItems {
		for _, item := range order.Items {
			resp.Items = append(resp.Items, dto.OrderItemResponse{
				MedicineID:   item.MedicineID,
				MedicineName: item.MedicineName,
				Quantity:     item.Quantity,
				Price:        item.Price,
				Discount:     item.Discount,
			})
		}
	}
	return resp
}
