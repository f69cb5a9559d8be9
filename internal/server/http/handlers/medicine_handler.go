package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmadash/internal/domain/model"
	"github.com/polkiloo/pharmadash/internal/server/http/dto"
)

// MedicineHandler manages warehouse stock endpoints.
type MedicineHandler struct {
	facade MedicineFacade
}

// NewMedicineHandler constructs MedicineHandler.
func NewMedicineHandler(facade MedicineFacade) *MedicineHandler {
	return &MedicineHandler{facade: facade}
}

// List handles GET /api/medicines.
func (h *MedicineHandler) List(c *gin.Context) {
	query, ok := parseMedicineQuery(c)
	if !ok {
		return
	}

	listing, err := h.facade.Medicines(c.Request.Context(), CurrentUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MedicineListResponse{
		Items:      make([]dto.MedicineResponse, 0, len(listing.Items)),
		Page:       listing.Page,
		PageSize:   listing.PageSize,
		TotalPages: listing.TotalPages,
		TotalCount: listing.TotalCount,
		Trusted:    listing.Trusted,
		HasPrev:    listing.HasPrev,
		HasNext:    listing.HasNext,
	}
	for _, m := range listing.Items {
		resp.Items = append(resp.Items, toMedicineResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/medicines/:id.
func (h *MedicineHandler) Get(c *gin.Context) {
	medicineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	med, err := h.facade.Medicine(c.Request.Context(), CurrentUserID(c), medicineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMedicineResponse(*med))
}

// Update handles PUT /api/medicines/:id.
func (h *MedicineHandler) Update(c *gin.Context) {
	medicineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MedicineUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity and discount are required")
		return
	}

	update := model.MedicineUpdate{Quantity: *req.Quantity, Discount: *req.Discount}
	if err := h.facade.UpdateMedicine(c.Request.Context(), CurrentUserID(c), medicineID, update); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/medicines/:id.
func (h *MedicineHandler) Delete(c *gin.Context) {
	medicineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteMedicine(c.Request.Context(), CurrentUserID(c), medicineID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseMedicineQuery(c *gin.Context) (model.MedicineQuery, bool) {
	query := model.MedicineQuery{Search: c.Query("search")}

	for name, dst := range map[string]*int{"page": &query.Page, "pageSize": &query.PageSize} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid "+name)
			return query, false
		}
		*dst = v
	}

	if raw := c.Query("drug"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != int(model.DrugCategoryMedicine) && v != int(model.DrugCategoryCosmetics)) {
			badRequest(c, "invalid drug")
			return query, false
		}
		drug := model.DrugCategory(v)
		query.Drug = &drug
	}
	return query, true
}

func toMedicineResponse(m model.Medicine) dto.MedicineResponse {
	return dto.MedicineResponse{
		ID:          m.ID,
		EnglishName: m.EnglishName,
		ArabicName:  m.ArabicName,
		Drug:        int(m.Drug),
		DrugLabel:   m.Drug.Label(),
		Price:       m.Price,
		FinalPrice:  m.FinalPrice,
		Quantity:    m.Quantity,
		Discount:    m.Discount,
		ImageURL:    m.ImageURL,
	}
}
