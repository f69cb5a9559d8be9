package pharmacy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

type orderPayload struct {
	OrderID      int64              `json:"orderId"`
	TotalPrice   float64            `json:"totalPrice"`
	Quantity     int                `json:"quantity"`
	Status       json.RawMessage    `json:"status"`
	PharmacyID   int64              `json:"pharmacyId"`
	PharmacyName string             `json:"pharmacyName"`
	OrderDate    *string            `json:"orderDate"`
	Medicines    []orderItemPayload `json:"medicines"`
}

type orderItemPayload struct {
	MedicineID   int64   `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount"`
}

type orderEnvelope struct {
	Result []orderPayload `json:"result"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// now is replaced in tests.
var now = time.Now

func decodeOrderList(body []byte) ([]orderPayload, error) {
	var list []orderPayload
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Result == nil {
		return nil, fmt.Errorf("decode orders: %w", ErrUnexpectedPayload)
	}
	return envelope.Result, nil
}

func (p orderPayload) toModel(warehouseID int64) model.Order {
	order := model.Order{
		ID:           p.OrderID,
		WarehouseID:  warehouseID,
		TotalPrice:   p.TotalPrice,
		Quantity:     p.Quantity,
		Status:       decodeStatus(p.Status),
		PharmacyID:   p.PharmacyID,
		PharmacyName: p.PharmacyName,
		OrderDate:    parseOrderDate(p.OrderDate),
		Items:        make([]model.OrderItem, 0, len(p.Medicines)),
	}
	for _, m := range p.Medicines {
		order.Items = append(order.Items, model.OrderItem{
			MedicineID:   m.MedicineID,
			MedicineName: m.MedicineName,
			Quantity:     m.Quantity,
			Price:        m.Price,
			Discount:     m.Discount,
		})
	}
	return order
}

// decodeStatus accepts both the status name and its numeric enum value.
func decodeStatus(raw json.RawMessage) model.OrderStatus {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if n, err := strconv.Atoi(name); err == nil {
			return statusFromWire(n)
		}
		return model.OrderStatus(name)
	}

	var wire int
	if err := json.Unmarshal(raw, &wire); err == nil {
		return statusFromWire(wire)
	}
	return ""
}

func statusFromWire(wire int) model.OrderStatus {
	for _, s := range model.AllOrderStatuses {
		if s.WireValue() == wire {
			return s
		}
	}
	return model.OrderStatus(strconv.Itoa(wire))
}

func parseOrderDate(value *string) time.Time {
	if value == nil || *value == "" {
		return now().UTC()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			return t
		}
	}
	return now().UTC()
}

type warehousePayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsTrusted bool   `json:"isTrusted"`
}

type medicinePayload struct {
	MedicineID          int64    `json:"medicineId"`
	ID                  int64    `json:"id"`
	EnglishMedicineName string   `json:"englishMedicineName"`
	ArabicMedicineName  string   `json:"arabicMedicineName"`
	Drug                int      `json:"drug"`
	Price               float64  `json:"price"`
	FinalPrice          float64  `json:"finalprice"`
	FinalPriceAlt       float64  `json:"finalPrice"`
	Quantity            int      `json:"quantity"`
	MedicineURL         string   `json:"medicineUrl"`
	Discount            *float64 `json:"discount"`
	DiscountPercentage  *float64 `json:"discountPercentage"`
	DiscountPercent     *float64 `json:"discountPercent"`
	DiscountValue       *float64 `json:"discountValue"`
}

func (p medicinePayload) toModel() model.Medicine {
	m := model.Medicine{
		ID:          p.MedicineID,
		EnglishName: p.EnglishMedicineName,
		ArabicName:  p.ArabicMedicineName,
		Drug:        model.DrugCategory(p.Drug),
		Price:       p.Price,
		FinalPrice:  p.FinalPrice,
		Quantity:    p.Quantity,
		Discount:    p.discountPercent(),
		ImageURL:    p.MedicineURL,
	}
	if m.ID == 0 {
		m.ID = p.ID
	}
	if m.FinalPrice == 0 {
		m.FinalPrice = p.FinalPriceAlt
	}
	return m
}

// discountPercent picks the first discount field present and converts
// fractional values to percent.
func (p medicinePayload) discountPercent() float64 {
	var value float64
	if p.Discount != nil {
		value = *p.Discount
	} else {
		for _, candidate := range []*float64{p.DiscountPercentage, p.DiscountPercent, p.DiscountValue} {
			if candidate != nil && *candidate != 0 {
				value = *candidate
				break
			}
		}
	}
	if value <= 1 {
		value *= 100
	}
	return value
}

type medicinePagePayload struct {
	Items      []medicinePayload `json:"items"`
	Data       []medicinePayload `json:"data"`
	TotalPages int               `json:"totalPages"`
	TotalCount int               `json:"totalCount"`
}

func decodeMedicinePage(body []byte) (*model.MedicinePage, error) {
	var items []medicinePayload
	var payload medicinePagePayload

	if err := json.Unmarshal(body, &items); err != nil {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("decode medicines: %w", ErrUnexpectedPayload)
		}
		items = payload.Items
		if items == nil {
			items = payload.Data
		}
	}

	page := &model.MedicinePage{
		Items:      make([]model.Medicine, 0, len(items)),
		TotalPages: payload.TotalPages,
		TotalCount: payload.TotalCount,
	}
	for _, item := range items {
		page.Items = append(page.Items, item.toModel())
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(page.Items)
	}
	return page, nil
}

type medicineUpdatePayload struct {
	Quantity int     `json:"quantity"`
	Discount float64 `json:"discount"`
}
