package pharmacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// ErrUnexpectedPayload indicates the pharmacy API answered with an unknown body shape.
var ErrUnexpectedPayload = errors.New("unexpected pharmacy api payload")

// StatusError represents a non-success answer from the pharmacy API.
type StatusError struct {
	Code   int
	Status string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("pharmacy api error: %s", e.Status)
}

// Client exposes operations of the external pharmacy API.
type Client interface {
	ListOrders(ctx context.Context, token string, warehouseID int64) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int64, status model.OrderStatus) error
	GetWarehouse(ctx context.Context, token string, warehouseID int64) (*model.Warehouse, error)
	ListMedicines(ctx context.Context, token string, warehouseID int64, page, pageSize int) (*model.MedicinePage, error)
	GetMedicine(ctx context.Context, token string, warehouseID, medicineID int64) (*model.Medicine, error)
	UpdateMedicine(ctx context.Context, token string, warehouseID, medicineID int64, update model.MedicineUpdate) error
	DeleteMedicine(ctx context.Context, token string, warehouseID, medicineID int64) error
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates pharmacy API client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pharmacy api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("pharmacy api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// ListOrders returns every order of the warehouse.
func (c *HTTPClient) ListOrders(ctx context.Context, token string, warehouseID int64) ([]model.Order, error) {
	body, err := c.do(ctx, http.MethodGet, token, c.endpoint(nil, "/api/Order/warehouse", id(warehouseID)), nil)
	if err != nil {
		return nil, err
	}

	raw, err := decodeOrderList(body)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(raw))
	for _, o := range raw {
		orders = append(orders, o.toModel(warehouseID))
	}
	return orders, nil
}

// UpdateOrderStatus asks the pharmacy API to move the order to status.
func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status model.OrderStatus) error {
	query := url.Values{"newStatus": []string{strconv.Itoa(status.WireValue())}}
	_, err := c.do(ctx, http.MethodPut, token, c.endpoint(query, "/api/Order/update-status", id(orderID)), nil)
	return err
}

// GetWarehouse returns warehouse details including the trust flag.
func (c *HTTPClient) GetWarehouse(ctx context.Context, token string, warehouseID int64) (*model.Warehouse, error) {
	body, err := c.do(ctx, http.MethodGet, token, c.endpoint(nil, "/api/Warehouse/Getbyid", id(warehouseID)), nil)
	if err != nil {
		return nil, err
	}

	var data warehousePayload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode warehouse: %w", err)
	}
	w := model.Warehouse{ID: data.ID, Name: data.Name, Trusted: data.IsTrusted}
	if w.ID == 0 {
		w.ID = warehouseID
	}
	return &w, nil
}

// ListMedicines returns one page of the warehouse medicines.
func (c *HTTPClient) ListMedicines(ctx context.Context, token string, warehouseID int64, page, pageSize int) (*model.MedicinePage, error) {
	query := url.Values{
		"page":     []string{strconv.Itoa(page)},
		"pageSize": []string{strconv.Itoa(pageSize)},
	}
	endpoint := c.endpoint(query, "/api/Warehouse/GetWarehousMedicines", id(warehouseID), "medicines")
	body, err := c.do(ctx, http.MethodGet, token, endpoint, nil)
	if err != nil {
		return nil, err
	}

	result, err := decodeMedicinePage(body)
	if err != nil {
		return nil, err
	}
	result.Page = page
	result.PageSize = pageSize
	return result, nil
}

// GetMedicine returns a single warehouse medicine.
func (c *HTTPClient) GetMedicine(ctx context.Context, token string, warehouseID, medicineID int64) (*model.Medicine, error) {
	query := url.Values{
		"medicineId":  []string{id(medicineID)},
		"warehouseId": []string{id(warehouseID)},
	}
	body, err := c.do(ctx, http.MethodGet, token, c.endpoint(query, "/api/WarehouseMedicine/GetMedicineById"), nil)
	if err != nil {
		return nil, err
	}

	var data medicinePayload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode medicine: %w", err)
	}
	m := data.toModel()
	if m.ID == 0 {
		m.ID = medicineID
	}
	return &m, nil
}

// UpdateMedicine changes quantity and discount of a warehouse medicine.
func (c *HTTPClient) UpdateMedicine(ctx context.Context, token string, warehouseID, medicineID int64, update model.MedicineUpdate) error {
	payload, err := json.Marshal(medicineUpdatePayload{Quantity: update.Quantity, Discount: update.Discount})
	if err != nil {
		return err
	}
	query := url.Values{"warehouseId": []string{id(warehouseID)}}
	_, err = c.do(ctx, http.MethodPut, token, c.endpoint(query, "/api/WarehouseMedicine/UpdateMedicine", id(medicineID)), payload)
	return err
}

// DeleteMedicine removes a medicine from the warehouse stock.
func (c *HTTPClient) DeleteMedicine(ctx context.Context, token string, warehouseID, medicineID int64) error {
	query := url.Values{"warehouseId": []string{id(warehouseID)}}
	_, err := c.do(ctx, http.MethodDelete, token, c.endpoint(query, "/api/WarehouseMedicine/DeleteMedicine", id(medicineID)), nil)
	return err
}

func (c *HTTPClient) endpoint(query url.Values, segments ...string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, segments...)...)
	endpoint.RawQuery = query.Encode()
	return endpoint.String()
}

func (c *HTTPClient) do(ctx context.Context, method, token, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, domainErrors.ErrUpstreamUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	default:
		c.logger.Error("pharmacy api request failed",
			slog.String("method", method),
			slog.String("url", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
