package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

type snapshotRepository struct {
	storage *Storage
}

type itemRecord struct {
	MedicineID   int64   `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Discount     float64 `json:"discount,omitempty"`
}

const upsertSnapshot = `INSERT INTO order_snapshots
        (warehouse_id, order_id, status, total_price, quantity, pharmacy_id, pharmacy_name, order_date, items, synced_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        ON CONFLICT (warehouse_id, order_id) DO UPDATE SET
            status = EXCLUDED.status,
            total_price = EXCLUDED.total_price,
            quantity = EXCLUDED.quantity,
            pharmacy_id = EXCLUDED.pharmacy_id,
            pharmacy_name = EXCLUDED.pharmacy_name,
            order_date = EXCLUDED.order_date,
            items = EXCLUDED.items,
            synced_at = NOW()
        RETURNING (xmax <> 0)`

func (r *snapshotRepository) ListByWarehouse(ctx context.Context, warehouseID int64) ([]model.Order, error) {
	const query = `SELECT order_id, warehouse_id, status, total_price, quantity, pharmacy_id, pharmacy_name, order_date, items
                   FROM order_snapshots WHERE warehouse_id=$1 ORDER BY order_date DESC, order_id DESC`
	rows, err := r.storage.pool.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var (
			o     model.Order
			items []byte
		)
		if err := rows.Scan(&o.ID, &o.WarehouseID, &o.Status, &o.TotalPrice, &o.Quantity, &o.PharmacyID, &o.PharmacyName, &o.OrderDate, &items); err != nil {
			return nil, err
		}
		if o.Items, err = decodeItems(items); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *snapshotRepository) ReplaceWarehouse(ctx context.Context, warehouseID int64, orders []model.Order) error {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_snapshots WHERE warehouse_id=$1`, warehouseID); err != nil {
			return err
		}
		for _, o := range orders {
			o.WarehouseID = warehouseID
			args, err := snapshotArgs(o)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, upsertSnapshot, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace snapshot of warehouse %d: %w", warehouseID, err)
	}

	r.storage.logger.Debug("order snapshot replaced",
		slog.Int64("warehouse_id", warehouseID),
		slog.Int("orders", len(orders)),
	)
	return nil
}

func (r *snapshotRepository) Upsert(ctx context.Context, order model.Order) (bool, error) {
	args, err := snapshotArgs(order)
	if err != nil {
		return false, err
	}
	var existed bool
	if err := r.storage.pool.QueryRow(ctx, upsertSnapshot, args...).Scan(&existed); err != nil {
		return false, err
	}
	return existed, nil
}

func snapshotArgs(o model.Order) ([]any, error) {
	items, err := encodeItems(o.Items)
	if err != nil {
		return nil, err
	}
	return []any{o.WarehouseID, o.ID, string(o.Status), o.TotalPrice, o.Quantity, o.PharmacyID, o.PharmacyName, o.OrderDate, items}, nil
}

func encodeItems(items []model.OrderItem) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, itemRecord(it))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return data, nil
}

func decodeItems(data []byte) ([]model.OrderItem, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	items := make([]model.OrderItem, 0, len(records))
	for _, rec := range records {
		items = append(items, model.OrderItem(rec))
	}
	return items, nil
}
