package postgres

import (
	"context"

	"github.com/polkiloo/pharmadash/internal/domain/model"
)

type statusChangeRepository struct {
	storage *Storage
}

func (r *statusChangeRepository) Record(ctx context.Context, change model.StatusChange) (*model.StatusChange, error) {
	const query = `INSERT INTO status_changes (order_id, warehouse_id, from_status, to_status, changed_by)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, changed_at`
	recorded := change
	err := r.storage.pool.QueryRow(ctx, query, change.OrderID, change.WarehouseID, string(change.From), string(change.To), change.ChangedBy).
		Scan(&recorded.ID, &recorded.ChangedAt)
	if err != nil {
		return nil, err
	}
	return &recorded, nil
}

func (r *statusChangeRepository) ListByOrder(ctx context.Context, warehouseID, orderID int64) ([]model.StatusChange, error) {
	const query = `SELECT id, order_id, warehouse_id, from_status, to_status, changed_by, changed_at
                   FROM status_changes WHERE warehouse_id=$1 AND order_id=$2
                   ORDER BY changed_at, id`
	rows, err := r.storage.pool.Query(ctx, query, warehouseID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.WarehouseID, &c.From, &c.To, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
