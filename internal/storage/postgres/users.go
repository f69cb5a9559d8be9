package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
)

const uniqueViolation = "23505"

type userRepository struct {
	storage *Storage
}

const userColumns = `id, login, email, password_hash, warehouse_id, api_token, created_at`

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (login, email, password_hash, warehouse_id, api_token)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := user
	err := r.storage.pool.QueryRow(ctx, query, user.Login, user.Email, user.PasswordHash, user.WarehouseID, user.APIToken).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.WarehouseID, &u.APIToken, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetWarehouse(ctx context.Context, id, warehouseID int64) error {
	const query = `UPDATE users SET warehouse_id=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, warehouseID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SessionsForSync(ctx context.Context, limit int) ([]model.Session, error) {
	const query = `SELECT DISTINCT ON (warehouse_id) id, warehouse_id, api_token
                   FROM users WHERE api_token <> ''
                   ORDER BY warehouse_id, id
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.UserID, &s.WarehouseID, &s.APIToken); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
