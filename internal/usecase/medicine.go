package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/pharmadash/internal/adapter/pharmacy"
	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
)

// MedicineUseCase lists and edits warehouse medicines.
type MedicineUseCase struct {
	client   pharmacy.Client
	defaults Defaults
	logger   *slog.Logger
}

// NewMedicineUseCase constructs MedicineUseCase.
func NewMedicineUseCase(client pharmacy.Client, defaults Defaults, logger *slog.Logger) *MedicineUseCase {
	return &MedicineUseCase{client: client, defaults: defaults, logger: logger}
}

// List fetches one page and filters it by name and drug category.
// A failed trust lookup marks the warehouse untrusted without failing the listing.
func (u *MedicineUseCase) List(ctx context.Context, session model.Session, query model.MedicineQuery) (*model.MedicineListing, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = u.defaults.PageSize
	}

	trusted := false
	if w, err := u.client.GetWarehouse(ctx, session.APIToken, session.WarehouseID); err != nil {
		u.logger.Warn("warehouse trust check failed",
			slog.Int64("warehouse_id", session.WarehouseID),
			slog.Any("error", err),
		)
	} else {
		trusted = w.Trusted
	}

	page, err := u.client.ListMedicines(ctx, session.APIToken, session.WarehouseID, query.Page, query.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list medicines of warehouse %d: %w", session.WarehouseID, err)
	}

	items := make([]model.Medicine, 0, len(page.Items))
	for _, m := range page.Items {
		if !m.Matches(query.Search) {
			continue
		}
		if query.Drug != nil && m.Drug != *query.Drug {
			continue
		}
		items = append(items, m)
	}

	return &model.MedicineListing{
		Items:      items,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
		Trusted:    trusted,
		HasPrev:    query.Page > 1,
		HasNext:    query.Page < page.TotalPages,
	}, nil
}

// Get returns a medicine for editing.
func (u *MedicineUseCase) Get(ctx context.Context, session model.Session, medicineID int64) (*model.Medicine, error) {
	if err := u.requireTrusted(ctx, session); err != nil {
		return nil, err
	}
	return u.client.GetMedicine(ctx, session.APIToken, session.WarehouseID, medicineID)
}

// Update changes stock quantity and discount percent.
func (u *MedicineUseCase) Update(ctx context.Context, session model.Session, medicineID int64, update model.MedicineUpdate) error {
	if err := u.requireTrusted(ctx, session); err != nil {
		return err
	}
	if update.Quantity < 0 || update.Quantity > model.MaxMedicineQuantity {
		return fmt.Errorf("%w: must be between 0 and %d", domainErrors.ErrInvalidQuantity, model.MaxMedicineQuantity)
	}
	if update.Discount < 0 || update.Discount > model.MaxMedicineDiscount {
		return fmt.Errorf("%w: must be between 0 and %d", domainErrors.ErrInvalidDiscount, model.MaxMedicineDiscount)
	}
	return u.client.UpdateMedicine(ctx, session.APIToken, session.WarehouseID, medicineID, update)
}

// Delete removes the medicine from the warehouse stock.
func (u *MedicineUseCase) Delete(ctx context.Context, session model.Session, medicineID int64) error {
	if err := u.requireTrusted(ctx, session); err != nil {
		return err
	}
	return u.client.DeleteMedicine(ctx, session.APIToken, session.WarehouseID, medicineID)
}

// Warehouse returns the session warehouse with its trust flag.
func (u *MedicineUseCase) Warehouse(ctx context.Context, session model.Session) (*model.Warehouse, error) {
	return u.client.GetWarehouse(ctx, session.APIToken, session.WarehouseID)
}

func (u *MedicineUseCase) requireTrusted(ctx context.Context, session model.Session) error {
	w, err := u.client.GetWarehouse(ctx, session.APIToken, session.WarehouseID)
	if err != nil {
		return err
	}
	if !w.Trusted {
		return domainErrors.ErrWarehouseNotTrusted
	}
	return nil
}
