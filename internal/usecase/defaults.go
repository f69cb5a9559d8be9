package usecase

import "github.com/polkiloo/pharmadash/internal/config"

// Defaults carries configuration shared by the use cases.
type Defaults struct {
	WarehouseID int64
	PageSize    int
}

func newDefaults(cfg *config.Config) Defaults {
	return Defaults{WarehouseID: cfg.DefaultWarehouseID, PageSize: cfg.MedicinePageSize}
}
