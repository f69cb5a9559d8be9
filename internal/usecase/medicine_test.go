package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	"github.com/polkiloo/pharmadash/internal/domain/model"
	testhelpers "github.com/polkiloo/pharmadash/internal/test"
)

func newMedicineUseCase(client *testhelpers.PharmacyClientStub) *MedicineUseCase {
	return NewMedicineUseCase(client, Defaults{WarehouseID: 73, PageSize: 10}, newTestLogger())
}

func trustedClient(trusted bool) *testhelpers.PharmacyClientStub {
	return &testhelpers.PharmacyClientStub{
		Warehouses: map[int64]*model.Warehouse{7: {ID: 7, Trusted: trusted}},
	}
}

func TestMedicineUseCaseListFilters(t *testing.T) {
	client := trustedClient(true)
	client.Medicines = &model.MedicinePage{
		Items: []model.Medicine{
			{ID: 1, EnglishName: "Panadol Extra", Drug: model.DrugCategoryMedicine},
			{ID: 2, EnglishName: "Nivea Cream", Drug: model.DrugCategoryCosmetics},
			{ID: 3, ArabicName: "بانادول", Drug: model.DrugCategoryMedicine},
		},
		TotalPages: 3,
		TotalCount: 25,
	}
	uc := newMedicineUseCase(client)

	listing, err := uc.List(context.Background(), testSession, model.MedicineQuery{Search: "panadol"})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listing.Items) != 1 || listing.Items[0].ID != 1 {
		t.Fatalf("unexpected filtered items %+v", listing.Items)
	}
	if listing.Page != 1 || listing.PageSize != 10 {
		t.Fatalf("expected normalized paging, got page=%d size=%d", listing.Page, listing.PageSize)
	}
	if !listing.Trusted || listing.HasPrev || !listing.HasNext {
		t.Fatalf("unexpected flags %+v", listing)
	}
	if listing.TotalCount != 25 || listing.TotalPages != 3 {
		t.Fatalf("unexpected totals %+v", listing)
	}

	cosmetics := model.DrugCategoryCosmetics
	listing, err = uc.List(context.Background(), testSession, model.MedicineQuery{Page: 3, PageSize: 5, Drug: &cosmetics})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listing.Items) != 1 || listing.Items[0].ID != 2 {
		t.Fatalf("unexpected category filter result %+v", listing.Items)
	}
	if !listing.HasPrev || listing.HasNext || listing.PageSize != 5 {
		t.Fatalf("unexpected pager on last page %+v", listing)
	}

	listing, err = uc.List(context.Background(), testSession, model.MedicineQuery{Search: "بانا"})
	if err != nil || len(listing.Items) != 1 || listing.Items[0].ID != 3 {
		t.Fatalf("expected arabic match, got %+v, %v", listing, err)
	}
}

func TestMedicineUseCaseListTrustFailure(t *testing.T) {
	client := &testhelpers.PharmacyClientStub{WarehouseErr: errors.New("trust")}
	uc := newMedicineUseCase(client)

	listing, err := uc.List(context.Background(), testSession, model.MedicineQuery{})
	if err != nil {
		t.Fatalf("trust failure must not fail listing: %v", err)
	}
	if listing.Trusted {
		t.Fatalf("failed trust check must mark warehouse untrusted")
	}

	client.ListErr = errors.New("list")
	if _, err := uc.List(context.Background(), testSession, model.MedicineQuery{}); !errors.Is(err, client.ListErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestMedicineUseCaseRequiresTrust(t *testing.T) {
	uc := newMedicineUseCase(trustedClient(false))
	ctx := context.Background()

	if _, err := uc.Get(ctx, testSession, 1); !errors.Is(err, domainErrors.ErrWarehouseNotTrusted) {
		t.Fatalf("expected ErrWarehouseNotTrusted, got %v", err)
	}
	if err := uc.Update(ctx, testSession, 1, model.MedicineUpdate{Quantity: 1}); !errors.Is(err, domainErrors.ErrWarehouseNotTrusted) {
		t.Fatalf("expected ErrWarehouseNotTrusted, got %v", err)
	}
	if err := uc.Delete(ctx, testSession, 1); !errors.Is(err, domainErrors.ErrWarehouseNotTrusted) {
		t.Fatalf("expected ErrWarehouseNotTrusted, got %v", err)
	}

	failing := &testhelpers.PharmacyClientStub{WarehouseErr: domainErrors.ErrUpstreamUnauthorized}
	uc = newMedicineUseCase(failing)
	if err := uc.Delete(ctx, testSession, 1); !errors.Is(err, domainErrors.ErrUpstreamUnauthorized) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestMedicineUseCaseUpdate(t *testing.T) {
	client := trustedClient(true)
	uc := newMedicineUseCase(client)
	ctx := context.Background()

	tests := []struct {
		name   string
		update model.MedicineUpdate
		want   error
	}{
		{"negative quantity", model.MedicineUpdate{Quantity: -1}, domainErrors.ErrInvalidQuantity},
		{"huge quantity", model.MedicineUpdate{Quantity: model.MaxMedicineQuantity + 1}, domainErrors.ErrInvalidQuantity},
		{"negative discount", model.MedicineUpdate{Discount: -0.5}, domainErrors.ErrInvalidDiscount},
		{"huge discount", model.MedicineUpdate{Discount: 100.5}, domainErrors.ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := uc.Update(ctx, testSession, 4, tt.update); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(client.MedicineUpdates) != 0 {
		t.Fatalf("invalid updates must not reach upstream")
	}

	update := model.MedicineUpdate{Quantity: model.MaxMedicineQuantity, Discount: 100}
	if err := uc.Update(ctx, testSession, 4, update); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if len(client.MedicineUpdates) != 1 {
		t.Fatalf("expected upstream update")
	}
	call := client.MedicineUpdates[0]
	if call.WarehouseID != 7 || call.MedicineID != 4 || call.Update != update {
		t.Fatalf("unexpected update call %+v", call)
	}
}

func TestMedicineUseCaseGetDeleteWarehouse(t *testing.T) {
	client := trustedClient(true)
	client.Medicine = &model.Medicine{ID: 4, EnglishName: "Panadol"}
	uc := newMedicineUseCase(client)
	ctx := context.Background()

	med, err := uc.Get(ctx, testSession, 4)
	if err != nil || med.EnglishName != "Panadol" {
		t.Fatalf("unexpected get result %+v, %v", med, err)
	}

	if err := uc.Delete(ctx, testSession, 4); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if len(client.Deleted) != 1 || client.Deleted[0] != 4 {
		t.Fatalf("unexpected deletions %+v", client.Deleted)
	}

	w, err := uc.Warehouse(ctx, testSession)
	if err != nil || !w.Trusted || w.ID != 7 {
		t.Fatalf("unexpected warehouse %+v, %v", w, err)
	}
}
