package model

import "strings"

// DrugCategory distinguishes medicines from cosmetics.
type DrugCategory int

const (
	DrugCategoryMedicine  DrugCategory = 0
	DrugCategoryCosmetics DrugCategory = 1
)

// Label returns the Arabic display name of the category.
func (c DrugCategory) Label() string {
	switch c {
	case DrugCategoryMedicine:
		return "دواء"
	case DrugCategoryCosmetics:
		return "مستحضرات تجميل"
	default:
		return "غير محدد"
	}
}

const (
	MaxMedicineQuantity = 999999
	MaxMedicineDiscount = 100
)

// Medicine is a warehouse stock entry.
type Medicine struct {
	ID          int64
	EnglishName string
	ArabicName  string
	Drug        DrugCategory
	Price       float64
	FinalPrice  float64
	Quantity    int
	Discount    float64
	ImageURL    string
}

// Matches reports whether the medicine name contains term. English names are
// compared case-insensitively, Arabic names by plain substring.
func (m Medicine) Matches(term string) bool {
	if term == "" {
		return true
	}
	if m.EnglishName != "" && strings.Contains(strings.ToLower(m.EnglishName), strings.ToLower(term)) {
		return true
	}
	return m.ArabicName != "" && strings.Contains(m.ArabicName, term)
}

// MedicinePage is one page of warehouse medicines.
type MedicinePage struct {
	Items      []Medicine
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// MedicineQuery narrows a medicine listing.
type MedicineQuery struct {
	Page     int
	PageSize int
	Search   string
	Drug     *DrugCategory
}

// MedicineUpdate carries editable medicine fields.
type MedicineUpdate struct {
	Quantity int
	Discount float64
}

// MedicineListing is a filtered medicine page together with the warehouse
// trust flag and pager bounds.
type MedicineListing struct {
	Items      []Medicine
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	Trusted    bool
	HasPrev    bool
	HasNext    bool
}
