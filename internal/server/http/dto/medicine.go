package dto

// MedicineResponse describes a warehouse stock entry.
type MedicineResponse struct {
	ID          int64   `json:"id"`
	EnglishName string  `json:"englishName"`
	ArabicName  string  `json:"arabicName"`
	Drug        int     `json:"drug"`
	DrugLabel   string  `json:"drugLabel"`
	Price       float64 `json:"price"`
	FinalPrice  float64 `json:"finalPrice"`
	Quantity    int     `json:"quantity"`
	Discount    float64 `json:"discount"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// MedicineListResponse is one filtered page of medicines.
type MedicineListResponse struct {
	Items      []MedicineResponse `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	TotalCount int                `json:"totalCount"`
	Trusted    bool               `json:"trusted"`
	HasPrev    bool               `json:"hasPrev"`
	HasNext    bool               `json:"hasNext"`
}

// MedicineUpdateRequest carries editable medicine fields.
type MedicineUpdateRequest struct {
	Quantity *int     `json:"quantity" binding:"required"`
	Discount *float64 `json:"discount" binding:"required"`
}
