package models

// PropertyFilter is a composite property predicate. Zero-valued fields impose
// no constraint; active constraints are ANDed.
type PropertyFilter struct {
	Location       string   `json:"location,omitempty" query:"location"`
	MinBeds        *int     `json:"minBeds,omitempty" query:"minBeds" validate:"omitempty,gte=0"`
	MinBaths       *float64 `json:"minBaths,omitempty" query:"minBaths" validate:"omitempty,gte=0"`
	MinPrice       *int     `json:"minPrice,omitempty" query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice       *int     `json:"maxPrice,omitempty" query:"maxPrice" validate:"omitempty,gte=0"`
	PetFriendly    bool     `json:"petFriendly,omitempty" query:"petFriendly"`
	RequireLaundry bool     `json:"inUnitLaundry,omitempty" query:"inUnitLaundry"`
}

// SortOption names a ranking strategy.
type SortOption string

const (
	SortRecommended SortOption = "recommended"
	SortPriceAsc    SortOption = "price-asc"
	SortPriceDesc   SortOption = "price-desc"
	SortNewest      SortOption = "newest"
)

// ParseSortOption resolves a sort name, accepting the legacy UI aliases.
// An empty name selects SortRecommended.
func ParseSortOption(name string) (SortOption, bool) {
	switch name {
	case "", string(SortRecommended):
		return SortRecommended, true
	case string(SortPriceAsc), "price-low-high":
		return SortPriceAsc, true
	case string(SortPriceDesc), "price-high-low":
		return SortPriceDesc, true
	case string(SortNewest):
		return SortNewest, true
	}
	return "", false
}
