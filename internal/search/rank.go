package search

import (
	"cmp"
	"slices"

	"rentdir/internal/models"
)

// RecommendedScore is a 0-3 heuristic: one point each for allowing pets,
// listing more than three amenities and exceeding 900 sqft.
func RecommendedScore(p models.Property) int {
	score := 0
	if p.PetFriendly {
		score++
	}
	if len(p.Amenities) > 3 {
		score++
	}
	if p.Sqft > 900 {
		score++
	}
	return score
}

// Sort returns a copy of props ordered by opt. The sort is stable: equal keys
// keep their input order. Unknown options sort as SortRecommended.
func Sort(props []models.Property, opt models.SortOption) []models.Property {
	out := slices.Clone(props)

	var less func(a, b models.Property) int
	switch opt {
	case models.SortPriceAsc:
		less = func(a, b models.Property) int { return cmp.Compare(a.Price, b.Price) }
	case models.SortPriceDesc:
		less = func(a, b models.Property) int { return cmp.Compare(b.Price, a.Price) }
	case models.SortNewest:
		less = func(a, b models.Property) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		less = func(a, b models.Property) int { return cmp.Compare(RecommendedScore(b), RecommendedScore(a)) }
	}
	slices.SortStableFunc(out, less)
	return out
}

// Query filters then sorts.
func Query(props []models.Property, f models.PropertyFilter, opt models.SortOption) []models.Property {
	return Sort(Filter(props, f), opt)
}
