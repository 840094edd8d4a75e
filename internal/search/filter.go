// Package search evaluates property filters and orders result sets.
package search

import (
	"strings"

	"rentdir/internal/models"
)

// Matches reports whether p satisfies every active constraint of f.
func Matches(p models.Property, f models.PropertyFilter) bool {
	if f.Location != "" && !matchesLocation(p, f.Location) {
		return false
	}
	if f.MinBeds != nil && p.Beds < *f.MinBeds {
		return false
	}
	if f.MinBaths != nil && p.Baths < *f.MinBaths {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.PetFriendly && !p.PetFriendly {
		return false
	}
	if f.RequireLaundry && !HasLaundry(p) {
		return false
	}
	return true
}

// Filter returns the properties matching f, in input order.
func Filter(props []models.Property, f models.PropertyFilter) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesLocation(p models.Property, text string) bool {
	needle := strings.ToLower(text)
	for _, field := range []string{p.Address, p.City, p.State, p.ZipCode} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// HasLaundry reports whether any amenity mentions laundry or a washer.
func HasLaundry(p models.Property) bool {
	for _, a := range p.Amenities {
		lower := strings.ToLower(a)
		if strings.Contains(lower, "laundry") || strings.Contains(lower, "washer") {
			return true
		}
	}
	return false
}
