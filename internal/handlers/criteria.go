package handlers

import "rentdir/internal/models"

// CriteriaRequest is the filter part of saved search and alert bodies.
type CriteriaRequest struct {
	Location *string         `json:"location" validate:"omitempty,max=200"`
	MinPrice *int            `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *int            `json:"maxPrice" validate:"omitempty,gte=0"`
	Beds     *int            `json:"beds" validate:"omitempty,gte=0"`
	Baths    *float64        `json:"baths" validate:"omitempty,gte=0"`
	Filters  map[string]bool `json:"filters"`
}

func (r CriteriaRequest) criteria() models.SearchCriteria {
	return models.SearchCriteria{
		Location: r.Location,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		Beds:     r.Beds,
		Baths:    r.Baths,
		Filters:  r.Filters,
	}
}
