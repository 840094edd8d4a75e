package models

import "time"

// Filter flag keys understood by the property filter. The stored map is open:
// any other key is persisted but ignored when the search is re-applied.
const (
	FlagPetFriendly   = "petFriendly"
	FlagInUnitLaundry = "inUnitLaundry"
)

// SearchCriteria is the filter shape shared by saved searches and alerts.
type SearchCriteria struct {
	Location *string         `json:"location,omitempty"`
	MinPrice *int            `json:"minPrice,omitempty"`
	MaxPrice *int            `json:"maxPrice,omitempty"`
	Beds     *int            `json:"beds,omitempty"`
	Baths    *float64        `json:"baths,omitempty"`
	Filters  map[string]bool `json:"filters,omitempty" gorm:"serializer:json"`
}

// Filter converts the criteria into a property filter.
func (c SearchCriteria) Filter() PropertyFilter {
	f := PropertyFilter{
		MinBeds:        c.Beds,
		MinBaths:       c.Baths,
		MinPrice:       c.MinPrice,
		MaxPrice:       c.MaxPrice,
		PetFriendly:    c.Filters[FlagPetFriendly],
		RequireLaundry: c.Filters[FlagInUnitLaundry],
	}
	if c.Location != nil {
		f.Location = *c.Location
	}
	return f
}

// SavedSearch is a named, reusable filter set owned by a user.
type SavedSearch struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int64  `json:"userId" gorm:"index"`
	Name           string `json:"name"`
	SearchCriteria `gorm:"embedded"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (s *SavedSearch) Key() int64 { return s.ID }

func (s *SavedSearch) Assign(id int64, at time.Time) {
	s.ID = id
	s.CreatedAt = at
}

// OwnerID returns the owning user.
func (s *SavedSearch) OwnerID() int64 { return s.UserID }
