package models

import "time"

// Alert is a saved-search-shaped filter that can be switched on and off.
type Alert struct {
	ID             int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int64  `json:"userId" gorm:"index"`
	Name           string `json:"name"`
	SearchCriteria `gorm:"embedded"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (a *Alert) Key() int64 { return a.ID }

func (a *Alert) Assign(id int64, at time.Time) {
	a.ID = id
	a.CreatedAt = at
}

// OwnerID returns the owning user.
func (a *Alert) OwnerID() int64 { return a.UserID }

// AlertPatch is a shallow partial update of an Alert. A supplied Filters map
// replaces the stored map wholesale: to change one flag, resend the whole map.
type AlertPatch struct {
	Name     *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Location *string         `json:"location,omitempty"`
	MinPrice *int            `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *int            `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	Beds     *int            `json:"beds,omitempty" validate:"omitempty,gte=0"`
	Baths    *float64        `json:"baths,omitempty" validate:"omitempty,gte=0"`
	Filters  map[string]bool `json:"filters,omitempty"`
	Enabled  *bool           `json:"enabled,omitempty"`
}

// Apply merges the patch into a.
func (ap AlertPatch) Apply(a *Alert) {
	if ap.Name != nil {
		a.Name = *ap.Name
	}
	if ap.Location != nil {
		a.Location = ap.Location
	}
	if ap.MinPrice != nil {
		a.MinPrice = ap.MinPrice
	}
	if ap.MaxPrice != nil {
		a.MaxPrice = ap.MaxPrice
	}
	if ap.Beds != nil {
		a.Beds = ap.Beds
	}
	if ap.Baths != nil {
		a.Baths = ap.Baths
	}
	if ap.Filters != nil {
		a.Filters = ap.Filters
	}
	if ap.Enabled != nil {
		a.Enabled = *ap.Enabled
	}
}
