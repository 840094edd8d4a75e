package models

import "time"

// PropertyStatus is the listing state of a property.
type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertyRented   PropertyStatus = "rented"
)

// Property represents a rental listing.
type Property struct {
	ID            int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string         `json:"title"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	ZipCode       string         `json:"zipCode"`
	Price         int            `json:"price"` // whole currency units per month
	Beds          int            `json:"beds"`
	Baths         float64        `json:"baths"`
	Sqft          int            `json:"sqft"`
	Description   string         `json:"description"`
	Images        []string       `json:"images" gorm:"serializer:json"`
	Amenities     []string       `json:"amenities" gorm:"serializer:json"`
	PetFriendly   bool           `json:"petFriendly"`
	AvailableFrom *time.Time     `json:"availableFrom,omitempty"`
	LeaseLength   *int           `json:"leaseLength,omitempty"` // months
	Status        PropertyStatus `json:"status" gorm:"type:varchar(20)"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (p *Property) Key() int64 { return p.ID }

func (p *Property) Assign(id int64, at time.Time) {
	p.ID = id
	p.CreatedAt = at
}

// PropertyPatch is a shallow partial update of a Property. A nil field is left
// unchanged; a supplied slice replaces the stored slice as a whole.
type PropertyPatch struct {
	Title         *string         `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Address       *string         `json:"address,omitempty"`
	City          *string         `json:"city,omitempty"`
	State         *string         `json:"state,omitempty"`
	ZipCode       *string         `json:"zipCode,omitempty"`
	Price         *int            `json:"price,omitempty" validate:"omitempty,gte=0"`
	Beds          *int            `json:"beds,omitempty" validate:"omitempty,gte=0"`
	Baths         *float64        `json:"baths,omitempty" validate:"omitempty,gte=0"`
	Sqft          *int            `json:"sqft,omitempty" validate:"omitempty,gte=0"`
	Description   *string         `json:"description,omitempty"`
	Images        []string        `json:"images,omitempty"`
	Amenities     []string        `json:"amenities,omitempty"`
	PetFriendly   *bool           `json:"petFriendly,omitempty"`
	AvailableFrom *time.Time      `json:"availableFrom,omitempty"`
	LeaseLength   *int            `json:"leaseLength,omitempty" validate:"omitempty,gte=0"`
	Status        *PropertyStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive rented"`
}

// Apply merges the patch into p.
func (pp PropertyPatch) Apply(p *Property) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Address != nil {
		p.Address = *pp.Address
	}
	if pp.City != nil {
		p.City = *pp.City
	}
	if pp.State != nil {
		p.State = *pp.State
	}
	if pp.ZipCode != nil {
		p.ZipCode = *pp.ZipCode
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Beds != nil {
		p.Beds = *pp.Beds
	}
	if pp.Baths != nil {
		p.Baths = *pp.Baths
	}
	if pp.Sqft != nil {
		p.Sqft = *pp.Sqft
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Images != nil {
		p.Images = pp.Images
	}
	if pp.Amenities != nil {
		p.Amenities = pp.Amenities
	}
	if pp.PetFriendly != nil {
		p.PetFriendly = *pp.PetFriendly
	}
	if pp.AvailableFrom != nil {
		p.AvailableFrom = pp.AvailableFrom
	}
	if pp.LeaseLength != nil {
		p.LeaseLength = pp.LeaseLength
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
}
