package models

import "time"

// Favorite bookmarks a property for a user. At most one exists per (UserID, PropertyID).
type Favorite struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"userId" gorm:"index"`
	PropertyID int64     `json:"propertyId" gorm:"index"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (f *Favorite) Key() int64 { return f.ID }

func (f *Favorite) Assign(id int64, at time.Time) {
	f.ID = id
	f.CreatedAt = at
}
