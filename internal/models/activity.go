package models

import "time"

// ActivityType classifies feed events.
type ActivityType string

const (
	ActivityFavorite ActivityType = "favorite"
	ActivitySearch   ActivityType = "search"
	ActivityView     ActivityType = "view"
	ActivityAlert    ActivityType = "alert"
)

// Activity is an append-only feed record.
type Activity struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64          `json:"userId" gorm:"index"`
	Type       ActivityType   `json:"type" gorm:"type:varchar(32)"`
	PropertyID *int64         `json:"propertyId,omitempty"`
	Details    map[string]any `json:"details,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (a *Activity) Key() int64 { return a.ID }

func (a *Activity) Assign(id int64, at time.Time) {
	a.ID = id
	a.CreatedAt = at
}
