package events

import "time"

type Event struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	EventCreator     string  `gorm:"not null" json:"eventCreator"`
	Slug             string  `gorm:"index" json:"slug"`
	Date             string  `json:"date"`
	Description      string  `json:"description"`
	Address          string  `json:"address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	IsPublic         bool    `json:"isPublic"`
	GarbageCollected int     `gorm:"default:0" json:"garbageCollected"`

	Volunteers []Volunteer `gorm:"constraint:OnDelete:CASCADE" json:"volunteers"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Volunteer rows are append-only; the serial key preserves join order.
type Volunteer struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	EventID  uint   `gorm:"index;not null" json:"-"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
}
