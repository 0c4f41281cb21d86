package users

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:50;not null" json:"username"`
	Email        string `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Birthday     string `json:"birthday"`
	PhoneNumber  string `json:"phoneNumber"`
	Description  string `json:"description"`

	Admin      bool `gorm:"default:false" json:"admin"`
	CrewLeader bool `gorm:"default:false" json:"crewLeader"`

	Points             int `gorm:"default:0" json:"points"`
	Animals            int `gorm:"default:0" json:"animals"`
	EventsCreated      int `gorm:"default:0" json:"eventsCreated"`
	EventsParticipated int `gorm:"default:0" json:"eventsParticipated"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
