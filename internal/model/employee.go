package model

import "time"

type Employee struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Name        string    `gorm:"size:128" json:"name"`
	Email       string    `gorm:"size:254;uniqueIndex" json:"email"`
	Mobile      string    `gorm:"size:20;uniqueIndex" json:"mobile"`
	Designation string    `gorm:"size:64" json:"designation"`
	Gender      string    `gorm:"size:16" json:"gender"`
	Course      string    `gorm:"size:64" json:"course"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
