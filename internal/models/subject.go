package models

import "time"

type Subject struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
