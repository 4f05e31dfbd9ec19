package models

import "time"

// Base contains common columns for all tables. IDs are integer and
// store-assigned at creation; deletes are hard deletes.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
