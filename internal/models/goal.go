package models

import "time"

// Goal represents a savings goal. CurrentAmount grows through "add money"
// operations; a goal is completed once CurrentAmount reaches TargetAmount.
// The data layer tolerates overshooting the target.
type Goal struct {
	Base
	Name          string    `gorm:"not null" json:"name"`
	TargetAmount  float64   `gorm:"not null" json:"target_amount"`
	CurrentAmount float64   `gorm:"not null;default:0" json:"current_amount"`
	Deadline      time.Time `gorm:"not null" json:"deadline"`
}
