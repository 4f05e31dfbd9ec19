package models

// Budget represents a monthly spending limit for a category.
//
// Spent is derived: it is recomputed from expense transactions in the
// budget's category and month, never user-entered after creation. At most
// one budget exists per (category, month) pair; the pair is backed by a
// unique index.
type Budget struct {
	Base
	Category     string  `gorm:"not null;uniqueIndex:idx_budgets_category_month" json:"category"`
	MonthlyLimit float64 `gorm:"not null" json:"monthly_limit"`
	Month        string  `gorm:"not null;uniqueIndex:idx_budgets_category_month" json:"month"`
	Spent        float64 `gorm:"not null;default:0" json:"spent"`
}
