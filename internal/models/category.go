package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category names a transaction category. Transactions reference categories
// by name; the type is used to filter selection lists in forms.
type Category struct {
	Base
	Name string       `gorm:"not null;uniqueIndex" json:"name"`
	Type CategoryType `gorm:"not null" json:"type"`
}
