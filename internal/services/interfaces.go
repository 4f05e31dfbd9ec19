package services

import (
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
)

// TransactionUpdate holds optional fields for a partial transaction update.
// Nil fields are left unchanged (partial-field merge semantics).
type TransactionUpdate struct {
	Type        *models.TransactionType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(txType models.TransactionType, amount float64, category, description string, date time.Time) (*models.Transaction, error)
	GetTransactions() ([]models.Transaction, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	UpdateTransaction(id uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id uint) error
}

// BudgetUpdate holds optional fields for a partial budget update.
type BudgetUpdate struct {
	Category     *string
	MonthlyLimit *float64
	Month        *string
}

// BudgetServicer defines the contract for budget-related business logic,
// including the spent-amount synchronizer.
type BudgetServicer interface {
	CreateBudget(category string, monthlyLimit float64, month string) (*models.Budget, error)
	GetBudgets(month *string) ([]models.Budget, error)
	GetBudgetByID(id uint) (*models.Budget, error)
	UpdateBudget(id uint, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(id uint) error

	// UpdateSpentAmount is a targeted partial update keyed by (category,
	// month). It returns (nil, nil) when no budget matches.
	UpdateSpentAmount(category, month string, amount float64) (*models.Budget, error)
	// SyncSpentAmounts persists a recomputed spent value for every budget in
	// the snapshot whose stored value differs. Zero matches is a no-op.
	SyncSpentAmounts(budgets []models.Budget, txs []models.Transaction) ([]models.Budget, error)
	// ResyncCategoryMonth recomputes and persists the spent amount for the
	// single budget in the given partition, if one exists.
	ResyncCategoryMonth(category, month string) error
}

// GoalUpdate holds optional fields for a partial goal update.
type GoalUpdate struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *time.Time
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(name string, targetAmount, currentAmount float64, deadline time.Time) (*models.Goal, error)
	GetGoals() ([]models.Goal, error)
	GetGoalByID(id uint) (*models.Goal, error)
	UpdateGoal(id uint, update GoalUpdate) (*models.Goal, error)
	DeleteGoal(id uint) error

	// AddMoney increments the goal's current amount. The write is a full
	// replace of the current-amount field, not an atomic increment.
	AddMoney(id uint, amount float64) (*models.Goal, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoriesByType(categoryType models.CategoryType) ([]models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	DeleteCategory(id uint) error
}

// Overview aggregates the dashboard view-model: the current month's rollup,
// the latest transactions, and budget/goal totals.
type Overview struct {
	Summary            analytics.Summary    `json:"summary"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	TotalBudget        float64              `json:"total_budget"`
	TotalBudgetSpent   float64              `json:"total_budget_spent"`
	ActiveGoals        int                  `json:"active_goals"`
	CompletedGoals     int                  `json:"completed_goals"`
	TotalTarget        float64              `json:"total_target"`
	TotalSaved         float64              `json:"total_saved"`
}

// ReportServicer derives chart and dashboard data from the raw collections.
type ReportServicer interface {
	MonthlySummary(month string) (*analytics.Summary, error)
	ExpenseBreakdown() ([]analytics.CategoryTotal, error)
	Trend() (*analytics.Trend, error)
	Overview() (*Overview, error)
}
