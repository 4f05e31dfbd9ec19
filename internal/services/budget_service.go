package services

import (
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/format"
	"fintrack/internal/models"
)

// budgetService handles budget-related business logic, including keeping
// each budget's derived spent amount in sync with its transactions.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget for a (category, month) partition.
// The initial spent amount is computed from existing transactions, so a
// freshly created budget with no matching expenses reports spent == 0.
func (s *budgetService) CreateBudget(category string, monthlyLimit float64, month string) (*models.Budget, error) {
	if _, err := format.ParseMonthKey(month); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidMonthKey, err)
	}
	if monthlyLimit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly limit must be greater than zero")
	}

	// At most one budget per (category, month); the sync contract relies on it.
	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("category = ? AND month = ?", category, month).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	spent, err := s.spentFor(category, month)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Category:     category,
		MonthlyLimit: monthlyLimit,
		Month:        month,
		Spent:        spent,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudgets returns all budgets, optionally filtered to a single month.
func (s *budgetService) GetBudgets(month *string) ([]models.Budget, error) {
	query := s.db.Model(&models.Budget{}).Order("month, category")
	if month != nil {
		query = query.Where("month = ?", *month)
	}

	var budgets []models.Budget
	if err := query.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a partial update. Moving a budget to a different
// category or month recomputes its spent amount for the new partition.
func (s *budgetService) UpdateBudget(id uint, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	category := budget.Category
	month := budget.Month
	if update.Category != nil {
		category = *update.Category
	}
	if update.Month != nil {
		if _, err := format.ParseMonthKey(*update.Month); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidMonthKey, err)
		}
		month = *update.Month
	}
	if update.MonthlyLimit != nil && *update.MonthlyLimit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly limit must be greater than zero")
	}

	updates := make(map[string]interface{})
	if update.MonthlyLimit != nil {
		updates["monthly_limit"] = *update.MonthlyLimit
	}

	if category != budget.Category || month != budget.Month {
		var count int64
		if err := s.db.Model(&models.Budget{}).
			Where("category = ? AND month = ? AND id <> ?", category, month, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}

		spent, err := s.spentFor(category, month)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
		updates["month"] = month
		updates["spent"] = spent
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(id uint) error {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateSpentAmount persists a new spent amount for the budget in the given
// (category, month) partition. A missing budget is "nothing to update" and
// returns (nil, nil) rather than an error.
func (s *budgetService) UpdateSpentAmount(category, month string, amount float64) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("category = ? AND month = ?", category, month).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&budget).Update("spent", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// SyncSpentAmounts recomputes each budget's spent amount from the
// transaction snapshot and persists every value that differs from the stored
// one. The returned slice carries the synchronized values; the input is not
// mutated. Zero budgets is a no-op.
func (s *budgetService) SyncSpentAmounts(budgets []models.Budget, txs []models.Transaction) ([]models.Budget, error) {
	synced := make([]models.Budget, len(budgets))
	copy(synced, budgets)

	for i := range synced {
		spent := analytics.SpentForBudget(synced[i], txs)
		if spent == synced[i].Spent {
			continue
		}
		if _, err := s.UpdateSpentAmount(synced[i].Category, synced[i].Month, spent); err != nil {
			return nil, err
		}
		synced[i].Spent = spent
	}
	return synced, nil
}

// ResyncCategoryMonth recomputes the spent amount for the single budget in
// the given partition. No budget there means nothing to update.
func (s *budgetService) ResyncCategoryMonth(category, month string) error {
	var budget models.Budget
	err := s.db.Where("category = ? AND month = ?", category, month).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent, err := s.spentFor(category, month)
	if err != nil {
		return err
	}
	if spent == budget.Spent {
		return nil
	}

	if err := s.db.Model(&budget).Update("spent", spent).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// spentFor sums absolute expense amounts for a (category, month) partition
// directly in SQL.
func (s *budgetService) spentFor(category, month string) (float64, error) {
	start, err := format.ParseMonthKey(month)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidMonthKey, err)
	}
	end := start.AddDate(0, 1, 0)

	var spent float64
	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(ABS(amount)), 0)").
		Where("type = ? AND category = ? AND date >= ? AND date < ?",
			models.TransactionTypeExpense, category, start, end).
		Scan(&spent).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}
