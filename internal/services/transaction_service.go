package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/format"
	"fintrack/internal/models"
)

// transactionService handles transaction-related business logic. Expense
// mutations trigger a resync of the affected budget partitions.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	budgetService   BudgetServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer, budgetService BudgetServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
		budgetService:   budgetService,
	}
}

// CreateTransaction records a new income or expense entry. Amounts are
// normalized to positive magnitude and dates to their civil date here, at
// the record-store boundary; submitting an expense as a negative number is
// tolerated. The category must exist and carry the transaction's type.
func (s *transactionService) CreateTransaction(
	txType models.TransactionType,
	amount float64,
	category, description string,
	date time.Time,
) (*models.Transaction, error) {
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}

	cat, err := s.categoryService.GetCategoryByName(category)
	if err != nil {
		return nil, err
	}
	if string(cat.Type) != string(txType) {
		return nil, apperrors.ErrCategoryTypeMismatch
	}

	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Type:        txType,
		Amount:      math.Abs(amount),
		Category:    category,
		Description: description,
		Date:        civilDate(date),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Income never affects budgets.
	if transaction.Type == models.TransactionTypeExpense {
		if err := s.budgetService.ResyncCategoryMonth(transaction.Category, format.MonthKey(transaction.Date)); err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

// GetTransactions returns the whole collection, newest first.
func (s *transactionService) GetTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID returns a transaction by ID.
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update, then resynchronizes every
// budget partition the change touched: the row's previous (category, month)
// and its new one, when either side is an expense.
func (s *transactionService) UpdateTransaction(id uint, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}
	before := *transaction

	updates := make(map[string]interface{})
	if update.Type != nil {
		if *update.Type != models.TransactionTypeIncome && *update.Type != models.TransactionTypeExpense {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *update.Type
		transaction.Type = *update.Type
	}
	if update.Amount != nil {
		if *update.Amount == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
		}
		updates["amount"] = math.Abs(*update.Amount)
		transaction.Amount = math.Abs(*update.Amount)
	}
	if update.Category != nil {
		updates["category"] = *update.Category
		transaction.Category = *update.Category
	}
	if update.Description != nil {
		updates["description"] = *update.Description
		transaction.Description = *update.Description
	}
	if update.Date != nil {
		date := civilDate(*update.Date)
		updates["date"] = date
		transaction.Date = date
	}

	// Changing the type or the category must leave a valid pairing behind.
	if update.Type != nil || update.Category != nil {
		cat, err := s.categoryService.GetCategoryByName(transaction.Category)
		if err != nil {
			return nil, err
		}
		if string(cat.Type) != string(transaction.Type) {
			return nil, apperrors.ErrCategoryTypeMismatch
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := s.resyncAffected(before, *transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction permanently removes a transaction and resynchronizes the
// budget partition it belonged to.
func (s *transactionService) DeleteTransaction(id uint) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if transaction.Type == models.TransactionTypeExpense {
		return s.budgetService.ResyncCategoryMonth(transaction.Category, format.MonthKey(transaction.Date))
	}
	return nil
}

// civilDate pins a timestamp to its own calendar date at midnight UTC.
// Month partitioning uses the date's calendar components, so a zoned
// timestamp near a month boundary must not drift into the neighboring
// month when the SQL recompute filters by instant range.
func civilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// resyncAffected resynchronizes the (category, month) partitions touched by
// an update. Each partition is independent, so ordering between the two
// resyncs does not matter.
func (s *transactionService) resyncAffected(before, after models.Transaction) error {
	type partition struct{ category, month string }
	affected := make(map[partition]bool)

	if before.Type == models.TransactionTypeExpense {
		affected[partition{before.Category, format.MonthKey(before.Date)}] = true
	}
	if after.Type == models.TransactionTypeExpense {
		affected[partition{after.Category, format.MonthKey(after.Date)}] = true
	}

	for p := range affected {
		if err := s.budgetService.ResyncCategoryMonth(p.category, p.month); err != nil {
			return err
		}
	}
	return nil
}
