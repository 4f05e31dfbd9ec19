package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/format"
	"fintrack/internal/models"
)

// recentTransactionCount is how many latest transactions the dashboard shows.
const recentTransactionCount = 5

// reportService derives chart and dashboard data. Every call re-fetches the
// full collections and hands snapshots to the pure aggregation functions.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// MonthlySummary computes income/expense totals and the savings rate for the
// given month key.
func (s *reportService) MonthlySummary(month string) (*analytics.Summary, error) {
	if _, err := format.ParseMonthKey(month); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidMonthKey, err)
	}

	txs, err := s.allTransactions()
	if err != nil {
		return nil, err
	}

	summary := analytics.MonthlySummary(txs, month)
	return &summary, nil
}

// ExpenseBreakdown groups expenses by category for the pie chart.
func (s *reportService) ExpenseBreakdown() ([]analytics.CategoryTotal, error) {
	txs, err := s.allTransactions()
	if err != nil {
		return nil, err
	}
	return analytics.ExpenseBreakdown(txs), nil
}

// Trend produces the trailing six-month income/expense series.
func (s *reportService) Trend() (*analytics.Trend, error) {
	txs, err := s.allTransactions()
	if err != nil {
		return nil, err
	}

	trend := analytics.TrendSeries(txs, time.Now())
	return &trend, nil
}

// Overview assembles the dashboard view-model for the current month.
func (s *reportService) Overview() (*Overview, error) {
	txs, err := s.allTransactions()
	if err != nil {
		return nil, err
	}

	month := format.CurrentMonthKey()

	var budgets []models.Budget
	if err := s.db.Where("month = ?", month).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := s.db.Order("deadline").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview := &Overview{
		Summary:            analytics.MonthlySummary(txs, month),
		RecentTransactions: txs,
		ActiveGoals:        len(goals),
	}
	if len(overview.RecentTransactions) > recentTransactionCount {
		overview.RecentTransactions = overview.RecentTransactions[:recentTransactionCount]
	}
	if overview.RecentTransactions == nil {
		overview.RecentTransactions = []models.Transaction{}
	}

	for _, b := range budgets {
		overview.TotalBudget += b.MonthlyLimit
		overview.TotalBudgetSpent += b.Spent
	}
	for _, g := range goals {
		overview.TotalTarget += g.TargetAmount
		overview.TotalSaved += g.CurrentAmount
		if analytics.ProgressForGoal(g).IsCompleted {
			overview.CompletedGoals++
		}
	}

	return overview, nil
}

// allTransactions fetches the whole collection, newest first.
func (s *reportService) allTransactions() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Order("date DESC, id DESC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}
