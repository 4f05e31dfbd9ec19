// Package analytics is the aggregation engine: pure functions deriving
// budget spent-amounts, monthly rollups, category breakdowns, trend series,
// and goal progress from snapshots of the raw collections.
//
// All functions are reentrant, never mutate their inputs, and degrade to
// zero-valued results for empty or degenerate input rather than erroring.
package analytics

import (
	"math"
	"sort"
	"time"

	"fintrack/internal/format"
	"fintrack/internal/models"
)

// breakdownLimit caps the expense breakdown to the largest categories; the
// tail is dropped entirely, not merged into an "Other" bucket.
const breakdownLimit = 8

// trendMonths is the trailing window length of the trend series.
const trendMonths = 6

// SpentForBudget returns the sum of absolute amounts of all expense
// transactions matching the budget's category and month. Idempotent and
// independent of transaction ordering; zero matches yield 0.
func SpentForBudget(b models.Budget, txs []models.Transaction) float64 {
	var spent float64
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if t.Category != b.Category || format.MonthKey(t.Date) != b.Month {
			continue
		}
		spent += math.Abs(t.Amount)
	}
	return spent
}

// Summary holds the monthly rollup for a single month key.
type Summary struct {
	Month         string  `json:"month"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
	SavingsRate   float64 `json:"savings_rate"`
}

// MonthlySummary computes income and expense totals for the given month key.
// Expenses are reported as a positive magnitude.
func MonthlySummary(txs []models.Transaction, month string) Summary {
	var income, expenses float64
	for _, t := range txs {
		if format.MonthKey(t.Date) != month {
			continue
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			income += t.Amount
		case models.TransactionTypeExpense:
			expenses += math.Abs(t.Amount)
		}
	}
	return Summary{
		Month:         month,
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetIncome:     income - expenses,
		SavingsRate:   SavingsRate(income, expenses),
	}
}

// SavingsRate returns the percentage of income retained after expenses.
// Zero income yields 0; spending past income yields a negative rate.
func SavingsRate(income, expenses float64) float64 {
	if income == 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ExpenseBreakdown groups expense transactions by category, sums absolute
// amounts, and returns the top categories sorted by total descending. Ties
// keep first-seen category order. Empty input yields an empty slice.
func ExpenseBreakdown(txs []models.Transaction) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += math.Abs(t.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryTotal{Category: category, Total: totals[category]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})

	if len(result) > breakdownLimit {
		result = result[:breakdownLimit]
	}
	return result
}

// Trend holds per-month income and expense totals over the trailing window,
// oldest first. The three slices are parallel.
type Trend struct {
	Labels   []string  `json:"labels"`
	Income   []float64 `json:"income"`
	Expenses []float64 `json:"expenses"`
}

// TrendSeries produces income and expense totals for each of the trailing
// six calendar months ending at now's month, inclusive, oldest first.
// An empty transaction set yields empty series.
func TrendSeries(txs []models.Transaction, now time.Time) Trend {
	if len(txs) == 0 {
		return Trend{Labels: []string{}, Income: []float64{}, Expenses: []float64{}}
	}

	trend := Trend{
		Labels:   make([]string, 0, trendMonths),
		Income:   make([]float64, 0, trendMonths),
		Expenses: make([]float64, 0, trendMonths),
	}

	// Anchor on the first of the month so AddDate cannot skid across
	// month boundaries on day 29-31.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := trendMonths - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		summary := MonthlySummary(txs, format.MonthKey(month))
		trend.Labels = append(trend.Labels, format.MonthYear(month))
		trend.Income = append(trend.Income, summary.TotalIncome)
		trend.Expenses = append(trend.Expenses, summary.TotalExpenses)
	}
	return trend
}

// GoalProgress describes how far a goal has come. Percentage is unclamped
// for textual display; BarPercentage is clamped to [0, 100] for progress
// bars. Remaining is clamped to zero once the goal is reached; Overshoot
// carries the raw excess for "goal reached" messaging.
type GoalProgress struct {
	Percentage    float64 `json:"percentage"`
	BarPercentage float64 `json:"bar_percentage"`
	IsCompleted   bool    `json:"is_completed"`
	Remaining     float64 `json:"remaining"`
	Overshoot     float64 `json:"overshoot"`
}

// ProgressForGoal computes the goal's progress. A zero target yields a zero
// percentage rather than dividing by zero.
func ProgressForGoal(g models.Goal) GoalProgress {
	var pct float64
	if g.TargetAmount > 0 {
		pct = g.CurrentAmount / g.TargetAmount * 100
	}
	return GoalProgress{
		Percentage:    pct,
		BarPercentage: math.Min(math.Max(pct, 0), 100),
		IsCompleted:   g.CurrentAmount >= g.TargetAmount,
		Remaining:     math.Max(g.TargetAmount-g.CurrentAmount, 0),
		Overshoot:     math.Max(g.CurrentAmount-g.TargetAmount, 0),
	}
}

// BudgetUsage describes how much of a budget's limit has been consumed.
type BudgetUsage struct {
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	OverBudget bool    `json:"over_budget"`
}

// UsageForBudget computes spending against the budget's limit. A zero limit
// yields a zero percentage by convention, but any spending against a zero
// limit still flags the budget as over.
func UsageForBudget(b models.Budget) BudgetUsage {
	var pct float64
	if b.MonthlyLimit > 0 {
		pct = b.Spent / b.MonthlyLimit * 100
	}
	return BudgetUsage{
		Percentage: pct,
		Remaining:  b.MonthlyLimit - b.Spent,
		OverBudget: b.Spent > b.MonthlyLimit,
	}
}
