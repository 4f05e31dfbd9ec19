// Command seed populates the database with demo data: categories, six
// months of transactions, current-month budgets, and a few savings goals.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"fintrack/internal/database"
	"fintrack/internal/format"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

var expenseCategories = []string{
	"Food & Dining", "Transportation", "Shopping", "Entertainment",
	"Bills & Utilities", "Healthcare", "Travel", "Education", "Other",
}

var incomeCategories = []string{"Salary", "Freelance", "Investments"}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	gofakeit.Seed(time.Now().UnixNano())

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, categoryService, budgetService)
	goalService := services.NewGoalService(db)

	log := logger.Get()

	for _, name := range expenseCategories {
		if _, err := categoryService.CreateCategory(name, models.CategoryTypeExpense); err != nil {
			log.Warnf("skipping category %s: %v", name, err)
		}
	}
	for _, name := range incomeCategories {
		if _, err := categoryService.CreateCategory(name, models.CategoryTypeIncome); err != nil {
			log.Warnf("skipping category %s: %v", name, err)
		}
	}

	// Current-month budgets come first so transaction creation exercises the
	// spent-amount synchronizer.
	month := format.CurrentMonthKey()
	for _, category := range expenseCategories[:5] {
		limit := gofakeit.Price(200, 800)
		if _, err := budgetService.CreateBudget(category, limit, month); err != nil {
			log.Warnf("skipping budget %s/%s: %v", category, month, err)
		}
	}

	// Six months of history, newest month last.
	now := time.Now()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 5; i >= 0; i-- {
		monthStart := anchor.AddDate(0, -i, 0)

		// Paycheck on the first of the month.
		amount := gofakeit.Price(3000, 5000)
		if _, err := transactionService.CreateTransaction(models.TransactionTypeIncome, amount, incomeCategories[0], "Monthly paycheck", monthStart); err != nil {
			return fmt.Errorf("failed to seed income: %w", err)
		}

		count := 10 + rand.Intn(10)
		for j := 0; j < count; j++ {
			category := expenseCategories[rand.Intn(len(expenseCategories))]
			date := monthStart.AddDate(0, 0, rand.Intn(28))
			amount := gofakeit.Price(5, 250)
			if _, err := transactionService.CreateTransaction(models.TransactionTypeExpense, amount, category, gofakeit.ProductName(), date); err != nil {
				return fmt.Errorf("failed to seed expense: %w", err)
			}
		}
	}

	goals := []struct {
		name    string
		target  float64
		current float64
		months  int
	}{
		{"Emergency Fund", 10000, gofakeit.Price(1000, 6000), 12},
		{"Vacation", 3000, gofakeit.Price(0, 1500), 6},
		{"New Laptop", 2000, gofakeit.Price(0, 2000), 4},
	}
	for _, g := range goals {
		deadline := now.AddDate(0, g.months, 0)
		if _, err := goalService.CreateGoal(g.name, g.target, g.current, deadline); err != nil {
			log.Warnf("skipping goal %s: %v", g.name, err)
		}
	}

	log.Info("Seed data created successfully")
	return nil
}
