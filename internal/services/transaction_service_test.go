package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/format"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func newTransactionService(t *testing.T, db *gorm.DB) (TransactionServicer, BudgetServicer) {
	t.Helper()
	budgetSvc := NewBudgetService(db)
	return NewTransactionService(db, NewCategoryService(db), budgetSvc), budgetSvc
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Salary", models.CategoryTypeIncome)

		tx, err := svc.CreateTransaction(models.TransactionTypeIncome, 3000, "Salary", "August paycheck", time.Now())
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.Type != models.TransactionTypeIncome {
			t.Errorf("expected income, got %s", tx.Type)
		}
		if tx.Amount != 3000 {
			t.Errorf("expected amount 3000, got %v", tx.Amount)
		}
	})

	t.Run("negative_amount_stored_as_magnitude", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, -45.50, "Groceries", "", time.Now())
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, tx.Amount, 45.50)
	})

	t.Run("expense_updates_budget_spent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")

		_, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", d)
		testutil.AssertNoError(t, err)

		reloaded, err := budgetSvc.GetBudgetByID(budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloaded.Spent, 60)
	})

	t.Run("income_never_affects_budgets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeIncome)
		d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")

		_, err := svc.CreateTransaction(models.TransactionTypeIncome, 200, "Groceries", "refund", d)
		testutil.AssertNoError(t, err)

		reloaded, err := budgetSvc.GetBudgetByID(budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloaded.Spent, 0)
	})

	t.Run("expense_without_budget_is_fine", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", time.Now())
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		_, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Nonexistent", "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("expense_against_income_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Salary", models.CategoryTypeIncome)

		_, err := svc.CreateTransaction(models.TransactionTypeExpense, 50, "Salary", "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("income_against_expense_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(models.TransactionTypeIncome, 50, "Groceries", "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("zoned_date_partitions_by_calendar_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		august := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")
		september := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-09")

		// Sep 1, 05:00 in UTC+10 is still Aug 31 in UTC; the stored date
		// must keep its own calendar day so both recompute paths agree.
		loc := time.FixedZone("AEST", 10*3600)
		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "",
			time.Date(2026, time.September, 1, 5, 0, 0, 0, loc))
		testutil.AssertNoError(t, err)

		want := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
		if !tx.Date.Equal(want) {
			t.Errorf("expected stored date %v, got %v", want, tx.Date)
		}
		if format.MonthKey(tx.Date) != "2026-09" {
			t.Errorf("expected month key 2026-09, got %s", format.MonthKey(tx.Date))
		}

		reloadedSeptember, err := budgetSvc.GetBudgetByID(september.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedSeptember.Spent, 60)

		reloadedAugust, err := budgetSvc.GetBudgetByID(august.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedAugust.Spent, 0)
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		_, err := svc.CreateTransaction(models.TransactionType("transfer"), 60, "Groceries", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(models.TransactionTypeExpense, 0, "Groceries", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_date_defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 10, "Groceries", "", time.Time{})
		testutil.AssertNoError(t, err)
		if tx.Date.IsZero() {
			t.Error("expected date to default to now")
		}
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		old := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		recent := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, 10, "Groceries", old)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, 20, "Groceries", recent)

		txs, err := svc.GetTransactions()
		testutil.AssertNoError(t, err)
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		if txs[0].Amount != 20 {
			t.Errorf("expected newest transaction first, got amount %v", txs[0].Amount)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		txs, err := svc.GetTransactions()
		testutil.AssertNoError(t, err)
		if len(txs) != 0 {
			t.Errorf("expected no transactions, got %d", len(txs))
		}
	})
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		_, err := svc.GetTransactionByID(9999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		created := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, 10, "Groceries",
			time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))

		desc := "weekly shop"
		updated, err := svc.UpdateTransaction(created.ID, TransactionUpdate{Description: &desc})
		testutil.AssertNoError(t, err)
		if updated.Description != "weekly shop" {
			t.Errorf("expected description updated, got %q", updated.Description)
		}
		if updated.Amount != 10 || updated.Category != "Groceries" {
			t.Errorf("unrelated fields changed: %v %s", updated.Amount, updated.Category)
		}
	})

	t.Run("moving_category_resyncs_both_partitions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		testutil.CreateTestCategoryWithName(t, db, "Travel", models.CategoryTypeExpense)
		d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		groceries := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")
		travel := testutil.CreateTestBudget(t, db, "Travel", 200, "2026-08")

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", d)
		testutil.AssertNoError(t, err)

		category := "Travel"
		_, err = svc.UpdateTransaction(tx.ID, TransactionUpdate{Category: &category})
		testutil.AssertNoError(t, err)

		reloadedGroceries, err := budgetSvc.GetBudgetByID(groceries.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedGroceries.Spent, 0)

		reloadedTravel, err := budgetSvc.GetBudgetByID(travel.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedTravel.Spent, 60)
	})

	t.Run("moving_month_resyncs_both_partitions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		august := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")
		september := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-09")

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "",
			time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		moved := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
		_, err = svc.UpdateTransaction(tx.ID, TransactionUpdate{Date: &moved})
		testutil.AssertNoError(t, err)

		reloadedAugust, err := budgetSvc.GetBudgetByID(august.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedAugust.Spent, 0)

		reloadedSeptember, err := budgetSvc.GetBudgetByID(september.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloadedSeptember.Spent, 60)
	})

	t.Run("switching_expense_to_income_clears_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		testutil.CreateTestCategoryWithName(t, db, "Refunds", models.CategoryTypeIncome)
		d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", d)
		testutil.AssertNoError(t, err)

		incomeType := models.TransactionTypeIncome
		category := "Refunds"
		_, err = svc.UpdateTransaction(tx.ID, TransactionUpdate{Type: &incomeType, Category: &category})
		testutil.AssertNoError(t, err)

		reloaded, err := budgetSvc.GetBudgetByID(budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloaded.Spent, 0)
	})

	t.Run("rejects_type_change_mismatching_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", time.Now())
		testutil.AssertNoError(t, err)

		incomeType := models.TransactionTypeIncome
		_, err = svc.UpdateTransaction(tx.ID, TransactionUpdate{Type: &incomeType})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("rejects_category_change_mismatching_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		testutil.CreateTestCategoryWithName(t, db, "Salary", models.CategoryTypeIncome)

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", time.Now())
		testutil.AssertNoError(t, err)

		category := "Salary"
		_, err = svc.UpdateTransaction(tx.ID, TransactionUpdate{Category: &category})
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		created := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, 10, "Groceries", time.Now())

		badType := models.TransactionType("transfer")
		_, err := svc.UpdateTransaction(created.ID, TransactionUpdate{Type: &badType})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)
		created := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, 10, "Groceries", time.Now())

		category := "Nonexistent"
		_, err := svc.UpdateTransaction(created.ID, TransactionUpdate{Category: &category})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		desc := "nope"
		_, err := svc.UpdateTransaction(9999, TransactionUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("expense_delete_resyncs_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, budgetSvc := newTransactionService(t, db)
		testutil.CreateTestCategoryWithName(t, db, "Groceries", models.CategoryTypeExpense)
		d := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 500, "2026-08")

		tx, err := svc.CreateTransaction(models.TransactionTypeExpense, 60, "Groceries", "", d)
		testutil.AssertNoError(t, err)

		err = svc.DeleteTransaction(tx.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetTransactionByID(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		reloaded, err := budgetSvc.GetBudgetByID(budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, reloaded.Spent, 0)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc, _ := newTransactionService(t, db)

		err := svc.DeleteTransaction(9999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
