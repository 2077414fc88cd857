package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dkblytics/internal/fingerprint"
	"dkblytics/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a calendar date for test inputs.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestAccount creates an account with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction with a unique text and a
// consistent fingerprint.
func CreateTestTransaction(t *testing.T, db *gorm.DB, account string, amount decimal.Decimal) *models.Transaction {
	t.Helper()

	text := fmt.Sprintf("Test Transaction %d", nextID())
	entity := "Test Entity"
	date := Date(2024, time.March, 15)

	tx := &models.Transaction{
		Text:        text,
		Entity:      entity,
		Account:     account,
		Amount:      amount,
		Date:        date,
		Fingerprint: fingerprint.Compute(text, entity, account, amount, date, nil),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCategoryRule creates a rule with the given assigned category.
// Pass nil for a placeholder rule.
func CreateTestCategoryRule(t *testing.T, db *gorm.DB, text, entity string, category *string) *models.CategoryRule {
	t.Helper()

	rule := &models.CategoryRule{
		Text:     text,
		Entity:   entity,
		Category: category,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test category rule: %v", err)
	}
	return rule
}
