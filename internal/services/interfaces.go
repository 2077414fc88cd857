package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dkblytics/internal/models"
)

// InsertResult is the outcome of a deduplicating transaction insert.
// Inserted is false when a transaction with the same fingerprint already
// exists; Transaction then points at the previously stored row. A duplicate
// is a normal outcome, not an error.
type InsertResult struct {
	Inserted    bool
	Transaction *models.Transaction
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Text    string
	Entity  string
	Account string
	MinDate *time.Time
	MaxDate *time.Time
}

// TransactionWithCategory is a transaction joined with its effective category
// rule, if one matches its (text, entity) pair.
type TransactionWithCategory struct {
	models.Transaction
	Category *string `json:"category"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(text, entity, account string, amount decimal.Decimal, date time.Time, reference *string) (*InsertResult, error)
	GetByID(id uint) (*models.Transaction, error)
	List(filter TransactionFilter) ([]models.Transaction, error)
	ListWithCategories(filter TransactionFilter) ([]TransactionWithCategory, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	Upsert(name string, balance decimal.Decimal) (*models.Account, error)
	GetByName(name string) (*models.Account, error)
	List() ([]models.Account, error)
	UpdateBalance(name string, balance decimal.Decimal) (*models.Account, error)
}

// CategoryServicer defines the contract for category-rule business logic.
type CategoryServicer interface {
	CreateIfAbsent(text, entity string) (bool, error)
	Get(text, entity string) (*models.CategoryRule, error)
	List(entity string) ([]models.CategoryRule, error)
	Update(text, entity, category string) (*models.CategoryRule, error)
	UpdateByEntity(entity, category string) (int64, error)
}

// SyncServicer defines the contract for the bank ingestion workflow.
// Run executes one full sync and returns the per-account count of newly
// inserted transactions.
type SyncServicer interface {
	Run(ctx context.Context) (map[string]int, error)
}
