package models

import "github.com/shopspring/decimal"

// Account represents a bank account keyed by name. The balance is a point-in-
// time snapshot overwritten on every upsert; no balance history is retained.
type Account struct {
	Name    string          `gorm:"primaryKey" json:"name"`
	Balance decimal.Decimal `gorm:"type:numeric;not null" json:"balance"`
}
