package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single booked bank transaction. Rows are
// append-only: once stored, a transaction is never updated or deleted.
//
// Fingerprint is a deterministic digest of the six content fields and carries
// a unique index; it is the deduplication key. The auto-increment ID stays
// the primary key so external references remain stable.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Text        string          `gorm:"not null" json:"text"`
	Entity      string          `gorm:"not null" json:"entity"`
	Account     string          `gorm:"not null" json:"account"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	Reference   *string         `json:"reference"`
	Fingerprint string          `gorm:"uniqueIndex;not null" json:"fingerprint"`
}
