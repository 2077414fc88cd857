// Package bank defines the external bank collaborator consumed by the sync
// workflow and an HTTP implementation of it. The rest of the codebase only
// depends on the Client interface, so tests substitute a fake.
package bank

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountSnapshot is one account as reported by the bank. Balance is nil when
// the bank omits it, which happens for some account types; callers must treat
// that as "unknown", not zero.
type AccountSnapshot struct {
	Name            string
	Balance         *decimal.Decimal
	TransactionsRef string
}

// RawTransaction is one booked transaction as reported by the bank, before
// mapping to the internal shape. Peer is the counterparty the internal model
// calls entity. Reference is nil when the bank reports no customer reference,
// which is distinct from an empty one.
type RawTransaction struct {
	Text      string
	Peer      string
	Amount    decimal.Decimal
	Date      time.Time
	Reference *string
}

// Client is the external bank collaborator: an account listing plus a
// per-account transaction listing over a date window.
type Client interface {
	ListAccounts(ctx context.Context) ([]AccountSnapshot, error)
	ListTransactions(ctx context.Context, accountRef string, from, to time.Time) ([]RawTransaction, error)
}
