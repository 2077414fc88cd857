package services

import (
	"context"
	"time"

	"dkblytics/internal/bank"
	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/logger"
)

// SyncConfig holds the ingestion parameters. It is passed into the sync
// service constructor explicitly; the service never reads process-wide state.
type SyncConfig struct {
	// From is the start of the lookback window; every run fetches
	// transactions from this date up to now.
	From time.Time

	// SeedCategories enables creating a placeholder category rule for the
	// (text, entity) pair of every newly inserted transaction.
	SeedCategories bool
}

// syncService runs the bank ingestion workflow: fetch accounts and
// transactions from the bank, map them to internal records, and persist them
// with fingerprint deduplication.
type syncService struct {
	bank         bank.Client
	transactions TransactionServicer
	accounts     AccountServicer
	categories   CategoryServicer
	config       SyncConfig
}

// NewSyncService creates a new SyncServicer.
func NewSyncService(
	client bank.Client,
	transactions TransactionServicer,
	accounts AccountServicer,
	categories CategoryServicer,
	config SyncConfig,
) SyncServicer {
	return &syncService{
		bank:         client,
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		config:       config,
	}
}

// Run executes one ingestion run and returns, per account, the number of
// transactions actually inserted (duplicates excluded).
//
// Failure policy: any bank error aborts the run. Writes are not wrapped in an
// overall transaction; whatever persisted before the failure stands, and a
// re-run is safe because already-inserted transactions are detected by
// fingerprint. A snapshot without a balance only skips that account's upsert;
// its transactions are still processed.
func (s *syncService) Run(ctx context.Context) (map[string]int, error) {
	log := logger.Get()

	snapshots, err := s.bank.ListAccounts(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrBankUnavailable, err)
	}

	now := time.Now()
	summary := make(map[string]int, len(snapshots))

	for _, snapshot := range snapshots {
		raws, err := s.bank.ListTransactions(ctx, snapshot.TransactionsRef, s.config.From, now)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrBankUnavailable, err)
		}

		if snapshot.Balance == nil {
			log.Warnw("account snapshot has no balance field, skipping upsert",
				"account", snapshot.Name)
		} else {
			if _, err := s.accounts.Upsert(snapshot.Name, *snapshot.Balance); err != nil {
				return nil, err
			}
		}

		summary[snapshot.Name] = 0
		for _, raw := range raws {
			result, err := s.transactions.Create(raw.Text, raw.Peer, snapshot.Name, raw.Amount, raw.Date, raw.Reference)
			if err != nil {
				return nil, err
			}
			if !result.Inserted {
				continue
			}
			summary[snapshot.Name]++

			// Seed a placeholder rule for newly seen pairs only; duplicates
			// never re-trigger rule creation.
			if s.config.SeedCategories {
				if _, err := s.categories.CreateIfAbsent(raw.Text, raw.Peer); err != nil {
					return nil, err
				}
			}
		}

		log.Infow("account synced",
			"account", snapshot.Name,
			"fetched", len(raws),
			"inserted", summary[snapshot.Name])
	}

	return summary, nil
}
