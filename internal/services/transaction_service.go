package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/fingerprint"
	"dkblytics/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// Create inserts a transaction unless one with the same fingerprint already
// exists. The lookup-then-insert is backed by the unique index on the
// fingerprint column: if a concurrent insert wins the race between the lookup
// and the write, the resulting gorm.ErrDuplicatedKey is reported as a
// duplicate outcome, exactly like a hit on the lookup.
func (s *transactionService) Create(
	text string,
	entity string,
	account string,
	amount decimal.Decimal,
	date time.Time,
	reference *string,
) (*InsertResult, error) {
	// Validate input
	if text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction text is required")
	}
	if entity == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction entity is required")
	}
	if account == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction account is required")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}

	fp := fingerprint.Compute(text, entity, account, amount, date, reference)

	var existing models.Transaction
	err := s.db.Where("fingerprint = ?", fp).First(&existing).Error
	if err == nil {
		return &InsertResult{Inserted: false, Transaction: &existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		Text:        text,
		Entity:      entity,
		Account:     account,
		Amount:      amount,
		Date:        date,
		Reference:   reference,
		Fingerprint: fp,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent insert of the same fingerprint.
			if err := s.db.Where("fingerprint = ?", fp).First(&existing).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return &InsertResult{Inserted: false, Transaction: &existing}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &InsertResult{Inserted: true, Transaction: transaction}, nil
}

// GetByID retrieves a transaction by its ID.
func (s *transactionService) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// List retrieves transactions matching the filter. Text matches as a
// substring; entity and account match exactly; dates bound the range
// inclusively.
func (s *transactionService) List(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.scopeFilter(s.db.Model(&models.Transaction{}), filter).
		Order("id").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListWithCategories retrieves transactions matching the filter, each joined
// with the category of the rule matching its (text, entity) pair.
func (s *transactionService) ListWithCategories(filter TransactionFilter) ([]TransactionWithCategory, error) {
	var rows []TransactionWithCategory
	query := s.db.Model(&models.Transaction{}).
		Select("transactions.*, categories.category AS category").
		Joins("LEFT JOIN categories ON categories.text = transactions.text AND categories.entity = transactions.entity")
	if err := s.scopeFilter(query, filter).
		Order("transactions.id").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// scopeFilter applies the optional filter parameters to a transaction query.
func (s *transactionService) scopeFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.Text != "" {
		query = query.Where("transactions.text LIKE ?", "%"+filter.Text+"%")
	}
	if filter.Entity != "" {
		query = query.Where("transactions.entity = ?", filter.Entity)
	}
	if filter.Account != "" {
		query = query.Where("transactions.account = ?", filter.Account)
	}
	if filter.MinDate != nil {
		query = query.Where("transactions.date >= ?", *filter.MinDate)
	}
	if filter.MaxDate != nil {
		query = query.Where("transactions.date <= ?", *filter.MaxDate)
	}
	return query
}
