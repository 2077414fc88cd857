package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// Upsert inserts the account or overwrites the stored balance wholesale.
// No balance history is retained.
func (s *accountService) Upsert(name string, balance decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if balance.IsNegative() {
		return nil, apperrors.ErrNegativeBalance
	}

	account := &models.Account{Name: name, Balance: balance}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance"}),
	}).Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetByName retrieves a single account.
func (s *accountService) GetByName(name string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// List retrieves all accounts.
func (s *accountService) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// UpdateBalance sets the balance of an existing account. Unlike Upsert it
// reports not-found instead of creating the account.
func (s *accountService) UpdateBalance(name string, balance decimal.Decimal) (*models.Account, error) {
	if balance.IsNegative() {
		return nil, apperrors.ErrNegativeBalance
	}

	result := s.db.Model(&models.Account{}).Where("name = ?", name).Update("balance", balance)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrAccountNotFound
	}
	return &models.Account{Name: name, Balance: balance}, nil
}
