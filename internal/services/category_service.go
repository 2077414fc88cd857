package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/models"
)

// categoryService handles category-rule business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateIfAbsent inserts a placeholder rule with a nil category for the
// (text, entity) pair unless a rule already exists. An existing rule is never
// touched, so an assigned category cannot be clobbered by re-seeding.
// Returns whether a new rule was created.
func (s *categoryService) CreateIfAbsent(text, entity string) (bool, error) {
	if text == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule text is required")
	}
	if entity == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule entity is required")
	}

	rule := &models.CategoryRule{Text: text, Entity: entity}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rule)
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Get retrieves the rule for an exact (text, entity) pair.
func (s *categoryService) Get(text, entity string) (*models.CategoryRule, error) {
	var rule models.CategoryRule
	if err := s.db.Where("text = ? AND entity = ?", text, entity).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryRuleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// List retrieves all rules, optionally restricted to one entity.
func (s *categoryService) List(entity string) ([]models.CategoryRule, error) {
	query := s.db.Model(&models.CategoryRule{})
	if entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var rules []models.CategoryRule
	if err := query.Order("text, entity").Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rules, nil
}

// Update assigns a category to the rule for an exact (text, entity) pair.
// Reports not-found when no such rule exists.
func (s *categoryService) Update(text, entity, category string) (*models.CategoryRule, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	result := s.db.Model(&models.CategoryRule{}).
		Where("text = ? AND entity = ?", text, entity).
		Update("category", category)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrCategoryRuleNotFound
	}
	return &models.CategoryRule{Text: text, Entity: entity, Category: &category}, nil
}

// UpdateByEntity assigns a category to every rule with the given entity and
// returns the number of rules changed. Zero means no rule matched.
func (s *categoryService) UpdateByEntity(entity, category string) (int64, error) {
	if category == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	result := s.db.Model(&models.CategoryRule{}).
		Where("entity = ?", entity).
		Update("category", category)
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
