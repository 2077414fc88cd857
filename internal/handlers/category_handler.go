package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/models"
	"dkblytics/internal/services"
)

// CategoryHandler handles category-rule requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRuleRequest represents the request payload for creating a rule
type CreateCategoryRuleRequest struct {
	Text   string `json:"text" binding:"required"`
	Entity string `json:"entity" binding:"required"`
}

// UpdateCategoryRuleRequest represents the request payload for assigning a category
type UpdateCategoryRuleRequest struct {
	Category string `json:"category" binding:"required"`
}

// CategoryRuleResponse represents a category rule in the response
type CategoryRuleResponse struct {
	Text     string  `json:"text"`
	Entity   string  `json:"entity"`
	Category *string `json:"category"`
}

func toCategoryRuleResponse(r *models.CategoryRule) CategoryRuleResponse {
	return CategoryRuleResponse{Text: r.Text, Entity: r.Entity, Category: r.Category}
}

// CreateCategoryRule handles the creation of a placeholder rule
// @Summary     Create a category rule
// @Description Create a placeholder rule for a (text, entity) pair; an existing rule is left untouched
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRuleRequest true "Rule key"
// @Success     201 {object} CategoryRuleResponse "Rule created"
// @Success     200 {object} CategoryRuleResponse "Rule already existed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategoryRule(c *gin.Context) {
	var req CreateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.categoryService.CreateIfAbsent(req.Text, req.Entity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.categoryService.Get(req.Text, req.Entity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"category": toCategoryRuleResponse(rule)})
}

// GetCategoryRules handles the retrieval of rules
// @Summary     List category rules
// @Description List all category rules, optionally restricted to one entity
// @Tags        categories
// @Produce     json
// @Param       entity query string false "Exact match on entity"
// @Success     200 {array} CategoryRuleResponse "List of rules"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategoryRules(c *gin.Context) {
	rules, err := h.categoryService.List(c.Query("entity"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]CategoryRuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, toCategoryRuleResponse(&rules[i]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// GetCategoryRule handles the retrieval of one rule by its exact key
// @Summary     Get a category rule
// @Description Get the rule for an exact (text, entity) pair
// @Tags        categories
// @Produce     json
// @Param       text path string true "Rule text"
// @Param       entity path string true "Rule entity"
// @Success     200 {object} CategoryRuleResponse "Rule details"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Router      /categories/{text}/{entity} [get]
func (h *CategoryHandler) GetCategoryRule(c *gin.Context) {
	rule, err := h.categoryService.Get(c.Param("text"), c.Param("entity"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": toCategoryRuleResponse(rule)})
}

// UpdateCategoryRule handles assigning a category to one rule
// @Summary     Update a category rule
// @Description Assign a category to the rule for an exact (text, entity) pair
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       text path string true "Rule text"
// @Param       entity path string true "Rule entity"
// @Param       request body UpdateCategoryRuleRequest true "New category"
// @Success     200 {object} CategoryRuleResponse "Updated rule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rule not found"
// @Router      /categories/{text}/{entity} [patch]
func (h *CategoryHandler) UpdateCategoryRule(c *gin.Context) {
	var req UpdateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.categoryService.Update(c.Param("text"), c.Param("entity"), req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": toCategoryRuleResponse(rule)})
}

// UpdateCategoryRulesByEntity handles bulk category assignment for an entity
// @Summary     Bulk update category rules
// @Description Assign a category to every rule with the given entity
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       entity path string true "Rule entity"
// @Param       request body UpdateCategoryRuleRequest true "New category"
// @Success     200 {object} MessageResponse "Number of rules updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No rule matched the entity"
// @Router      /categories/entity/{entity} [patch]
func (h *CategoryHandler) UpdateCategoryRulesByEntity(c *gin.Context) {
	var req UpdateCategoryRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.categoryService.UpdateByEntity(c.Param("entity"), req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if count == 0 {
		respondWithError(c, apperrors.ErrCategoryRuleNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}
