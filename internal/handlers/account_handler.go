package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// UpsertAccountRequest represents the request payload for creating or
// replacing an account. Balance must be present: a decoded 0 is not the
// Decimal zero value, so `"balance": 0` passes while an omitted field fails.
type UpsertAccountRequest struct {
	Name    string          `json:"name" binding:"required"`
	Balance decimal.Decimal `json:"balance" binding:"required"`
}

// UpdateBalanceRequest represents the request payload for updating an
// account's balance
type UpdateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance" binding:"required"`
}

// AccountResponse represents an account in the response
type AccountResponse struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// UpsertAccount handles account creation with overwrite semantics
// @Summary     Create or replace an account
// @Description Create an account, or overwrite the balance of an existing one
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       request body UpsertAccountRequest true "Account details"
// @Success     201 {object} AccountResponse "Account stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *AccountHandler) UpsertAccount(c *gin.Context) {
	var req UpsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.Upsert(req.Name, req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": AccountResponse{Name: account.Name, Balance: account.Balance}})
}

// GetAccountByName handles the retrieval of a single account
// @Summary     Get account by name
// @Description Get a single account by its name
// @Tags        accounts
// @Produce     json
// @Param       name path string true "Account name"
// @Success     200 {object} AccountResponse "Account details"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{name} [get]
func (h *AccountHandler) GetAccountByName(c *gin.Context) {
	account, err := h.accountService.GetByName(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": AccountResponse{Name: account.Name, Balance: account.Balance}})
}

// GetAccounts handles the retrieval of all accounts
// @Summary     List accounts
// @Description List all accounts
// @Tags        accounts
// @Produce     json
// @Success     200 {array} AccountResponse "List of accounts"
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, AccountResponse{Name: account.Name, Balance: account.Balance})
	}
	c.JSON(http.StatusOK, gin.H{"accounts": responses})
}

// UpdateBalance handles updating the balance of an existing account
// @Summary     Update account balance
// @Description Set a new balance for an existing account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Param       name path string true "Account name"
// @Param       request body UpdateBalanceRequest true "New balance"
// @Success     200 {object} AccountResponse "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{name} [patch]
func (h *AccountHandler) UpdateBalance(c *gin.Context) {
	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateBalance(c.Param("name"), req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": AccountResponse{Name: account.Name, Balance: account.Balance}})
}
