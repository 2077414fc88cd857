package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/models"
	"dkblytics/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Text      string          `json:"text" binding:"required"`
	Entity    string          `json:"entity" binding:"required"`
	Account   string          `json:"account" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      string          `json:"date" binding:"required,calendar_date"`
	Reference *string         `json:"reference"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID          uint            `json:"id"`
	Text        string          `json:"text"`
	Entity      string          `json:"entity"`
	Account     string          `json:"account"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Reference   *string         `json:"reference"`
	Fingerprint string          `json:"fingerprint"`
}

// TransactionWithCategoryResponse is a transaction joined with its effective category.
type TransactionWithCategoryResponse struct {
	TransactionResponse
	Category *string `json:"category"`
}

func toTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Text:        t.Text,
		Entity:      t.Entity,
		Account:     t.Account,
		Amount:      t.Amount,
		Date:        t.Date.Format(dateLayout),
		Reference:   t.Reference,
		Fingerprint: t.Fingerprint,
	}
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new transaction; an already-stored identical transaction is reported as a duplicate, not an error
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Success     200 {object} TransactionResponse "Duplicate of a stored transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// calendar_date already validated the form
	date, _ := time.Parse(dateLayout, req.Date)

	result, err := h.transactionService.Create(req.Text, req.Entity, req.Account, req.Amount, date, req.Reference)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !result.Inserted {
		c.JSON(http.StatusOK, gin.H{
			"transaction": toTransactionResponse(result.Transaction),
			"duplicate":   true,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": toTransactionResponse(result.Transaction)})
}

// GetTransactionByID handles the retrieval of a single transaction
// @Summary     Get transaction by ID
// @Description Get a single transaction by its ID
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": toTransactionResponse(transaction)})
}

// GetTransactions handles the filtered retrieval of transactions
// @Summary     List transactions
// @Description List transactions with optional filtering
// @Tags        transactions
// @Produce     json
// @Param       text query string false "Substring match on transaction text"
// @Param       entity query string false "Exact match on entity"
// @Param       account query string false "Exact match on account name"
// @Param       min_date query string false "Earliest date (YYYY-MM-DD)"
// @Param       max_date query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {array} TransactionResponse "List of transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.List(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

// GetTransactionsWithCategories handles the retrieval of transactions joined
// with their effective category
// @Summary     List transactions with categories
// @Description List transactions, each joined with the category rule matching its (text, entity) pair
// @Tags        transactions
// @Produce     json
// @Param       text query string false "Substring match on transaction text"
// @Param       entity query string false "Exact match on entity"
// @Param       account query string false "Exact match on account name"
// @Param       min_date query string false "Earliest date (YYYY-MM-DD)"
// @Param       max_date query string false "Latest date (YYYY-MM-DD)"
// @Success     200 {array} TransactionWithCategoryResponse "List of transactions with categories"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /transactions/with_category [get]
func (h *TransactionHandler) GetTransactionsWithCategories(c *gin.Context) {
	filter, err := h.bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.ListWithCategories(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]TransactionWithCategoryResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, TransactionWithCategoryResponse{
			TransactionResponse: toTransactionResponse(&rows[i].Transaction),
			Category:            rows[i].Category,
		})
	}
	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

// bindFilter collects the optional list filters from query parameters.
func (h *TransactionHandler) bindFilter(c *gin.Context) (services.TransactionFilter, error) {
	minDate, err := parseQueryDate(c, "min_date")
	if err != nil {
		return services.TransactionFilter{}, err
	}
	maxDate, err := parseQueryDate(c, "max_date")
	if err != nil {
		return services.TransactionFilter{}, err
	}
	return services.TransactionFilter{
		Text:    c.Query("text"),
		Entity:  c.Query("entity"),
		Account: c.Query("account"),
		MinDate: minDate,
		MaxDate: maxDate,
	}, nil
}
