package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dkblytics/internal/services"
)

// BankHandler handles bank-sync requests.
type BankHandler struct {
	syncService services.SyncServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(syncService services.SyncServicer) *BankHandler {
	return &BankHandler{syncService: syncService}
}

// SyncResponse represents the outcome of one ingestion run
type SyncResponse struct {
	Message         string         `json:"message"`
	NewTransactions map[string]int `json:"new_transactions"`
}

// UpdateFromBank triggers one synchronous ingestion run
// @Summary     Sync from bank
// @Description Fetch accounts and transactions from the bank API and ingest them; returns per-account counts of newly inserted transactions
// @Tags        bank
// @Produce     json
// @Success     200 {object} SyncResponse "Per-account new-transaction counts"
// @Failure     502 {object} ErrorResponse "Bank API unavailable"
// @Router      /update_from_bank/ [post]
func (h *BankHandler) UpdateFromBank(c *gin.Context) {
	summary, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		Message:         "Bank sync completed",
		NewTransactions: summary,
	})
}
