package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// HTTPClient talks to the bank's REST API. The embedded http.Client timeout
// bounds every fetch so a stalled bank cannot stall an ingestion run
// indefinitely.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a bank client for the given base URL and API token.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// accountDTO mirrors the bank's account payload. The balance field is absent
// for account types the bank reports without one.
type accountDTO struct {
	Name         string           `json:"name"`
	Amount       *decimal.Decimal `json:"amount"`
	Transactions string           `json:"transactions"`
}

// transactionDTO mirrors the bank's transaction payload.
type transactionDTO struct {
	Text              string          `json:"text"`
	Peer              string          `json:"peer"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	CustomerReference *string         `json:"customerreference"`
}

// ListAccounts fetches all accounts known to the bank.
func (c *HTTPClient) ListAccounts(ctx context.Context) ([]AccountSnapshot, error) {
	var dtos []accountDTO
	if err := c.get(ctx, c.baseURL+"/accounts", &dtos); err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}

	snapshots := make([]AccountSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshots = append(snapshots, AccountSnapshot{
			Name:            dto.Name,
			Balance:         dto.Amount,
			TransactionsRef: dto.Transactions,
		})
	}
	return snapshots, nil
}

// ListTransactions fetches the booked transactions of one account within the
// given date window.
func (c *HTTPClient) ListTransactions(ctx context.Context, accountRef string, from, to time.Time) ([]RawTransaction, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/transactions?from=%s&to=%s",
		c.baseURL, url.PathEscape(accountRef),
		from.Format(dateLayout), to.Format(dateLayout))

	var dtos []transactionDTO
	if err := c.get(ctx, endpoint, &dtos); err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}

	transactions := make([]RawTransaction, 0, len(dtos))
	for _, dto := range dtos {
		date, err := time.Parse(dateLayout, dto.Date)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: invalid date %q: %w", dto.Date, err)
		}
		transactions = append(transactions, RawTransaction{
			Text:      dto.Text,
			Peer:      dto.Peer,
			Amount:    dto.Amount,
			Date:      date,
			Reference: dto.CustomerReference,
		})
	}
	return transactions, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *HTTPClient) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
