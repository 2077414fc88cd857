package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dkblytics/internal/errors"
	"dkblytics/internal/models"
	"dkblytics/internal/services"
)

type mockAccountService struct {
	upsertFn        func(name string, balance decimal.Decimal) (*models.Account, error)
	getByNameFn     func(name string) (*models.Account, error)
	listFn          func() ([]models.Account, error)
	updateBalanceFn func(name string, balance decimal.Decimal) (*models.Account, error)
}

func (m *mockAccountService) Upsert(name string, balance decimal.Decimal) (*models.Account, error) {
	if m.upsertFn != nil {
		return m.upsertFn(name, balance)
	}
	return &models.Account{Name: name, Balance: balance}, nil
}

func (m *mockAccountService) GetByName(name string) (*models.Account, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(name)
	}
	return &models.Account{Name: name}, nil
}

func (m *mockAccountService) List() ([]models.Account, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.Account{}, nil
}

func (m *mockAccountService) UpdateBalance(name string, balance decimal.Decimal) (*models.Account, error) {
	if m.updateBalanceFn != nil {
		return m.updateBalanceFn(name, balance)
	}
	return &models.Account{Name: name, Balance: balance}, nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(svc *mockAccountService) *gin.Engine {
	router := gin.New()
	handler := NewAccountHandler(svc)
	router.POST("/accounts", handler.UpsertAccount)
	router.GET("/accounts", handler.GetAccounts)
	router.GET("/accounts/:name", handler.GetAccountByName)
	router.PATCH("/accounts/:name", handler.UpdateBalance)
	return router
}

func TestUpsertAccount(t *testing.T) {
	t.Run("stores account and returns 201", func(t *testing.T) {
		svc := &mockAccountService{
			upsertFn: func(name string, balance decimal.Decimal) (*models.Account, error) {
				if name != "Giro" {
					t.Errorf("expected name Giro, got %q", name)
				}
				if !balance.Equal(decimal.RequireFromString("1250.75")) {
					t.Errorf("unexpected balance %s", balance)
				}
				return &models.Account{Name: name, Balance: balance}, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPost, "/accounts", `{"name":"Giro","balance":"1250.75"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseJSON(t, rec)
		account, ok := body["account"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected account object in response, got %v", body)
		}
		if account["name"] != "Giro" {
			t.Errorf("expected account name Giro, got %v", account["name"])
		}
	})

	t.Run("rejects missing balance", func(t *testing.T) {
		svc := &mockAccountService{
			upsertFn: func(string, decimal.Decimal) (*models.Account, error) {
				t.Fatal("service must not be called for a payload without a balance")
				return nil, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPost, "/accounts", `{"name":"Giro"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("accepts explicit zero balance", func(t *testing.T) {
		svc := &mockAccountService{
			upsertFn: func(name string, balance decimal.Decimal) (*models.Account, error) {
				if !balance.IsZero() {
					t.Errorf("expected zero balance, got %s", balance)
				}
				return &models.Account{Name: name, Balance: balance}, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPost, "/accounts", `{"name":"Giro","balance":0}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		router := setupAccountRouter(&mockAccountService{})

		rec := doRequest(router, http.MethodPost, "/accounts", `{"balance":"10.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		svc := &mockAccountService{
			upsertFn: func(string, decimal.Decimal) (*models.Account, error) {
				return nil, apperrors.ErrNegativeBalance
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPost, "/accounts", `{"name":"Giro","balance":"-1.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestGetAccountByName(t *testing.T) {
	t.Run("returns account", func(t *testing.T) {
		svc := &mockAccountService{
			getByNameFn: func(name string) (*models.Account, error) {
				return &models.Account{Name: name, Balance: decimal.RequireFromString("99.50")}, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodGet, "/accounts/Giro", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := parseJSON(t, rec)
		account := body["account"].(map[string]interface{})
		if account["balance"] != "99.5" {
			t.Errorf("expected balance 99.5, got %v", account["balance"])
		}
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		svc := &mockAccountService{
			getByNameFn: func(string) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodGet, "/accounts/Nope", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestGetAccounts(t *testing.T) {
	svc := &mockAccountService{
		listFn: func() ([]models.Account, error) {
			return []models.Account{
				{Name: "Giro", Balance: decimal.RequireFromString("10.00")},
				{Name: "Depot", Balance: decimal.RequireFromString("20.00")},
			}, nil
		},
	}
	router := setupAccountRouter(svc)

	rec := doRequest(router, http.MethodGet, "/accounts", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := parseJSON(t, rec)
	accounts, ok := body["accounts"].([]interface{})
	if !ok {
		t.Fatalf("expected accounts array, got %v", body)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}
}

func TestUpdateBalance(t *testing.T) {
	t.Run("updates existing account", func(t *testing.T) {
		svc := &mockAccountService{
			updateBalanceFn: func(name string, balance decimal.Decimal) (*models.Account, error) {
				return &models.Account{Name: name, Balance: balance}, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPatch, "/accounts/Giro", `{"balance":"500.00"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		svc := &mockAccountService{
			updateBalanceFn: func(string, decimal.Decimal) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPatch, "/accounts/Nope", `{"balance":"500.00"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		svc := &mockAccountService{
			updateBalanceFn: func(string, decimal.Decimal) (*models.Account, error) {
				t.Fatal("service must not be called for a payload without a balance")
				return nil, nil
			},
		}
		router := setupAccountRouter(svc)

		rec := doRequest(router, http.MethodPatch, "/accounts/Giro", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
