package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dkblytics/internal/models"
	"dkblytics/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestTransactionCreate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		result, err := svc.Create("REWE SAGT DANKE", "REWE Markt", "Giro",
			decimal.RequireFromString("-42.50"), testutil.Date(2024, time.March, 15), strPtr("INV-1"))
		testutil.AssertNoError(t, err)

		if !result.Inserted {
			t.Fatal("expected transaction to be inserted")
		}
		if result.Transaction.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if result.Transaction.Fingerprint == "" {
			t.Fatal("expected fingerprint to be set")
		}
	})

	t.Run("duplicate_is_not_an_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		amount := decimal.RequireFromString("-9.99")
		date := testutil.Date(2024, time.April, 1)

		first, err := svc.Create("SPOTIFY", "Spotify AB", "Giro", amount, date, nil)
		testutil.AssertNoError(t, err)
		if !first.Inserted {
			t.Fatal("expected first insert to succeed")
		}

		second, err := svc.Create("SPOTIFY", "Spotify AB", "Giro", amount, date, nil)
		testutil.AssertNoError(t, err)
		if second.Inserted {
			t.Fatal("expected second insert to report duplicate")
		}
		if second.Transaction.ID != first.Transaction.ID {
			t.Errorf("expected duplicate to return stored row %d, got %d", first.Transaction.ID, second.Transaction.ID)
		}

		var count int64
		if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one stored row, got %d", count)
		}
	})

	t.Run("reference_presence_distinguishes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		amount := decimal.RequireFromString("12.00")
		date := testutil.Date(2024, time.May, 2)

		withNil, err := svc.Create("text", "entity", "Giro", amount, date, nil)
		testutil.AssertNoError(t, err)
		withEmpty, err := svc.Create("text", "entity", "Giro", amount, date, strPtr(""))
		testutil.AssertNoError(t, err)

		if !withNil.Inserted || !withEmpty.Inserted {
			t.Error("nil and empty reference must be distinct transactions")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		amount := decimal.RequireFromString("1.00")
		date := testutil.Date(2024, time.May, 2)

		_, err := svc.Create("", "entity", "Giro", amount, date, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create("text", "", "Giro", amount, date, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create("text", "entity", "", amount, date, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create("text", "entity", "Giro", amount, time.Time{}, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestTransactionGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		stored := testutil.CreateTestTransaction(t, db, "Giro", decimal.RequireFromString("-5.00"))

		got, err := svc.GetByID(stored.ID)
		testutil.AssertNoError(t, err)
		if got.Text != stored.Text {
			t.Errorf("expected text %q, got %q", stored.Text, got.Text)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.GetByID(99999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionList(t *testing.T) {
	setup := func(t *testing.T) (TransactionServicer, func()) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db)

		seed := []struct {
			text    string
			entity  string
			account string
			date    time.Time
		}{
			{"REWE SAGT DANKE", "REWE Markt", "Giro", testutil.Date(2024, time.January, 10)},
			{"EDEKA DANKE", "EDEKA", "Giro", testutil.Date(2024, time.February, 20)},
			{"MIETE FEBRUAR", "Hausverwaltung", "Tagesgeld", testutil.Date(2024, time.February, 1)},
		}
		for _, s := range seed {
			_, err := svc.Create(s.text, s.entity, s.account, decimal.RequireFromString("-10.00"), s.date, nil)
			testutil.AssertNoError(t, err)
		}
		return svc, func() { testutil.TeardownTestDB(t, db) }
	}

	t.Run("no_filter_returns_all", func(t *testing.T) {
		svc, teardown := setup(t)
		defer teardown()

		got, err := svc.List(TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(got) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(got))
		}
	})

	t.Run("text_substring", func(t *testing.T) {
		svc, teardown := setup(t)
		defer teardown()

		got, err := svc.List(TransactionFilter{Text: "DANKE"})
		testutil.AssertNoError(t, err)
		if len(got) != 2 {
			t.Errorf("expected 2 transactions matching substring, got %d", len(got))
		}
	})

	t.Run("account_exact", func(t *testing.T) {
		svc, teardown := setup(t)
		defer teardown()

		got, err := svc.List(TransactionFilter{Account: "Tagesgeld"})
		testutil.AssertNoError(t, err)
		if len(got) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(got))
		}
		if got[0].Text != "MIETE FEBRUAR" {
			t.Errorf("unexpected transaction %q", got[0].Text)
		}
	})

	t.Run("date_range", func(t *testing.T) {
		svc, teardown := setup(t)
		defer teardown()

		min := testutil.Date(2024, time.February, 1)
		max := testutil.Date(2024, time.February, 28)
		got, err := svc.List(TransactionFilter{MinDate: &min, MaxDate: &max})
		testutil.AssertNoError(t, err)
		if len(got) != 2 {
			t.Errorf("expected 2 transactions in February, got %d", len(got))
		}
	})
}

func TestTransactionListWithCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)

	_, err := svc.Create("REWE SAGT DANKE", "REWE Markt", "Giro",
		decimal.RequireFromString("-42.50"), testutil.Date(2024, time.March, 15), nil)
	testutil.AssertNoError(t, err)
	_, err = svc.Create("UNKNOWN SHOP", "Somewhere", "Giro",
		decimal.RequireFromString("-1.00"), testutil.Date(2024, time.March, 16), nil)
	testutil.AssertNoError(t, err)

	testutil.CreateTestCategoryRule(t, db, "REWE SAGT DANKE", "REWE Markt", strPtr("groceries"))

	rows, err := svc.ListWithCategories(TransactionFilter{})
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	byText := make(map[string]*string, len(rows))
	for i := range rows {
		byText[rows[i].Text] = rows[i].Category
	}
	if cat := byText["REWE SAGT DANKE"]; cat == nil || *cat != "groceries" {
		t.Errorf("expected category groceries, got %v", cat)
	}
	if cat := byText["UNKNOWN SHOP"]; cat != nil {
		t.Errorf("expected nil category for unmatched pair, got %q", *cat)
	}
}
