package fingerprint

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestComputeDeterminism(t *testing.T) {
	amount := decimal.RequireFromString("-42.50")
	d := date(2024, time.March, 15)
	ref := strPtr("INV-123")

	first := Compute("REWE SAGT DANKE", "REWE Markt", "Giro", amount, d, ref)
	second := Compute("REWE SAGT DANKE", "REWE Markt", "Giro", amount, d, ref)

	if first != second {
		t.Errorf("expected identical fingerprints, got %s and %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(first))
	}
}

func TestComputeFieldSensitivity(t *testing.T) {
	base := func() string {
		return Compute("text", "entity", "account", decimal.RequireFromString("10.00"), date(2024, time.January, 1), strPtr("ref"))
	}

	variants := map[string]string{
		"text":      Compute("other", "entity", "account", decimal.RequireFromString("10.00"), date(2024, time.January, 1), strPtr("ref")),
		"entity":    Compute("text", "other", "account", decimal.RequireFromString("10.00"), date(2024, time.January, 1), strPtr("ref")),
		"account":   Compute("text", "entity", "other", decimal.RequireFromString("10.00"), date(2024, time.January, 1), strPtr("ref")),
		"amount":    Compute("text", "entity", "account", decimal.RequireFromString("10.01"), date(2024, time.January, 1), strPtr("ref")),
		"date":      Compute("text", "entity", "account", decimal.RequireFromString("10.00"), date(2024, time.January, 2), strPtr("ref")),
		"reference": Compute("text", "entity", "account", decimal.RequireFromString("10.00"), date(2024, time.January, 1), strPtr("other")),
	}

	for field, fp := range variants {
		if fp == base() {
			t.Errorf("changing %s did not change the fingerprint", field)
		}
	}
}

func TestComputeReferenceAbsence(t *testing.T) {
	amount := decimal.RequireFromString("10.00")
	d := date(2024, time.January, 1)

	nilRef := Compute("text", "entity", "account", amount, d, nil)
	emptyRef := Compute("text", "entity", "account", amount, d, strPtr(""))
	someRef := Compute("text", "entity", "account", amount, d, strPtr("X"))

	if nilRef == emptyRef {
		t.Error("nil and empty reference must fingerprint distinctly")
	}
	if nilRef == someRef {
		t.Error("nil and non-empty reference must fingerprint distinctly")
	}
	if emptyRef == someRef {
		t.Error("empty and non-empty reference must fingerprint distinctly")
	}
}

func TestComputeCanonicalAmount(t *testing.T) {
	d := date(2024, time.January, 1)

	trailing := Compute("text", "entity", "account", decimal.RequireFromString("1.10"), d, nil)
	minimal := Compute("text", "entity", "account", decimal.RequireFromString("1.1"), d, nil)

	if trailing != minimal {
		t.Error("equal amounts with differing formatting must fingerprint identically")
	}
}

func TestComputeTimezoneIndependentDate(t *testing.T) {
	amount := decimal.RequireFromString("10.00")
	berlin := time.FixedZone("CET", 3600)

	utc := Compute("text", "entity", "account", amount, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), nil)
	cet := Compute("text", "entity", "account", amount, time.Date(2024, time.June, 1, 23, 59, 0, 0, berlin), nil)

	if utc != cet {
		t.Error("same calendar day in different zones must fingerprint identically")
	}
}

func TestComputeNoDelimiterCollision(t *testing.T) {
	amount := decimal.RequireFromString("10.00")
	d := date(2024, time.January, 1)

	// Shifting a boundary between adjacent fields must not collide thanks to
	// length prefixes.
	a := Compute("ab", "c", "account", amount, d, nil)
	b := Compute("a", "bc", "account", amount, d, nil)

	if a == b {
		t.Error("field boundary shift produced a collision")
	}
}
