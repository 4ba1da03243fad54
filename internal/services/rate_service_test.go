package services

import (
	"testing"
	"time"

	"hauler/internal/domain"
	"hauler/internal/domain/models"

	"github.com/shopspring/decimal"
)

func rateAt(id int64, scope string, created time.Time) models.Rate {
	return models.Rate{
		ID:        id,
		OrgID:     1,
		ScopeType: scope,
		RateName:  scope + " rate",
		RateValue: decimal.RequireFromString("10.00"),
		CreatedAt: created,
	}
}

func TestSelectRateEmptySetIsConfigError(t *testing.T) {
	_, err := SelectRate(nil)
	if err == nil {
		t.Fatalf("expected error for empty candidate set")
	}
	if !domain.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSelectRatePrecedenceOrder(t *testing.T) {
	now := time.Now()
	candidates := []models.Rate{
		rateAt(1, models.ScopeDefault, now),
		rateAt(2, models.ScopeCustomer, now),
		rateAt(3, models.ScopeMaterial, now),
		rateAt(4, models.ScopeDriver, now),
	}
	got, err := SelectRate(candidates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 4 {
		t.Fatalf("driver scope should win, got rate %d (%s)", got.ID, got.ScopeType)
	}

	// without a driver rate, material beats customer and default
	got, err = SelectRate(candidates[:3])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("material scope should win, got rate %d (%s)", got.ID, got.ScopeType)
	}

	// only a default left
	got, err = SelectRate(candidates[:1])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("default rate expected, got rate %d", got.ID)
	}
}

func TestSelectRateTieBrokenByRecency(t *testing.T) {
	older := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	candidates := []models.Rate{
		rateAt(1, models.ScopeDriver, older),
		rateAt(2, models.ScopeDriver, newer),
	}
	got, err := SelectRate(candidates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("more recently created rate should win, got rate %d", got.ID)
	}
}

func TestSelectRateSameTimestampFallsBackToID(t *testing.T) {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	candidates := []models.Rate{
		rateAt(7, models.ScopeDriver, at),
		rateAt(9, models.ScopeDriver, at),
	}
	got, err := SelectRate(candidates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != 9 {
		t.Fatalf("highest id should win on identical timestamps, got %d", got.ID)
	}
}

func TestSelectRateDeterministic(t *testing.T) {
	now := time.Now()
	candidates := []models.Rate{
		rateAt(1, models.ScopeCustomer, now),
		rateAt(2, models.ScopeMaterial, now.Add(-time.Hour)),
		rateAt(3, models.ScopeMaterial, now),
	}
	first, err := SelectRate(candidates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := SelectRate(candidates)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("selection not deterministic: got %d then %d", first.ID, again.ID)
		}
	}
}

func TestSelectRateDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	candidates := []models.Rate{
		rateAt(1, models.ScopeDefault, now),
		rateAt(2, models.ScopeDriver, now),
	}
	if _, err := SelectRate(candidates); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if candidates[0].ID != 1 || candidates[1].ID != 2 {
		t.Fatalf("candidate slice was reordered")
	}
}
