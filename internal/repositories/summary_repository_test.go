package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectRecompute(mock sqlmock.Sqlmock, qty, amount string, count int) {
	mock.ExpectQuery("FROM settlement_items").
		WillReturnRows(sqlmock.NewRows([]string{"qty", "amount", "count"}).AddRow(qty, amount, count))
	mock.ExpectExec("INSERT INTO weekly_summaries").
		WillReturnResult(sqlmock.NewResult(1, 1))
}

func TestRecomputeIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRecompute(mock, "25.5", "382.50", 3)
	expectRecompute(mock, "25.5", "382.50", 3)

	repo := SummaryRepository{DB: db}
	first, err := repo.Recompute(1, 7, "2025-03-14")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := repo.Recompute(1, 7, "2025-03-14")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !first.TotalAmount.Equal(second.TotalAmount) ||
		!first.TotalQuantity.Equal(second.TotalQuantity) ||
		first.LoadCount != second.LoadCount {
		t.Fatalf("recompute not idempotent: %+v vs %+v", first, second)
	}
	if first.TotalAmount.StringFixed(2) != "382.50" {
		t.Fatalf("total amount = %s, want 382.50", first.TotalAmount.StringFixed(2))
	}
}

func TestRecomputeEmptyWeekIsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRecompute(mock, "0", "0", 0)

	repo := SummaryRepository{DB: db}
	sum, err := repo.Recompute(1, 7, "2025-03-14")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sum.LoadCount != 0 || sum.TotalAmount.StringFixed(2) != "0.00" {
		t.Fatalf("empty week should be zeroed: %+v", sum)
	}
}

func TestRecomputeRoundsTotalAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectRecompute(mock, "10", "100.005", 2)

	repo := SummaryRepository{DB: db}
	sum, err := repo.Recompute(1, 7, "2025-03-14")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sum.TotalAmount.StringFixed(2) != "100.01" {
		t.Fatalf("total should round half away from zero, got %s", sum.TotalAmount.StringFixed(2))
	}
}
