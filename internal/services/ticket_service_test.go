package services

import (
	"testing"

	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func batchRow(line int, ticket string) models.BatchRow {
	return models.BatchRow{
		TicketRow: models.TicketRow{
			Line:         line,
			TicketNumber: ticket,
			Quantity:     fp(12),
			BillRate:     fp(15),
		},
		DriverID:   7,
		LoadID:     3,
		Material:   "gravel",
		TicketDate: "2025-03-12",
	}
}

func TestImportBatchFlagsAndStores(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := TicketService{TicketRepo: repositories.TicketRepository{DB: db}}

	clean := batchRow(1, "T-100")
	bad := batchRow(2, "T-101")
	bad.Quantity = nil
	bad.BillRate = nil
	bad.Net = nil

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO tickets")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(21, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectCommit()

	result, err := svc.ImportBatch(1, []models.BatchRow{clean, bad})
	if err != nil {
		t.Fatalf("ImportBatch returned error: %v", err)
	}
	if result.BatchID == "" {
		t.Fatalf("expected a batch ID")
	}
	if result.Created != 2 || result.Flagged != 1 {
		t.Fatalf("created=%d flagged=%d, want 2 and 1", result.Created, result.Flagged)
	}
	if len(result.Issues) != 1 || result.Issues[0].Line != 2 {
		t.Fatalf("issues = %+v, want one issue on line 2", result.Issues)
	}
	if result.Tickets[0].NeedsReview || !result.Tickets[1].NeedsReview {
		t.Fatalf("needs_review flags wrong: %+v", result.Tickets)
	}
	if result.Tickets[0].BatchID != result.BatchID {
		t.Fatalf("stored tickets must carry the batch ID")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportBatchRejectsEmpty(t *testing.T) {
	svc := TicketService{}
	_, err := svc.ImportBatch(1, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportBatchStopsOnBadRow(t *testing.T) {
	svc := TicketService{}
	row := batchRow(1, "")
	_, err := svc.ImportBatch(1, []models.BatchRow{row})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportBatchNormalizesTicketNumbers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := TicketService{TicketRepo: repositories.TicketRepository{DB: db}}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO tickets")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectCommit()

	result, err := svc.ImportBatch(1, []models.BatchRow{batchRow(1, "  t-200 ")})
	if err != nil {
		t.Fatalf("ImportBatch returned error: %v", err)
	}
	if result.Tickets[0].TicketNumber != "T-200" {
		t.Fatalf("ticket number = %q, want T-200", result.Tickets[0].TicketNumber)
	}
}

func TestImportBatchQuantityFallsBackToNet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := TicketService{TicketRepo: repositories.TicketRepository{DB: db}}

	row := batchRow(1, "T-300")
	row.Quantity = nil
	row.Net = fp(8.5)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO tickets")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectCommit()

	result, err := svc.ImportBatch(1, []models.BatchRow{row})
	if err != nil {
		t.Fatalf("ImportBatch returned error: %v", err)
	}
	if got := result.Tickets[0].NetQuantity.String(); got != "8.5" {
		t.Fatalf("quantity = %s, want 8.5", got)
	}
}
