package repositories

import (
	"testing"

	"hauler/internal/domain"
	"hauler/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

func testItem() models.SettlementItem {
	return models.SettlementItem{
		OrgID:        1,
		ReferenceNo:  9001,
		DriverID:     7,
		TicketID:     42,
		TicketNumber: "T-100",
		Quantity:     decimal.RequireFromString("10"),
		RateID:       5,
		RateName:     "Driver Haul Rate",
		RateValue:    decimal.RequireFromString("15.00"),
		Amount:       decimal.RequireFromString("150.00"),
		WeekEnding:   "2025-03-14",
	}
}

func TestSettlementInsertReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO settlement_items").
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := SettlementRepository{DB: db}
	inserted, err := repo.Insert(testItem())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inserted.ID != 11 {
		t.Fatalf("id = %d, want 11", inserted.ID)
	}
}

func TestSettlementInsertDuplicateKeyMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO settlement_items").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7-T-100' for key 'uq_settlement_driver_ticket'"})

	repo := SettlementRepository{DB: db}
	_, err = repo.Insert(testItem())
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSettlementInsertOtherMySQLErrorPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO settlement_items").
		WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'settlement_items' doesn't exist"})

	repo := SettlementRepository{DB: db}
	_, err = repo.Insert(testItem())
	if err == nil {
		t.Fatalf("expected error")
	}
	if domain.IsConflict(err) {
		t.Fatalf("non-duplicate errors must not read as conflicts: %v", err)
	}
}

func TestExistsForTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1), int64(7), "T-100").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := SettlementRepository{DB: db}
	exists, err := repo.ExistsForTicket(1, 7, "T-100")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !exists {
		t.Fatalf("expected exists=true")
	}
}
