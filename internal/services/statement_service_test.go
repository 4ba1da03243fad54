package services

import (
	"testing"

	"hauler/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestStatementServiceGenerate(t *testing.T) {
	loader := func(orgID, driverID int64, weekEnding string) (statementData, error) {
		return statementData{
			Driver: models.Driver{ID: driverID, OrgID: orgID, Name: "Test Driver"},
			Items: []models.SettlementItem{
				{
					ReferenceNo:  1001,
					TicketNumber: "T-100",
					RateName:     "Driver Haul Rate",
					Quantity:     decimal.RequireFromString("10"),
					RateValue:    decimal.RequireFromString("15.00"),
					Amount:       decimal.RequireFromString("150.00"),
					WeekEnding:   weekEnding,
				},
			},
			Summary: models.WeeklySummary{
				OrgID:         orgID,
				DriverID:      driverID,
				WeekEnding:    weekEnding,
				TotalQuantity: decimal.RequireFromString("10"),
				TotalAmount:   decimal.RequireFromString("150.00"),
				LoadCount:     1,
			},
		}, nil
	}

	svc := StatementService{OrgName: "Hauler Test Co", Loader: loader}

	pdf, filename, err := svc.GenerateStatement(1, 7, "2025-03-14")
	if err != nil {
		t.Fatalf("GenerateStatement returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateStatement returned empty data")
	}
	if filename != "statement-7-2025-03-14.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestStatementServiceHandlesEmptyWeek(t *testing.T) {
	loader := func(orgID, driverID int64, weekEnding string) (statementData, error) {
		return statementData{
			Driver: models.Driver{ID: driverID, OrgID: orgID, Name: "Test Driver"},
			Summary: models.WeeklySummary{
				OrgID:      orgID,
				DriverID:   driverID,
				WeekEnding: weekEnding,
			},
		}, nil
	}

	svc := StatementService{OrgName: "Hauler Test Co", Loader: loader}

	pdf, _, err := svc.GenerateStatement(1, 7, "2025-03-21")
	if err != nil {
		t.Fatalf("GenerateStatement returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected a statement even with no settled loads")
	}
}
