package services

import (
	"hauler/internal/domain/models"
	"hauler/internal/utils"

	"github.com/shopspring/decimal"
)

// weightTolerance is the scale slop allowed between gross - tare and the
// recorded net before a row is flagged. A delta of exactly 0.01 passes.
var weightTolerance = decimal.RequireFromString("0.01")

// ClarifierService flags structurally inconsistent ticket rows before a
// batch is committed. It never touches the store and never mutates rows;
// re-running the same batch reproduces the same issues.
type ClarifierService struct {
	RequestID string
}

// Clarify checks each row and records at most one issue per row, the most
// severe first: net weight mismatch, then a lone gross/tare, then missing
// quantity or bill rate. Clean rows produce nothing.
func (s ClarifierService) Clarify(rows []models.TicketRow) []models.Issue {
	issues := []models.Issue{}
	for _, row := range rows {
		if issue := clarifyRow(row); issue != nil {
			issues = append(issues, *issue)
		}
	}
	if len(issues) > 0 {
		utils.LogEvent(s.RequestID, "clarifier", "clarify",
			"rows="+itoa(int64(len(rows)))+" issues="+itoa(int64(len(issues))))
	}
	return issues
}

func clarifyRow(row models.TicketRow) *models.Issue {
	switch {
	case row.Gross != nil && row.Tare != nil && row.Net != nil &&
		weightDelta(*row.Gross, *row.Tare, *row.Net).GreaterThan(weightTolerance):
		return rowIssue(row, models.IssueNetMismatch, "net weight mismatch")
	case (row.Gross != nil) != (row.Tare != nil):
		return rowIssue(row, models.IssueMissingGrossTare, "missing gross or tare weight")
	case row.Quantity == nil || row.BillRate == nil:
		return rowIssue(row, models.IssueMissingQtyRate, "missing quantity or rate")
	default:
		return nil
	}
}

// weightDelta computes |gross - tare - net| in decimal; scale weights are
// two-decimal figures and float64 subtraction alone misjudges the boundary.
func weightDelta(gross, tare, net float64) decimal.Decimal {
	return decimal.NewFromFloat(gross).
		Sub(decimal.NewFromFloat(tare)).
		Sub(decimal.NewFromFloat(net)).
		Abs()
}

func rowIssue(row models.TicketRow, code, msg string) *models.Issue {
	return &models.Issue{
		Line:         row.Line,
		TicketNumber: row.TicketNumber,
		Code:         code,
		Msg:          msg,
	}
}
