package services

import (
	"bytes"
	"fmt"
	"strings"

	"hauler/internal/domain/models"
	"hauler/internal/repositories"
	"hauler/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// StatementService renders the weekly settlement statement a driver gets
// paid against.
type StatementService struct {
	DriverRepo     repositories.DriverRepository
	SettlementRepo repositories.SettlementRepository
	SummaryRepo    repositories.SummaryRepository
	OrgName        string
	RequestID      string

	// Loader overrides data loading in tests.
	Loader func(orgID, driverID int64, weekEnding string) (statementData, error)
}

type statementData struct {
	Driver  models.Driver
	Items   []models.SettlementItem
	Summary models.WeeklySummary
}

// GenerateStatement builds the PDF for one driver and settlement week. The
// summary is recomputed before rendering so the statement never shows a
// stale total.
func (s StatementService) GenerateStatement(orgID, driverID int64, weekEnding string) ([]byte, string, error) {
	data, err := s.load(orgID, driverID, weekEnding)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "statements", "generate",
		fmt.Sprintf("driver_id=%d week_ending=%s items=%d", driverID, weekEnding, len(data.Items)))
	return buildStatementPDF(s.OrgName, weekEnding, data)
}

func (s StatementService) load(orgID, driverID int64, weekEnding string) (statementData, error) {
	if s.Loader != nil {
		return s.Loader(orgID, driverID, weekEnding)
	}
	var out statementData

	driver, err := s.DriverRepo.GetByID(orgID, driverID)
	if err != nil {
		return out, err
	}
	items, err := s.SettlementRepo.ListForDriverWeek(orgID, driverID, weekEnding)
	if err != nil {
		return out, err
	}
	summary, err := s.SummaryRepo.Recompute(orgID, driverID, weekEnding)
	if err != nil {
		return out, err
	}

	out.Driver = driver
	out.Items = items
	out.Summary = summary
	return out, nil
}

func buildStatementPDF(orgName, weekEnding string, d statementData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Driver Settlement Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, orgName)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Driver Settlement Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Driver      : %s", safe(d.Driver.Name, "-")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Week ending : %s", weekEnding))
	pdf.Ln(10)

	// table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Ref", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Ticket #", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Rate", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Rate Value", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range d.Items {
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.ReferenceNo%1000000), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, item.TicketNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, item.RateName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, utils.FormatMoney(item.RateValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, utils.FormatMoney(item.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, d.Summary.TotalQuantity.String(), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, utils.FormatMoney(d.Summary.TotalAmount), "1", 1, "R", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Loads settled: %d. Totals are recomputed from settlement items at generation time.", d.Summary.LoadCount), "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 5, fmt.Sprintf("Generated at %s", utils.FormatDateTime(utils.NowUTC())))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("statement-%d-%s.pdf", d.Driver.ID, weekEnding)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
