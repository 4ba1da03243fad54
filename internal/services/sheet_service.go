package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/repositories"
	"hauler/internal/utils"

	"github.com/xuri/excelize/v2"
)

// SheetService handles the spreadsheet edges of the system: XLSX exports of
// settled work and parsing uploaded ticket batches into rows the clarifier
// and importer understand.
type SheetService struct {
	SettlementRepo repositories.SettlementRepository
	SummaryRepo    repositories.SummaryRepository
	RequestID      string
}

// ExportSettlements writes every settlement item of one week to a workbook.
func (s SheetService) ExportSettlements(orgID int64, weekEnding string) ([]byte, string, error) {
	items, err := s.SettlementRepo.ListForWeek(orgID, weekEnding)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Settlements"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Reference", "Driver ID", "Ticket #", "Quantity", "Rate", "Rate Value", "Amount", "Week Ending"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ReferenceNo)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.DriverID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.TicketNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Quantity.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.RateName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatMoney(item.RateValue))
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), utils.FormatMoney(item.Amount))
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.WeekEnding)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "exports", "settlements",
		fmt.Sprintf("week_ending=%s rows=%d", weekEnding, len(items)))
	return buf.Bytes(), fmt.Sprintf("settlements-%s.xlsx", weekEnding), nil
}

// ExportSummaries writes the per-driver weekly rollups for one week.
func (s SheetService) ExportSummaries(orgID int64, weekEnding string) ([]byte, string, error) {
	summaries, err := s.SummaryRepo.ListForWeek(orgID, weekEnding)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Weekly Summaries"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Driver ID", "Week Ending", "Total Quantity", "Total Amount", "Loads"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}
	for i, sum := range summaries {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sum.DriverID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sum.WeekEnding)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sum.TotalQuantity.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), utils.FormatMoney(sum.TotalAmount))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sum.LoadCount)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("weekly-summaries-%s.xlsx", weekEnding), nil
}

// ParseTicketSheet reads an uploaded workbook into batch rows. The first row
// is a header; columns are matched by name, not position, so scale-house
// exports with extra columns still parse.
func (s SheetService) ParseTicketSheet(r io.Reader) ([]models.BatchRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.ValidationError{Field: "file", Msg: "not a readable workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ValidationError{Field: "file", Msg: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, domain.ValidationError{Field: "file", Msg: "workbook has no data rows"}
	}

	col := headerIndex(rows[0])
	out := make([]models.BatchRow, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		if rowEmpty(raw) {
			continue
		}
		get := func(key string) string {
			idx, ok := col[key]
			if !ok {
				return ""
			}
			return cellAt(raw, idx)
		}
		br := models.BatchRow{}
		br.Line = i + 2 // 1-based, after the header
		br.TicketNumber = utils.NormalizeTicketNumber(get("ticket_number"))
		br.DriverID = parseIntCell(get("driver_id"))
		br.LoadID = parseIntCell(get("load_id"))
		br.Material = utils.TrimOrEmpty(get("material"))
		br.CustomerID = parseIntCell(get("customer_id"))
		br.JobID = parseIntCell(get("job_id"))
		br.TicketDate = utils.TrimOrEmpty(get("ticket_date"))
		br.Gross = parseFloatCell(get("gross"))
		br.Tare = parseFloatCell(get("tare"))
		br.Net = parseFloatCell(get("net"))
		br.Quantity = parseFloatCell(get("quantity"))
		br.BillRate = parseFloatCell(get("bill_rate"))
		out = append(out, br)
	}
	return out, nil
}

func headerIndex(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(utils.NormalizeSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if key != "" {
			idx[key] = i
		}
	}
	// common aliases from scale-house exports
	alias := map[string]string{
		"ticket":    "ticket_number",
		"ticket_no": "ticket_number",
		"gross_wt":  "gross",
		"tare_wt":   "tare",
		"net_wt":    "net",
		"qty":       "quantity",
		"tons":      "quantity",
		"rate":      "bill_rate",
		"date":      "ticket_date",
	}
	for from, to := range alias {
		if i, ok := idx[from]; ok {
			if _, exists := idx[to]; !exists {
				idx[to] = i
			}
		}
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFloatCell(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntCell(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
