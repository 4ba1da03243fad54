package services

import (
	"bytes"
	"testing"

	"hauler/internal/domain"

	"github.com/xuri/excelize/v2"
)

func ticketWorkbook(t *testing.T, header []string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseTicketSheetByHeaderName(t *testing.T) {
	buf := ticketWorkbook(t,
		[]string{"Driver ID", "Load ID", "Ticket Number", "Material", "Ticket Date", "Gross", "Tare", "Net", "Quantity", "Bill Rate"},
		[][]any{
			{7, 3, "t-100", "gravel", "2025-03-12", 100.0, 20.0, 80.0, 80.0, 15.5},
		})

	svc := SheetService{}
	rows, err := svc.ParseTicketSheet(buf)
	if err != nil {
		t.Fatalf("ParseTicketSheet returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.Line != 2 {
		t.Fatalf("line = %d, want 2", r.Line)
	}
	if r.TicketNumber != "T-100" {
		t.Fatalf("ticket number = %q, want T-100", r.TicketNumber)
	}
	if r.DriverID != 7 || r.LoadID != 3 {
		t.Fatalf("ids wrong: %+v", r)
	}
	if r.Gross == nil || *r.Gross != 100 || r.Tare == nil || *r.Tare != 20 {
		t.Fatalf("weights wrong: %+v", r)
	}
	if r.BillRate == nil || *r.BillRate != 15.5 {
		t.Fatalf("bill rate wrong: %+v", r)
	}
}

func TestParseTicketSheetAliases(t *testing.T) {
	buf := ticketWorkbook(t,
		[]string{"Driver ID", "Ticket No", "Date", "Gross Wt", "Tare Wt", "Tons", "Rate"},
		[][]any{
			{7, "T-200", "2025-03-12", 100.0, 20.0, 80.0, 15.0},
		})

	svc := SheetService{}
	rows, err := svc.ParseTicketSheet(buf)
	if err != nil {
		t.Fatalf("ParseTicketSheet returned error: %v", err)
	}
	r := rows[0]
	if r.TicketNumber != "T-200" || r.TicketDate != "2025-03-12" {
		t.Fatalf("aliases not applied: %+v", r)
	}
	if r.Quantity == nil || *r.Quantity != 80 {
		t.Fatalf("tons alias not mapped to quantity: %+v", r)
	}
	if r.BillRate == nil || *r.BillRate != 15 {
		t.Fatalf("rate alias not mapped: %+v", r)
	}
}

func TestParseTicketSheetSkipsBlankRows(t *testing.T) {
	buf := ticketWorkbook(t,
		[]string{"Driver ID", "Ticket Number", "Ticket Date"},
		[][]any{
			{7, "T-300", "2025-03-12"},
			{"", "", ""},
			{8, "T-301", "2025-03-13"},
		})

	svc := SheetService{}
	rows, err := svc.ParseTicketSheet(buf)
	if err != nil {
		t.Fatalf("ParseTicketSheet returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1].Line != 4 {
		t.Fatalf("line = %d, want 4 (blank row keeps numbering)", rows[1].Line)
	}
}

func TestParseTicketSheetMissingColumnsLeaveNil(t *testing.T) {
	buf := ticketWorkbook(t,
		[]string{"Driver ID", "Ticket Number", "Ticket Date"},
		[][]any{
			{7, "T-400", "2025-03-12"},
		})

	svc := SheetService{}
	rows, err := svc.ParseTicketSheet(buf)
	if err != nil {
		t.Fatalf("ParseTicketSheet returned error: %v", err)
	}
	r := rows[0]
	if r.Gross != nil || r.Tare != nil || r.Net != nil || r.Quantity != nil || r.BillRate != nil {
		t.Fatalf("absent columns must stay nil: %+v", r)
	}
}

func TestParseTicketSheetRejectsGarbage(t *testing.T) {
	svc := SheetService{}
	_, err := svc.ParseTicketSheet(bytes.NewBufferString("not a workbook"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
