package services

import (
	"fmt"

	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/repositories"
	"hauler/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketService stores tickets and runs uploaded batches through the
// clarifier before they can reach settlement.
type TicketService struct {
	TicketRepo repositories.TicketRepository
	Clarifier  ClarifierService
	RequestID  string
}

// ImportResult reports one batch import: which rows were flagged and the
// batch ID the stored tickets carry.
type ImportResult struct {
	BatchID string          `json:"batchId"`
	Created int             `json:"created"`
	Flagged int             `json:"flagged"`
	Issues  []models.Issue  `json:"issues"`
	Tickets []models.Ticket `json:"tickets"`
}

// ImportBatch clarifies the rows, stores every row as a ticket (flagged rows
// land with needs_review set so they stay out of settlement until someone
// looks), and returns the issues alongside the batch ID.
func (s TicketService) ImportBatch(orgID int64, rows []models.BatchRow) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, domain.ValidationError{Field: "rows", Msg: "batch is empty"}
	}

	ticketRows := make([]models.TicketRow, len(rows))
	for i, r := range rows {
		ticketRows[i] = r.TicketRow
	}
	issues := s.Clarifier.Clarify(ticketRows)

	flaggedLines := map[int]bool{}
	for _, issue := range issues {
		flaggedLines[issue.Line] = true
	}

	batchID := uuid.NewString()
	tickets := make([]models.Ticket, 0, len(rows))
	for _, r := range rows {
		if err := validateBatchRow(r); err != nil {
			return ImportResult{}, err
		}
		tickets = append(tickets, models.Ticket{
			OrgID:        orgID,
			DriverID:     r.DriverID,
			LoadID:       r.LoadID,
			TicketNumber: utils.NormalizeTicketNumber(r.TicketNumber),
			Material:     r.Material,
			NetQuantity:  quantityOf(r),
			CustomerID:   r.CustomerID,
			JobID:        r.JobID,
			TicketDate:   r.TicketDate,
			GrossWeight:  r.Gross,
			TareWeight:   r.Tare,
			BillRate:     r.BillRate,
			BatchID:      batchID,
			NeedsReview:  flaggedLines[r.Line],
		})
	}

	created, err := s.TicketRepo.CreateBatch(tickets)
	if err != nil {
		return ImportResult{}, err
	}

	utils.LogEvent(s.RequestID, "tickets", "import",
		fmt.Sprintf("batch_id=%s created=%d flagged=%d", batchID, len(created), len(flaggedLines)))

	return ImportResult{
		BatchID: batchID,
		Created: len(created),
		Flagged: len(flaggedLines),
		Issues:  issues,
		Tickets: created,
	}, nil
}

// Create stores one manually entered ticket.
func (s TicketService) Create(orgID int64, t models.Ticket) (models.Ticket, error) {
	if t.DriverID <= 0 {
		return models.Ticket{}, domain.ValidationError{Field: "driver_id", Msg: "driver is required"}
	}
	if t.LoadID <= 0 {
		return models.Ticket{}, domain.ValidationError{Field: "load_id", Msg: "load is required"}
	}
	if utils.TrimOrEmpty(t.TicketNumber) == "" {
		return models.Ticket{}, domain.ValidationError{Field: "ticket_number", Msg: "ticket number is required"}
	}
	if _, err := utils.ParseDate(t.TicketDate); err != nil {
		return models.Ticket{}, domain.ValidationError{Field: "ticket_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	t.OrgID = orgID
	t.TicketNumber = utils.NormalizeTicketNumber(t.TicketNumber)
	return s.TicketRepo.Create(t)
}

func validateBatchRow(r models.BatchRow) error {
	if utils.TrimOrEmpty(r.TicketNumber) == "" {
		return domain.ValidationError{Field: "ticket_number", Msg: fmt.Sprintf("line %d: ticket number is required", r.Line)}
	}
	if r.DriverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: fmt.Sprintf("line %d: driver is required", r.Line)}
	}
	if utils.TrimOrEmpty(r.TicketDate) == "" {
		return domain.ValidationError{Field: "ticket_date", Msg: fmt.Sprintf("line %d: ticket date is required", r.Line)}
	}
	return nil
}

// quantityOf prefers the explicit quantity column, then the recorded net
// weight. Rows with neither were already flagged by the clarifier.
func quantityOf(r models.BatchRow) decimal.Decimal {
	if r.Quantity != nil {
		return decimal.NewFromFloat(*r.Quantity)
	}
	if r.Net != nil {
		return decimal.NewFromFloat(*r.Net)
	}
	return decimal.Zero
}
