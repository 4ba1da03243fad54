package services

import (
	"strconv"
	"time"

	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/repositories"
	"hauler/internal/sequence"
	"hauler/internal/utils"
)

// SettlementService turns a ticket into the settlement item that pays it and
// keeps the driver's weekly rollup fresh.
type SettlementService struct {
	RateRepo       repositories.RateRepository
	SettlementRepo repositories.SettlementRepository
	SummaryRepo    repositories.SummaryRepository
	TicketRepo     repositories.TicketRepository
	Seq            sequence.Generator
	WeekEndsOn     time.Weekday
	RequestID      string
}

// SettleResult is what a successful settle returns to the caller: the item
// with its audit fields and the recomputed summary for the affected week.
type SettleResult struct {
	Item    models.SettlementItem `json:"item"`
	Summary models.WeeklySummary  `json:"summary"`
}

// SettleByID loads a stored ticket and settles it.
func (s SettlementService) SettleByID(orgID, ticketID int64) (SettleResult, error) {
	if ticketID <= 0 {
		return SettleResult{}, domain.ValidationError{Field: "ticket_id", Msg: "id is required"}
	}
	t, err := s.TicketRepo.GetByID(orgID, ticketID)
	if err != nil {
		return SettleResult{}, err
	}
	return s.SettleTicket(orgID, t)
}

// SettleTicket runs the full pipeline for one ticket: validate, find and
// select the rate, compute the payable amount and settlement week, write the
// item through the conditional insert, then recompute the weekly summary.
// Every failure path fails closed: no guessed defaults, no partial item.
func (s SettlementService) SettleTicket(orgID int64, t models.Ticket) (SettleResult, error) {
	if err := validateForSettlement(t); err != nil {
		return SettleResult{}, err
	}
	t.TicketNumber = utils.NormalizeTicketNumber(t.TicketNumber)

	rateSvc := RateService{RateRepo: s.RateRepo, RequestID: s.RequestID}
	rate, err := rateSvc.Resolve(orgID, t)
	if err != nil {
		return SettleResult{}, err
	}

	weekEnding, err := utils.WeekEndingDate(t.TicketDate, s.WeekEndsOn)
	if err != nil {
		return SettleResult{}, domain.ValidationError{Field: "ticket_date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	item := models.SettlementItem{
		OrgID:        orgID,
		ReferenceNo:  s.Seq.Next(),
		DriverID:     t.DriverID,
		TicketID:     t.ID,
		TicketNumber: t.TicketNumber,
		Quantity:     t.NetQuantity,
		RateID:       rate.ID,
		RateName:     rate.RateName,
		RateValue:    rate.RateValue,
		Amount:       utils.Amount(t.NetQuantity, rate.RateValue),
		WeekEnding:   weekEnding,
	}

	inserted, err := s.SettlementRepo.Insert(item)
	if err != nil {
		if domain.IsConflict(err) {
			utils.LogEvent(s.RequestID, "settlement", "settle",
				"duplicate ticket_number="+t.TicketNumber+" driver_id="+itoa(t.DriverID))
		}
		return SettleResult{}, err
	}

	utils.LogEvent(s.RequestID, "settlement", "settle",
		"driver_id="+itoa(t.DriverID)+" ticket_number="+t.TicketNumber+
			" amount="+utils.FormatMoney(inserted.Amount)+" week_ending="+weekEnding)

	summary, err := s.SummaryRepo.Recompute(orgID, t.DriverID, weekEnding)
	if err != nil {
		// The item is in; the summary is derived and the next recompute
		// heals it. Still surface the failure so the caller knows.
		utils.LogEvent(s.RequestID, "settlement", "settle", "summary recompute failed: "+err.Error())
		return SettleResult{}, err
	}

	return SettleResult{Item: inserted, Summary: summary}, nil
}

// RecomputeSummary rebuilds one driver/week rollup on demand.
func (s SettlementService) RecomputeSummary(orgID, driverID int64, weekEnding string) (models.WeeklySummary, error) {
	if driverID <= 0 {
		return models.WeeklySummary{}, domain.ValidationError{Field: "driver_id", Msg: "driver is required"}
	}
	if _, err := utils.ParseDate(weekEnding); err != nil {
		return models.WeeklySummary{}, domain.ValidationError{Field: "week_ending", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return s.SummaryRepo.Recompute(orgID, driverID, weekEnding)
}

// validateForSettlement rejects tickets missing required fields, and tickets
// still flagged for review, before any store access is attempted.
func validateForSettlement(t models.Ticket) error {
	if t.DriverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: "driver is required"}
	}
	if t.LoadID <= 0 {
		return domain.ValidationError{Field: "load_id", Msg: "load is required"}
	}
	if utils.TrimOrEmpty(t.TicketNumber) == "" {
		return domain.ValidationError{Field: "ticket_number", Msg: "ticket number is required"}
	}
	if t.NeedsReview {
		return domain.ValidationError{Field: "needs_review", Msg: "ticket is flagged for review and cannot settle until cleared"}
	}
	if t.NetQuantity.IsNegative() {
		return domain.ValidationError{Field: "net_quantity", Msg: "quantity cannot be negative"}
	}
	if utils.TrimOrEmpty(t.TicketDate) == "" {
		return domain.ValidationError{Field: "ticket_date", Msg: "ticket date is required"}
	}
	return nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
