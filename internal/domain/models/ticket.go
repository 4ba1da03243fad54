package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is one completed haul submitted for settlement. Immutable once
// settled; corrections go through an administrative path, not here.
type Ticket struct {
	ID           int64           `json:"id"`
	OrgID        int64           `json:"orgId"`
	DriverID     int64           `json:"driverId"`
	LoadID       int64           `json:"loadId"`
	TicketNumber string          `json:"ticketNumber"`
	Material     string          `json:"material"`
	NetQuantity  decimal.Decimal `json:"netQuantity"`
	CustomerID   int64           `json:"customerId,omitempty"`
	JobID        int64           `json:"jobId,omitempty"`
	TicketDate   string          `json:"ticketDate"` // YYYY-MM-DD

	GrossWeight *float64 `json:"grossWeight,omitempty"`
	TareWeight  *float64 `json:"tareWeight,omitempty"`
	BillRate    *float64 `json:"billRate,omitempty"`

	BatchID     string    `json:"batchId,omitempty"`
	NeedsReview bool      `json:"needsReview"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TicketRow is one raw row from an uploaded batch, before anything has been
// persisted. Pointer fields distinguish "absent" from zero.
type TicketRow struct {
	Line         int      `json:"line"`
	TicketNumber string   `json:"ticketNumber"`
	Gross        *float64 `json:"gross,omitempty"`
	Tare         *float64 `json:"tare,omitempty"`
	Net          *float64 `json:"net,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	BillRate     *float64 `json:"billRate,omitempty"`
}

// BatchRow is a TicketRow plus the assignment fields needed to store the
// ticket once the batch clears review.
type BatchRow struct {
	TicketRow
	DriverID   int64  `json:"driverId"`
	LoadID     int64  `json:"loadId"`
	Material   string `json:"material,omitempty"`
	CustomerID int64  `json:"customerId,omitempty"`
	JobID      int64  `json:"jobId,omitempty"`
	TicketDate string `json:"ticketDate"`
}

// Issue codes, most severe first. The clarifier records only the first per row.
const (
	IssueNetMismatch      = "net_weight_mismatch"
	IssueMissingGrossTare = "missing_gross_or_tare"
	IssueMissingQtyRate   = "missing_quantity_or_rate"
)

// Issue is an ephemeral clarifier finding; it is never persisted.
type Issue struct {
	Line         int    `json:"line"`
	TicketNumber string `json:"ticketNumber,omitempty"`
	Code         string `json:"code"`
	Msg          string `json:"message"`
}
