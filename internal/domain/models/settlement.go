package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementItem is the payable record produced from one ticket under one
// chosen rate. At most one exists per (driver, ticket number); the store's
// unique key enforces that, not application reads.
type SettlementItem struct {
	ID           int64           `json:"id"`
	OrgID        int64           `json:"orgId"`
	ReferenceNo  int64           `json:"referenceNo"`
	DriverID     int64           `json:"driverId"`
	TicketID     int64           `json:"ticketId"`
	TicketNumber string          `json:"ticketNumber"`
	Quantity     decimal.Decimal `json:"quantity"`
	RateID       int64           `json:"rateId"`
	RateName     string          `json:"rateName"`
	RateValue    decimal.Decimal `json:"rateValue"`
	Amount       decimal.Decimal `json:"amount"`
	WeekEnding   string          `json:"weekEnding"` // YYYY-MM-DD
	CreatedAt    time.Time       `json:"createdAt"`
}

// WeeklySummary is the derived per-driver, per-week rollup. It is rebuilt
// from settlement items on every recompute, never incremented in place.
type WeeklySummary struct {
	OrgID         int64           `json:"orgId"`
	DriverID      int64           `json:"driverId"`
	WeekEnding    string          `json:"weekEnding"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	LoadCount     int             `json:"loadCount"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
