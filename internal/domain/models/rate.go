package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rate scope types, from most to least specific.
const (
	ScopeDriver   = "driver"
	ScopeMaterial = "material"
	ScopeCustomer = "customer"
	ScopeDefault  = "default"
)

// Rate is one configured pay-rate rule. Rates are admin-owned and read-only
// from the settlement side.
type Rate struct {
	ID            int64           `json:"id"`
	OrgID         int64           `json:"orgId"`
	ScopeType     string          `json:"scopeType"`
	ScopeValue    string          `json:"scopeValue"`
	RateName      string          `json:"rateName"`
	RateValue     decimal.Decimal `json:"rateValue"`
	EffectiveFrom string          `json:"effectiveFrom,omitempty"` // YYYY-MM-DD, empty = open
	EffectiveTo   string          `json:"effectiveTo,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PrecedenceRank orders scopes for selection; lower wins. Tenants wanting a
// different policy change this ordering in one place.
func (r Rate) PrecedenceRank() int {
	switch strings.ToLower(strings.TrimSpace(r.ScopeType)) {
	case ScopeDriver:
		return 0
	case ScopeMaterial:
		return 1
	case ScopeCustomer:
		return 2
	case ScopeDefault:
		return 3
	default:
		return 4
	}
}

// EffectiveOn reports whether the rate covers the given ticket date. Empty
// bounds are open-ended.
func (r Rate) EffectiveOn(date string) bool {
	d := strings.TrimSpace(date)
	if d == "" {
		return true
	}
	if r.EffectiveFrom != "" && d < r.EffectiveFrom {
		return false
	}
	if r.EffectiveTo != "" && d > r.EffectiveTo {
		return false
	}
	return true
}
