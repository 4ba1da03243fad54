package services

import (
	"sort"

	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/repositories"
	"hauler/internal/utils"
)

// RateService finds which pay rate applies to a ticket.
type RateService struct {
	RateRepo  repositories.RateRepository
	RequestID string
}

// Candidates returns every configured rate that could pay this ticket.
// Empty is not an error here; Select decides whether that is fatal.
func (s RateService) Candidates(orgID int64, t models.Ticket) ([]models.Rate, error) {
	if t.DriverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_id", Msg: "driver is required"}
	}
	rates, err := s.RateRepo.FindCandidates(orgID, t.DriverID, t.Material, t.CustomerID, t.TicketDate)
	if err != nil {
		return nil, err
	}
	out := rates[:0]
	for _, rate := range rates {
		if rate.EffectiveOn(t.TicketDate) {
			out = append(out, rate)
		}
	}
	return out, nil
}

// Resolve runs lookup and selection in one step.
func (s RateService) Resolve(orgID int64, t models.Ticket) (models.Rate, error) {
	candidates, err := s.Candidates(orgID, t)
	if err != nil {
		return models.Rate{}, err
	}
	rate, err := SelectRate(candidates)
	if err != nil {
		return models.Rate{}, err
	}
	utils.LogEvent(s.RequestID, "rates", "resolve",
		"driver_id="+itoa(t.DriverID)+" rate_id="+itoa(rate.ID)+" scope="+rate.ScopeType)
	return rate, nil
}

// SelectRate picks exactly one rate from a candidate set. Precedence is
// driver > material > customer > default; ties at a level go to the most
// recently created rate, then the highest ID, so the choice is total and
// deterministic. An empty set is a configuration problem for an admin to
// fix, never a silent zero-amount settlement.
func SelectRate(candidates []models.Rate) (models.Rate, error) {
	if len(candidates) == 0 {
		return models.Rate{}, domain.ConfigError{
			Msg: "no applicable rate: configure a pay rate for this driver, material, or customer",
		}
	}

	ranked := make([]models.Rate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PrecedenceRank() != b.PrecedenceRank() {
			return a.PrecedenceRank() < b.PrecedenceRank()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return ranked[0], nil
}
