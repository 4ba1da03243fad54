package repositories

import (
	"database/sql"
	"errors"

	intconfig "hauler/internal/config"
	"hauler/internal/domain"
	"hauler/internal/domain/models"
	"hauler/internal/utils"

	"github.com/shopspring/decimal"
)

type SummaryRepository struct {
	DB *sql.DB
}

func (r SummaryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Recompute rebuilds the weekly summary from settlement items and upserts
// the rollup row. The summary is never incremented in place, so a partial
// failure elsewhere can't leave it drifted for long: the next recompute
// corrects it. Running it twice with no new items yields identical totals.
func (r SummaryRepository) Recompute(orgID, driverID int64, weekEnding string) (models.WeeklySummary, error) {
	var (
		totalQty    decimal.Decimal
		totalAmount decimal.Decimal
		count       int
	)
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(amount), 0), COUNT(*)
		FROM settlement_items
		WHERE org_id = ? AND driver_id = ? AND week_ending = ?
	`, orgID, driverID, weekEnding).Scan(&totalQty, &totalAmount, &count)
	if err != nil {
		return models.WeeklySummary{}, err
	}

	summary := models.WeeklySummary{
		OrgID:         orgID,
		DriverID:      driverID,
		WeekEnding:    weekEnding,
		TotalQuantity: totalQty,
		TotalAmount:   utils.Round2(totalAmount),
		LoadCount:     count,
		UpdatedAt:     utils.NowUTC(),
	}

	_, err = r.db().Exec(`
		INSERT INTO weekly_summaries
			(org_id, driver_id, week_ending, total_quantity, total_amount, load_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			total_quantity = VALUES(total_quantity),
			total_amount = VALUES(total_amount),
			load_count = VALUES(load_count),
			updated_at = NOW()
	`, orgID, driverID, weekEnding, summary.TotalQuantity, summary.TotalAmount, summary.LoadCount)
	if err != nil {
		return models.WeeklySummary{}, err
	}
	return summary, nil
}

func (r SummaryRepository) Get(orgID, driverID int64, weekEnding string) (models.WeeklySummary, error) {
	var s models.WeeklySummary
	err := r.db().QueryRow(`
		SELECT org_id, driver_id, DATE_FORMAT(week_ending, '%Y-%m-%d'),
			total_quantity, total_amount, load_count, updated_at
		FROM weekly_summaries
		WHERE org_id = ? AND driver_id = ? AND week_ending = ?
		LIMIT 1
	`, orgID, driverID, weekEnding).Scan(
		&s.OrgID, &s.DriverID, &s.WeekEnding,
		&s.TotalQuantity, &s.TotalAmount, &s.LoadCount, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WeeklySummary{}, domain.NotFoundError{Resource: "weekly summary", Err: err}
		}
		return models.WeeklySummary{}, err
	}
	return s, nil
}

// ListForWeek returns every driver's summary for one settlement week.
func (r SummaryRepository) ListForWeek(orgID int64, weekEnding string) ([]models.WeeklySummary, error) {
	rows, err := r.db().Query(`
		SELECT org_id, driver_id, DATE_FORMAT(week_ending, '%Y-%m-%d'),
			total_quantity, total_amount, load_count, updated_at
		FROM weekly_summaries
		WHERE org_id = ? AND week_ending = ?
		ORDER BY driver_id
	`, orgID, weekEnding)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WeeklySummary{}
	for rows.Next() {
		var s models.WeeklySummary
		if err := rows.Scan(
			&s.OrgID, &s.DriverID, &s.WeekEnding,
			&s.TotalQuantity, &s.TotalAmount, &s.LoadCount, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
