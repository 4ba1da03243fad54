package repositories

import (
	"database/sql"
	"errors"
	"strconv"

	intconfig "hauler/internal/config"
	"hauler/internal/domain"
	"hauler/internal/domain/models"
)

type RateRepository struct {
	DB *sql.DB
}

func (r RateRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rateColumns = `
	id, org_id, scope_type, COALESCE(scope_value, ''), rate_name, rate_value,
	COALESCE(DATE_FORMAT(effective_from, '%Y-%m-%d'), ''),
	COALESCE(DATE_FORMAT(effective_to, '%Y-%m-%d'), ''),
	created_at`

// FindCandidates returns every rate whose scope matches the ticket exactly
// (driver / material / customer) plus the org's default rates, limited to
// rates effective on the ticket date, newest first. An empty result is not
// an error; the caller decides whether that is fatal.
func (r RateRepository) FindCandidates(orgID, driverID int64, material string, customerID int64, onDate string) ([]models.Rate, error) {
	if driverID <= 0 {
		return nil, domain.ValidationError{Field: "driver_id", Msg: "driver is required"}
	}

	driverVal := strconv.FormatInt(driverID, 10)
	customerVal := ""
	if customerID > 0 {
		customerVal = strconv.FormatInt(customerID, 10)
	}

	rows, err := r.db().Query(`
		SELECT `+rateColumns+`
		FROM rates
		WHERE org_id = ?
		  AND (
			(scope_type = 'driver' AND scope_value = ?)
			OR (scope_type = 'material' AND ? <> '' AND scope_value = ?)
			OR (scope_type = 'customer' AND ? <> '' AND scope_value = ?)
			OR scope_type = 'default'
		  )
		  AND (effective_from IS NULL OR effective_from <= ?)
		  AND (effective_to IS NULL OR effective_to >= ?)
		ORDER BY created_at DESC, id DESC
	`, orgID, driverVal, material, material, customerVal, customerVal, onDate, onDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRates(rows)
}

func (r RateRepository) GetByID(orgID, id int64) (models.Rate, error) {
	var rate models.Rate
	err := r.db().QueryRow(`
		SELECT `+rateColumns+`
		FROM rates
		WHERE org_id = ? AND id = ?
		LIMIT 1
	`, orgID, id).Scan(
		&rate.ID, &rate.OrgID, &rate.ScopeType, &rate.ScopeValue,
		&rate.RateName, &rate.RateValue,
		&rate.EffectiveFrom, &rate.EffectiveTo, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Rate{}, domain.NotFoundError{Resource: "rate", Err: err}
		}
		return models.Rate{}, err
	}
	return rate, nil
}

func (r RateRepository) List(orgID int64) ([]models.Rate, error) {
	rows, err := r.db().Query(`
		SELECT `+rateColumns+`
		FROM rates
		WHERE org_id = ?
		ORDER BY scope_type, created_at DESC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRates(rows)
}

func (r RateRepository) Create(rate models.Rate) (models.Rate, error) {
	res, err := r.db().Exec(`
		INSERT INTO rates
			(org_id, scope_type, scope_value, rate_name, rate_value, effective_from, effective_to, created_at)
		VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NOW())
	`, rate.OrgID, rate.ScopeType, rate.ScopeValue, rate.RateName, rate.RateValue,
		rate.EffectiveFrom, rate.EffectiveTo)
	if err != nil {
		return models.Rate{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Rate{}, err
	}
	rate.ID = id
	return rate, nil
}

func (r RateRepository) Update(orgID int64, rate models.Rate) error {
	res, err := r.db().Exec(`
		UPDATE rates
		SET scope_type = ?, scope_value = ?, rate_name = ?, rate_value = ?,
			effective_from = NULLIF(?, ''), effective_to = NULLIF(?, '')
		WHERE org_id = ? AND id = ?
	`, rate.ScopeType, rate.ScopeValue, rate.RateName, rate.RateValue,
		rate.EffectiveFrom, rate.EffectiveTo, orgID, rate.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "rate"}
	}
	return nil
}

func (r RateRepository) Delete(orgID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM rates WHERE org_id = ? AND id = ?`, orgID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "rate"}
	}
	return nil
}

func scanRates(rows *sql.Rows) ([]models.Rate, error) {
	out := []models.Rate{}
	for rows.Next() {
		var rate models.Rate
		if err := rows.Scan(
			&rate.ID, &rate.OrgID, &rate.ScopeType, &rate.ScopeValue,
			&rate.RateName, &rate.RateValue,
			&rate.EffectiveFrom, &rate.EffectiveTo, &rate.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}
