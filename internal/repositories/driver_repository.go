package repositories

import (
	"database/sql"
	"errors"

	intconfig "hauler/internal/config"
	intdb "hauler/internal/db"
	"hauler/internal/domain"
	"hauler/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriverRepository) List(orgID int64) ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, org_id, name, COALESCE(phone, ''), COALESCE(status, 'active'), created_at
		FROM drivers
		WHERE org_id = ?
		ORDER BY name
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.OrgID, &d.Name, &d.Phone, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(orgID, id int64) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`
		SELECT id, org_id, name, COALESCE(phone, ''), COALESCE(status, 'active'), created_at
		FROM drivers
		WHERE org_id = ? AND id = ?
		LIMIT 1
	`, orgID, id).Scan(&d.ID, &d.OrgID, &d.Name, &d.Phone, &d.Status, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
		}
		return models.Driver{}, err
	}
	return d, nil
}

func (r DriverRepository) Create(d models.Driver) (models.Driver, error) {
	if d.Status == "" {
		d.Status = "active"
	}
	res, err := r.db().Exec(`
		INSERT INTO drivers (org_id, name, phone, status, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, d.OrgID, d.Name, intdb.NullIfEmpty(d.Phone), d.Status)
	if err != nil {
		return models.Driver{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Driver{}, err
	}
	d.ID = id
	return d, nil
}

func (r DriverRepository) Update(orgID int64, d models.Driver) error {
	res, err := r.db().Exec(`
		UPDATE drivers
		SET name = ?, phone = ?, status = ?
		WHERE org_id = ? AND id = ?
	`, d.Name, intdb.NullIfEmpty(d.Phone), d.Status, orgID, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func (r DriverRepository) Delete(orgID, id int64) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE org_id = ? AND id = ?`, orgID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}
