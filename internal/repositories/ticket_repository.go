package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "hauler/internal/config"
	intdb "hauler/internal/db"
	"hauler/internal/domain"
	"hauler/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `
	id, org_id, driver_id, load_id, ticket_number, COALESCE(material, ''),
	net_quantity, COALESCE(customer_id, 0), COALESCE(job_id, 0),
	DATE_FORMAT(ticket_date, '%Y-%m-%d'),
	gross_weight, tare_weight, bill_rate,
	COALESCE(batch_id, ''), needs_review, created_at`

func (r TicketRepository) Create(t models.Ticket) (models.Ticket, error) {
	res, err := r.db().Exec(`
		INSERT INTO tickets
			(org_id, driver_id, load_id, ticket_number, material, net_quantity,
			 customer_id, job_id, ticket_date, gross_weight, tare_weight, bill_rate,
			 batch_id, needs_review, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, 0), NULLIF(?, 0), ?, ?, ?, ?, NULLIF(?, ''), ?, NOW())
	`, t.OrgID, t.DriverID, t.LoadID, t.TicketNumber, t.Material, t.NetQuantity,
		t.CustomerID, t.JobID, t.TicketDate, t.GrossWeight, t.TareWeight, t.BillRate,
		t.BatchID, t.NeedsReview)
	if err != nil {
		return models.Ticket{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Ticket{}, err
	}
	t.ID = id
	return t, nil
}

// CreateBatch inserts an uploaded batch in one transaction so a half-written
// batch never reaches settlement.
func (r TicketRepository) CreateBatch(tickets []models.Ticket) ([]models.Ticket, error) {
	if len(tickets) == 0 {
		return tickets, nil
	}
	tx, err := r.db().Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO tickets
			(org_id, driver_id, load_id, ticket_number, material, net_quantity,
			 customer_id, job_id, ticket_date, gross_weight, tare_weight, bill_rate,
			 batch_id, needs_review, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, 0), NULLIF(?, 0), ?, ?, ?, ?, NULLIF(?, ''), ?, NOW())
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	out := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		res, err := stmt.Exec(
			t.OrgID, t.DriverID, t.LoadID, t.TicketNumber, t.Material, t.NetQuantity,
			t.CustomerID, t.JobID, t.TicketDate, t.GrossWeight, t.TareWeight, t.BillRate,
			t.BatchID, t.NeedsReview)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.TicketNumber, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			t.ID = id
		}
		out = append(out, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r TicketRepository) GetByID(orgID, id int64) (models.Ticket, error) {
	var t models.Ticket
	err := r.db().QueryRow(`
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE org_id = ? AND id = ?
		LIMIT 1
	`, orgID, id).Scan(
		&t.ID, &t.OrgID, &t.DriverID, &t.LoadID, &t.TicketNumber, &t.Material,
		&t.NetQuantity, &t.CustomerID, &t.JobID, &t.TicketDate,
		&t.GrossWeight, &t.TareWeight, &t.BillRate,
		&t.BatchID, &t.NeedsReview, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.Ticket{}, err
	}
	return t, nil
}

// List returns tickets newest first, optionally narrowed to one driver.
func (r TicketRepository) List(orgID, driverID int64, limit int) ([]models.Ticket, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "tickets") {
		return nil, domain.InternalError{Msg: "tickets table not found"}
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE org_id = ?`
	args := []any{orgID}
	if driverID > 0 {
		query += ` AND driver_id = ?`
		args = append(args, driverID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(
			&t.ID, &t.OrgID, &t.DriverID, &t.LoadID, &t.TicketNumber, &t.Material,
			&t.NetQuantity, &t.CustomerID, &t.JobID, &t.TicketDate,
			&t.GrossWeight, &t.TareWeight, &t.BillRate,
			&t.BatchID, &t.NeedsReview, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
