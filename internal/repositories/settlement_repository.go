package repositories

import (
	"database/sql"
	"errors"

	intconfig "hauler/internal/config"
	"hauler/internal/domain"
	"hauler/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

type SettlementRepository struct {
	DB *sql.DB
}

func (r SettlementRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const settlementColumns = `
	id, org_id, reference_no, driver_id, ticket_id, ticket_number,
	quantity, rate_id, rate_name, rate_value, amount,
	DATE_FORMAT(week_ending, '%Y-%m-%d'), created_at`

// Insert creates the settlement item in one conditional write. The
// uq_settlement_driver_ticket unique key is the duplicate guard: under
// concurrent settles of the same (driver, ticket number) exactly one insert
// wins and the loser surfaces a ConflictError. There is no read-then-write
// window to race through.
func (r SettlementRepository) Insert(item models.SettlementItem) (models.SettlementItem, error) {
	res, err := r.db().Exec(`
		INSERT INTO settlement_items
			(org_id, reference_no, driver_id, ticket_id, ticket_number,
			 quantity, rate_id, rate_name, rate_value, amount, week_ending, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, item.OrgID, item.ReferenceNo, item.DriverID, item.TicketID, item.TicketNumber,
		item.Quantity, item.RateID, item.RateName, item.RateValue, item.Amount, item.WeekEnding)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return models.SettlementItem{}, domain.ConflictError{
				Resource: "settlement",
				Msg:      "ticket " + item.TicketNumber + " already settled for this driver",
				Err:      err,
			}
		}
		return models.SettlementItem{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.SettlementItem{}, err
	}
	item.ID = id
	return item, nil
}

// ExistsForTicket is the read-only "already processed?" probe. It is never
// used as the write guard; Insert's unique key is.
func (r SettlementRepository) ExistsForTicket(orgID, driverID int64, ticketNumber string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*)
		FROM settlement_items
		WHERE org_id = ? AND driver_id = ? AND ticket_number = ?
	`, orgID, driverID, ticketNumber).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r SettlementRepository) GetByID(orgID, id int64) (models.SettlementItem, error) {
	var item models.SettlementItem
	err := r.db().QueryRow(`
		SELECT `+settlementColumns+`
		FROM settlement_items
		WHERE org_id = ? AND id = ?
		LIMIT 1
	`, orgID, id).Scan(
		&item.ID, &item.OrgID, &item.ReferenceNo, &item.DriverID, &item.TicketID,
		&item.TicketNumber, &item.Quantity, &item.RateID, &item.RateName,
		&item.RateValue, &item.Amount, &item.WeekEnding, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SettlementItem{}, domain.NotFoundError{Resource: "settlement item", Err: err}
		}
		return models.SettlementItem{}, err
	}
	return item, nil
}

// ListForDriverWeek returns the items a weekly summary is rebuilt from.
func (r SettlementRepository) ListForDriverWeek(orgID, driverID int64, weekEnding string) ([]models.SettlementItem, error) {
	rows, err := r.db().Query(`
		SELECT `+settlementColumns+`
		FROM settlement_items
		WHERE org_id = ? AND driver_id = ? AND week_ending = ?
		ORDER BY created_at, id
	`, orgID, driverID, weekEnding)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSettlements(rows)
}

func (r SettlementRepository) ListForWeek(orgID int64, weekEnding string) ([]models.SettlementItem, error) {
	rows, err := r.db().Query(`
		SELECT `+settlementColumns+`
		FROM settlement_items
		WHERE org_id = ? AND week_ending = ?
		ORDER BY driver_id, created_at, id
	`, orgID, weekEnding)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSettlements(rows)
}

func scanSettlements(rows *sql.Rows) ([]models.SettlementItem, error) {
	out := []models.SettlementItem{}
	for rows.Next() {
		var item models.SettlementItem
		if err := rows.Scan(
			&item.ID, &item.OrgID, &item.ReferenceNo, &item.DriverID, &item.TicketID,
			&item.TicketNumber, &item.Quantity, &item.RateID, &item.RateName,
			&item.RateValue, &item.Amount, &item.WeekEnding, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
