package utils

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable probes information_schema for a table in the current database.
// Any error (including bad connections) reads as "absent" so callers degrade
// instead of failing the whole request.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		// don't log per column, schema drift would spam
		return false
	}
	return name.Valid && name.String != ""
}

// LogBadConn logs a bad-connection error once, at the call site that cares.
func LogBadConn(tag string, err error) {
	if errors.Is(err, driver.ErrBadConn) {
		log.Println(tag, "driver.ErrBadConn")
	}
}
