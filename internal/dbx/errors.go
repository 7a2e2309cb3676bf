package dbx

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// Classify maps driver level failures onto the common sentinels while
// keeping the original error in the chain. Errors it does not recognise are
// returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorDuplicateIdentifier), errors.Is(err, common.ErrorConnectionFailure):
		return err
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", common.ErrorDuplicateIdentifier, err)
	case IsConnectionFailure(err):
		return fmt.Errorf("%w: %w", common.ErrorConnectionFailure, err)
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation on
// PostgreSQL or SQLite.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

// IsConnectionFailure reports whether err means the database could not be
// reached or the connection was lost.
func IsConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	// database/sql does not export the error returned after DB.Close.
	if strings.Contains(err.Error(), "sql: database is closed") {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
