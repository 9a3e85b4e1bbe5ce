//go:build cgo

package cmfindex

// If cgo is enabled, use the mattn cgo sqlite3 driver. It is faster than
// the modernc pure-Go driver.

import (
	_ "github.com/mattn/go-sqlite3"

	"github.com/jmoiron/sqlx"
)

const whichSQLiteDriver = "sqlite3"

func setBuildPragmas(db *sqlx.DB) error {
	return nil
}
