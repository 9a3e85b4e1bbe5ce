//go:build !cgo

package cmfindex

// If cgo is not enabled, use the modernc.org/sqlite pure-Go driver. It is
// slower than the mattn cgo driver but needs no C toolchain.

import (
	_ "modernc.org/sqlite"

	"github.com/jmoiron/sqlx"
)

const whichSQLiteDriver = "sqlite"

func setBuildPragmas(db *sqlx.DB) error {
	_, err := db.Exec(`
	PRAGMA journal_mode = OFF;
	PRAGMA synchronous = OFF;
	PRAGMA auto_vacuum = NONE;
	`)
	return err
}
