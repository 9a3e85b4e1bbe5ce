// Package cmfindex builds and queries a SQLite side-index over a .cmf
// file, giving O(log n) random access to markers by position without
// scanning the whole stream. It consumes only cmf's produced surfaces
// (Reader, Marker) and never reaches into cmf's internals.
package cmfindex

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Index is a handle to an open index database.
type Index struct {
	DB *sqlx.DB
}

// MarkerRow mirrors one row of the Marker table and can be scanned
// directly by sqlx.
type MarkerRow struct {
	Chromosome        string `db:"chromosome"`
	Position          uint64 `db:"position"`
	Ref               string `db:"ref"`
	Alt               string `db:"alt"`
	FileStartPosition int64  `db:"file_start_position"`
	SizeInBytes       int64  `db:"size_in_bytes"`
}

// FileMetadata mirrors the single-row Metadata table recorded alongside
// the Marker table when the index was built.
type FileMetadata struct {
	Chromosome     string    `db:"chromosome"`
	Ploidy         uint8     `db:"ploidy"`
	SampleCount    uint64    `db:"sample_count"`
	HeaderByteSize int64     `db:"header_byte_size"`
	BuiltAt        BuildTime `db:"built_at"`
}

// OpenIndex opens an existing index database at path for querying. It
// does not build or rebuild anything; use BuildIndex to create one.
func OpenIndex(path string) (*Index, error) {
	db, err := sqlx.Connect(whichSQLiteDriver, toFileURI(path))
	if err != nil {
		return nil, err
	}
	if err := setBuildPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{DB: db}, nil
}

func toFileURI(path string) string {
	if !strings.HasPrefix(path, "file:") {
		return "file:" + path
	}
	return path
}

// WhichSQLiteDriver reports which SQLite driver this build was
// compiled with ("sqlite3" for the cgo driver, "sqlite" for the
// pure-Go one), useful for diagnostics in cmd/cmfutil-build logs.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

// Close closes the underlying database handle.
func (idx *Index) Close() error {
	return idx.DB.Close()
}

// Metadata returns the recorded file-level metadata, if any was stored.
func (idx *Index) Metadata() (*FileMetadata, error) {
	var m FileMetadata
	if err := idx.DB.Get(&m, "SELECT * FROM Metadata LIMIT 1"); err != nil {
		return nil, err
	}
	return &m, nil
}

// Lookup returns the row for the marker at the given position, if one
// was recorded.
func (idx *Index) Lookup(position uint64) (MarkerRow, bool, error) {
	var row MarkerRow
	err := idx.DB.Get(&row, "SELECT * FROM Marker WHERE position = ? LIMIT 1", position)
	if err != nil {
		if err == sql.ErrNoRows {
			return MarkerRow{}, false, nil
		}
		return MarkerRow{}, false, err
	}
	return row, true, nil
}

// Range returns every recorded marker in [start, end], ordered by
// ascending position.
func (idx *Index) Range(start, end uint64) ([]MarkerRow, error) {
	var rows []MarkerRow
	err := idx.DB.Select(&rows, "SELECT * FROM Marker WHERE position BETWEEN ? AND ? ORDER BY position ASC", start, end)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
