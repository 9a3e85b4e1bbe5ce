package cmfindex

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carbocation/cmf/cmf"
)

const schema = `
CREATE TABLE Marker (
	chromosome          TEXT    NOT NULL,
	position             INTEGER NOT NULL,
	ref                  TEXT    NOT NULL,
	alt                  TEXT    NOT NULL,
	file_start_position  INTEGER NOT NULL,
	size_in_bytes        INTEGER NOT NULL
);
CREATE INDEX idx_marker_position ON Marker(position);
CREATE TABLE Metadata (
	chromosome       TEXT    NOT NULL,
	ploidy           INTEGER NOT NULL,
	sample_count     INTEGER NOT NULL,
	header_byte_size INTEGER NOT NULL,
	built_at         INTEGER NOT NULL
);
`

// countingReader tracks how many bytes have been pulled through it so
// BuildIndex can record each marker's starting byte offset without
// requiring the source to support io.Seeker.
type countingReader struct {
	r *bufio.Reader
	n int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: bufio.NewReader(r)}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

// BuildIndex scans src end to end with a cmf.Reader, recording each
// marker's byte offset and length, and writes the result to a fresh
// SQLite database at dbPath. dbPath is overwritten if it exists; the
// caller is expected to not pass the path of an index already in use.
func BuildIndex(dbPath string, src io.Reader) (*Index, error) {
	cr := newCountingReader(src)
	r := cmf.NewReader(cr)
	if r.Failed() {
		return nil, r.Err()
	}

	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	db, err := sqlx.Connect(whichSQLiteDriver, toFileURI(dbPath))
	if err != nil {
		return nil, err
	}
	if err := setBuildPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	headerSize := cr.n

	tx, err := db.Beginx()
	if err != nil {
		db.Close()
		return nil, err
	}

	insert, err := tx.Prepare(`INSERT INTO Marker
		(chromosome, position, ref, alt, file_start_position, size_in_bytes)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}

	chromosome := r.Chromosome()
	for {
		start := cr.n
		m, ok := r.Read()
		if !ok {
			break
		}
		size := cr.n - start

		if _, err := insert.Exec(chromosome, m.Position(), m.Ref(), m.Alt(), start, size); err != nil {
			tx.Rollback()
			db.Close()
			return nil, err
		}
	}
	if r.Failed() {
		tx.Rollback()
		db.Close()
		return nil, r.Err()
	}

	if _, err := tx.Exec(`INSERT INTO Metadata
		(chromosome, ploidy, sample_count, header_byte_size, built_at) VALUES (?, ?, ?, ?, ?)`,
		chromosome, r.Ploidy(), r.SampleCount(), headerSize, BuildTime(time.Now())); err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, err
	}

	return &Index{DB: db}, nil
}
