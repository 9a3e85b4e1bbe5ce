package cmfindex

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/carbocation/cmf/cmf"
)

func buildTestStream(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := cmf.NewWriter(&buf, "chr1", 2, []string{"s1", "s2", "s3"}, nil)
	positions := []uint64{100, 250, 9000}
	for _, p := range positions {
		m := cmf.NewMarkerFromDense(p, "A", "G", []cmf.AlleleStatus{cmf.HasRef, cmf.HasAlt, cmf.HasRef, cmf.HasRef, cmf.IsMissing, cmf.HasRef})
		if err := w.Write(m); err != nil {
			t.Fatalf("write marker at %d: %v", p, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestBuildIndexAndLookup(t *testing.T) {
	data := buildTestStream(t)

	dbPath := filepath.Join(t.TempDir(), "test.cmfidx")
	idx, err := BuildIndex(dbPath, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	defer idx.Close()

	row, ok, err := idx.Lookup(250)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected to find a marker at position 250")
	}
	if row.Chromosome != "chr1" || row.Ref != "A" || row.Alt != "G" {
		t.Errorf("row = %+v", row)
	}

	// Read directly at the recorded offset and confirm it lands on the
	// same marker.
	m, err := cmf.ReadMarker(bytes.NewReader(data[row.FileStartPosition:row.FileStartPosition+row.SizeInBytes]), 6)
	if err != nil {
		t.Fatalf("ReadMarker at recorded offset: %v", err)
	}
	if m.Position() != 250 {
		t.Errorf("marker at recorded offset has position %d, want 250", m.Position())
	}
}

func TestBuildIndexLookupMiss(t *testing.T) {
	data := buildTestStream(t)
	dbPath := filepath.Join(t.TempDir(), "test.cmfidx")
	idx, err := BuildIndex(dbPath, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	_, ok, err := idx.Lookup(12345)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no marker at position 12345")
	}
}

func TestBuildIndexRange(t *testing.T) {
	data := buildTestStream(t)
	dbPath := filepath.Join(t.TempDir(), "test.cmfidx")
	idx, err := BuildIndex(dbPath, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	rows, err := idx.Range(0, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Position != 100 || rows[1].Position != 250 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestBuildIndexMetadata(t *testing.T) {
	data := buildTestStream(t)
	dbPath := filepath.Join(t.TempDir(), "test.cmfidx")
	idx, err := BuildIndex(dbPath, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	meta, err := idx.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Chromosome != "chr1" || meta.Ploidy != 2 || meta.SampleCount != 3 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestOpenIndexReopensBuiltIndex(t *testing.T) {
	data := buildTestStream(t)
	dbPath := filepath.Join(t.TempDir(), "test.cmfidx")
	idx, err := BuildIndex(dbPath, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	idx.Close()

	reopened, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer reopened.Close()

	_, ok, err := reopened.Lookup(100)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected to find a marker at position 100 after reopening")
	}
}
