package cmf

import (
	"bufio"
	"bytes"
	"io"

	"github.com/carbocation/cmf/cmferr"
)

// Reader deserializes a CMF header followed by a stream of markers from an
// underlying byte source. A Reader is bound to that source exclusively for
// its lifetime; no operation on it is safe to call concurrently with any
// other operation on the same Reader.
type Reader struct {
	r      byteReader
	closer io.Closer
	header Header
	failed bool
	err    error
}

// NewReader reads and validates the CMF header from r. If the header is
// malformed, the returned Reader is already in the FAILED state, its
// Samples() is empty, and Err() reports why.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	rd := &Reader{r: br}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}

	if err := rd.readHeader(); err != nil {
		rd.fail(err)
	}

	return rd
}

func (rd *Reader) readHeader() error {
	magicBuf := make([]byte, len(magic))
	if _, err := io.ReadFull(rd.r, magicBuf); err != nil {
		return cmferr.New(cmferr.Truncated, err)
	}
	if !bytes.Equal(magicBuf, []byte(magic)) {
		return cmferr.New(cmferr.BadMagic, nil)
	}

	versionBuf := make([]byte, len(version))
	if _, err := io.ReadFull(rd.r, versionBuf); err != nil {
		return cmferr.New(cmferr.Truncated, err)
	}
	if !bytes.Equal(versionBuf, version[:]) {
		return cmferr.New(cmferr.BadVersion, nil)
	}

	chromBytes, err := readLenPrefixed(rd.r)
	if err != nil {
		return headerReadErr(err)
	}
	rd.header.Chromosome = string(chromBytes)

	ploidy, err := readUvarint(rd.r)
	if err != nil {
		return headerReadErr(err)
	}
	if ploidy > 255 {
		return cmferr.New(cmferr.Malformed, nil)
	}
	rd.header.Ploidy = uint8(ploidy)

	sampleCount, err := readUvarint(rd.r)
	if err != nil {
		return headerReadErr(err)
	}
	rd.header.Samples = make([]string, 0, sampleCount)
	for i := uint64(0); i < sampleCount; i++ {
		nameBytes, err := readLenPrefixed(rd.r)
		if err != nil {
			return headerReadErr(err)
		}
		rd.header.Samples = append(rd.header.Samples, string(nameBytes))
	}

	fieldCount, err := readUvarint(rd.r)
	if err != nil {
		return headerReadErr(err)
	}
	rd.header.MetadataFields = make([][]byte, 0, fieldCount)
	for i := uint64(0); i < fieldCount; i++ {
		fieldBytes, err := readLenPrefixed(rd.r)
		if err != nil {
			return headerReadErr(err)
		}
		rd.header.MetadataFields = append(rd.header.MetadataFields, fieldBytes)
	}

	return nil
}

// headerReadErr converts the clean io.EOF that readUvarint/readLenPrefixed
// return at a varint boundary (meant for stream scanners like Read, which
// treat it as "no more elements") into TRUNCATED: every header field is
// mandatory, so running out of bytes while parsing one is always a
// truncated file, never an expected end-of-stream.
func headerReadErr(err error) error {
	if err == io.EOF {
		return cmferr.New(cmferr.Truncated, err)
	}
	return err
}

func (rd *Reader) fail(err error) {
	rd.failed = true
	rd.err = err
	rd.header.Samples = nil
}

// Failed reports whether the reader has transitioned to the FAILED state.
func (rd *Reader) Failed() bool { return rd.failed }

// Err returns the error that caused the reader to fail, if any.
func (rd *Reader) Err() error { return rd.err }

// Chromosome returns the chromosome name from the header.
func (rd *Reader) Chromosome() string { return rd.header.Chromosome }

// Ploidy returns the ploidy from the header.
func (rd *Reader) Ploidy() uint8 { return rd.header.Ploidy }

// Samples returns the sample names from the header, in column order. It
// is empty if the reader is in the FAILED state.
func (rd *Reader) Samples() []string { return rd.header.Samples }

// MetadataFields returns the opaque metadata-field descriptors from the
// header.
func (rd *Reader) MetadataFields() [][]byte { return rd.header.MetadataFields }

// SampleCount returns len(Samples()).
func (rd *Reader) SampleCount() uint64 { return uint64(len(rd.header.Samples)) }

// Header returns a copy of the decoded header.
func (rd *Reader) Header() Header { return rd.header }

// Read attempts to decode one marker, using haplotype_count = SampleCount
// * Ploidy. It returns (marker, true) on success, (nil, false) on clean
// EOF, and (nil, false) with the reader transitioned to FAILED on any
// decode error.
func (rd *Reader) Read() (*Marker, bool) {
	if rd.failed {
		return nil, false
	}

	m, err := ReadMarker(rd.r, rd.header.HaplotypeCount())
	if err != nil {
		if err == io.EOF {
			return nil, false
		}
		rd.fail(err)
		return nil, false
	}

	return m, true
}

// Close closes the underlying source if it implements io.Closer.
func (rd *Reader) Close() error {
	if rd.closer == nil {
		return nil
	}
	if err := rd.closer.Close(); err != nil {
		return cmferr.New(cmferr.IOError, err)
	}
	return nil
}

// Markers calls yield with each marker in turn, stopping at EOF, at the
// first error, or when yield returns false; its signature has the shape of
// a Go 1.23 range-over-func iterator. The caller should check Err() after
// iteration completes to distinguish a clean EOF from a decode failure.
func (rd *Reader) Markers(yield func(*Marker) bool) {
	for {
		m, ok := rd.Read()
		if !ok {
			return
		}
		if !yield(m) {
			return
		}
	}
}
