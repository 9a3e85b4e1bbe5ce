package cmf

import (
	"bufio"
	"io"

	"github.com/carbocation/cmf/cmferr"
)

// Writer serializes a header followed by a stream of markers to an
// underlying byte sink. A Writer is bound to that sink exclusively for its
// lifetime; no operation on it is safe to call concurrently with any
// other operation on the same Writer.
type Writer struct {
	w      byteWriter
	closer io.Closer
	header Header
	failed bool
	err    error
}

// NewWriter writes the CMF header (magic, version, chromosome, ploidy,
// sample names, metadata descriptors) to w and returns a Writer ready to
// accept markers. If writing the header fails, the returned Writer is
// already in the FAILED state and Err() reports why.
func NewWriter(w io.Writer, chromosome string, ploidy uint8, samples []string, metadataFields [][]byte) *Writer {
	bw, ok := w.(byteWriter)
	if !ok {
		bw = bufio.NewWriter(w)
	}

	wr := &Writer{
		w: bw,
		header: Header{
			Chromosome:     chromosome,
			Ploidy:         ploidy,
			Samples:        append([]string(nil), samples...),
			MetadataFields: append([][]byte(nil), metadataFields...),
		},
	}
	if c, ok := w.(io.Closer); ok {
		wr.closer = c
	}

	if err := wr.writeHeader(); err != nil {
		wr.fail(err)
	}

	return wr
}

func (wr *Writer) writeHeader() error {
	if _, err := wr.w.Write([]byte(magic)); err != nil {
		return cmferr.New(cmferr.IOError, err)
	}
	if _, err := wr.w.Write(version[:]); err != nil {
		return cmferr.New(cmferr.IOError, err)
	}

	if err := writeLenPrefixed(wr.w, []byte(wr.header.Chromosome)); err != nil {
		return err
	}
	if err := writeUvarint(wr.w, uint64(wr.header.Ploidy)); err != nil {
		return err
	}

	if err := writeUvarint(wr.w, uint64(len(wr.header.Samples))); err != nil {
		return err
	}
	for _, s := range wr.header.Samples {
		if err := writeLenPrefixed(wr.w, []byte(s)); err != nil {
			return err
		}
	}

	if err := writeUvarint(wr.w, uint64(len(wr.header.MetadataFields))); err != nil {
		return err
	}
	for _, f := range wr.header.MetadataFields {
		if err := writeLenPrefixed(wr.w, f); err != nil {
			return err
		}
	}

	return nil
}

func (wr *Writer) fail(err error) {
	wr.failed = true
	wr.err = err
}

// Failed reports whether the writer has transitioned to the FAILED state.
func (wr *Writer) Failed() bool { return wr.failed }

// Err returns the error that caused the writer to fail, if any.
func (wr *Writer) Err() error { return wr.err }

// Write serializes one marker. If the writer is already FAILED this is a
// no-op that returns the stored error. If marker.HaplotypeCount() does not
// equal Ploidy * len(Samples), the writer transitions to FAILED and the
// marker is not written.
func (wr *Writer) Write(m *Marker) error {
	if wr.failed {
		return wr.err
	}

	if m.HaplotypeCount() != wr.header.HaplotypeCount() {
		err := cmferr.New(cmferr.InvalidInput, nil)
		wr.fail(err)
		return err
	}

	if err := m.Write(wr.w); err != nil {
		wr.fail(err)
		return err
	}

	return nil
}

// Flush pushes any buffered bytes to the underlying sink.
func (wr *Writer) Flush() error {
	if f, ok := wr.w.(*bufio.Writer); ok {
		if err := f.Flush(); err != nil {
			return cmferr.New(cmferr.IOError, err)
		}
	}
	return nil
}

// Close flushes buffered bytes and, if the underlying sink is an
// io.Closer, closes it.
func (wr *Writer) Close() error {
	ferr := wr.Flush()
	if wr.closer != nil {
		if err := wr.closer.Close(); err != nil {
			if ferr == nil {
				return cmferr.New(cmferr.IOError, err)
			}
		}
	}
	return ferr
}
