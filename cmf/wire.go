package cmf

import (
	"bytes"
	"io"

	"github.com/carbocation/cmf/cmferr"
	"github.com/carbocation/cmf/varint"
	"github.com/carbocation/pfx"
)

// maxFieldLen bounds any single length-prefixed field (chromosome name,
// sample name, metadata-field blob, marker ref/alt sequence). A declared
// length is checked against this cap before any bytes are read, so a
// corrupt or adversarial length can transition the reader to FAILED
// instead of driving an allocation sized off an attacker-controlled
// varint.
const maxFieldLen = 1 << 30

// byteWriter is what the wire helpers need to emit varints and raw bytes.
type byteWriter interface {
	io.Writer
	io.ByteWriter
}

// byteReader is what the wire helpers need to consume varints and raw bytes.
type byteReader interface {
	io.Reader
	io.ByteReader
}

func writeUvarint(w byteWriter, value uint64) error {
	return varint.Encode(w, 0, 0, value)
}

func readUvarint(r byteReader) (uint64, error) {
	_, value, _, err := varint.Decode(r, 0)
	return value, err
}

func writeLenPrefixed(w byteWriter, b []byte) error {
	if err := writeUvarint(w, uint64(len(b))); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return cmferr.New(cmferr.IOError, err)
	}
	return nil
}

func readLenPrefixed(r byteReader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > maxFieldLen {
		return nil, cmferr.New(cmferr.Malformed, nil)
	}

	// io.CopyN into a bytes.Buffer grows the backing slice only as bytes
	// actually arrive (bytes.Buffer.ReadFrom reads in small increments),
	// so a declared length far beyond what the stream actually holds is
	// caught as a short read instead of an upfront allocation of size n.
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, cmferr.New(cmferr.Truncated, pfx.Err(err))
		}
		return nil, cmferr.New(cmferr.IOError, pfx.Err(err))
	}
	return buf.Bytes(), nil
}
