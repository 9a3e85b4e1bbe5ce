package cmf

import (
	"bufio"
	"io"
	"math"

	"github.com/carbocation/cmf/cmferr"
	"github.com/carbocation/cmf/sparsevector"
	"github.com/carbocation/cmf/varint"
)

// altFlagPrefixWidth is the width, in bits, of the side-channel prefix
// carried by each non-ref entry's delta varint: a single bit distinguishing
// HAS_ALT (1) from IS_MISSING (0).
const altFlagPrefixWidth = 1

// Marker describes one genomic variant site: its position, its reference
// and alternate allele sequences, and the sparse list of haplotypes whose
// call is not HAS_REF.
type Marker struct {
	position       uint64
	ref            string
	alt            string
	haplotypeCount uint64
	entries        *sparsevector.Vector[AlleleStatus]
}

// NewMarkerFromDense builds a marker from a dense allele-status sequence.
// haplotypeCount is set to len(calls).
func NewMarkerFromDense(position uint64, ref, alt string, calls []AlleleStatus) *Marker {
	return &Marker{
		position:       position,
		ref:            ref,
		alt:            alt,
		haplotypeCount: uint64(len(calls)),
		entries:        sparsevector.FromDense(calls),
	}
}

// SparseAllele is one non-reference entry supplied to NewMarkerFromSparse.
type SparseAllele struct {
	Offset uint64
	Status AlleleStatus
}

// NewMarkerFromSparse builds a marker directly from a sparse entry list.
// entries must be sorted by strictly ascending Offset and must not contain
// HasRef; both violations are rejected with InvalidInput. haplotypeCount
// must be at least len(entries).
func NewMarkerFromSparse(position uint64, ref, alt string, entries []SparseAllele, haplotypeCount uint64) (*Marker, error) {
	if haplotypeCount < uint64(len(entries)) {
		return nil, cmferr.New(cmferr.InvalidInput, nil)
	}

	offsets := make([]int, len(entries))
	values := make([]AlleleStatus, len(entries))
	var prevSet bool
	var prev uint64
	for i, e := range entries {
		if e.Status == HasRef {
			return nil, cmferr.New(cmferr.InvalidInput, nil)
		}
		if e.Offset >= haplotypeCount {
			return nil, cmferr.New(cmferr.InvalidInput, nil)
		}
		if prevSet && e.Offset <= prev {
			return nil, cmferr.New(cmferr.InvalidInput, nil)
		}
		prevSet, prev = true, e.Offset
		offsets[i] = int(e.Offset)
		values[i] = e.Status
	}

	return &Marker{
		position:       position,
		ref:            ref,
		alt:            alt,
		haplotypeCount: haplotypeCount,
		entries:        sparsevector.FromSparse(values, offsets, int(haplotypeCount)),
	}, nil
}

// Position returns the 1-based genomic coordinate.
func (m *Marker) Position() uint64 { return m.position }

// Ref returns the reference allele sequence.
func (m *Marker) Ref() string { return m.ref }

// Alt returns the alternate allele sequence.
func (m *Marker) Alt() string { return m.alt }

// HaplotypeCount returns the dense logical length (samples * ploidy).
func (m *Marker) HaplotypeCount() uint64 { return m.haplotypeCount }

// At returns the allele status at haplotype offset i.
func (m *Marker) At(i uint64) AlleleStatus { return m.entries.Get(int(i)) }

// NonZero returns the stored non-ref entries in ascending offset order.
func (m *Marker) NonZero() []SparseAllele {
	es := m.entries.Entries()
	out := make([]SparseAllele, len(es))
	for i, e := range es {
		out[i] = SparseAllele{Offset: uint64(e.Offset), Status: e.Value}
	}
	return out
}

// Dense returns every haplotype's status, HasRef filled in at every offset
// not explicitly stored.
func (m *Marker) Dense() []AlleleStatus { return m.entries.Dense() }

// AlleleFrequency returns (# HAS_ALT) / (haplotype_count - # IS_MISSING).
// If the denominator is zero the result is NaN.
func (m *Marker) AlleleFrequency() float64 {
	var altCount, missingCount uint64
	for _, v := range m.entries.Values() {
		switch v {
		case HasAlt:
			altCount++
		case IsMissing:
			missingCount++
		}
	}
	denom := m.haplotypeCount - missingCount
	if denom == 0 {
		return math.NaN()
	}
	return float64(altCount) / float64(denom)
}

// Equal reports whether m and other encode the same marker: same position,
// alleles, haplotype count, and non-ref entries.
func (m *Marker) Equal(other *Marker) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.position != other.position || m.ref != other.ref || m.alt != other.alt || m.haplotypeCount != other.haplotypeCount {
		return false
	}
	a, b := m.NonZero(), other.NonZero()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Write serializes m to w: position, ref, alt, entry count, then one
// 1-bit-prefixed delta varint per non-ref entry.
func (m *Marker) Write(w io.Writer) error {
	bw, ok := w.(byteWriter)
	if !ok {
		bw = bufio.NewWriter(w)
	}

	if err := writeUvarint(bw, m.position); err != nil {
		return err
	}
	if err := writeLenPrefixed(bw, []byte(m.ref)); err != nil {
		return err
	}
	if err := writeLenPrefixed(bw, []byte(m.alt)); err != nil {
		return err
	}

	entries := m.entries.Entries()
	if err := writeUvarint(bw, uint64(len(entries))); err != nil {
		return err
	}

	var prev uint64
	for i, e := range entries {
		offset := uint64(e.Offset)
		delta := offset
		if i > 0 {
			delta = offset - prev
		}
		prev = offset

		var flag uint64
		if e.Value == HasAlt {
			flag = 1
		}
		if err := varint.Encode(bw, altFlagPrefixWidth, flag, delta); err != nil {
			return err
		}
	}

	if f, ok := bw.(*bufio.Writer); ok {
		if err := f.Flush(); err != nil {
			return cmferr.New(cmferr.IOError, err)
		}
	}

	return nil
}

// ReadMarker deserializes one marker from r, given the container's known
// haplotypeCount (samples * ploidy).
func ReadMarker(r io.Reader, haplotypeCount uint64) (*Marker, error) {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	position, err := readUvarint(br)
	if err != nil {
		return nil, err
	}

	// Once the position has been read, running out of bytes means the
	// marker is cut short, not that the stream ended cleanly.
	midMarker := func(err error) error {
		if err == io.EOF {
			return cmferr.New(cmferr.Truncated, io.ErrUnexpectedEOF)
		}
		return err
	}

	refBytes, err := readLenPrefixed(br)
	if err != nil {
		return nil, midMarker(err)
	}

	altBytes, err := readLenPrefixed(br)
	if err != nil {
		return nil, midMarker(err)
	}

	count, err := readUvarint(br)
	if err != nil {
		return nil, midMarker(err)
	}

	if count > haplotypeCount {
		return nil, cmferr.New(cmferr.Malformed, nil)
	}

	offsets := make([]int, 0, count)
	values := make([]AlleleStatus, 0, count)
	var offset uint64
	for i := uint64(0); i < count; i++ {
		flag, delta, _, derr := varint.Decode(br, altFlagPrefixWidth)
		if derr != nil {
			if derr == io.EOF {
				return nil, cmferr.New(cmferr.Truncated, io.ErrUnexpectedEOF)
			}
			return nil, derr
		}

		if i == 0 {
			offset = delta
		} else {
			offset += delta
		}

		if offset >= haplotypeCount {
			return nil, cmferr.New(cmferr.Malformed, nil)
		}
		if len(offsets) > 0 && int(offset) <= offsets[len(offsets)-1] {
			return nil, cmferr.New(cmferr.Malformed, nil)
		}

		status := IsMissing
		if flag == 1 {
			status = HasAlt
		}
		offsets = append(offsets, int(offset))
		values = append(values, status)
	}

	return &Marker{
		position:       position,
		ref:            string(refBytes),
		alt:            string(altBytes),
		haplotypeCount: haplotypeCount,
		entries:        sparsevector.FromSparse(values, offsets, int(haplotypeCount)),
	}, nil
}
