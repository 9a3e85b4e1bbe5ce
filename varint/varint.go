// Package varint implements bit-prefixed variable-length integer codecs.
//
// Each encoded value reserves P bits (0 <= P <= 7) of the first output
// byte for a small side-channel "prefix" tag, and spills the remainder of
// the value across continuation bytes the usual LEB128 way. With P=0 this
// is the ordinary unsigned varint.
package varint

import (
	"io"

	"github.com/carbocation/cmf/cmferr"
)

// MaxBytes bounds how many bytes a single varint may occupy for the
// widest prefix (P=7) before decode reports Overflow. Narrower prefixes
// need fewer bytes; see maxBytesForPrefix.
const MaxBytes = 11

// maxBytesForPrefix returns how many bytes a P-bit prefixed varint needs
// in the worst case to carry a full 64-bit value: 7-P value bits in the
// first byte's low bits, then 7 more per continuation byte.
func maxBytesForPrefix(p uint) int {
	lowBits := 7 - p
	return int((64-lowBits+6)/7 + 1)
}

// Encode writes prefix (which must fit in P bits) and value to w using a
// P-bit prefixed varint. The first byte carries the continuation bit, the
// P prefix bits, and the low 7-P value bits; each continuation byte after
// it carries 7 more value bits, LSB first.
func Encode(w io.ByteWriter, p uint, prefix uint64, value uint64) error {
	if p > 7 {
		return cmferr.New(cmferr.InvalidInput, nil)
	}
	lowBits := 7 - p
	mask := uint64(1)<<p - 1
	prefix &= mask

	first := byte(prefix<<lowBits) | byte(value&(uint64(1)<<lowBits-1))
	rest := value >> lowBits

	if rest == 0 {
		if err := w.WriteByte(first); err != nil {
			return cmferr.New(cmferr.IOError, err)
		}
		return nil
	}

	first |= 0x80
	if err := w.WriteByte(first); err != nil {
		return cmferr.New(cmferr.IOError, err)
	}

	for i := 0; i < maxBytesForPrefix(p)-1; i++ {
		b := byte(rest & 0x7f)
		rest >>= 7
		if rest == 0 {
			if err := w.WriteByte(b); err != nil {
				return cmferr.New(cmferr.IOError, err)
			}
			return nil
		}
		if err := w.WriteByte(b | 0x80); err != nil {
			return cmferr.New(cmferr.IOError, err)
		}
	}

	return cmferr.New(cmferr.Overflow, nil)
}

// Decode reads a P-bit prefixed varint from r, returning the prefix, the
// value, and the number of bytes consumed.
func Decode(r io.ByteReader, p uint) (prefix uint64, value uint64, n int, err error) {
	if p > 7 {
		return 0, 0, 0, cmferr.New(cmferr.InvalidInput, nil)
	}
	lowBits := 7 - p

	first, rerr := r.ReadByte()
	if rerr != nil {
		if rerr == io.EOF {
			// Clean EOF: no bytes of this varint were ever read. Callers
			// that are scanning a stream of elements (e.g. cmf.Reader)
			// treat this as "no more elements" rather than TRUNCATED.
			return 0, 0, 0, io.EOF
		}
		return 0, 0, 0, cmferr.New(cmferr.IOError, rerr)
	}
	n = 1

	prefix = uint64(first>>lowBits) & (uint64(1)<<p - 1)
	value = uint64(first) & (uint64(1)<<lowBits - 1)

	if first&0x80 == 0 {
		return prefix, value, n, nil
	}

	maxBytes := maxBytesForPrefix(p)
	shift := uint(lowBits)
	for {
		if n >= maxBytes {
			return 0, 0, n, cmferr.New(cmferr.Overflow, nil)
		}

		b, rerr := r.ReadByte()
		if rerr != nil {
			return 0, 0, n, truncatedOrIO(rerr)
		}
		n++

		chunk := uint64(b & 0x7f)
		if shift >= 64 || (shift > 57 && chunk>>(64-shift) != 0) {
			return 0, 0, n, cmferr.New(cmferr.Overflow, nil)
		}
		value |= chunk << shift
		shift += 7

		if b&0x80 == 0 {
			return prefix, value, n, nil
		}
	}
}

func truncatedOrIO(err error) error {
	if err == io.EOF {
		return cmferr.New(cmferr.Truncated, io.ErrUnexpectedEOF)
	}
	return cmferr.New(cmferr.IOError, err)
}

// Size returns the number of bytes Encode would write for prefix/value
// with the given prefix width, without performing any I/O.
func Size(p uint, value uint64) int {
	lowBits := 7 - p
	rest := value >> lowBits
	n := 1
	for rest != 0 {
		rest >>= 7
		n++
	}
	return n
}
