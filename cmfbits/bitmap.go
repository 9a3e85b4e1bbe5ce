// Package cmfbits builds roaring-bitmap views of a marker's carrier
// haplotypes, so callers can run fast set operations (intersection,
// union, cardinality) across many markers without repeatedly decoding
// each one into a dense slice.
package cmfbits

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/carbocation/cmf/cmf"
)

// AltBitmap returns a bitmap of the haplotype offsets whose call is
// HAS_ALT. IS_MISSING offsets are excluded: they are not genotype
// calls, and including them would make intersection cardinalities
// overcount shared carriers.
func AltBitmap(m *cmf.Marker) *roaring.Bitmap {
	rb := roaring.New()
	for _, e := range m.NonZero() {
		if e.Status == cmf.HasAlt {
			rb.Add(uint32(e.Offset))
		}
	}
	return rb
}

// MissingBitmap returns a bitmap of the haplotype offsets whose call is
// IS_MISSING.
func MissingBitmap(m *cmf.Marker) *roaring.Bitmap {
	rb := roaring.New()
	for _, e := range m.NonZero() {
		if e.Status == cmf.IsMissing {
			rb.Add(uint32(e.Offset))
		}
	}
	return rb
}

// SharedCarriers returns the number of haplotypes that carry the alt
// allele at both a and b.
func SharedCarriers(a, b *cmf.Marker) uint64 {
	return AltBitmap(a).AndCardinality(AltBitmap(b))
}

// UnionCarriers returns the number of haplotypes that carry the alt
// allele at a, b, or both.
func UnionCarriers(a, b *cmf.Marker) uint64 {
	return AltBitmap(a).OrCardinality(AltBitmap(b))
}

// CarrierSet is a roaring-backed accumulator for scanning many markers
// and tracking which haplotypes carry at least one alt allele across
// the whole scan.
type CarrierSet struct {
	rb *roaring.Bitmap
}

// NewCarrierSet returns an empty accumulator.
func NewCarrierSet() *CarrierSet {
	return &CarrierSet{rb: roaring.New()}
}

// Add folds m's alt carriers into the running set.
func (c *CarrierSet) Add(m *cmf.Marker) {
	c.rb.Or(AltBitmap(m))
}

// Cardinality returns the number of distinct haplotypes seen so far.
func (c *CarrierSet) Cardinality() uint64 {
	return c.rb.GetCardinality()
}

// Contains reports whether haplotype offset i has carried an alt
// allele in any marker added so far.
func (c *CarrierSet) Contains(i uint64) bool {
	return c.rb.Contains(uint32(i))
}
