package cmf

// magic is the 4 ASCII bytes identifying a CMF file.
const magic = "cvcf"

// version is the 4-byte version suffix that follows magic: major 0,
// minor 1, patch 0, reserved 0. Entry counts are plain varints, and
// sparse-entry offsets are non-gap ascending deltas from the previous
// offset.
var version = [4]byte{0x00, 0x01, 0x00, 0x00}

// Header holds the fixed, once-per-file fields that precede the marker
// stream: the chromosome this file covers, the ploidy used to compute each
// marker's haplotype count, the sample names (in column order), and any
// opaque metadata-field descriptors.
type Header struct {
	Chromosome     string
	Ploidy         uint8
	Samples        []string
	MetadataFields [][]byte
}

// HaplotypeCount returns Ploidy * len(Samples), the haplotype_count every
// marker in a file with this header must carry.
func (h Header) HaplotypeCount() uint64 {
	return uint64(h.Ploidy) * uint64(len(h.Samples))
}
