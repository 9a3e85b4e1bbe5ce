package cmf

// AlleleStatus is the three-valued call a single haplotype can carry at a
// marker. HasRef is the zero value, so it is never stored explicitly in a
// marker's sparse entry list.
type AlleleStatus uint8

const (
	// HasRef means the haplotype matches the reference allele. This is
	// the default value and is never stored as a sparse entry.
	HasRef AlleleStatus = iota
	// HasAlt means the haplotype carries the alternate allele.
	HasAlt
	// IsMissing means no call was made for this haplotype.
	IsMissing
)

func (s AlleleStatus) String() string {
	switch s {
	case HasRef:
		return "HAS_REF"
	case HasAlt:
		return "HAS_ALT"
	case IsMissing:
		return "IS_MISSING"
	default:
		return "UNKNOWN"
	}
}
