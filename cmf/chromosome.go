package cmf

import "fmt"

// ChromosomeLabel maps a numeric chromosome code (the convention used
// by most variant call tooling: 1-22 autosomes, 23=X, 24=Y, 25=XY
// pseudoautosomal, 26=MT) to the zero-padded label a Header's
// Chromosome field conventionally holds. Codes outside this range
// return "NA".
func ChromosomeLabel(code uint16) string {
	switch code {
	case 23:
		return "0X"
	case 24:
		return "0Y"
	case 25:
		return "XY"
	case 26:
		return "MT"
	}
	if code >= 1 && code <= 22 {
		return fmt.Sprintf("%02d", code)
	}
	return "NA"
}
