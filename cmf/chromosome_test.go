package cmf

import "testing"

func TestChromosomeLabel(t *testing.T) {
	cases := map[uint16]string{
		1:  "01",
		9:  "09",
		10: "10",
		22: "22",
		23: "0X",
		24: "0Y",
		25: "XY",
		26: "MT",
		0:  "NA",
		27: "NA",
	}
	for code, want := range cases {
		if got := ChromosomeLabel(code); got != want {
			t.Errorf("ChromosomeLabel(%d) = %q, want %q", code, got, want)
		}
	}
}
