// Command cmfutil-dump prints the header and the first handful of
// markers from a .cmf file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/pfx"

	"github.com/carbocation/cmf/cmf"
)

func main() {
	path := flag.String("cmf", "", "Filename of the .cmf file to dump")
	limit := flag.Int("n", 10, "Number of markers to print; 0 means all")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No .cmf file given")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer f.Close()

	r := cmf.NewReader(f)
	if r.Failed() {
		log.Fatalln(pfx.Err(r.Err()))
	}

	log.Printf("Chromosome=%s Ploidy=%d Samples=%d MetadataFields=%d\n",
		r.Chromosome(), r.Ploidy(), r.SampleCount(), len(r.MetadataFields()))

	i := 0
	for {
		m, ok := r.Read()
		if !ok {
			break
		}
		if *limit == 0 || i < *limit {
			fmt.Printf("%d) pos=%d ref=%s alt=%s haplotypes=%d af=%.4f nonzero=%v\n",
				i, m.Position(), m.Ref(), m.Alt(), m.HaplotypeCount(), m.AlleleFrequency(), m.NonZero())
		}
		i++
	}
	if r.Failed() {
		log.Fatalln(pfx.Err(r.Err()))
	}

	log.Println("Saw", i, "markers")
}
