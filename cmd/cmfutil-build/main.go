// Command cmfutil-build scans a .cmf file end to end and writes a
// SQLite side-index of marker positions next to it.
package main

import (
	"flag"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/carbocation/cmf/cmfindex"
)

func main() {
	path := flag.String("cmf", "", "Filename of the .cmf file to index")
	idxPath := flag.String("idx", "", "Filename of the index database to create")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No .cmf file given")
	}

	*path = expandHome(*path)
	if *idxPath == "" {
		*idxPath = *path + ".idx"
	}
	*idxPath = expandHome(*idxPath)

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer f.Close()

	log.Println("Building index:", *idxPath, "from", *path, "using driver", cmfindex.WhichSQLiteDriver())
	idx, err := cmfindex.BuildIndex(*idxPath, f)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer idx.Close()

	meta, err := idx.Metadata()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	log.Printf("Indexed chromosome=%s ploidy=%d samples=%d\n", meta.Chromosome, meta.Ploidy, meta.SampleCount)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
