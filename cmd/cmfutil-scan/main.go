// Command cmfutil-scan computes per-marker allele frequencies across
// several .cmf files concurrently, one independent cmf.Reader per file,
// using golang.org/x/sync/errgroup to run the work and collect the
// first error. Every file gets its own goroutine; concurrency is not
// capped.
package main

import (
	"flag"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/carbocation/pfx"

	"github.com/carbocation/cmf/cmf"
)

type fileStats struct {
	path        string
	markerCount int
	meanAF      float64
}

func main() {
	flag.Parse()
	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatalln("Usage: cmfutil-scan <file1.cmf> [file2.cmf ...]")
	}

	var (
		mu      sync.Mutex
		results []fileStats
	)

	g := new(errgroup.Group)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			stats, err := scanFile(path)
			if err != nil {
				return pfx.Err(err)
			}
			mu.Lock()
			results = append(results, stats)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalln(err)
	}

	for _, s := range results {
		log.Printf("%s: %d markers, mean AF=%.4f\n", s.path, s.markerCount, s.meanAF)
	}
}

// scanFile opens its own cmf.Reader; readers are not safe to share
// across goroutines, so every worker gets an independent one.
func scanFile(path string) (fileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileStats{}, err
	}
	defer f.Close()

	r := cmf.NewReader(f)
	if r.Failed() {
		return fileStats{}, r.Err()
	}

	stats := fileStats{path: path}
	var afSum float64
	for {
		m, ok := r.Read()
		if !ok {
			break
		}
		af := m.AlleleFrequency()
		if af == af { // excludes NaN
			afSum += af
		}
		stats.markerCount++
	}
	if r.Failed() {
		return fileStats{}, r.Err()
	}

	if stats.markerCount > 0 {
		stats.meanAF = afSum / float64(stats.markerCount)
	}
	return stats, nil
}
