package pngshrink

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// FindBestEncoding encodes the raster once per filter and
// returns the smallest output along with the filter that
// produced it.
//
// On ties, the filter listed first wins. If any trial
// fails, the search is aborted and the error is returned.
//
// If filters is empty, AllFilters is used. Progress lines
// are written to log if it is non-nil.
func FindBestEncoding(r *Raster, filters []Filter, parallel bool,
	log io.Writer) ([]byte, Filter, error) {
	if len(filters) == 0 {
		filters = AllFilters
	}
	if parallel {
		return findBestParallel(r, filters, log)
	}

	var best []byte
	var bestFilter Filter
	for _, f := range filters {
		out, err := Encode(r, f)
		if err != nil {
			return nil, 0, fmt.Errorf("encode with filter %s: %w", f, err)
		}
		logTrial(log, f, out)
		if best == nil || len(out) < len(best) {
			best = out
			bestFilter = f
		}
	}
	return best, bestFilter, nil
}

func findBestParallel(r *Raster, filters []Filter, log io.Writer) ([]byte, Filter, error) {
	outputs := make([][]byte, len(filters))
	var g errgroup.Group
	for i, f := range filters {
		i, f := i, f
		g.Go(func() error {
			out, err := Encode(r, f)
			if err != nil {
				return fmt.Errorf("encode with filter %s: %w", f, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	bestIdx := 0
	for i, out := range outputs {
		logTrial(log, filters[i], out)
		if len(out) < len(outputs[bestIdx]) {
			bestIdx = i
		}
	}
	return outputs[bestIdx], filters[bestIdx], nil
}

func logTrial(log io.Writer, f Filter, out []byte) {
	if log != nil {
		fmt.Fprintf(log, "filter=%s size=%d (%s)\n", f, len(out), humanize.Bytes(uint64(len(out))))
	}
}
