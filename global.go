package clahe

import (
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/rs/zerolog"
)

// equalizeGlobal remaps every sample of p through one curve built from the
// histogram of the whole plane.
func equalizeGlobal(p *Plane, bins int, pool *workerpool.Pool, log *zerolog.Logger) {
	width, height := p.Width(), p.Height()
	h := countRegion(p, 0, width, 0, height, bins)
	cumulative(h.Bins)
	if !normalize(h.Bins, uint64(width*height)) {
		log.Debug().Int("bins", bins).Msg("uniform plane, identity mapping")
	}

	table := make([]uint16, bins)
	for i, v := range h.Bins {
		table[i] = uint16(v)
	}
	top := uint16(bins - 1)

	forRows(pool, height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := p.Row(y)[:width]
			for x, v := range row {
				row[x] = table[min(v, top)]
			}
		}
	})
}
