package clahe

import (
	"math"
	"sync/atomic"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/rs/zerolog"
)

// Mode selects whether tile histograms are contrast limited.
type Mode uint8

const (
	// ModeAHE equalizes every tile without clipping.
	ModeAHE Mode = iota + 1
	// ModeCLAHE clips each tile histogram at the threshold before equalizing.
	ModeCLAHE
)

func (m Mode) String() string {
	switch m {
	case ModeAHE:
		return "AHE"
	case ModeCLAHE:
		return "CLAHE"
	default:
		return "unknown"
	}
}

// engine equalizes one plane in two strictly ordered phases: every tile
// mapping is finalized before any pixel is interpolated.
type engine struct {
	mode      Mode
	threshold float32
	bins      int
	pool      *workerpool.Pool
	log       *zerolog.Logger
}

func (e *engine) run(p *Plane, tg tileGrid) {
	maps := e.tileMappings(p, tg)
	e.interpolate(p, tg, maps)
}

// tileMappings returns the normalized equalization curve of every tile,
// indexed [row][col].
func (e *engine) tileMappings(p *Plane, tg tileGrid) [][]Histogram {
	flat := make([]Histogram, tg.count())
	var degenerate atomic.Int32

	forEach(e.pool, len(flat), func(i int) {
		col, row := i%tg.tilesX, i/tg.tilesX
		r := tg.tile(col, row)
		h := countRegion(p, r.Min.X, r.Max.X, r.Min.Y, r.Max.Y, e.bins)
		if e.mode == ModeCLAHE {
			clipAndRedistribute(h.Bins, e.threshold, r.Dx(), r.Dy())
		}
		cumulative(h.Bins)
		if !normalize(h.Bins, uint64(r.Dx()*r.Dy())) {
			degenerate.Add(1)
		}
		flat[i] = h
	})

	e.log.Debug().
		Stringer("mode", e.mode).
		Int("tiles_x", tg.tilesX).
		Int("tiles_y", tg.tilesY).
		Int("tile_w", tg.tileW).
		Int("tile_h", tg.tileH).
		Int32("identity_tiles", degenerate.Load()).
		Msg("tile mappings built")

	grid := make([][]Histogram, tg.tilesY)
	for row := range grid {
		grid[row] = flat[row*tg.tilesX : (row+1)*tg.tilesX]
	}
	return grid
}

// interpolate replaces every sample with the bilinear blend of its value
// mapped through the four nearest tile curves.
func (e *engine) interpolate(p *Plane, tg tileGrid, maps [][]Histogram) {
	cols := axisCells(tg.width, tg.tileW, tg.tilesX)
	top := e.bins - 1

	forRows(e.pool, tg.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			r := axisCell(y, tg.tileH, tg.tilesY)
			upper, lower := maps[r.lo], maps[r.hi]
			row := p.Row(y)[:tg.width]
			for x, v := range row {
				c := cols[x]
				idx := min(int(v), top)
				c00 := float32(upper[c.lo].Bins[idx])
				c10 := float32(upper[c.hi].Bins[idx])
				c01 := float32(lower[c.lo].Bins[idx])
				c11 := float32(lower[c.hi].Bins[idx])
				row[x] = roundSample(blerp(c00, c10, c01, c11, c.w, r.w), top)
			}
		}
	})
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func blerp(c00, c10, c01, c11, tx, ty float32) float32 {
	return lerp(lerp(c00, c10, tx), lerp(c01, c11, tx), ty)
}

// roundSample rounds half away from zero and clamps to [0, top].
func roundSample(v float32, top int) uint16 {
	r := math.Round(float64(v))
	if r <= 0 {
		return 0
	}
	if r >= float64(top) {
		return uint16(top)
	}
	return uint16(r)
}
