package clahe

import (
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/algo"
)

// Histogram holds per-bin pixel counts for one region of a channel plane.
type Histogram struct {
	Bins []uint64
}

// RegionHistogram counts the samples of p inside [x0,x1)×[y0,y1) into bins
// buckets. Samples above bins-1 are counted in the last bucket.
// The rectangle is clipped to the plane bounds.
func RegionHistogram(p *Plane, x0, x1, y0, y1, bins int) (Histogram, error) {
	if bins <= 1 {
		return Histogram{}, ErrInvalidBins
	}
	x0, x1 = max(x0, 0), min(x1, p.Width())
	y0, y1 = max(y0, 0), min(y1, p.Height())
	return countRegion(p, x0, x1, y0, y1, bins), nil
}

// Cumulative turns h into its cumulative distribution in place.
// Calling it twice accumulates twice.
func (h Histogram) Cumulative() {
	cumulative(h.Bins)
}

// Clip applies the single-pass contrast limit used by CLAHE for a tile of
// tileWidth×tileHeight pixels.
func (h Histogram) Clip(level float32, tileWidth, tileHeight int) {
	clipAndRedistribute(h.Bins, level, tileWidth, tileHeight)
}

// MinMax returns the smallest and largest bin counts.
func (h Histogram) MinMax() (uint64, uint64) {
	return minMax(h.Bins)
}

// Total returns the sum of all bins.
func (h Histogram) Total() uint64 {
	var sum uint64
	for _, v := range h.Bins {
		sum += v
	}
	return sum
}

func countRegion(p *Plane, x0, x1, y0, y1, bins int) Histogram {
	counts := make([]uint64, bins)
	top := uint16(bins - 1)
	if bins-1 > math.MaxUint16 {
		top = math.MaxUint16
	}
	for y := y0; y < y1; y++ {
		row := p.Row(y)[x0:x1]
		for _, v := range row {
			counts[min(v, top)]++
		}
	}
	return Histogram{Bins: counts}
}

func cumulative(bins []uint64) {
	algo.PrefixSumUint64(bins)
}

// clipAndRedistribute clamps every bin to
// floor(level*tileWidth*tileHeight/len(bins)) and spreads the clipped excess
// evenly over all bins. The redistribution runs once, so bins may end up
// above the limit by at most excess/len(bins).
func clipAndRedistribute(bins []uint64, level float32, tileWidth, tileHeight int) {
	n := uint64(len(bins))
	if n == 0 {
		return
	}
	limit := uint64(float64(level) * float64(tileWidth) * float64(tileHeight) / float64(n))

	var excess uint64
	for i, v := range bins {
		if v > limit {
			excess += v - limit
			bins[i] = limit
		}
	}

	mean := excess / n
	if mean == 0 {
		return
	}
	for i := range bins {
		bins[i] += mean
	}
}

func minMax(bins []uint64) (uint64, uint64) {
	lo, hi := uint64(math.MaxUint64), uint64(0)
	for _, v := range bins {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// normalize rescales a cumulative histogram of pixelCount samples into
// [0, len(bins)-1]. When every sample of the region sits in the first bin the
// scale is undefined; bins becomes the identity mapping and false is returned.
func normalize(bins []uint64, pixelCount uint64) bool {
	lo, _ := minMax(bins)
	if pixelCount <= lo {
		for i := range bins {
			bins[i] = uint64(i)
		}
		return false
	}
	top := float64(len(bins) - 1)
	r := 1 / (float64(pixelCount) - float64(lo))
	for i, v := range bins {
		mapped := math.Round(top * (float64(v) - float64(lo)) * r)
		bins[i] = uint64(min(max(mapped, 0), top))
	}
	return true
}
