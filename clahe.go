package clahe

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/rs/zerolog"
)

// DefaultBinsCount is the number of histogram bins used when
// Options.BinsCount is zero.
const DefaultBinsCount = 128

// maxBins is the largest bins count the 16-bit equalization plane can hold.
const maxBins = 1 << 16

// Options controls how an image is split into an equalization channel and
// how the work is scheduled. A nil *Options selects every default.
type Options struct {
	// Space selects the color space whose lightness is equalized.
	// Default: Lab.
	Space ColorSpace

	// Layout describes the interleaving of src and dst. Default: RGB.
	Layout Layout

	// BinsCount is the number of histogram bins (default: 128).
	// Luma spaces (YCgCo, YCbCr, RCT) always use 256.
	BinsCount int

	// Pool runs the tile and row fan-out. Default: a shared pool with one
	// worker per GOMAXPROCS.
	Pool *workerpool.Pool

	// Logger overrides the package logger for this call.
	Logger *zerolog.Logger
}

// config is Options with every default resolved.
type config struct {
	space  ColorSpace
	layout Layout
	bins   int
	pool   *workerpool.Pool
	log    *zerolog.Logger
}

func (o *Options) resolve() (config, error) {
	if o == nil {
		o = &Options{}
	}
	c := config{
		space:  o.Space,
		layout: o.Layout,
		bins:   o.BinsCount,
		pool:   o.Pool,
		log:    o.Logger,
	}
	if c.space == nil {
		c.space = Lab
	}
	if c.pool == nil {
		c.pool = sharedPool()
	}
	if c.log == nil {
		c.log = Logger()
	}
	if !c.layout.valid() {
		return config{}, fmt.Errorf("%w: %s", ErrInvalidLayout, c.layout)
	}
	if c.bins != 0 {
		if err := validateBins(c.bins); err != nil {
			return config{}, err
		}
	} else {
		c.bins = DefaultBinsCount
	}
	if fb, ok := c.space.(fixedBinsSpace); ok && fb.Bins() > 0 {
		if o.BinsCount != 0 && o.BinsCount != fb.Bins() {
			c.log.Warn().
				Stringer("space", c.space).
				Int("requested", o.BinsCount).
				Int("bins", fb.Bins()).
				Msg("bins count fixed by color space")
		}
		c.bins = fb.Bins()
	}
	return c, nil
}

func validateBins(bins int) error {
	if bins <= 1 || bins > maxBins {
		return fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}
	return nil
}

func validateThreshold(t float32) error {
	if t < 0 || math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, t)
	}
	return nil
}

// checkBuffer verifies that buf can hold height rows of stride bytes, each
// at least width*channels wide.
func checkBuffer(name string, buf []byte, stride, width, height, channels int) error {
	if stride < width*channels {
		return fmt.Errorf("%w: %s stride %d < %d", ErrInvalidStride, name, stride, width*channels)
	}
	if len(buf) < stride*height {
		return fmt.Errorf("%w: %s has %d bytes, need %d", ErrShortBuffer, name, len(buf), stride*height)
	}
	return nil
}

// job describes one equalization request. A zero mode means global
// equalization.
type job struct {
	mode      Mode
	threshold float32
	grid      GridSize
}

// CLAHE converts src into the configured color space, applies
// contrast-limited adaptive histogram equalization to its lightness and
// writes the result into dst.
//
// threshold is the clip level relative to a uniform histogram; typical
// values lie in [0, 10]. grid is the requested number of tiles, see
// DefaultGridSize.
//
// All arguments are validated before dst is touched: on error dst is left
// unmodified.
func CLAHE(src []byte, srcStride int, dst []byte, dstStride int, width, height int,
	threshold float32, grid GridSize, opts *Options) error {
	if err := validateThreshold(threshold); err != nil {
		return err
	}
	return process(src, srcStride, dst, dstStride, width, height,
		job{mode: ModeCLAHE, threshold: threshold, grid: grid}, opts)
}

// AHE is CLAHE without the contrast limit.
func AHE(src []byte, srcStride int, dst []byte, dstStride int, width, height int,
	grid GridSize, opts *Options) error {
	return process(src, srcStride, dst, dstStride, width, height,
		job{mode: ModeAHE, grid: grid}, opts)
}

// Equalize applies global histogram equalization to the lightness of src
// and writes the result into dst.
func Equalize(src []byte, srcStride int, dst []byte, dstStride int, width, height int,
	opts *Options) error {
	return process(src, srcStride, dst, dstStride, width, height, job{}, opts)
}

func process(src []byte, srcStride int, dst []byte, dstStride int, width, height int,
	j job, opts *Options) error {
	c, err := opts.resolve()
	if err != nil {
		return err
	}
	if j.mode != 0 {
		if err := j.grid.validate(); err != nil {
			return err
		}
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	channels := c.layout.Channels()
	if err := checkBuffer("src", src, srcStride, width, height, channels); err != nil {
		return err
	}
	if err := checkBuffer("dst", dst, dstStride, width, height, channels); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}

	var tg tileGrid
	if j.mode != 0 {
		if tg, err = newTileGrid(width, height, j.grid); err != nil {
			return err
		}
	}

	c.log.Debug().
		Stringer("space", c.space).
		Stringer("layout", c.layout).
		Int("width", width).
		Int("height", height).
		Int("bins", c.bins).
		Msg("equalize")

	buf := getPlaneBuf(width, height, sideChannels(c.space, c.layout))
	defer putPlaneBuf(buf)

	scale := float32(c.bins - 1)
	forRows(c.pool, height, func(y0, y1 int) {
		c.space.Pack(src, srcStride, c.layout, y0, y1, buf.lum, buf.side, scale)
	})

	if j.mode == 0 {
		equalizeGlobal(buf.lum, c.bins, c.pool, c.log)
	} else {
		e := engine{mode: j.mode, threshold: j.threshold, bins: c.bins, pool: c.pool, log: c.log}
		e.run(buf.lum, tg)
	}

	forRows(c.pool, height, func(y0, y1 int) {
		c.space.Unpack(buf.lum, buf.side, y0, y1, dst, dstStride, c.layout, scale)
	})
	return nil
}
