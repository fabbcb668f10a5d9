package clahe

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/rs/zerolog"
)

// EqualizeChannel runs AHE or CLAHE directly on a single channel whose
// samples already lie in [0, bins-1]. Samples above bins-1 are treated as
// bins-1. ch holds height rows of stride samples and is updated in place.
//
// Only Options.Pool and Options.Logger are used.
func EqualizeChannel(ch []uint16, stride, width, height int, mode Mode,
	threshold float32, grid GridSize, bins int, opts *Options) error {
	if err := validateBins(bins); err != nil {
		return err
	}
	if mode != ModeAHE && mode != ModeCLAHE {
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(mode))
	}
	if mode == ModeCLAHE {
		if err := validateThreshold(threshold); err != nil {
			return err
		}
	}
	if err := grid.validate(); err != nil {
		return err
	}
	if err := checkChannel(ch, stride, width, height); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}
	tg, err := newTileGrid(width, height, grid)
	if err != nil {
		return err
	}

	pool, log := channelRuntime(opts)
	p := NewPlane(width, height)
	copyRows(ch, stride, width, p)
	e := engine{mode: mode, threshold: threshold, bins: bins, pool: pool, log: log}
	e.run(p, tg)
	storeRows(p, ch, stride, width)
	return nil
}

// EqualizeChannelGlobal is the global counterpart of EqualizeChannel.
func EqualizeChannelGlobal(ch []uint16, stride, width, height, bins int, opts *Options) error {
	if err := validateBins(bins); err != nil {
		return err
	}
	if err := checkChannel(ch, stride, width, height); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}

	pool, log := channelRuntime(opts)
	p := NewPlane(width, height)
	copyRows(ch, stride, width, p)
	equalizeGlobal(p, bins, pool, log)
	storeRows(p, ch, stride, width)
	return nil
}

func checkChannel(ch []uint16, stride, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if stride < width {
		return fmt.Errorf("%w: %d < %d", ErrInvalidStride, stride, width)
	}
	if len(ch) < stride*height {
		return fmt.Errorf("%w: %d samples, need %d", ErrShortBuffer, len(ch), stride*height)
	}
	return nil
}

func channelRuntime(opts *Options) (*workerpool.Pool, *zerolog.Logger) {
	pool, log := sharedPool(), Logger()
	if opts != nil {
		if opts.Pool != nil {
			pool = opts.Pool
		}
		if opts.Logger != nil {
			log = opts.Logger
		}
	}
	return pool, log
}
