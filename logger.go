package clahe

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger can
// race with equalization calls running on other goroutines.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger used by the package.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - debug: resolved tile grid, bins count and color space per call,
//     number of tiles that fell back to the identity mapping
//   - warn: options that were overridden (bins count on fixed-bins spaces)
//
// Example:
//
//	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
//	clahe.SetLogger(&l)
func SetLogger(l *zerolog.Logger) {
	if l == nil {
		nop := zerolog.Nop()
		l = &nop
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by the package.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
