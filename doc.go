// Package clahe implements Contrast-Limited Adaptive Histogram Equalization
// (CLAHE), plain Adaptive Histogram Equalization (AHE) and global histogram
// equalization for 8-bit interleaved images.
//
// Equalization runs on the lightness channel of a perceptual or device color
// space (HSV, HSL, CIE Lab, CIE Luv, Oklab, Oklch, Jzazbz, YCgCo, YCbCr or the
// JPEG 2000 reversible transform). The remaining channels and alpha are carried
// through untouched.
//
// CLAHE:
//
//	err := clahe.CLAHE(src, width*4, dst, width*4, width, height,
//	    3.0, clahe.DefaultGridSize, &clahe.Options{Space: clahe.Lab, Layout: clahe.RGBA})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Global equalization:
//
//	err := clahe.Equalize(src, width*3, dst, width*3, width, height,
//	    &clahe.Options{Space: clahe.HSV, BinsCount: 256})
//
// Work is fanned out over a go-highway worker pool: one task per tile while
// the tile histograms are built, then one contiguous band of rows per worker
// while pixels are interpolated. A shared pool sized to GOMAXPROCS is used
// unless Options.Pool is set.
//
// The package is silent by default; see SetLogger.
package clahe
