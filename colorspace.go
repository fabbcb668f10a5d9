package clahe

import "math"

// ColorSpace splits interleaved 8-bit pixels into an equalization channel
// and side planes, and recombines them afterwards.
//
// Pack must write the lightness of every pixel in rows [y0,y1), normalized to
// [0,1] and rescaled to [0,scale], into lum, and everything else needed to
// rebuild the pixel (chroma, then alpha when the layout has one) into side.
// Unpack reverses it. Both touch only rows [y0,y1), so bands may run
// concurrently.
type ColorSpace interface {
	String() string

	// Chroma returns the number of side values stored per pixel, alpha
	// excluded.
	Chroma() int

	Pack(src []byte, stride int, layout Layout, y0, y1 int, lum *Plane, side *SidePlanes, scale float32)
	Unpack(lum *Plane, side *SidePlanes, y0, y1 int, dst []byte, stride int, layout Layout, scale float32)
}

// fixedBinsSpace is implemented by spaces whose equalization channel is an
// 8-bit luma and always uses 256 bins.
type fixedBinsSpace interface {
	Bins() int
}

// sideChannels returns the number of side values per pixel for cs in layout.
func sideChannels(cs ColorSpace, layout Layout) int {
	n := cs.Chroma()
	if layout.HasAlpha() {
		n++
	}
	return n
}

// quantize maps l in [0,1] onto [0,scale], rounding half away from zero.
func quantize(l, scale float32) uint16 {
	v := math.Round(float64(l) * float64(scale))
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= float64(scale) {
		return uint16(scale)
	}
	return uint16(v)
}

// pixelSpace converts one pixel. l is the lightness normalized to [0,1];
// c0 and c1 are whatever the space needs to rebuild the pixel.
type pixelSpace interface {
	forward(r, g, b uint8) (l, c0, c1 float32)
	inverse(l, c0, c1 float32) (r, g, b uint8)
}

// pixelAdapter turns a per-pixel conversion into a ColorSpace.
type pixelAdapter struct {
	name string
	conv pixelSpace
	bins int
}

func (a pixelAdapter) String() string { return a.name }
func (a pixelAdapter) Chroma() int    { return 2 }

func (a pixelAdapter) Pack(src []byte, stride int, layout Layout, y0, y1 int, lum *Plane, side *SidePlanes, scale float32) {
	px := newPixelReader(layout)
	width := lum.Width()
	hasAlpha := layout.HasAlpha()
	n := side.Channels
	for y := y0; y < y1; y++ {
		srow := src[y*stride:]
		lrow := lum.Row(y)
		crow := side.Row(y)
		for x := range width {
			l, c0, c1 := a.conv.forward(px.rgb(srow, x))
			lrow[x] = quantize(l, scale)
			crow[x*n] = c0
			crow[x*n+1] = c1
			if hasAlpha {
				crow[x*n+2] = float32(px.alpha(srow, x))
			}
		}
	}
}

func (a pixelAdapter) Unpack(lum *Plane, side *SidePlanes, y0, y1 int, dst []byte, stride int, layout Layout, scale float32) {
	px := newPixelReader(layout)
	width := lum.Width()
	hasAlpha := layout.HasAlpha()
	n := side.Channels
	inv := 1 / scale
	for y := y0; y < y1; y++ {
		drow := dst[y*stride:]
		lrow := lum.Row(y)
		crow := side.Row(y)
		for x := range width {
			r, g, b := a.conv.inverse(float32(lrow[x])*inv, crow[x*n], crow[x*n+1])
			px.setRGB(drow, x, r, g, b)
			if hasAlpha {
				px.setAlpha(drow, x, clampFloat(crow[x*n+2]))
			}
		}
	}
}

func (a pixelAdapter) Bins() int { return a.bins }
