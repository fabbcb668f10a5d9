package clahe

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// Oklab equalizes Oklab L; a and b are carried.
	Oklab ColorSpace = pixelAdapter{name: "Oklab", conv: oklabSpace{}}
	// Oklch equalizes Oklab L; chroma and hue (degrees) are carried.
	Oklch ColorSpace = pixelAdapter{name: "Oklch", conv: oklchSpace{}}
)

// From https://bottosson.github.io/posts/oklab/

func linearToOklab(r, g, b float64) (l, a, bb float64) {
	lc := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	mc := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	sc := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	l = 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc
	a = 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc
	bb = 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc
	return l, a, bb
}

func oklabToLinear(l, a, b float64) (r, g, bb float64) {
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	r = 4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g = -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	bb = -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc
	return r, g, bb
}

func oklabFromRGB(r, g, b uint8) (l, a, bb float64) {
	lr, lg, lb := toColorful(r, g, b).LinearRgb()
	return linearToOklab(lr, lg, lb)
}

func oklabToRGB(l, a, b float64) (r, g, bb uint8) {
	lr, lg, lb := oklabToLinear(l, a, b)
	return fromColorful(colorful.LinearRgb(lr, lg, lb))
}

type oklabSpace struct{}

func (oklabSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	lum, a, bb := oklabFromRGB(r, g, b)
	return float32(lum), float32(a), float32(bb)
}

func (oklabSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	return oklabToRGB(float64(l), float64(c0), float64(c1))
}

type oklchSpace struct{}

func (oklchSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	lum, a, bb := oklabFromRGB(r, g, b)
	c := math.Hypot(a, bb)
	h := math.Atan2(bb, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return float32(lum), float32(c), float32(h)
}

func (oklchSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	hr := float64(c1) * math.Pi / 180
	c := float64(c0)
	return oklabToRGB(float64(l), c*math.Cos(hr), c*math.Sin(hr))
}
