package clahe

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color spaces whose lightness is equalized. Hue and saturation (or the
// chromatic axes) are carried in the side planes.
var (
	// HSV equalizes value, max(R,G,B).
	HSV ColorSpace = pixelAdapter{name: "HSV", conv: hsvSpace{}}
	// HSL equalizes lightness, (max+min)/2.
	HSL ColorSpace = pixelAdapter{name: "HSL", conv: hslSpace{}}
	// Lab equalizes CIE L* (D65).
	Lab ColorSpace = pixelAdapter{name: "Lab", conv: labSpace{}}
	// Luv equalizes CIE L* of the L*u*v* space (D65).
	Luv ColorSpace = pixelAdapter{name: "Luv", conv: luvSpace{}}
)

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) (r, g, b uint8) {
	return c.Clamped().RGB255()
}

type hsvSpace struct{}

func (hsvSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	h, s, v := toColorful(r, g, b).Hsv()
	return float32(v), float32(h), float32(s)
}

func (hsvSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	return fromColorful(colorful.Hsv(float64(c0), float64(c1), float64(l)))
}

type hslSpace struct{}

func (hslSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	h, s, lum := toColorful(r, g, b).Hsl()
	return float32(lum), float32(h), float32(s)
}

func (hslSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	return fromColorful(colorful.Hsl(float64(c0), float64(c1), float64(l)))
}

// go-colorful reports L* of both Lab and Luv scaled to [0,1].

type labSpace struct{}

func (labSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	lum, a, bb := toColorful(r, g, b).Lab()
	return float32(lum), float32(a), float32(bb)
}

func (labSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	return fromColorful(colorful.Lab(float64(l), float64(c0), float64(c1)))
}

type luvSpace struct{}

func (luvSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	lum, u, v := toColorful(r, g, b).Luv()
	return float32(lum), float32(u), float32(v)
}

func (luvSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	return fromColorful(colorful.Luv(float64(l), float64(c0), float64(c1)))
}
