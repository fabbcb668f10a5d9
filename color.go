package clahe

import (
	"math"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
)

// Luma spaces. Their equalization channel is an 8-bit luma, so they always
// use 256 bins and ignore Options.BinsCount.
var (
	// YCgCo equalizes Y of the lifting-based YCoCg-R transform, which is
	// exactly reversible on 8-bit input.
	YCgCo ColorSpace = pixelAdapter{name: "YCgCo", conv: ycgcoSpace{}, bins: 256}
	// YCbCr equalizes Y of the JPEG 2000 irreversible color transform (ICT).
	YCbCr ColorSpace = ictSpace{}
	// RCT equalizes Y of the JPEG 2000 reversible color transform.
	RCT ColorSpace = rctSpace{}
)

const lumaBins = 256

// ycgcoSpace implements YCoCg-R:
//
//	Co = R - B
//	t  = B + (Co >> 1)
//	Cg = G - t
//	Y  = t + (Cg >> 1)
type ycgcoSpace struct{}

func (ycgcoSpace) forward(r, g, b uint8) (l, c0, c1 float32) {
	co := int32(r) - int32(b)
	t := int32(b) + co>>1
	cg := int32(g) - t
	y := t + cg>>1
	return float32(y) / 255, float32(co), float32(cg)
}

func (ycgcoSpace) inverse(l, c0, c1 float32) (r, g, b uint8) {
	y := int32(math.Round(float64(l) * 255))
	co, cg := int32(c0), int32(c1)
	t := y - cg>>1
	gg := cg + t
	bb := t - co>>1
	rr := bb + co
	return clampToUint8(rr), clampToUint8(gg), clampToUint8(bb)
}

// ictSpace converts bands of rows with the SIMD ICT from go-highway:
//
//	Y  =  0.299   * R + 0.587   * G + 0.114   * B
//	Cb = -0.16875 * R - 0.33126 * G + 0.5     * B
//	Cr =  0.5     * R - 0.41869 * G - 0.08131 * B
type ictSpace struct{}

func (ictSpace) String() string { return "YCbCr" }
func (ictSpace) Chroma() int    { return 2 }
func (ictSpace) Bins() int      { return lumaBins }

func (ictSpace) Pack(src []byte, stride int, layout Layout, y0, y1 int, lum *Plane, side *SidePlanes, scale float32) {
	width, height := lum.Width(), y1-y0
	if height <= 0 {
		return
	}
	buf := getFloat32Buf(width, height)
	defer putFloat32Buf(buf)

	px := newPixelReader(layout)
	for y := range height {
		srow := src[(y0+y)*stride:]
		rr, gr, br := buf.imgs[0].Row(y), buf.imgs[1].Row(y), buf.imgs[2].Row(y)
		for x := range width {
			r, g, b := px.rgb(srow, x)
			rr[x], gr[x], br[x] = float32(r), float32(g), float32(b)
		}
	}

	hwyimage.ForwardICT(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])

	n := side.Channels
	for y := range height {
		srow := src[(y0+y)*stride:]
		lrow, crow := lum.Row(y0+y), side.Row(y0+y)
		yr, cbr, crr := buf.imgs[3].Row(y), buf.imgs[4].Row(y), buf.imgs[5].Row(y)
		for x := range width {
			lrow[x] = quantize(yr[x]/255, scale)
			crow[x*n] = cbr[x]
			crow[x*n+1] = crr[x]
			if layout.HasAlpha() {
				crow[x*n+2] = float32(px.alpha(srow, x))
			}
		}
	}
}

func (ictSpace) Unpack(lum *Plane, side *SidePlanes, y0, y1 int, dst []byte, stride int, layout Layout, scale float32) {
	width, height := lum.Width(), y1-y0
	if height <= 0 {
		return
	}
	buf := getFloat32Buf(width, height)
	defer putFloat32Buf(buf)

	n := side.Channels
	k := 255 / scale
	for y := range height {
		lrow, crow := lum.Row(y0+y), side.Row(y0+y)
		yr, cbr, crr := buf.imgs[0].Row(y), buf.imgs[1].Row(y), buf.imgs[2].Row(y)
		for x := range width {
			yr[x] = float32(lrow[x]) * k
			cbr[x] = crow[x*n]
			crr[x] = crow[x*n+1]
		}
	}

	hwyimage.InverseICT(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])

	px := newPixelReader(layout)
	for y := range height {
		drow := dst[(y0+y)*stride:]
		crow := side.Row(y0 + y)
		rr, gr, br := buf.imgs[3].Row(y), buf.imgs[4].Row(y), buf.imgs[5].Row(y)
		for x := range width {
			px.setRGB(drow, x, clampFloat(rr[x]), clampFloat(gr[x]), clampFloat(br[x]))
			if layout.HasAlpha() {
				px.setAlpha(drow, x, clampFloat(crow[x*n+2]))
			}
		}
	}
}

// rctSpace converts bands of rows with the SIMD RCT from go-highway:
//
//	Y  = (R + 2G + B) >> 2
//	Cb = B - G
//	Cr = R - G
type rctSpace struct{}

func (rctSpace) String() string { return "RCT" }
func (rctSpace) Chroma() int    { return 2 }
func (rctSpace) Bins() int      { return lumaBins }

func (rctSpace) Pack(src []byte, stride int, layout Layout, y0, y1 int, lum *Plane, side *SidePlanes, scale float32) {
	width, height := lum.Width(), y1-y0
	if height <= 0 {
		return
	}
	buf := getInt32Buf(width, height)
	defer putInt32Buf(buf)

	px := newPixelReader(layout)
	for y := range height {
		srow := src[(y0+y)*stride:]
		rr, gr, br := buf.imgs[0].Row(y), buf.imgs[1].Row(y), buf.imgs[2].Row(y)
		for x := range width {
			r, g, b := px.rgb(srow, x)
			rr[x], gr[x], br[x] = int32(r), int32(g), int32(b)
		}
	}

	hwyimage.ForwardRCT(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])

	n := side.Channels
	for y := range height {
		srow := src[(y0+y)*stride:]
		lrow, crow := lum.Row(y0+y), side.Row(y0+y)
		yr, cbr, crr := buf.imgs[3].Row(y), buf.imgs[4].Row(y), buf.imgs[5].Row(y)
		for x := range width {
			lrow[x] = quantize(float32(yr[x])/255, scale)
			crow[x*n] = float32(cbr[x])
			crow[x*n+1] = float32(crr[x])
			if layout.HasAlpha() {
				crow[x*n+2] = float32(px.alpha(srow, x))
			}
		}
	}
}

func (rctSpace) Unpack(lum *Plane, side *SidePlanes, y0, y1 int, dst []byte, stride int, layout Layout, scale float32) {
	width, height := lum.Width(), y1-y0
	if height <= 0 {
		return
	}
	buf := getInt32Buf(width, height)
	defer putInt32Buf(buf)

	n := side.Channels
	k := 255 / float64(scale)
	for y := range height {
		lrow, crow := lum.Row(y0+y), side.Row(y0+y)
		yr, cbr, crr := buf.imgs[0].Row(y), buf.imgs[1].Row(y), buf.imgs[2].Row(y)
		for x := range width {
			yr[x] = int32(math.Round(float64(lrow[x]) * k))
			cbr[x] = int32(crow[x*n])
			crr[x] = int32(crow[x*n+1])
		}
	}

	hwyimage.InverseRCT(buf.imgs[0], buf.imgs[1], buf.imgs[2], buf.imgs[3], buf.imgs[4], buf.imgs[5])

	px := newPixelReader(layout)
	for y := range height {
		drow := dst[(y0+y)*stride:]
		crow := side.Row(y0 + y)
		rr, gr, br := buf.imgs[3].Row(y), buf.imgs[4].Row(y), buf.imgs[5].Row(y)
		for x := range width {
			px.setRGB(drow, x, clampToUint8(rr[x]), clampToUint8(gr[x]), clampToUint8(br[x]))
			if layout.HasAlpha() {
				px.setAlpha(drow, x, clampFloat(crow[x*n+2]))
			}
		}
	}
}

// clampToUint8 clamps a value to [0, 255] range
func clampToUint8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampFloat clamps a float to [0, 255] and converts to uint8
func clampFloat(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
