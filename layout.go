package clahe

import "fmt"

// Layout describes how 8-bit channels are interleaved in a pixel.
type Layout uint8

const (
	RGB Layout = iota
	BGR
	RGBA
	BGRA
)

func (l Layout) String() string {
	switch l {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	case RGBA:
		return "RGBA"
	case BGRA:
		return "BGRA"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Channels returns the number of bytes per pixel.
func (l Layout) Channels() int {
	if l.HasAlpha() {
		return 4
	}
	return 3
}

// HasAlpha reports whether the layout carries an alpha channel.
func (l Layout) HasAlpha() bool {
	return l == RGBA || l == BGRA
}

// Offsets returns the byte offsets of R, G, B and A within a pixel.
// The alpha offset is -1 for layouts without alpha.
func (l Layout) Offsets() (r, g, b, a int) {
	switch l {
	case BGR:
		return 2, 1, 0, -1
	case RGBA:
		return 0, 1, 2, 3
	case BGRA:
		return 2, 1, 0, 3
	default:
		return 0, 1, 2, -1
	}
}

func (l Layout) valid() bool {
	return l <= BGRA
}

// pixelReader pulls RGB(A) values out of one interleaved row.
type pixelReader struct {
	rOff, gOff, bOff, aOff, n int
}

func newPixelReader(l Layout) pixelReader {
	r, g, b, a := l.Offsets()
	return pixelReader{rOff: r, gOff: g, bOff: b, aOff: a, n: l.Channels()}
}

func (p pixelReader) rgb(row []byte, x int) (r, g, b uint8) {
	i := x * p.n
	return row[i+p.rOff], row[i+p.gOff], row[i+p.bOff]
}

func (p pixelReader) alpha(row []byte, x int) uint8 {
	return row[x*p.n+p.aOff]
}

func (p pixelReader) setRGB(row []byte, x int, r, g, b uint8) {
	i := x * p.n
	row[i+p.rOff], row[i+p.gOff], row[i+p.bOff] = r, g, b
}

func (p pixelReader) setAlpha(row []byte, x int, a uint8) {
	row[x*p.n+p.aOff] = a
}
