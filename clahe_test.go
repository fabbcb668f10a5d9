package clahe

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/rs/zerolog"
)

func TestOptionsResolve(t *testing.T) {
	c, err := (*Options)(nil).resolve()
	if err != nil {
		t.Fatal(err)
	}
	if c.space != Lab {
		t.Errorf("space = %s, want Lab", c.space)
	}
	if c.layout != RGB {
		t.Errorf("layout = %s, want RGB", c.layout)
	}
	if c.bins != DefaultBinsCount {
		t.Errorf("bins = %d, want %d", c.bins, DefaultBinsCount)
	}
	if c.pool != sharedPool() {
		t.Error("pool is not the shared pool")
	}
	if c.log == nil {
		t.Error("nil logger")
	}

	c, err = (&Options{Space: YCbCr}).resolve()
	if err != nil {
		t.Fatal(err)
	}
	if c.bins != 256 {
		t.Errorf("YCbCr bins = %d, want 256", c.bins)
	}
}

func TestOptionsFixedBinsWarns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c, err := (&Options{Space: YCgCo, BinsCount: 64, Logger: &log}).resolve()
	if err != nil {
		t.Fatal(err)
	}
	if c.bins != 256 {
		t.Errorf("bins = %d, want 256", c.bins)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestConfigErrors(t *testing.T) {
	const w, h = 8, 8
	src := testPixels(RGB, w, h)

	tests := []struct {
		name    string
		run     func(dst []byte) error
		wantErr error
	}{
		{
			name: "bins one",
			run: func(dst []byte) error {
				return CLAHE(src, w*3, dst, w*3, w, h, 2, DefaultGridSize, &Options{BinsCount: 1})
			},
			wantErr: ErrInvalidBins,
		},
		{
			name: "negative bins",
			run: func(dst []byte) error {
				return Equalize(src, w*3, dst, w*3, w, h, &Options{BinsCount: -4})
			},
			wantErr: ErrInvalidBins,
		},
		{
			name: "too many bins",
			run: func(dst []byte) error {
				return AHE(src, w*3, dst, w*3, w, h, DefaultGridSize, &Options{BinsCount: maxBins + 1})
			},
			wantErr: ErrInvalidBins,
		},
		{
			name: "zero grid",
			run: func(dst []byte) error {
				return CLAHE(src, w*3, dst, w*3, w, h, 2, NewGridSize(0, 4), nil)
			},
			wantErr: ErrInvalidGrid,
		},
		{
			name: "grid finer than image",
			run: func(dst []byte) error {
				return AHE(src, w*3, dst, w*3, w, h, NewGridSize(16, 2), nil)
			},
			wantErr: ErrGridTooLarge,
		},
		{
			name: "unknown layout",
			run: func(dst []byte) error {
				return Equalize(src, w*3, dst, w*3, w, h, &Options{Layout: Layout(9)})
			},
			wantErr: ErrInvalidLayout,
		},
		{
			name: "stride smaller than row",
			run: func(dst []byte) error {
				return Equalize(src, w*3-1, dst, w*3, w, h, nil)
			},
			wantErr: ErrInvalidStride,
		},
		{
			name: "short source",
			run: func(dst []byte) error {
				return Equalize(src[:len(src)-1], w*3, dst, w*3, w, h, nil)
			},
			wantErr: ErrShortBuffer,
		},
		{
			name: "short destination",
			run: func(dst []byte) error {
				return CLAHE(src, w*3, dst[:w*3], w*3, w, h, 2, DefaultGridSize, nil)
			},
			wantErr: ErrShortBuffer,
		},
		{
			name: "layout needs four channels",
			run: func(dst []byte) error {
				return Equalize(src, w*3, dst, w*3, w, h, &Options{Layout: RGBA})
			},
			wantErr: ErrInvalidStride,
		},
		{
			name: "negative width",
			run: func(dst []byte) error {
				return Equalize(src, w*3, dst, w*3, -1, h, nil)
			},
			wantErr: ErrInvalidDimensions,
		},
		{
			name: "negative threshold",
			run: func(dst []byte) error {
				return CLAHE(src, w*3, dst, w*3, w, h, -1, DefaultGridSize, nil)
			},
			wantErr: ErrInvalidThreshold,
		},
		{
			name: "NaN threshold",
			run: func(dst []byte) error {
				return CLAHE(src, w*3, dst, w*3, w, h, float32(math.NaN()), DefaultGridSize, nil)
			},
			wantErr: ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := bytes.Repeat([]byte{0xAB}, len(src))
			err := tt.run(dst)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			for i, v := range dst {
				if v != 0xAB {
					t.Fatalf("dst[%d] modified to %d", i, v)
				}
			}
		})
	}
}

func TestZeroSizeIsNoop(t *testing.T) {
	dst := []byte{1, 2, 3}
	if err := CLAHE(nil, 0, dst, 0, 0, 5, 2, DefaultGridSize, nil); err != nil {
		t.Errorf("zero width: %v", err)
	}
	if err := Equalize(nil, 9, dst, 9, 3, 0, nil); err != nil {
		t.Errorf("zero height: %v", err)
	}
	if !bytes.Equal(dst, []byte{1, 2, 3}) {
		t.Errorf("dst modified: %v", dst)
	}
}

// gradient returns an RGB image whose brightness ramps slowly across a
// narrow range, leaving room for equalization to stretch it.
func gradient(layout Layout, width, height int) []byte {
	n := layout.Channels()
	px := newPixelReader(layout)
	buf := make([]byte, width*height*n)
	for y := range height {
		row := buf[y*width*n:]
		for x := range width {
			v := uint8(100 + (x+y)*40/(width+height))
			px.setRGB(row, x, v, v/2+20, v/3+40)
			if layout.HasAlpha() {
				px.setAlpha(row, x, uint8(x*y))
			}
		}
	}
	return buf
}

func TestEqualizeStretchesContrast(t *testing.T) {
	const w, h = 32, 24
	src := gradient(RGB, w, h)

	run := map[string]func(dst []byte) error{
		"AHE": func(dst []byte) error {
			return AHE(src, w*3, dst, w*3, w, h, NewGridSize(4, 3), &Options{Space: HSV, BinsCount: 256})
		},
		"global": func(dst []byte) error {
			return Equalize(src, w*3, dst, w*3, w, h, &Options{Space: HSV, BinsCount: 256})
		},
	}

	for name, fn := range run {
		t.Run(name, func(t *testing.T) {
			dst := make([]byte, len(src))
			if err := fn(dst); err != nil {
				t.Fatal(err)
			}
			srcLo, srcHi := redRange(src)
			dstLo, dstHi := redRange(dst)
			if dstHi-dstLo <= srcHi-srcLo {
				t.Errorf("range %d..%d not wider than source %d..%d", dstLo, dstHi, srcLo, srcHi)
			}
		})
	}
}

// redRange returns the smallest and largest R of an RGB buffer. For the
// gradient image R is the HSV value.
func redRange(buf []byte) (lo, hi int) {
	lo, hi = 255, 0
	for i := 0; i < len(buf); i += 3 {
		lo = min(lo, int(buf[i]))
		hi = max(hi, int(buf[i]))
	}
	return lo, hi
}

func TestGlobalEqualizationFullRange(t *testing.T) {
	const w, h = 16, 16
	src := gradient(RGB, w, h)
	dst := make([]byte, len(src))
	if err := Equalize(src, w*3, dst, w*3, w, h, &Options{Space: HSV, BinsCount: 256}); err != nil {
		t.Fatal(err)
	}
	// The darkest level keeps its own share of the cumulative count.
	lo, hi := redRange(dst)
	if lo > 1 || hi != 255 {
		t.Errorf("value range %d..%d, want 0..255 within one level", lo, hi)
	}
}

func TestCLAHEUnclippedMatchesAHE(t *testing.T) {
	const w, h = 32, 24
	src := gradient(RGB, w, h)
	grid := NewGridSize(4, 3)

	// 8×8 tiles over 128 bins: a threshold of 200 puts the limit at 100,
	// above the 64 pixels of a tile.
	want := make([]byte, len(src))
	if err := AHE(src, w*3, want, w*3, w, h, grid, nil); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(src))
	if err := CLAHE(src, w*3, got, w*3, w, h, 200, grid, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("CLAHE with a non-binding limit differs from AHE")
	}
}

func TestStridedBuffers(t *testing.T) {
	const w, h = 20, 12
	const pad = 7
	packed := gradient(RGBA, w, h)

	strided := make([]byte, (w*4+pad)*h)
	for y := range h {
		copy(strided[y*(w*4+pad):], packed[y*w*4:(y+1)*w*4])
	}

	opts := &Options{Space: Oklab, Layout: RGBA}
	want := make([]byte, len(packed))
	if err := CLAHE(packed, w*4, want, w*4, w, h, 3, NewGridSize(2, 2), opts); err != nil {
		t.Fatal(err)
	}

	got := bytes.Repeat([]byte{0xEE}, len(strided))
	if err := CLAHE(strided, w*4+pad, got, w*4+pad, w, h, 3, NewGridSize(2, 2), opts); err != nil {
		t.Fatal(err)
	}
	for y := range h {
		row := got[y*(w*4+pad):]
		if !bytes.Equal(row[:w*4], want[y*w*4:(y+1)*w*4]) {
			t.Fatalf("row %d differs", y)
		}
		for i, v := range row[w*4 : w*4+pad] {
			if v != 0xEE {
				t.Fatalf("row %d padding byte %d overwritten", y, i)
			}
		}
	}
}

func TestAlphaPreserved(t *testing.T) {
	const w, h = 16, 16
	for _, layout := range []Layout{RGBA, BGRA} {
		for _, cs := range []ColorSpace{HSL, Luv, Oklch, Jzazbz, YCgCo, YCbCr, RCT} {
			t.Run(layout.String()+"/"+cs.String(), func(t *testing.T) {
				src := gradient(layout, w, h)
				dst := make([]byte, len(src))
				if err := CLAHE(src, w*4, dst, w*4, w, h, 2, NewGridSize(2, 2), &Options{Space: cs, Layout: layout}); err != nil {
					t.Fatal(err)
				}
				for i := 3; i < len(src); i += 4 {
					if src[i] != dst[i] {
						t.Fatalf("alpha byte %d: got %d, want %d", i, dst[i], src[i])
					}
				}
			})
		}
	}
}

func TestCustomPool(t *testing.T) {
	const w, h = 24, 24
	src := gradient(BGR, w, h)

	pool := workerpool.New(3)
	defer pool.Close()

	a := make([]byte, len(src))
	b := make([]byte, len(src))
	if err := CLAHE(src, w*3, a, w*3, w, h, 2, DefaultGridSize, &Options{Layout: BGR}); err != nil {
		t.Fatal(err)
	}
	if err := CLAHE(src, w*3, b, w*3, w, h, 2, DefaultGridSize, &Options{Layout: BGR, Pool: pool}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("result depends on the worker pool")
	}
}

func TestInPlace(t *testing.T) {
	const w, h = 16, 12
	src := gradient(RGB, w, h)
	want := make([]byte, len(src))
	if err := AHE(src, w*3, want, w*3, w, h, NewGridSize(2, 2), nil); err != nil {
		t.Fatal(err)
	}
	if err := AHE(src, w*3, src, w*3, w, h, NewGridSize(2, 2), nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src, want) {
		t.Error("in-place result differs")
	}
}
