package clahe

import "image"

// CLAHEImage runs CLAHE over img and returns the result as a new image with
// the same bounds. Options.Layout is ignored: NRGBA pixels are always RGBA.
func CLAHEImage(img *image.NRGBA, threshold float32, grid GridSize, opts *Options) (*image.NRGBA, error) {
	return processImage(img, opts, func(src []byte, stride int, dst *image.NRGBA, w, h int, o *Options) error {
		return CLAHE(src, stride, dst.Pix, dst.Stride, w, h, threshold, grid, o)
	})
}

// AHEImage is CLAHEImage without the contrast limit.
func AHEImage(img *image.NRGBA, grid GridSize, opts *Options) (*image.NRGBA, error) {
	return processImage(img, opts, func(src []byte, stride int, dst *image.NRGBA, w, h int, o *Options) error {
		return AHE(src, stride, dst.Pix, dst.Stride, w, h, grid, o)
	})
}

// EqualizeImage applies global histogram equalization to img.
func EqualizeImage(img *image.NRGBA, opts *Options) (*image.NRGBA, error) {
	return processImage(img, opts, func(src []byte, stride int, dst *image.NRGBA, w, h int, o *Options) error {
		return Equalize(src, stride, dst.Pix, dst.Stride, w, h, o)
	})
}

type imageFunc func(src []byte, stride int, dst *image.NRGBA, w, h int, opts *Options) error

func processImage(img *image.NRGBA, opts *Options, fn imageFunc) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Layout = RGBA

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	src, stride := nrgbaPix(img)
	out := image.NewNRGBA(b)
	if err := fn(src, stride, out, w, h, &o); err != nil {
		return nil, err
	}
	return out, nil
}

// nrgbaPix returns the pixels of img starting at its origin. The last row of
// a sub-image is not padded to the full stride, so such images are compacted.
func nrgbaPix(img *image.NRGBA) ([]byte, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Empty() {
		return nil, 4 * w
	}
	start := img.PixOffset(b.Min.X, b.Min.Y)
	pix := img.Pix[start:]
	if len(pix) >= img.Stride*h {
		return pix, img.Stride
	}
	packed := make([]byte, 4*w*h)
	for y := range h {
		copy(packed[y*4*w:(y+1)*4*w], pix[y*img.Stride:y*img.Stride+4*w])
	}
	return packed, 4 * w
}
