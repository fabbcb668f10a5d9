package clahe

import "errors"

var (
	ErrInvalidBins       = errors.New("clahe: bins count must be more than one")
	ErrInvalidGrid       = errors.New("clahe: zero sized grid")
	ErrGridTooLarge      = errors.New("clahe: grid is finer than the image")
	ErrInvalidDimensions = errors.New("clahe: invalid image dimensions")
	ErrInvalidStride     = errors.New("clahe: stride too small for width")
	ErrShortBuffer       = errors.New("clahe: buffer too short for geometry")
	ErrInvalidLayout     = errors.New("clahe: unsupported pixel layout")
	ErrInvalidThreshold  = errors.New("clahe: invalid clip threshold")
	ErrInvalidMode       = errors.New("clahe: unknown equalization mode")
	ErrNilImage          = errors.New("clahe: nil image")
)
