// Copyright 2025 go-clahe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clahe

import (
	"sync"

	"github.com/ajroetker/go-highway/hwy"
	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
)

// Plane is the equalization channel: one uint16 sample per pixel holding the
// lightness rescaled to [0, bins-1]. Rows are SIMD aligned.
type Plane = hwyimage.Image[uint16]

// NewPlane allocates a zeroed width×height plane.
func NewPlane(width, height int) *Plane {
	return hwyimage.NewImage[uint16](width, height)
}

// SidePlanes holds the channels that are not equalized, interleaved per
// pixel: the color space's chroma values followed by alpha when the layout
// has one. It is written by Pack and read by Unpack only.
type SidePlanes struct {
	Data     []float32
	Width    int
	Height   int
	Channels int
}

// NewSidePlanes allocates side planes for a width×height image.
func NewSidePlanes(width, height, channels int) *SidePlanes {
	return &SidePlanes{
		Data:     make([]float32, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// Row returns the interleaved side values of row y.
func (s *SidePlanes) Row(y int) []float32 {
	n := s.Width * s.Channels
	return s.Data[y*n : (y+1)*n]
}

// planeBuf pairs an equalization plane with its side planes so both can be
// recycled together across calls of the same geometry.
type planeBuf struct {
	lum  *Plane
	side *SidePlanes
}

var planePool = sync.Pool{New: func() any { return new(planeBuf) }}

func getPlaneBuf(w, h, channels int) *planeBuf {
	buf := planePool.Get().(*planeBuf)
	if buf.lum == nil || buf.lum.Width() != w || buf.lum.Height() != h {
		buf.lum = NewPlane(w, h)
	}
	if buf.side == nil || buf.side.Width != w || buf.side.Height != h || buf.side.Channels != channels {
		buf.side = NewSidePlanes(w, h, channels)
	}
	return buf
}

func putPlaneBuf(buf *planeBuf) {
	planePool.Put(buf)
}

// imageBufInt32 holds 6 pooled SIMD-aligned images for the reversible
// transform (3 input + 3 output).
type imageBufInt32 struct {
	imgs [6]*hwyimage.Image[int32]
	w, h int
}

// imageBufFloat32 holds 6 pooled SIMD-aligned images for the irreversible
// transform.
type imageBufFloat32 struct {
	imgs [6]*hwyimage.Image[float32]
	w, h int
}

var int32ImagePool = sync.Pool{New: func() any { return new(imageBufInt32) }}
var float32ImagePool = sync.Pool{New: func() any { return new(imageBufFloat32) }}

func getInt32Buf(w, h int) *imageBufInt32 {
	buf := int32ImagePool.Get().(*imageBufInt32)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = hwyimage.NewImage[int32](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putInt32Buf(buf *imageBufInt32) {
	int32ImagePool.Put(buf)
}

func getFloat32Buf(w, h int) *imageBufFloat32 {
	buf := float32ImagePool.Get().(*imageBufFloat32)
	if buf.w != w || buf.h != h {
		for i := range buf.imgs {
			buf.imgs[i] = hwyimage.NewImage[float32](w, h)
		}
		buf.w = w
		buf.h = h
	}
	return buf
}

func putFloat32Buf(buf *imageBufFloat32) {
	float32ImagePool.Put(buf)
}

// copyRows copies width samples per row from a strided slice into img.
func copyRows[T hwy.Lanes](src []T, stride, width int, img *hwyimage.Image[T]) {
	for y := range img.Height() {
		copy(img.Row(y)[:width], src[y*stride:y*stride+width])
	}
}

// storeRows is the inverse of copyRows.
func storeRows[T hwy.Lanes](img *hwyimage.Image[T], dst []T, stride, width int) {
	for y := range img.Height() {
		copy(dst[y*stride:y*stride+width], img.Row(y)[:width])
	}
}
