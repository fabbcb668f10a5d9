package clahe

import (
	"fmt"
	"image"
)

// GridSize is the number of tiles requested along each axis.
type GridSize struct {
	Cols uint32
	Rows uint32
}

// DefaultGridSize is the customary 8×8 CLAHE grid.
var DefaultGridSize = GridSize{Cols: 8, Rows: 8}

// NewGridSize returns a grid of cols×rows tiles.
func NewGridSize(cols, rows uint32) GridSize {
	return GridSize{Cols: cols, Rows: rows}
}

func (g GridSize) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

func (g GridSize) validate() error {
	if g.Cols == 0 || g.Rows == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidGrid, g)
	}
	return nil
}

// tileGrid is the tiling actually used for an image. The tile count is
// recomputed from the integer tile size, so it may exceed the requested grid
// when the image is not a multiple of it. The last column and row extend to
// the image edge.
type tileGrid struct {
	width, height int
	tileW, tileH  int
	tilesX        int
	tilesY        int
}

func newTileGrid(width, height int, g GridSize) (tileGrid, error) {
	if err := g.validate(); err != nil {
		return tileGrid{}, err
	}
	tileW := width / int(g.Cols)
	tileH := height / int(g.Rows)
	if tileW == 0 || tileH == 0 {
		return tileGrid{}, fmt.Errorf("%w: %s over %dx%d", ErrGridTooLarge, g, width, height)
	}
	return tileGrid{
		width:  width,
		height: height,
		tileW:  tileW,
		tileH:  tileH,
		tilesX: width / tileW,
		tilesY: height / tileH,
	}, nil
}

func (t tileGrid) count() int {
	return t.tilesX * t.tilesY
}

// tile returns the pixel rectangle of tile (col,row).
func (t tileGrid) tile(col, row int) image.Rectangle {
	r := image.Rect(col*t.tileW, row*t.tileH, (col+1)*t.tileW, (row+1)*t.tileH)
	if col == t.tilesX-1 {
		r.Max.X = t.width
	}
	if row == t.tilesY-1 {
		r.Max.Y = t.height
	}
	return r
}

// cell is the position of a coordinate between two neighboring tile
// centers: the tile indices on either side and the weight of the far one.
type cell struct {
	lo, hi int
	w      float32
}

// axisCell locates pos between two tile centers along one axis.
// Centers sit half a tile past each tile origin. Positions before the first
// center or past the last one collapse onto the outermost tile with zero
// weight, so lo and hi are always valid indices in [0, tiles-1].
func axisCell(pos, tileSize, tiles int) cell {
	f := (float32(pos) - float32(tileSize)/2) / float32(tileSize)
	if f <= 0 {
		return cell{}
	}
	lo := int(f)
	if lo >= tiles-1 {
		return cell{lo: tiles - 1, hi: tiles - 1}
	}
	return cell{lo: lo, hi: lo + 1, w: f - float32(lo)}
}

func axisCells(n, tileSize, tiles int) []cell {
	cells := make([]cell, n)
	for i := range cells {
		cells[i] = axisCell(i, tileSize, tiles)
	}
	return cells
}
