package icon

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// GridCanvasSize is the pixel size of a composed group icon.
const GridCanvasSize = 256

// cellPadding is the inset applied inside each grid cell.
const cellPadding = 5

// Cell is one slot of a composed group icon.
type Cell struct {
	X, Y, Size int
}

// GridCells computes the cell geometry for count member icons on a
// square canvas. Two members get a diagonal 2-up layout (first bottom
// left, second top right); otherwise cells fill an N x N grid row-major
// with N = ceil(sqrt(count)), leaving trailing cells empty.
func GridCells(count, canvas int) []Cell {
	if count <= 0 {
		return nil
	}

	if count == 2 {
		half := canvas / 2
		return []Cell{
			{X: 0, Y: half, Size: half},
			{X: half, Y: 0, Size: half},
		}
	}

	grid := int(math.Ceil(math.Sqrt(float64(count))))
	cellSize := canvas / grid
	cells := make([]Cell, count)
	for i := 0; i < count; i++ {
		row := i / grid
		col := i % grid
		cells[i] = Cell{X: col * cellSize, Y: row * cellSize, Size: cellSize}
	}
	return cells
}

// ComposeGrid draws the given tiles into their grid cells on a
// transparent canvas. A nil tile leaves its cell empty.
func ComposeGrid(tiles []image.Image, canvas int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, canvas, canvas))
	cells := GridCells(len(tiles), canvas)

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		cell := cells[i]
		dst := image.Rect(
			cell.X+cellPadding,
			cell.Y+cellPadding,
			cell.X+cell.Size-cellPadding,
			cell.Y+cell.Size-cellPadding,
		)
		xdraw.ApproxBiLinear.Scale(out, dst, tile, tile.Bounds(), xdraw.Over, nil)
	}
	return out
}
