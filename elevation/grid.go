package elevation

import (
	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

// Grid is a sampled height field over a geographic rectangle. Heights
// are indexed row-major with row 0 at the north edge; columns increase
// eastward. The grid is immutable once built.
type Grid struct {
	Rows    int                  `json:"rows"`
	Cols    int                  `json:"cols"`
	Bounds  geometry.BoundingBox `json:"bounds"`
	Heights [][]float64          `json:"heights"`
}

// NewGrid wraps a rows x cols height array over the given bounds.
func NewGrid(bounds geometry.BoundingBox, heights [][]float64) *Grid {
	rows := len(heights)
	cols := 0
	if rows > 0 {
		cols = len(heights[0])
	}
	return &Grid{Rows: rows, Cols: cols, Bounds: bounds, Heights: heights}
}

// NewFlatGrid builds an all-zero grid, the fallback when elevation data
// could not be fetched.
func NewFlatGrid(bounds geometry.BoundingBox, rows, cols int) *Grid {
	heights := make([][]float64, rows)
	for i := range heights {
		heights[i] = make([]float64, cols)
	}
	return NewGrid(bounds, heights)
}

// GetElevation samples the grid at a point with bilinear interpolation
// over the four surrounding cells. Degenerate grids (fewer than two rows
// or columns) and points outside the covered bounds sample as 0.
func (g *Grid) GetElevation(lat, lng float64) float64 {
	if g == nil || g.Rows < 2 || g.Cols < 2 {
		return 0
	}
	if !g.Bounds.Contains(models.Location{Latitude: lat, Longitude: lng}) {
		return 0
	}

	// row 0 is the north edge, so the row coordinate grows southward
	rowF := (g.Bounds.MaxLat - lat) / (g.Bounds.MaxLat - g.Bounds.MinLat) * float64(g.Rows-1)
	colF := (lng - g.Bounds.MinLng) / (g.Bounds.MaxLng - g.Bounds.MinLng) * float64(g.Cols-1)

	r0 := int(rowF)
	c0 := int(colF)
	if r0 >= g.Rows-1 {
		r0 = g.Rows - 2
	}
	if c0 >= g.Cols-1 {
		c0 = g.Cols - 2
	}

	fr := rowF - float64(r0)
	fc := colF - float64(c0)

	h00 := g.Heights[r0][c0]
	h01 := g.Heights[r0][c0+1]
	h10 := g.Heights[r0+1][c0]
	h11 := g.Heights[r0+1][c0+1]

	top := h00*(1-fc) + h01*fc
	bottom := h10*(1-fc) + h11*fc
	return top*(1-fr) + bottom*fr
}
