package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Tile values in a TileGrid.
const (
	TileEmpty = iota
	TileGround
	TileHazard
	TileWall
)

// TileGrid is a row-major tile map. Row 0 is the top row.
type TileGrid struct {
	Width    int
	Height   int
	Cells    []int
	TileSize float64
	// Origin is the world position of the grid's bottom-left corner.
	Origin mgl64.Vec2
}

// ParseTileRows builds a grid from text rows, top row first. '#' is ground,
// '^' a hazard, '|' a wall that is solid but not ground; anything else is
// empty. Short rows are padded with empty tiles.
func ParseTileRows(rows []string, tileSize float64) (TileGrid, error) {
	if tileSize <= 0 {
		return TileGrid{}, fmt.Errorf("physics: tile size must be positive, got %v", tileSize)
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	g := TileGrid{Width: width, Height: len(rows), Cells: make([]int, width*len(rows)), TileSize: tileSize}
	for y, r := range rows {
		for x, c := range r {
			switch c {
			case '#':
				g.Cells[y*width+x] = TileGround
			case '^':
				g.Cells[y*width+x] = TileHazard
			case '|':
				g.Cells[y*width+x] = TileWall
			}
		}
	}
	return g, nil
}

// At returns the tile at column x, row y.
func (g TileGrid) At(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return TileEmpty
	}
	return g.Cells[y*g.Width+x]
}

// TileBB returns the world bounds of the w×h tile block whose top-left tile
// is (x, y).
func (g TileGrid) TileBB(x, y, w, h int) cp.BB {
	return cp.BB{
		L: g.Origin.X() + float64(x)*g.TileSize,
		B: g.Origin.Y() + float64(g.Height-y-h)*g.TileSize,
		R: g.Origin.X() + float64(x+w)*g.TileSize,
		T: g.Origin.Y() + float64(g.Height-y)*g.TileSize,
	}
}

// AddTiles adds static shapes for every non-empty tile. Runs of equal solid
// tiles are merged into rectangles to keep the shape count low; hazards stay
// one sensor per tile. It returns the number of shapes added.
func (w *World) AddTiles(g TileGrid) int {
	if len(g.Cells) != g.Width*g.Height {
		w.log.Warn("physics: tile grid size mismatch", "width", g.Width, "height", g.Height, "cells", len(g.Cells))
		return 0
	}

	added := 0
	processed := make([]bool, len(g.Cells))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := y*g.Width + x
			if processed[idx] {
				continue
			}
			tile := g.Cells[idx]
			processed[idx] = true
			switch tile {
			case TileEmpty:
				continue
			case TileHazard:
				w.addHazard(g.TileBB(x, y, 1, 1))
				added++
				continue
			}

			wd := 1
			for x+wd < g.Width {
				i := y*g.Width + x + wd
				if processed[i] || g.Cells[i] != tile {
					break
				}
				wd++
			}

			h := 1
		rows:
			for y+h < g.Height {
				for xi := x; xi < x+wd; xi++ {
					i := (y+h)*g.Width + xi
					if processed[i] || g.Cells[i] != tile {
						break rows
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+wd; xx++ {
					processed[yy*g.Width+xx] = true
				}
			}

			layer := LayerGround
			if tile == TileWall {
				layer = LayerDefault
			}
			w.AddGround(g.TileBB(x, y, wd, h), layer)
			added++
		}
	}
	w.log.Debug("physics: built level shapes", "shapes", added)
	return added
}

func (w *World) addHazard(bb cp.BB) {
	verts := []cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: (bb.L + bb.R) / 2, Y: bb.T},
	}
	shape := cp.NewPolyShapeRaw(w.space.StaticBody, len(verts), verts, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeHazard)
	shape.SetFilter(LayerFilter(LayerHazard))
	w.space.AddShape(shape)
}
