package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/controller2d/controller"
)

func TestParseTileRows(t *testing.T) {
	g, err := ParseTileRows([]string{
		"   ",
		"|^",
		"###",
	}, 1)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g.Width != 3 || g.Height != 3 {
		t.Fatalf("unexpected size %dx%d", g.Width, g.Height)
	}
	cases := []struct {
		x, y int
		want int
	}{
		{0, 0, TileEmpty},
		{0, 1, TileWall},
		{1, 1, TileHazard},
		{2, 1, TileEmpty},
		{2, 2, TileGround},
		{5, 5, TileEmpty},
	}
	for _, c := range cases {
		if got := g.At(c.x, c.y); got != c.want {
			t.Fatalf("At(%d,%d): expected %d, got %d", c.x, c.y, c.want, got)
		}
	}

	if _, err := ParseTileRows(nil, 0); err == nil {
		t.Fatalf("expected error for zero tile size")
	}
}

func TestAddTilesMergesRuns(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want int
	}{
		{"single_row", []string{"#####"}, 1},
		{"block", []string{"###", "###"}, 1},
		{"two_platforms", []string{"##  ##"}, 2},
		{"wall_and_ground", []string{"|", "#"}, 2},
		{"hazards_not_merged", []string{"^^"}, 2},
		{"empty", []string{"   "}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseTileRows(tc.rows, 1)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			w := NewWorld(DefaultGravity, nil)
			if got := w.AddTiles(g); got != tc.want {
				t.Fatalf("expected %d shapes, got %d", tc.want, got)
			}
		})
	}
}

func TestTilesGroundLayers(t *testing.T) {
	g, err := ParseTileRows([]string{
		"|  ",
		"#  ",
	}, 1)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	w := NewWorld(DefaultGravity, nil)
	w.AddTiles(g)

	cfg := controller.DefaultConfig()
	cfg.GroundMask = controller.Layers(LayerGround)

	// Top of the ground tile is y=1, top of the wall tile is y=2.
	if !controller.ProbeGround(cfg, mgl64.Vec2{0.5, 1}, w) {
		t.Fatalf("expected ground tile to ground the probe")
	}
	if controller.ProbeGround(cfg, mgl64.Vec2{0.5, 2}, w) {
		t.Fatalf("wall tile is not on the ground layer")
	}
}
