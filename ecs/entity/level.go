package entity

import (
	"log/slog"

	"github.com/milk9111/controller2d/physics"
	"github.com/milk9111/controller2d/prefabs"
)

// LoadLevel builds the level's static geometry into pw and returns its grid.
func LoadLevel(pw *physics.World, level prefabs.LevelSpec, log *slog.Logger) (physics.TileGrid, error) {
	if log == nil {
		log = slog.Default()
	}
	g, err := level.Grid()
	if err != nil {
		return physics.TileGrid{}, err
	}
	pw.SetGravity(level.GravityVec())
	shapes := pw.AddTiles(g)
	log.Info("level loaded", "name", level.Name, "width", g.Width, "height", g.Height, "shapes", shapes)
	return g, nil
}
