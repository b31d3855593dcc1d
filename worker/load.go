package worker

import (
	"log"
	"os"

	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/minionnav"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/persist"
	"github.com/lixenwraith/ai-pathfinder/protocol"
	"github.com/lixenwraith/ai-pathfinder/record"
)

// minionCellSize and minionHeightCells size the walker grid built from a
// tile cache's (width, height) footprint -- the tile cache's own layer
// bytes are opaque (persist.TileCache round-trips them without
// interpreting them), so this package treats
// width/height as a flat X/Z cell count and allocates a fixed vertical
// band, since minionnav has no real Detour tile-cache builder to hand
// the layer bytes to (see DESIGN.md).
const (
	minionCellSize    = 2.0
	minionHeightCells = 4
)

// handleLoad implements spec.md §4.7 Load: free existing structures, load
// the drone graph and tile cache from the new level path, resize the
// scratch table, bump level_revision, emit Callback::Load.
func (w *Worker) handleLoad(msg protocol.Load) {
	if w.records != nil {
		if err := w.records.CloseFile(); err != nil {
			log.Printf("worker: closing previous record store: %v", err)
		}
	}
	w.mesh = nil
	w.minion = nil
	w.scratch = nil
	w.state = &navgraph.GameState{}

	graphPath := msg.LevelPath + ".dronegraph"
	tilePath := msg.LevelPath + ".tilecache"

	mesh, err := persist.LoadDroneGraphFile(graphPath)
	if err != nil {
		log.Printf("worker: load drone graph %q: %v", graphPath, err)
	} else {
		w.mesh = mesh
		w.scratch = astar.NewScratch(mesh)
	}

	tc, err := loadTileCacheFile(tilePath)
	if err != nil {
		log.Printf("worker: load tile cache %q: %v", tilePath, err)
	} else {
		w.minion = minionnav.New(tc.TileMin, int(tc.Width), minionHeightCells, int(tc.Height), minionCellSize)
	}

	if msg.RecordPath != "" {
		store, err := record.Open(msg.RecordPath)
		if err != nil {
			log.Printf("worker: open record store %q: %v", msg.RecordPath, err)
		} else {
			w.records = store
		}
	}

	w.levelRevision++

	w.emit(func() {
		protocol.LoadResult{LevelRevision: w.levelRevision}.WriteTo(w.out)
	})
}

func loadTileCacheFile(path string) (*persist.TileCache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return persist.LoadTileCache(f)
}
