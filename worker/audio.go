package worker

import (
	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/audiofield"
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/protocol"
)

// coreTeamNone is used for audio queries: sound propagation is team-
// agnostic (no enemy-sensor/force-field bias applies), so NearestPoint's
// team-scoped force-field signature filter is given the "no team"
// sentinel, under which every force field counts as foreign.
const coreTeamNone = core.TeamNone

// handleAudioPathfind implements spec.md §4.7 AudioPathfind: "run as
// Pathfind with AudioPathfindScorer; compute path length; emit
// Callback::AudioPath" -- unbiased (the audio channel models propagation
// distance, not team-sensor avoidance) since the spec only names the two
// distance outputs, never a sensor term.
func (w *Worker) handleAudioPathfind(msg protocol.AudioPathfind) {
	pathLength := float32(1e9)
	if w.mesh != nil && w.scratch != nil {
		start := navgraph.NearestPoint(w.mesh, w.state, coreTeamNone, msg.A, geom.Vec3{}, false, geom.Vec3{}, false, w.cfg.ForceFieldRadius)
		end := navgraph.NearestPoint(w.mesh, w.state, coreTeamNone, msg.B, geom.Vec3{}, false, geom.Vec3{}, false, w.cfg.ForceFieldRadius)
		if !start.IsNone() && !end.IsNone() {
			params := astar.Params{
				Team:        coreTeamNone,
				Allow:       astar.Allow{Crawl: true, Shoot: true},
				FieldRadius: w.cfg.ForceFieldRadius,
				PathCap:     w.cfg.PathCap,
			}
			length, _ := audiofield.Propagate(w.scratch, w.mesh, w.state, start, end, w.cfg.MaxShotDistance, params)
			pathLength = length
		}
	}

	w.emit(func() {
		protocol.AudioPathResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			PathLength:    pathLength,
			StraightDist:  msg.StraightDist,
		}.WriteTo(w.out)
	})
}
