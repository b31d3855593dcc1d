// Package audiofield computes sound-propagation queries over the drone
// graph: synchronous and asynchronous path-length queries and the reverb
// "wetness" mix derived from how much longer the actual path is than the
// straight-line distance. The reverb formula is not named in the
// distilled spec, but is present in the original source's
// AudioEntry::pathfind_result (occlusion_target calc) and is restored
// here as a pure function -- no new query surface, just the math the
// distillation dropped.
package audiofield

import (
	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/scorer"
)

// PathLength runs a synchronous Pathfind query against a read-only graph
// copy on the calling thread (spec.md §4.1 audio_pathfind sync form: "Runs
// on calling thread against a local read-only copy of the graph") and
// returns the resulting path's length (the sum of its segment distances),
// or 1e9 if no path was found.
func PathLength(scratch *astar.Scratch, mesh *navgraph.DroneNavMesh, state *navgraph.GameState, a, b navgraph.Node, p astar.Params) float32 {
	path := astar.Run(scratch, mesh, state, a, scorer.Pathfind{
		EndPos:  mesh.Position(b),
		EndNode: b,
	}, p)
	if path == nil {
		return float32(1e9)
	}
	return cumulativeLength(path)
}

func cumulativeLength(path []astar.PathNode) float32 {
	var total float32
	for i := 1; i < len(path); i++ {
		total += path[i-1].Pos.Distance(path[i].Pos)
	}
	return total
}

// Propagate is the AudioPathfind asynchronous variant (spec.md §4.1
// audio_pathfind async form): runs as a Pathfind/AudioPathfind query on
// the worker's authoritative graph and returns the path length (1e9 if no
// path was found) together with the search budget it used: the straight-
// line distance between a and b plus 2*maxShotDistance.
func Propagate(scratch *astar.Scratch, mesh *navgraph.DroneNavMesh, state *navgraph.GameState, a, b navgraph.Node, maxShotDistance float32, p astar.Params) (pathLength, budget float32) {
	straight := mesh.Position(a).Distance(mesh.Position(b))
	budget = straight + 2*maxShotDistance
	path := astar.Run(scratch, mesh, state, a, scorer.AudioPathfind{
		EndPos:  mesh.Position(b),
		EndNode: b,
		Budget:  budget,
	}, p)
	if path == nil {
		return float32(1e9), budget
	}
	return cumulativeLength(path), budget
}

// ReverbMix computes wet-mix strength in [0,1] from how much longer the
// actual path is than the straight-line distance, grounded on the
// original's AudioEntry::pathfind_result: occlusion_target = clamp(0.05 +
// (path_length - straight_distance) / (DRONE_MAX_DISTANCE * 0.4), 0, 1).
func ReverbMix(pathLength, straightDistance, maxShotDistance float32) float32 {
	v := 0.05 + (pathLength-straightDistance)/(maxShotDistance*0.4)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
