package scorer

import (
	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

// hitThresholdTight and hitThresholdLoose are the co-linearity dot-product
// bars pathfind_hit checks against: the target vertex (or a candidate
// neighbor of it) must line up with the actual target point this tightly
// to be considered an immediate hit; the loose bar is the fallback used
// when scoring target's neighbors if nothing clears the tight one (spec.md
// §4.5 "Hit-pathfind": "threshold ≥ 0.999 ... relaxing to 0.99 if none
// found"; original_source/src/ai_worker.cpp:542,558).
const (
	hitThresholdTight = 0.999
	hitThresholdLoose = 0.99
)

// PathfindHit implements spec.md §4.5 "Hit-pathfind": start and target are
// already snapped to graph vertices. If target itself already lines up
// with the real target point within hitThresholdTight (navgraph.CanHitFrom
// against target's own neighbors), it paths straight to target. Otherwise
// it scores each of target's neighbors by the same colinearity test at
// hitThresholdLoose, preferring the farthest-from-start neighbor among
// those clearing hitThresholdTight and otherwise taking whichever neighbor
// has the best dot product seen so far, paths to that neighbor, then
// appends the original target vertex to the returned path.
func PathfindHit(scratch *astar.Scratch, mesh *navgraph.DroneNavMesh, state *navgraph.GameState, p astar.Params, start, target navgraph.Node) []astar.PathNode {
	targetPos := mesh.Position(target)

	if !target.Equal(start) {
		if _, ok := navgraph.CanHitFrom(mesh, target, targetPos, hitThresholdTight); ok {
			return astar.Run(scratch, mesh, state, start, Pathfind{
				EndPos:  targetPos,
				EndNode: target,
			}, p)
		}
	}

	adj := mesh.AdjacencyOf(target)
	startPos := mesh.Position(start)
	best := navgraph.NoNode
	bestDist := float32(-1)
	bestDot := float32(0)
	for _, n := range adj.Neighbors {
		if n.Equal(start) {
			continue
		}
		dot, ok := navgraph.CanHitFrom(mesh, n, targetPos, hitThresholdLoose)
		if !ok {
			continue
		}
		d := mesh.Position(n).DistanceSquared(startPos)
		switch {
		case dot > hitThresholdTight && d > bestDist:
			bestDist, bestDot, best = d, dot, n
		case bestDot < hitThresholdTight && dot > bestDot:
			bestDot, best = dot, n
		}
	}
	if best.IsNone() {
		return nil
	}

	path := astar.Run(scratch, mesh, state, start, Pathfind{
		EndPos:  mesh.Position(best),
		EndNode: best,
	}, p)
	if path == nil {
		return nil
	}
	return append(path, astar.PathNode{
		Pos:    targetPos,
		Normal: mesh.Normal(target),
		Node:   target,
	})
}
