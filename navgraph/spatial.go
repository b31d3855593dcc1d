package navgraph

import (
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
)

// normalPreferenceThreshold is the dot-product bar a survivor's normal must
// clear against the query normal to be preferred over other survivors
// (spec.md §4.3 step 3: "prefer survivors whose normal dot-product with the
// query normal exceeds 0.8; fall back to any survivor").
const normalPreferenceThreshold = 0.8

// NearestPoint finds the closest node to target whose force-field signature
// matches target's own signature for team, searching the 3x3x3 chunk
// neighborhood around target's own chunk (spec.md §4.3, grounded on
// ai_worker.cpp's drone_closest_point). A node whose surface normal faces
// away from the approach direction (when hasApproach is true) is
// skipped, mirroring the original's "don't snap to the underside of a
// surface" guard. Among the survivors, a vertex whose normal agrees with
// queryNormal (dot product > 0.8) is preferred over the rest; if none
// clears that bar, the closest survivor wins regardless (spec.md §4.3 step
// 3's fallback).
//
// Returns NoNode if nothing in the searched neighborhood qualifies; callers
// needing a guaranteed match must widen the search themselves (spec.md §4.3
// edge case: "mesh has no matching-signature vertex within the
// neighborhood" is a legal empty result, not an error).
func NearestPoint(mesh *DroneNavMesh, state *GameState, team core.Team, target geom.Vec3, approachFrom geom.Vec3, hasApproach bool, queryNormal geom.Vec3, hasQueryNormal bool, ffRadius float32) Node {
	cx, cy, cz := mesh.ChunkCoord(target)
	targetSig := ForceFieldSignature(state, team, target, ffRadius)

	best, bestPreferred := NoNode, NoNode
	bestDist, bestPreferredDist := float32(0), float32(0)
	found, foundPreferred := false, false

	for dz := -1; dz <= 1; dz++ {
		z := cz + dz
		if z < 0 || z >= int(mesh.SizeZ) {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			y := cy + dy
			if y < 0 || y >= int(mesh.SizeY) {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				x := cx + dx
				if x < 0 || x >= int(mesh.SizeX) {
					continue
				}
				ci := mesh.ChunkIndex(x, y, z)
				if ci < 0 || ci >= len(mesh.Chunks) {
					continue
				}
				chunk := &mesh.Chunks[ci]
				for vi := range chunk.Vertices {
					p := chunk.Vertices[vi]
					n := chunk.Normals[vi]

					if hasApproach {
						dir := p.Sub(approachFrom)
						if n.Dot(dir) > 0 {
							continue
						}
					}

					if ForceFieldSignature(state, team, p, ffRadius) != targetSig {
						continue
					}

					d := p.DistanceSquared(target)
					node := Node{Chunk: int16(ci), Vertex: int16(vi)}

					if !found || d < bestDist {
						found = true
						bestDist = d
						best = node
					}

					if hasQueryNormal && n.Dot(queryNormal) > normalPreferenceThreshold {
						if !foundPreferred || d < bestPreferredDist {
							foundPreferred = true
							bestPreferredDist = d
							bestPreferred = node
						}
					}
				}
			}
		}
	}

	if foundPreferred {
		return bestPreferred
	}
	return best
}

// CanHitFrom reports whether, from vertex, some shoot neighbor lines up
// with target within dot-product threshold theta, returning the first
// qualifying dot product found: the neighbor's edge must be a shoot edge
// (bit = 0, not crawl), the neighbor must lie farther from vertex than
// target does (target sits between vertex and the neighbor), and the
// normalized vertex->neighbor direction must agree with the normalized
// vertex->target direction by more than theta (spec.md §4.3 "Can-hit
// test"; original_source/src/ai_worker.cpp:309 can_hit_from).
func CanHitFrom(mesh *DroneNavMesh, vertex Node, target geom.Vec3, theta float32) (dot float32, ok bool) {
	start := mesh.Position(vertex)
	toTarget := target.Sub(start)
	targetDistSq := toTarget.LengthSquared()
	if targetDistSq < 1e-12 {
		return 0, false
	}
	toTarget = toTarget.Normalize()

	adj := mesh.AdjacencyOf(vertex)
	for i, n := range adj.Neighbors {
		if adj.Flags.IsCrawl(i) {
			continue
		}
		toAdjacent := mesh.Position(n).Sub(start)
		adjacentDistSq := toAdjacent.LengthSquared()
		if adjacentDistSq <= targetDistSq {
			continue
		}
		d := toAdjacent.Normalize().Dot(toTarget)
		if d > theta {
			return d, true
		}
	}
	return 0, false
}

// DroneFlagsMatch reports whether the edge from a to b matches the
// requested traversal mode: allowCrawl gates crawl edges, allowShoot gates
// shoot edges (spec.md §4.3 drone_flags_match). At least one of the two
// must be true for any edge to pass.
func DroneFlagsMatch(mesh *DroneNavMesh, a, b Node, allowCrawl, allowShoot bool) bool {
	adj := mesh.AdjacencyOf(a)
	for i, n := range adj.Neighbors {
		if !n.Equal(b) {
			continue
		}
		if adj.Flags.IsCrawl(i) {
			return allowCrawl
		}
		return allowShoot
	}
	return false
}
