// Package scorer implements the five A* query kinds of spec.md §4.5, each
// a value type satisfying astar.Scorer (Score + Done), translated from the
// original's AstarScorer-derived virtual classes (ai_worker.cpp).
package scorer

import (
	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

// Pathfind scores by straight-line distance to a fixed end vertex and
// accepts exactly that vertex.
type Pathfind struct {
	EndPos  geom.Vec3
	EndNode navgraph.Node
}

func (s Pathfind) Score(p geom.Vec3) float32 {
	return s.EndPos.Distance(p)
}

func (s Pathfind) Done(v navgraph.Node, _ *astar.NodeData) bool {
	return v.Equal(s.EndNode)
}

// AudioPathfind behaves like Pathfind but cuts the search short once
// accumulated travel exceeds Budget, approximated by the caller as
// straight distance + 2*DMAX (spec.md §4.5).
type AudioPathfind struct {
	EndPos  geom.Vec3
	EndNode navgraph.Node
	Budget  float32
}

func (s AudioPathfind) Score(p geom.Vec3) float32 {
	return s.EndPos.Distance(p)
}

func (s AudioPathfind) Done(v navgraph.Node, d *astar.NodeData) bool {
	return d.TravelScore > s.Budget || v.Equal(s.EndNode)
}

// Away flees from AwayPos: a vertex is accepted once it is far enough,
// inside friendly coverage, not the start, and not adjacent to the
// enemy's nearest vertex (spec.md §4.5).
type Away struct {
	Mesh            *navgraph.DroneNavMesh
	Start           navgraph.Node
	AwayPos         geom.Vec3
	MinDistance     float32
	BiasFriendly    float32
	EnemyClosest    navgraph.Node
	HasEnemyClosest bool
}

func (s Away) Score(p geom.Vec3) float32 {
	d := s.MinDistance - s.AwayPos.Distance(p)
	if d < 0 {
		return 0
	}
	return d
}

func (s Away) Done(v navgraph.Node, d *astar.NodeData) bool {
	if v.Equal(s.Start) {
		return false
	}
	if d.SensorScore > s.BiasFriendly {
		return false
	}
	if s.Mesh.Position(v).Distance(s.AwayPos) < s.MinDistance {
		return false
	}
	if s.HasEnemyClosest {
		adj := s.Mesh.AdjacencyOf(s.EnemyClosest)
		for _, n := range adj.Neighbors {
			if n.Equal(v) {
				return false
			}
		}
	}
	return true
}

// Random wanders toward a random in-bounds goal point and accepts the
// first fully-connected vertex (spec.md §4.5) far enough from the start.
type Random struct {
	Mesh        *navgraph.DroneNavMesh
	Start       navgraph.Node
	Goal        geom.Vec3
	MinDistance float32
}

func (s Random) Score(p geom.Vec3) float32 {
	return s.Goal.Distance(p)
}

func (s Random) Done(v navgraph.Node, _ *astar.NodeData) bool {
	adj := s.Mesh.AdjacencyOf(v)
	if len(adj.Neighbors) < navgraph.MaxNeighbors {
		return false
	}
	return s.Mesh.Position(v).Distance(s.Mesh.Position(s.Start)) > s.MinDistance
}

// Spawn scores by how far p lies behind Dir from Start, preferring
// forward-of-Dir vertices, and accepts any vertex but the start (spec.md
// §4.5).
type Spawn struct {
	Start navgraph.Node
	From  geom.Vec3
	Dir   geom.Vec3
}

func (s Spawn) Score(p geom.Vec3) float32 {
	return 5 * (1 - s.Dir.Dot(p.Sub(s.From)))
}

func (s Spawn) Done(v navgraph.Node, _ *astar.NodeData) bool {
	return !v.Equal(s.Start)
}
