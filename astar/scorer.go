package astar

import (
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

// Scorer supplies the heuristic and acceptance predicate for one A* query
// kind (spec.md §4.5). Run is generic over Scorer rather than dispatching
// on a tagged variant (spec.md §9 Design Note option (b)), following the
// teacher's own generics-as-strategy convention (genetic.Engine[S
// Solution, F Numeric]).
type Scorer interface {
	// Score is the heuristic estimate from position p to the goal.
	Score(p geom.Vec3) float32
	// Done reports whether vertex v, with scratch data d, satisfies this
	// query's acceptance predicate.
	Done(v navgraph.Node, d *NodeData) bool
}
