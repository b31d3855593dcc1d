package astar

import (
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

// Allow gates which edge kinds a query may cross (spec.md §4.4 step 4:
// "the edge's crawl/shoot flag is not permitted by the query's DroneAllow
// rule").
type Allow struct {
	Crawl bool
	Shoot bool
}

// PathNode is one reconstructed path vertex (spec.md §4.4 step 3: "Each
// path node carries position, normal, node id, and a crawled_from_parent
// bit").
type PathNode struct {
	Pos               geom.Vec3
	Normal            geom.Vec3
	Node              navgraph.Node
	CrawledFromParent bool
}

// Params bundles the tunables Run needs beyond the scorer itself.
type Params struct {
	Team         core.Team
	Allow        Allow
	Biased       bool // whether to apply sensor_cost and BiasLongshot
	SensorRange  float32
	FieldRadius  float32
	BiasFriendly float32
	BiasLongshot float32
	PathCap      int
}

// Run executes one A* query over mesh/state starting at start, per
// spec.md §4.4. S is monomorphized per call site (spec.md §9 Design Note
// option (b)). Returns nil if the queue empties without scorer.Done ever
// firing.
func Run[S Scorer](scratch *Scratch, mesh *navgraph.DroneNavMesh, state *navgraph.GameState, start navgraph.Node, scorer S, p Params) []PathNode {
	scratch.Reset()

	startSlot := scratch.index[start]
	startData := &scratch.Data[startSlot]
	startData.TravelScore = 0
	startData.EstimateScore = scorer.Score(mesh.Position(start))
	if p.Biased {
		startData.SensorScore = navgraph.SensorCost(mesh, state, p.Team, start, p.SensorRange, p.FieldRadius, p.BiasFriendly)
	}
	startData.Flags = CrawledFromParent | InQueue
	startData.Parent = navgraph.NoNode
	scratch.queue.Push(startSlot)

	for scratch.queue.Len() > 0 {
		vSlot := scratch.queue.Pop()
		v := scratch.nodes[vSlot]
		vData := &scratch.Data[vSlot]
		vData.Flags |= Visited
		vData.Flags &^= InQueue

		if scorer.Done(v, vData) {
			return reconstruct(scratch, v, p.PathCap)
		}

		adj := mesh.AdjacencyOf(v)
		for i, u := range adj.Neighbors {
			uSlot, ok := scratch.index[u]
			if !ok {
				continue
			}
			uData := &scratch.Data[uSlot]
			if uData.Flags&Visited != 0 {
				continue
			}

			crawl := adj.Flags.IsCrawl(i)
			allowed := (crawl && p.Allow.Crawl) || (!crawl && p.Allow.Shoot)
			if !allowed || (!crawl && navgraph.ForceFieldRaycast(state, p.Team, mesh.Position(v), mesh.Position(u), p.FieldRadius)) {
				uData.Flags |= Visited
				continue
			}

			step := mesh.Position(v).Distance(mesh.Position(u))
			candidate := vData.TravelScore + vData.SensorScore + step
			if p.Biased && !crawl {
				candidate += p.BiasLongshot
			}

			if uData.Flags&InQueue != 0 {
				if candidate < uData.TravelScore {
					uData.Parent = v
					uData.TravelScore = candidate
					if crawl {
						uData.Flags |= CrawledFromParent
					} else {
						uData.Flags &^= CrawledFromParent
					}
					scratch.queue.Fix(uSlot)
				}
				continue
			}

			uData.Parent = v
			uData.TravelScore = candidate
			uData.EstimateScore = scorer.Score(mesh.Position(u))
			if p.Biased {
				uData.SensorScore = navgraph.SensorCost(mesh, state, p.Team, u, p.SensorRange, p.FieldRadius, p.BiasFriendly)
			}
			if crawl {
				uData.Flags |= CrawledFromParent
			} else {
				uData.Flags &^= CrawledFromParent
			}
			uData.Flags |= InQueue
			scratch.queue.Push(uSlot)
		}
	}

	return nil
}

// reconstruct walks parent links from v back to the start, pushing each
// vertex to the front of the output and capping at cap (spec.md §4.4 step
// 3: "if capped, oldest is dropped" -- the oldest entries are the ones
// nearest the start, so capping keeps the cap nearest-to-goal tail).
func reconstruct(scratch *Scratch, v navgraph.Node, pathCap int) []PathNode {
	out := make([]PathNode, 0, pathCap)
	for !v.IsNone() {
		slot := scratch.index[v]
		d := &scratch.Data[slot]
		node := PathNode{
			Pos:               scratch.mesh.Position(v),
			Normal:            scratch.mesh.Normal(v),
			Node:              v,
			CrawledFromParent: d.Flags&CrawledFromParent != 0,
		}
		out = append([]PathNode{node}, out...)
		if len(out) > pathCap {
			out = out[1:]
		}
		v = d.Parent
	}
	return out
}
