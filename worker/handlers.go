package worker

import (
	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/minionnav"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/protocol"
	"github.com/lixenwraith/ai-pathfinder/scorer"
)

func (w *Worker) handleObstacleAdd(msg protocol.ObstacleAdd) {
	if w.minion == nil {
		return
	}
	w.minion.AddObstacle(msg.ID, msg.Pos, msg.Radius, msg.Height)
}

func (w *Worker) handleObstacleRemove(msg protocol.ObstacleRemove) {
	if w.minion == nil {
		return
	}
	w.minion.RemoveObstacle(msg.ID)
}

// walkerPath snaps a and b to the walker navmesh with the spec's fixed
// search extent and runs the grid path query (spec.md §4.7: "snap
// endpoints to Detour polygons with a fixed search extent (15, 10, 15);
// run Detour's A*/funnel").
func (w *Worker) walkerPath(a, b geom.Vec3) ([]protocol.PathPointWire, bool) {
	if w.minion == nil {
		return nil, false
	}
	startRef, _, ok := w.minion.FindNearestPoly(a, minionnav.SearchExtent)
	if !ok {
		return nil, false
	}
	endRef, _, ok := w.minion.FindNearestPoly(b, minionnav.SearchExtent)
	if !ok {
		return nil, false
	}
	pts, ok := w.minion.FindPath(startRef, endRef)
	if !ok {
		return nil, false
	}
	out := make([]protocol.PathPointWire, len(pts))
	for i, p := range pts {
		out[i] = protocol.PathPointWire{Pos: p, Normal: geom.Vec3{Y: 1}}
	}
	return out, true
}

func (w *Worker) handlePathfind(msg protocol.Pathfind) {
	points, _ := w.walkerPath(msg.A, msg.B)
	w.emit(func() {
		protocol.PathResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			Points:        points,
		}.WriteTo(w.out)
	})
}

func (w *Worker) handleRandomPath(msg protocol.RandomPath) {
	points, _ := w.walkerPath(msg.Pos, msg.Patrol)
	w.emit(func() {
		protocol.PathResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			Points:        points,
		}.WriteTo(w.out)
	})
}

func (w *Worker) handleClosestWalkPoint(msg protocol.ClosestWalkPoint) {
	var pos geom.Vec3
	found := false
	if w.minion != nil {
		_, p, ok := w.minion.FindNearestPoly(msg.Pos, minionnav.SearchExtent)
		pos, found = p, ok
	}
	w.emit(func() {
		protocol.PointResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			Pos:           pos,
			Found:         found,
		}.WriteTo(w.out)
	})
}

func (w *Worker) handleDronePathfind(msg protocol.DronePathfind) {
	var points []protocol.PathPointWire
	if w.mesh != nil && w.scratch != nil {
		params := astar.Params{
			Team:         msg.Team,
			Allow:        astar.Allow{Crawl: msg.AllowCrawl, Shoot: msg.AllowShoot},
			Biased:       true,
			SensorRange:  w.cfg.SensorRange,
			FieldRadius:  w.cfg.ForceFieldRadius,
			BiasFriendly: w.cfg.BiasFriendly,
			BiasLongshot: w.cfg.BiasLongshot,
			PathCap:      w.cfg.PathCap,
		}

		start := navgraph.NearestPoint(w.mesh, w.state, msg.Team, msg.A, geom.Vec3{}, false, msg.ANormal, msg.ANormal != (geom.Vec3{}), w.cfg.ForceFieldRadius)
		target := navgraph.NearestPoint(w.mesh, w.state, msg.Team, msg.B, geom.Vec3{}, false, msg.BNormal, msg.BNormal != (geom.Vec3{}), w.cfg.ForceFieldRadius)

		// A and B in different force-field signatures are declared
		// unreachable up front rather than left for A* to exhaust its
		// queue over (spec.md §4.3: "pre-check in pathfind/pathfind_hit --
		// if signatures differ, return empty path immediately").
		sameSignature := navgraph.ForceFieldSignature(w.state, msg.Team, msg.A, w.cfg.ForceFieldRadius) ==
			navgraph.ForceFieldSignature(w.state, msg.Team, msg.B, w.cfg.ForceFieldRadius)

		if !start.IsNone() {
			var path []astar.PathNode
			switch msg.Type {
			case protocol.DroneQueryLongRange:
				if !target.IsNone() && sameSignature {
					path = scorer.PathfindHit(w.scratch, w.mesh, w.state, params, start, target)
				}
			case protocol.DroneQueryTarget:
				if !target.IsNone() && sameSignature {
					path = astar.Run(w.scratch, w.mesh, w.state, start, scorer.Pathfind{
						EndPos:  msg.B,
						EndNode: target,
					}, params)
				}
			case protocol.DroneQuerySpawn:
				dir := msg.B.Sub(msg.A)
				if dir.LengthSquared() > 1e-10 {
					dir = dir.Normalize()
				}
				path = astar.Run(w.scratch, w.mesh, w.state, start, scorer.Spawn{
					Start: start,
					From:  msg.A,
					Dir:   dir,
				}, params)
			case protocol.DroneQueryRandom:
				path = astar.Run(w.scratch, w.mesh, w.state, start, scorer.Random{
					Mesh:        w.mesh,
					Start:       start,
					Goal:        msg.B,
					MinDistance: msg.A.Distance(msg.B) * 0.5,
				}, params)
			case protocol.DroneQueryAway:
				enemyClosest, hasEnemy := w.nearestEnemyNode(msg.Team, msg.A)
				path = astar.Run(w.scratch, w.mesh, w.state, start, scorer.Away{
					Mesh:            w.mesh,
					Start:           start,
					AwayPos:         msg.B,
					MinDistance:     w.cfg.SensorRange,
					BiasFriendly:    w.cfg.BiasFriendly,
					EnemyClosest:    enemyClosest,
					HasEnemyClosest: hasEnemy,
				}, params)
			}
			points = toPathPoints(path)
		}
	}

	w.emit(func() {
		protocol.DronePathResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			Points:        points,
		}.WriteTo(w.out)
	})
}

// nearestEnemyNode would resolve the Away scorer's "not adjacent to the
// enemy's closest vertex" exclusion. NavGameState only replicates
// rectifiers and force fields, not per-entity positions, so the worker
// has no standing notion of "the enemy's" own graph vertex; the Away
// scorer already treats this exclusion as optional (HasEnemyClosest
// gates it), so this degrades to the plain flee-to-distance behavior.
func (w *Worker) nearestEnemyNode(team core.Team, from geom.Vec3) (navgraph.Node, bool) {
	return navgraph.NoNode, false
}

func toPathPoints(path []astar.PathNode) []protocol.PathPointWire {
	if path == nil {
		return nil
	}
	out := make([]protocol.PathPointWire, len(path))
	for i, n := range path {
		out[i] = protocol.PathPointWire{Pos: n.Pos, Normal: n.Normal, CrawledFromParent: n.CrawledFromParent}
	}
	return out
}

func (w *Worker) handleDroneClosestPoint(msg protocol.DroneClosestPoint) {
	var (
		pos, normal geom.Vec3
		node        navgraph.Node
		found       bool
	)
	if w.mesh != nil {
		n := navgraph.NearestPoint(w.mesh, w.state, msg.Team, msg.Pos, geom.Vec3{}, false, geom.Vec3{}, false, w.cfg.ForceFieldRadius)
		if !n.IsNone() {
			node = n
			pos = w.mesh.Position(n)
			normal = w.mesh.Normal(n)
			found = true
		}
	}
	w.emit(func() {
		protocol.DronePointResult{
			CallbackID:    msg.CallbackID,
			LevelRevision: w.levelRevision,
			Target:        msg.Target,
			Pos:           pos,
			Normal:        normal,
			Node:          protocol.NodeRef{Chunk: node.Chunk, Vertex: node.Vertex},
			Found:         found,
		}.WriteTo(w.out)
	})
}

func (w *Worker) handleDroneMarkAdjacencyBad(msg protocol.DroneMarkAdjacencyBad) {
	if w.mesh == nil {
		return
	}
	a := navgraph.Node{Chunk: msg.A.Chunk, Vertex: msg.A.Vertex}
	b := navgraph.Node{Chunk: msg.B.Chunk, Vertex: msg.B.Vertex}
	w.mesh.MarkAdjacencyBad(a, b)
}

func (w *Worker) handleUpdateState(msg protocol.UpdateState) {
	w.state.Rectifiers = make([]navgraph.Rectifier, len(msg.Rectifiers))
	for i, e := range msg.Rectifiers {
		w.state.Rectifiers[i] = navgraph.Rectifier{Pos: e.Pos, Team: e.Team}
	}
	w.state.ForceFields = make([]navgraph.ForceField, len(msg.ForceFields))
	for i, e := range msg.ForceFields {
		w.state.ForceFields[i] = navgraph.ForceField{Pos: e.Pos, Team: e.Team}
	}
}

func (w *Worker) handleRecordInit(msg protocol.RecordInit) {
	if w.records == nil {
		return
	}
	w.records.Init(msg.ID, msg.Team, msg.RemainingDrones)
}

func (w *Worker) handleRecordAdd(msg protocol.RecordAdd) {
	if w.records == nil {
		return
	}
	w.records.Add(msg.ID, msg.Tag, msg.Action)
}

func (w *Worker) handleRecordClose(msg protocol.RecordClose) {
	if w.records == nil {
		return
	}
	w.records.Close(msg.ID)
}
