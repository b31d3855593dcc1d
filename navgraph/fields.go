package navgraph

import (
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
)

// Rectifier is a team-owned oriented detector (sensor) whose coverage
// modifies A* vertex cost. Snapshot from the game thread every update
// interval (spec.md §3 NavGameState, §4.4 sensor_cost).
type Rectifier struct {
	Pos  geom.Vec3
	Team core.Team
}

// ForceField is a team-owned sphere; enemy fields block drone traversal and
// define the force-field signature used for reachability.
type ForceField struct {
	Pos  geom.Vec3
	Team core.Team
}

// GameState is replicated from the game thread each update interval
// (spec.md §3 NavGameState).
type GameState struct {
	Rectifiers  []Rectifier
	ForceFields []ForceField
}

// Signature is a hash of the set of enemy force fields whose spheres
// contain a given point, for a given team. Equality of signatures is a
// necessary condition for reachability (spec.md §3 ForceFieldSignature).
//
// The original source mixes with `MAX_ENTITIES % (i + 37)`, an
// order-dependent and collision-prone scheme (spec.md §9 Open Question).
// This hash instead folds the sorted set of containing field indices with
// an FNV-1a-style running hash, so equal *sets* of containing enemy
// fields hash equal regardless of snapshot iteration order.
type Signature uint32

const fnvOffset = 2166136261
const fnvPrime = 16777619

// ForceFieldSignature computes the signature of point p for team.
func ForceFieldSignature(state *GameState, team core.Team, p geom.Vec3, ffRadius float32) Signature {
	r2 := ffRadius * ffRadius
	h := uint32(fnvOffset)
	any := false
	for i := range state.ForceFields {
		f := &state.ForceFields[i]
		if f.Team == team {
			continue
		}
		if p.DistanceSquared(f.Pos) < r2 {
			any = true
			h ^= uint32(i)
			h *= fnvPrime
		}
	}
	if !any {
		return 0
	}
	return Signature(h)
}

// ForceFieldRaycast reports whether segment a->b intersects any enemy
// (non-team) force-field sphere of the given radius -- used as an
// edge-expansion pruning rule for shoot edges in A* (spec.md §4.4).
func ForceFieldRaycast(state *GameState, team core.Team, a, b geom.Vec3, ffRadius float32) bool {
	for i := range state.ForceFields {
		f := &state.ForceFields[i]
		if f.Team == team {
			continue
		}
		if raySphereIntersect(a, b, f.Pos, ffRadius) {
			return true
		}
	}
	return false
}

// raySphereIntersect reports whether the closest point on segment a->b to
// center lies within radius of center.
func raySphereIntersect(a, b, center geom.Vec3, radius float32) bool {
	seg := b.Sub(a)
	segLenSq := seg.LengthSquared()
	if segLenSq < 1e-10 {
		return a.DistanceSquared(center) < radius*radius
	}
	t := seg.Dot(center.Sub(a)) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(seg.Scale(t))
	return closest.DistanceSquared(center) < radius*radius
}

// SensorCost computes the team-aware vertex cost at node n (spec.md §4.4
// sensor_cost): high if an enemy sensor sees the vertex, zero if a
// friendly one does and no enemy does, BiasFriendly baseline otherwise;
// plus zero if a friendly force field contains the vertex, else
// BiasFriendly again. Net effect: prefer friendly-sensor coverage and
// friendly-field interiors, strongly avoid enemy-sensor coverage.
func SensorCost(mesh *DroneNavMesh, state *GameState, team core.Team, n Node, sensorRange, ffRadius, biasFriendly float32) float32 {
	pos := mesh.Position(n)
	normal := mesh.Normal(n)

	inFriendly := false
	inEnemy := false
	r2 := sensorRange * sensorRange
	for i := range state.Rectifiers {
		s := &state.Rectifiers[i]
		toSensor := s.Pos.Sub(pos)
		if toSensor.LengthSquared() >= r2 {
			continue
		}
		if normal.Dot(toSensor) <= 0 {
			continue
		}
		if s.Team == team {
			inFriendly = true
		} else {
			inEnemy = true
			break
		}
	}

	var sensorScore float32
	switch {
	case inEnemy:
		sensorScore = 24.0
	case inFriendly:
		sensorScore = 0
	default:
		sensorScore = biasFriendly
	}

	forceFieldCost := biasFriendly
	ff2 := ffRadius * ffRadius
	for i := range state.ForceFields {
		f := &state.ForceFields[i]
		if f.Team != team {
			continue
		}
		if f.Pos.DistanceSquared(pos) < ff2 {
			forceFieldCost = 0
			break
		}
	}

	return sensorScore + forceFieldCost
}
