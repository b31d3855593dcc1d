package protocol

import (
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

// PathPointWire is one reconstructed path vertex on the wire (spec.md
// §4.4 step 3 fields, minus the node-id which the game thread never
// needs).
type PathPointWire struct {
	Pos               geom.Vec3
	Normal            geom.Vec3
	CrawledFromParent bool
}

func putPathPoints(ring *ringbuf.Ring, pts []PathPointWire) {
	putUint16(ring, uint16(len(pts)))
	for _, p := range pts {
		putVec3(ring, p.Pos)
		putVec3(ring, p.Normal)
		putBool(ring, p.CrawledFromParent)
	}
}

func getPathPoints(ring *ringbuf.Ring) []PathPointWire {
	n := getUint16(ring)
	if n == 0 {
		return nil
	}
	pts := make([]PathPointWire, n)
	for i := range pts {
		pts[i] = PathPointWire{Pos: getVec3(ring), Normal: getVec3(ring), CrawledFromParent: getBool(ring)}
	}
	return pts
}

// LoadResult reports the new level_revision once a Load completes
// (spec.md §4.7 Load: "Emit Callback::Load(level_revision)").
type LoadResult struct {
	LevelRevision uint16
}

func (m LoadResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackLoad))
	putUint16(ring, m.LevelRevision)
}

func ReadLoadResult(ring *ringbuf.Ring) LoadResult {
	return LoadResult{LevelRevision: getUint16(ring)}
}

// PathResult delivers a walker Detour path (spec.md §4.1
// pathfind/random_path Callback::Path).
type PathResult struct {
	CallbackID    uint32
	LevelRevision uint16
	Target        Handle
	Points        []PathPointWire
}

func (m PathResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackPath))
	putUint32(ring, m.CallbackID)
	putUint16(ring, m.LevelRevision)
	putHandle(ring, m.Target)
	putPathPoints(ring, m.Points)
}

func ReadPathResult(ring *ringbuf.Ring) PathResult {
	return PathResult{
		CallbackID:    getUint32(ring),
		LevelRevision: getUint16(ring),
		Target:        getHandle(ring),
		Points:        getPathPoints(ring),
	}
}

// PointResult delivers a single snapped point (spec.md §4.1
// closest_walk_point Callback::Point).
type PointResult struct {
	CallbackID    uint32
	LevelRevision uint16
	Target        Handle
	Pos           geom.Vec3
	Found         bool
}

func (m PointResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackPoint))
	putUint32(ring, m.CallbackID)
	putUint16(ring, m.LevelRevision)
	putHandle(ring, m.Target)
	putVec3(ring, m.Pos)
	putBool(ring, m.Found)
}

func ReadPointResult(ring *ringbuf.Ring) PointResult {
	return PointResult{
		CallbackID:    getUint32(ring),
		LevelRevision: getUint16(ring),
		Target:        getHandle(ring),
		Pos:           getVec3(ring),
		Found:         getBool(ring),
	}
}

// DronePathResult delivers a drone A* path (spec.md §4.1 drone_pathfind
// Callback::DronePath).
type DronePathResult struct {
	CallbackID    uint32
	LevelRevision uint16
	Target        Handle
	Points        []PathPointWire
}

func (m DronePathResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackDronePath))
	putUint32(ring, m.CallbackID)
	putUint16(ring, m.LevelRevision)
	putHandle(ring, m.Target)
	putPathPoints(ring, m.Points)
}

func ReadDronePathResult(ring *ringbuf.Ring) DronePathResult {
	return DronePathResult{
		CallbackID:    getUint32(ring),
		LevelRevision: getUint16(ring),
		Target:        getHandle(ring),
		Points:        getPathPoints(ring),
	}
}

// DronePointResult delivers a drone-graph nearest-point result (spec.md
// §4.1 drone_closest_point Callback::DronePoint).
type DronePointResult struct {
	CallbackID    uint32
	LevelRevision uint16
	Target        Handle
	Pos           geom.Vec3
	Normal        geom.Vec3
	Node          NodeRef
	Found         bool
}

func (m DronePointResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackDronePoint))
	putUint32(ring, m.CallbackID)
	putUint16(ring, m.LevelRevision)
	putHandle(ring, m.Target)
	putVec3(ring, m.Pos)
	putVec3(ring, m.Normal)
	putNodeRef(ring, m.Node)
	putBool(ring, m.Found)
}

func ReadDronePointResult(ring *ringbuf.Ring) DronePointResult {
	return DronePointResult{
		CallbackID:    getUint32(ring),
		LevelRevision: getUint16(ring),
		Target:        getHandle(ring),
		Pos:           getVec3(ring),
		Normal:        getVec3(ring),
		Node:          getNodeRef(ring),
		Found:         getBool(ring),
	}
}

// AudioPathResult delivers the async audio_pathfind result: path length
// and the original straight-line distance, for reverb mix computation
// (spec.md §4.1 audio_pathfind async form, §4.7 AudioPathfind).
type AudioPathResult struct {
	CallbackID    uint32
	LevelRevision uint16
	Target        Handle
	PathLength    float32
	StraightDist  float32
}

func (m AudioPathResult) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(CallbackAudioPath))
	putUint32(ring, m.CallbackID)
	putUint16(ring, m.LevelRevision)
	putHandle(ring, m.Target)
	putFloat32(ring, m.PathLength)
	putFloat32(ring, m.StraightDist)
}

func ReadAudioPathResult(ring *ringbuf.Ring) AudioPathResult {
	return AudioPathResult{
		CallbackID:    getUint32(ring),
		LevelRevision: getUint16(ring),
		Target:        getHandle(ring),
		PathLength:    getFloat32(ring),
		StraightDist:  getFloat32(ring),
	}
}
