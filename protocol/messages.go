package protocol

import (
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

// NodeRef is the wire form of a navgraph.Node: a (chunk, vertex) index
// pair, used by ops that reference a vertex the caller already resolved
// via an earlier closest-point/pathfind callback.
type NodeRef struct {
	Chunk  int16
	Vertex int16
}

func putNodeRef(ring *ringbuf.Ring, n NodeRef) {
	putUint16(ring, uint16(n.Chunk))
	putUint16(ring, uint16(n.Vertex))
}

func getNodeRef(ring *ringbuf.Ring) NodeRef {
	return NodeRef{Chunk: int16(getUint16(ring)), Vertex: int16(getUint16(ring))}
}

// Every message below brackets one op byte plus its fixed-shape payload.
// Callers lock the ring for the whole WriteTo/Read<Name> call (spec.md
// §4.2: "the message opcode and all payload fields are written between a
// single lock/unlock pair").

// Load requests a level swap (spec.md §4.1 load, §4.7).
type Load struct {
	LevelID    uint32
	LevelPath  string
	RecordPath string
}

func (m Load) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpLoad))
	putUint32(ring, m.LevelID)
	putPath(ring, m.LevelPath)
	putPath(ring, m.RecordPath)
}

func ReadLoad(ring *ringbuf.Ring) Load {
	return Load{LevelID: getUint32(ring), LevelPath: getPath(ring), RecordPath: getPath(ring)}
}

// ObstacleAdd forwards a new dynamic obstacle to the Detour tile cache
// (spec.md §4.1 obstacle_add, §4.7).
type ObstacleAdd struct {
	ID     uint32
	Pos    geom.Vec3
	Radius float32
	Height float32
}

func (m ObstacleAdd) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpObstacleAdd))
	putUint32(ring, m.ID)
	putVec3(ring, m.Pos)
	putFloat32(ring, m.Radius)
	putFloat32(ring, m.Height)
}

func ReadObstacleAdd(ring *ringbuf.Ring) ObstacleAdd {
	return ObstacleAdd{ID: getUint32(ring), Pos: getVec3(ring), Radius: getFloat32(ring), Height: getFloat32(ring)}
}

// ObstacleRemove clears a previously added obstacle (spec.md §4.1
// obstacle_remove).
type ObstacleRemove struct {
	ID uint32
}

func (m ObstacleRemove) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpObstacleRemove))
	putUint32(ring, m.ID)
}

func ReadObstacleRemove(ring *ringbuf.Ring) ObstacleRemove {
	return ObstacleRemove{ID: getUint32(ring)}
}

// Pathfind requests a walker A->B Detour path (spec.md §4.1 pathfind).
type Pathfind struct {
	CallbackID uint32
	Team       core.Team
	A          geom.Vec3
	B          geom.Vec3
	Target     Handle
}

func (m Pathfind) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpPathfind))
	putUint32(ring, m.CallbackID)
	putTeam(ring, m.Team)
	putVec3(ring, m.A)
	putVec3(ring, m.B)
	putHandle(ring, m.Target)
}

func ReadPathfind(ring *ringbuf.Ring) Pathfind {
	return Pathfind{
		CallbackID: getUint32(ring),
		Team:       getTeam(ring),
		A:          getVec3(ring),
		B:          getVec3(ring),
		Target:     getHandle(ring),
	}
}

// RandomPath requests a walker wander path (spec.md §4.1 random_path).
type RandomPath struct {
	CallbackID uint32
	Team       core.Team
	Pos        geom.Vec3
	Patrol     geom.Vec3
	Range      float32
	Target     Handle
}

func (m RandomPath) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpRandomPath))
	putUint32(ring, m.CallbackID)
	putTeam(ring, m.Team)
	putVec3(ring, m.Pos)
	putVec3(ring, m.Patrol)
	putFloat32(ring, m.Range)
	putHandle(ring, m.Target)
}

func ReadRandomPath(ring *ringbuf.Ring) RandomPath {
	return RandomPath{
		CallbackID: getUint32(ring),
		Team:       getTeam(ring),
		Pos:        getVec3(ring),
		Patrol:     getVec3(ring),
		Range:      getFloat32(ring),
		Target:     getHandle(ring),
	}
}

// ClosestWalkPoint snaps a point to the walker navmesh (spec.md §4.1
// closest_walk_point).
type ClosestWalkPoint struct {
	CallbackID uint32
	Pos        geom.Vec3
	Target     Handle
}

func (m ClosestWalkPoint) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpClosestWalkPoint))
	putUint32(ring, m.CallbackID)
	putVec3(ring, m.Pos)
	putHandle(ring, m.Target)
}

func ReadClosestWalkPoint(ring *ringbuf.Ring) ClosestWalkPoint {
	return ClosestWalkPoint{CallbackID: getUint32(ring), Pos: getVec3(ring), Target: getHandle(ring)}
}

// DronePathfind requests a drone A* query of the given sub-type (spec.md
// §4.1 drone_pathfind).
type DronePathfind struct {
	CallbackID uint32
	Type       DroneQueryType
	Team       core.Team
	AllowCrawl bool
	AllowShoot bool
	A          geom.Vec3
	ANormal    geom.Vec3
	B          geom.Vec3
	BNormal    geom.Vec3
	Target     Handle
}

func (m DronePathfind) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpDronePathfind))
	putUint32(ring, m.CallbackID)
	putUint8(ring, uint8(m.Type))
	putTeam(ring, m.Team)
	putBool(ring, m.AllowCrawl)
	putBool(ring, m.AllowShoot)
	putVec3(ring, m.A)
	putVec3(ring, m.ANormal)
	putVec3(ring, m.B)
	putVec3(ring, m.BNormal)
	putHandle(ring, m.Target)
}

func ReadDronePathfind(ring *ringbuf.Ring) DronePathfind {
	return DronePathfind{
		CallbackID: getUint32(ring),
		Type:       DroneQueryType(getUint8(ring)),
		Team:       getTeam(ring),
		AllowCrawl: getBool(ring),
		AllowShoot: getBool(ring),
		A:          getVec3(ring),
		ANormal:    getVec3(ring),
		B:          getVec3(ring),
		BNormal:    getVec3(ring),
		Target:     getHandle(ring),
	}
}

func putBool(ring *ringbuf.Ring, b bool) {
	if b {
		putUint8(ring, 1)
	} else {
		putUint8(ring, 0)
	}
}

func getBool(ring *ringbuf.Ring) bool {
	return getUint8(ring) != 0
}

// DroneClosestPoint requests a drone-graph nearest-point query (spec.md
// §4.1 drone_closest_point).
type DroneClosestPoint struct {
	CallbackID uint32
	Team       core.Team
	Pos        geom.Vec3
	Target     Handle
}

func (m DroneClosestPoint) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpDroneClosestPoint))
	putUint32(ring, m.CallbackID)
	putTeam(ring, m.Team)
	putVec3(ring, m.Pos)
	putHandle(ring, m.Target)
}

func ReadDroneClosestPoint(ring *ringbuf.Ring) DroneClosestPoint {
	return DroneClosestPoint{CallbackID: getUint32(ring), Team: getTeam(ring), Pos: getVec3(ring), Target: getHandle(ring)}
}

// DroneMarkAdjacencyBad removes a one-directional drone edge, fire-and-
// forget (spec.md §4.1 drone_mark_adjacency_bad, §4.3).
type DroneMarkAdjacencyBad struct {
	A NodeRef
	B NodeRef
}

func (m DroneMarkAdjacencyBad) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpDroneMarkAdjacencyBad))
	putNodeRef(ring, m.A)
	putNodeRef(ring, m.B)
}

func ReadDroneMarkAdjacencyBad(ring *ringbuf.Ring) DroneMarkAdjacencyBad {
	return DroneMarkAdjacencyBad{A: getNodeRef(ring), B: getNodeRef(ring)}
}

// UpdateState replaces the replicated rectifier/force-field snapshot
// (spec.md §4.1 update, §4.7 UpdateState). Counts precede each array so
// the fixed-shape reader knows how many fixed-size entries follow.
type UpdateState struct {
	Rectifiers  []StateEntry
	ForceFields []StateEntry
}

// StateEntry is one rectifier or force field: position plus owning team.
type StateEntry struct {
	Pos  geom.Vec3
	Team core.Team
}

func (m UpdateState) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpUpdateState))
	putUint16(ring, uint16(len(m.Rectifiers)))
	for _, e := range m.Rectifiers {
		putVec3(ring, e.Pos)
		putTeam(ring, e.Team)
	}
	putUint16(ring, uint16(len(m.ForceFields)))
	for _, e := range m.ForceFields {
		putVec3(ring, e.Pos)
		putTeam(ring, e.Team)
	}
}

func ReadUpdateState(ring *ringbuf.Ring) UpdateState {
	rn := getUint16(ring)
	rect := make([]StateEntry, rn)
	for i := range rect {
		rect[i] = StateEntry{Pos: getVec3(ring), Team: getTeam(ring)}
	}
	fn := getUint16(ring)
	fields := make([]StateEntry, fn)
	for i := range fields {
		fields[i] = StateEntry{Pos: getVec3(ring), Team: getTeam(ring)}
	}
	return UpdateState{Rectifiers: rect, ForceFields: fields}
}

// AudioPathfind requests the asynchronous audio-path variant (spec.md
// §4.1 audio_pathfind async form).
type AudioPathfind struct {
	CallbackID   uint32
	A            geom.Vec3
	B            geom.Vec3
	Entry        geom.Vec3
	Listener     geom.Vec3
	StraightDist float32
	Target       Handle
}

func (m AudioPathfind) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpAudioPathfind))
	putUint32(ring, m.CallbackID)
	putVec3(ring, m.A)
	putVec3(ring, m.B)
	putVec3(ring, m.Entry)
	putVec3(ring, m.Listener)
	putFloat32(ring, m.StraightDist)
	putHandle(ring, m.Target)
}

func ReadAudioPathfind(ring *ringbuf.Ring) AudioPathfind {
	return AudioPathfind{
		CallbackID:   getUint32(ring),
		A:            getVec3(ring),
		B:            getVec3(ring),
		Entry:        getVec3(ring),
		Listener:     getVec3(ring),
		StraightDist: getFloat32(ring),
		Target:       getHandle(ring),
	}
}

// RecordInit/RecordAdd/RecordClose are the life-telemetry side channel
// (spec.md §4.6).
type RecordInit struct {
	ID              uint32
	Team            core.Team
	RemainingDrones uint8
}

func (m RecordInit) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpRecordInit))
	putUint32(ring, m.ID)
	putTeam(ring, m.Team)
	putUint8(ring, m.RemainingDrones)
}

func ReadRecordInit(ring *ringbuf.Ring) RecordInit {
	return RecordInit{ID: getUint32(ring), Team: getTeam(ring), RemainingDrones: getUint8(ring)}
}

type RecordAdd struct {
	ID     uint32
	Tag    uint16
	Action uint16
}

func (m RecordAdd) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpRecordAdd))
	putUint32(ring, m.ID)
	putUint16(ring, m.Tag)
	putUint16(ring, m.Action)
}

func ReadRecordAdd(ring *ringbuf.Ring) RecordAdd {
	return RecordAdd{ID: getUint32(ring), Tag: getUint16(ring), Action: getUint16(ring)}
}

type RecordClose struct {
	ID uint32
}

func (m RecordClose) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpRecordClose))
	putUint32(ring, m.ID)
}

func ReadRecordClose(ring *ringbuf.Ring) RecordClose {
	return RecordClose{ID: getUint32(ring)}
}

// Quit tells the worker to terminate (spec.md §4.1 quit).
type Quit struct{}

func (m Quit) WriteTo(ring *ringbuf.Ring) {
	putUint8(ring, uint8(OpQuit))
}
