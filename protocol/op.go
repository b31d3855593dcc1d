// Package protocol defines the opcode enums and fixed-shape binary wire
// codecs the bridge and worker exchange over a ringbuf.Ring (spec.md
// §4.2), adapted from the teacher's network/protocol.go length-prefixed
// MessageType framing to spec.md's no-length-prefix, fixed-payload-per-op
// design.
package protocol

import "github.com/lixenwraith/ai-pathfinder/ringbuf"

// ReadOp reads the one-byte opcode prefixing every inbound message. The
// worker's dispatch loop calls this first, then the matching Read<Name>
// for the payload, all under the same ring lock (spec.md §4.2).
func ReadOp(ring *ringbuf.Ring) Op {
	return Op(getUint8(ring))
}

// ReadCallback reads the one-byte opcode prefixing every outbound
// message, the Bridge-side counterpart of ReadOp.
func ReadCallback(ring *ringbuf.Ring) Callback {
	return Callback(getUint8(ring))
}

// Op identifies an inbound (game thread -> worker) message.
type Op uint8

const (
	OpLoad Op = iota + 1
	OpObstacleAdd
	OpObstacleRemove
	OpPathfind
	OpRandomPath
	OpClosestWalkPoint
	OpDronePathfind
	OpDroneClosestPoint
	OpDroneMarkAdjacencyBad
	OpUpdateState
	OpAudioPathfind
	OpRecordInit
	OpRecordAdd
	OpRecordClose
	OpQuit
)

// Callback identifies an outbound (worker -> game thread) reply.
type Callback uint8

const (
	CallbackLoad Callback = iota + 1
	CallbackPath
	CallbackPoint
	CallbackDronePath
	CallbackDronePoint
	CallbackAudioPath
)

// DroneQueryType selects the drone_pathfind sub-scorer (spec.md §4.1).
type DroneQueryType uint8

const (
	DroneQueryLongRange DroneQueryType = iota
	DroneQueryTarget
	DroneQuerySpawn
	DroneQueryRandom
	DroneQueryAway
)
