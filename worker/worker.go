// Package worker implements the pathfinding worker's blocking dispatch
// loop (spec.md §4.7): the single goroutine that owns the authoritative
// drone graph, the walker navmesh facade, the replicated game state, the
// A* scratch table, and the telemetry record store, consuming requests
// off sync_in and producing replies on sync_out. Grounded on the
// teacher's engine/services.Hub lifecycle naming (Init/Start/Stop) for
// the worker's own Start/Wait pair -- this subsystem has exactly one
// worker, so Hub's topological multi-service ordering has no counterpart
// here (see DESIGN.md).
package worker

import (
	"sync"

	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/config"
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/minionnav"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/protocol"
	"github.com/lixenwraith/ai-pathfinder/record"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

// Worker is the authoritative pathfinding engine (spec.md §4.7).
type Worker struct {
	in  *ringbuf.Ring
	out *ringbuf.Ring
	cfg config.Tunables

	wg sync.WaitGroup

	mesh    *navgraph.DroneNavMesh
	state   *navgraph.GameState
	scratch *astar.Scratch
	minion  *minionnav.MinionNavMesh
	records *record.Store

	levelRevision uint16
}

// New constructs a Worker bound to the given ring pair and tunables. The
// worker owns no graph until a Load message arrives (spec.md §4.7 Load).
func New(in, out *ringbuf.Ring, cfg config.Tunables) *Worker {
	return &Worker{
		in:    in,
		out:   out,
		cfg:   cfg,
		state: &navgraph.GameState{},
	}
}

// Start launches the dispatch loop under core.SafeGo, so a panic mid-
// request is logged and the process continues rather than crashing the
// whole game (spec.md §7 propagation policy: "the worker never aborts on
// a recoverable error").
func (w *Worker) Start() {
	w.wg.Add(1)
	core.SafeGo(func() {
		defer w.wg.Done()
		w.run()
	})
}

// Wait blocks until the dispatch loop has returned (spec.md §4.1 quit():
// the Bridge waits for worker termination after enqueueing Quit).
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run() {
	for {
		w.in.LockWaitRead()
		op := protocol.ReadOp(w.in)

		switch op {
		case protocol.OpLoad:
			msg := protocol.ReadLoad(w.in)
			w.in.Unlock()
			w.handleLoad(msg)

		case protocol.OpObstacleAdd:
			msg := protocol.ReadObstacleAdd(w.in)
			w.in.Unlock()
			w.handleObstacleAdd(msg)

		case protocol.OpObstacleRemove:
			msg := protocol.ReadObstacleRemove(w.in)
			w.in.Unlock()
			w.handleObstacleRemove(msg)

		case protocol.OpPathfind:
			msg := protocol.ReadPathfind(w.in)
			w.in.Unlock()
			w.handlePathfind(msg)

		case protocol.OpRandomPath:
			msg := protocol.ReadRandomPath(w.in)
			w.in.Unlock()
			w.handleRandomPath(msg)

		case protocol.OpClosestWalkPoint:
			msg := protocol.ReadClosestWalkPoint(w.in)
			w.in.Unlock()
			w.handleClosestWalkPoint(msg)

		case protocol.OpDronePathfind:
			msg := protocol.ReadDronePathfind(w.in)
			w.in.Unlock()
			w.handleDronePathfind(msg)

		case protocol.OpDroneClosestPoint:
			msg := protocol.ReadDroneClosestPoint(w.in)
			w.in.Unlock()
			w.handleDroneClosestPoint(msg)

		case protocol.OpDroneMarkAdjacencyBad:
			msg := protocol.ReadDroneMarkAdjacencyBad(w.in)
			w.in.Unlock()
			w.handleDroneMarkAdjacencyBad(msg)

		case protocol.OpUpdateState:
			msg := protocol.ReadUpdateState(w.in)
			w.in.Unlock()
			w.handleUpdateState(msg)

		case protocol.OpAudioPathfind:
			msg := protocol.ReadAudioPathfind(w.in)
			w.in.Unlock()
			w.handleAudioPathfind(msg)

		case protocol.OpRecordInit:
			msg := protocol.ReadRecordInit(w.in)
			w.in.Unlock()
			w.handleRecordInit(msg)

		case protocol.OpRecordAdd:
			msg := protocol.ReadRecordAdd(w.in)
			w.in.Unlock()
			w.handleRecordAdd(msg)

		case protocol.OpRecordClose:
			msg := protocol.ReadRecordClose(w.in)
			w.in.Unlock()
			w.handleRecordClose(msg)

		case protocol.OpQuit:
			w.in.Unlock()
			return

		default:
			w.in.Unlock()
		}
	}
}

// emit locks sync_out for exactly one complete reply (spec.md §4.7
// failure policy: "sync_out is locked only to write one complete reply").
func (w *Worker) emit(fn func()) {
	w.out.Lock()
	fn()
	w.out.Unlock()
}
