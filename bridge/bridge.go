// Package bridge is the front-end API the game thread calls into (spec.md
// §4.1): it owns the two ring buffers, the callback correlation table,
// the obstacle-id bitmask, and the level-revision counter. Grounded on
// the teacher's engine/services/hub.go for the register/init lifecycle
// naming convention (this subsystem has exactly one worker, not a graph
// of services, so the topological multi-service sort is not reused); the
// callback-by-id-not-pointer design is spec.md's own Design Note,
// mirroring the teacher's event/registry.go handlers-keyed-by-id pattern.
package bridge

import (
	"sync"

	"github.com/lixenwraith/ai-pathfinder/astar"
	"github.com/lixenwraith/ai-pathfinder/audiofield"
	"github.com/lixenwraith/ai-pathfinder/config"
	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
	"github.com/lixenwraith/ai-pathfinder/persist"
	"github.com/lixenwraith/ai-pathfinder/protocol"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
	"github.com/lixenwraith/ai-pathfinder/worker"
)

// Outstanding is a correlation record for one in-flight request (spec.md
// §3 "Outstanding callback").
type Outstanding struct {
	Kind          protocol.Callback
	Target        protocol.Handle
	LevelRevision uint16
}

// Result is what Drain hands back to the caller for one fired callback:
// the original target handle plus the raw decoded payload (one of
// protocol's *Result types).
type Result struct {
	Kind    protocol.Callback
	Target  protocol.Handle
	Payload any
}

// Bridge is the game thread's handle onto the pathfinding worker.
type Bridge struct {
	tunables config.Tunables

	in  *ringbuf.Ring
	out *ringbuf.Ring

	mu           sync.Mutex
	nextID       uint32
	outstanding  map[uint32]Outstanding
	revision     uint16
	obstacleUsed []bool

	w *worker.Worker

	resyncAccum float32

	// localMesh/localScratch/localState are the Bridge-side read-only
	// drone graph copy spec.md §5 requires for synchronous audio queries
	// ("two independent copies of the drone graph ... not kept in sync
	// with worker-side mutations"). Loaded directly from the same file
	// the worker loads, independently, on Load.
	localMesh    *navgraph.DroneNavMesh
	localScratch *astar.Scratch
	localState   navgraph.GameState
}

// New allocates a Bridge with the spec's ~64 KiB ring buffers (spec.md
// §4.2) and an obstacle bitmask sized to the configured capacity.
func New(t config.Tunables) *Bridge {
	return &Bridge{
		tunables:     t,
		in:           ringbuf.New(64 * 1024),
		out:          ringbuf.New(64 * 1024),
		outstanding:  make(map[uint32]Outstanding),
		obstacleUsed: make([]bool, t.ObstacleCapacity),
	}
}

// Init spawns the worker goroutine (spec.md §4.1 init()).
func (b *Bridge) Init() {
	b.w = worker.New(b.in, b.out, b.tunables)
	b.w.Start()
}

// Quit enqueues a Quit message and waits for the worker to stop (spec.md
// §4.1 quit()).
func (b *Bridge) Quit() {
	b.in.Lock()
	protocol.Quit{}.WriteTo(b.in)
	b.in.Unlock()
	b.w.Wait()
}

func (b *Bridge) allocID() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return b.nextID
}

func (b *Bridge) register(id uint32, kind protocol.Callback, target protocol.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outstanding[id] = Outstanding{Kind: kind, Target: target, LevelRevision: b.revision}
}

// Update implements spec.md §4.1 update(dt): every StateResyncInterval
// seconds it enqueues the caller-supplied rectifier/force-field snapshot
// as an UpdateState message, then drains whatever the worker has written
// to sync_out, firing callbacks whose level_revision still matches the
// current one and silently discarding stale results (spec.md §5
// "Cancellation": Load implicitly cancels all outstanding queries).
func (b *Bridge) Update(dt float32, snapshot navgraph.GameState) []Result {
	b.localState = snapshot
	b.resyncAccum += dt
	if b.resyncAccum >= b.tunables.StateResyncInterval {
		b.resyncAccum = 0
		b.in.Lock()
		protocol.UpdateState{
			Rectifiers:  toStateEntries(snapshot.Rectifiers),
			ForceFields: toForceFieldEntries(snapshot.ForceFields),
		}.WriteTo(b.in)
		b.in.Unlock()
	}
	return b.drainOutbound()
}

func toStateEntries(rs []navgraph.Rectifier) []protocol.StateEntry {
	out := make([]protocol.StateEntry, len(rs))
	for i, r := range rs {
		out[i] = protocol.StateEntry{Pos: r.Pos, Team: r.Team}
	}
	return out
}

func toForceFieldEntries(fs []navgraph.ForceField) []protocol.StateEntry {
	out := make([]protocol.StateEntry, len(fs))
	for i, f := range fs {
		out[i] = protocol.StateEntry{Pos: f.Pos, Team: f.Team}
	}
	return out
}

// drainOutbound reads every complete reply currently sitting in sync_out,
// one message per Lock/Unlock bracket (spec.md §4.2), and resolves it
// against the outstanding table.
func (b *Bridge) drainOutbound() []Result {
	var results []Result
	for {
		b.out.Lock()
		if !b.out.CanRead() {
			b.out.Unlock()
			break
		}
		kind := protocol.ReadCallback(b.out)
		var (
			id       uint32
			revision uint16
			payload  any
		)
		switch kind {
		case protocol.CallbackLoad:
			r := protocol.ReadLoadResult(b.out)
			revision = r.LevelRevision
			payload = r
		case protocol.CallbackPath:
			r := protocol.ReadPathResult(b.out)
			id, revision, payload = r.CallbackID, r.LevelRevision, r
		case protocol.CallbackPoint:
			r := protocol.ReadPointResult(b.out)
			id, revision, payload = r.CallbackID, r.LevelRevision, r
		case protocol.CallbackDronePath:
			r := protocol.ReadDronePathResult(b.out)
			id, revision, payload = r.CallbackID, r.LevelRevision, r
		case protocol.CallbackDronePoint:
			r := protocol.ReadDronePointResult(b.out)
			id, revision, payload = r.CallbackID, r.LevelRevision, r
		case protocol.CallbackAudioPath:
			r := protocol.ReadAudioPathResult(b.out)
			id, revision, payload = r.CallbackID, r.LevelRevision, r
		}
		b.out.Unlock()

		if kind == protocol.CallbackLoad {
			results = append(results, Result{Kind: kind, Payload: payload})
			continue
		}

		b.mu.Lock()
		o, ok := b.outstanding[id]
		if ok {
			delete(b.outstanding, id)
		}
		current := b.revision
		b.mu.Unlock()
		if !ok || revision != current {
			continue // stale or unknown: Load cancelled it, drop silently
		}
		results = append(results, Result{Kind: kind, Target: o.Target, Payload: payload})
	}
	return results
}

// Load enqueues a Load request, bumping the local revision immediately
// and replacing the Bridge's local read-only graph copy with one loaded
// from levelPath + ".dronegraph" (left nil if that file cannot be loaded)
// (spec.md §4.1 load()).
func (b *Bridge) Load(levelID uint32, levelPath, recordPath string) {
	b.mu.Lock()
	b.revision++
	b.mu.Unlock()

	b.in.Lock()
	protocol.Load{LevelID: levelID, LevelPath: levelPath, RecordPath: recordPath}.WriteTo(b.in)
	b.in.Unlock()

	b.localMesh = nil
	b.localScratch = nil
	if mesh, err := persist.LoadDroneGraphFile(levelPath + ".dronegraph"); err == nil {
		b.localMesh = mesh
		b.localScratch = astar.NewScratch(mesh)
	}
}

// ObstacleAdd allocates the lowest free id from the obstacle bitmask and
// enqueues the add, returning the capacity sentinel if the bitmask is
// full (spec.md §4.1 obstacle_add, §9 Open Question: "always returns N_OB
// when the bitmask is full, never an uninitialized value").
func (b *Bridge) ObstacleAdd(pos geom.Vec3, radius, height float32) uint32 {
	b.mu.Lock()
	id := uint32(len(b.obstacleUsed))
	for i, used := range b.obstacleUsed {
		if !used {
			id = uint32(i)
			b.obstacleUsed[i] = true
			break
		}
	}
	b.mu.Unlock()

	if int(id) >= len(b.obstacleUsed) {
		return uint32(len(b.obstacleUsed))
	}

	b.in.Lock()
	protocol.ObstacleAdd{ID: id, Pos: pos, Radius: radius, Height: height}.WriteTo(b.in)
	b.in.Unlock()

	return id
}

// ObstacleRemove clears the bit and enqueues the remove (spec.md §4.1
// obstacle_remove).
func (b *Bridge) ObstacleRemove(id uint32) {
	b.mu.Lock()
	if int(id) < len(b.obstacleUsed) {
		b.obstacleUsed[id] = false
	}
	b.mu.Unlock()

	b.in.Lock()
	protocol.ObstacleRemove{ID: id}.WriteTo(b.in)
	b.in.Unlock()
}

// Pathfind requests a walker A->B path (spec.md §4.1 pathfind).
func (b *Bridge) Pathfind(team core.Team, a, dst geom.Vec3, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackPath, target)
	b.in.Lock()
	protocol.Pathfind{CallbackID: id, Team: team, A: a, B: dst, Target: target}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// RandomPath requests a walker wander path (spec.md §4.1 random_path).
func (b *Bridge) RandomPath(team core.Team, pos, patrol geom.Vec3, rng float32, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackPath, target)
	b.in.Lock()
	protocol.RandomPath{CallbackID: id, Team: team, Pos: pos, Patrol: patrol, Range: rng, Target: target}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// ClosestWalkPoint snaps pos to the walker navmesh (spec.md §4.1
// closest_walk_point).
func (b *Bridge) ClosestWalkPoint(pos geom.Vec3, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackPoint, target)
	b.in.Lock()
	protocol.ClosestWalkPoint{CallbackID: id, Pos: pos, Target: target}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// DronePathfind requests a drone A* query (spec.md §4.1 drone_pathfind).
func (b *Bridge) DronePathfind(queryType protocol.DroneQueryType, team core.Team, allowCrawl, allowShoot bool, a, aNormal, dst, dstNormal geom.Vec3, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackDronePath, target)
	b.in.Lock()
	protocol.DronePathfind{
		CallbackID: id,
		Type:       queryType,
		Team:       team,
		AllowCrawl: allowCrawl,
		AllowShoot: allowShoot,
		A:          a,
		ANormal:    aNormal,
		B:          dst,
		BNormal:    dstNormal,
		Target:     target,
	}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// DroneClosestPoint requests a drone-graph nearest-point query (spec.md
// §4.1 drone_closest_point).
func (b *Bridge) DroneClosestPoint(team core.Team, pos geom.Vec3, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackDronePoint, target)
	b.in.Lock()
	protocol.DroneClosestPoint{CallbackID: id, Team: team, Pos: pos, Target: target}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// DroneMarkAdjacencyBad enqueues a fire-and-forget edge deletion (spec.md
// §4.1 drone_mark_adjacency_bad).
func (b *Bridge) DroneMarkAdjacencyBad(a, c protocol.NodeRef) {
	b.in.Lock()
	protocol.DroneMarkAdjacencyBad{A: a, B: c}.WriteTo(b.in)
	b.in.Unlock()
}

// AudioPathfindSync runs the synchronous audio_pathfind variant on the
// calling thread against the Bridge's own read-only graph copy (spec.md
// §4.1: "Runs on calling thread against a local read-only copy of the
// graph; returns path length or effectively infinite"). Unbiased, team-
// agnostic, matching the worker's handling of the async variant.
func (b *Bridge) AudioPathfindSync(a, dst geom.Vec3) float32 {
	if b.localMesh == nil || b.localScratch == nil {
		return 1e9
	}
	start := navgraph.NearestPoint(b.localMesh, &b.localState, core.TeamNone, a, geom.Vec3{}, false, geom.Vec3{}, false, b.tunables.ForceFieldRadius)
	end := navgraph.NearestPoint(b.localMesh, &b.localState, core.TeamNone, dst, geom.Vec3{}, false, geom.Vec3{}, false, b.tunables.ForceFieldRadius)
	if start.IsNone() || end.IsNone() {
		return 1e9
	}
	params := astar.Params{
		Team:        core.TeamNone,
		Allow:       astar.Allow{Crawl: true, Shoot: true},
		FieldRadius: b.tunables.ForceFieldRadius,
		PathCap:     b.tunables.PathCap,
	}
	return audiofield.PathLength(b.localScratch, b.localMesh, &b.localState, start, end, params)
}

// AudioPathfindAsync requests the asynchronous audio-path variant (spec.md
// §4.1 audio_pathfind async form).
func (b *Bridge) AudioPathfindAsync(a, dst, entry, listener geom.Vec3, straightDist float32, target protocol.Handle) uint32 {
	id := b.allocID()
	b.register(id, protocol.CallbackAudioPath, target)
	b.in.Lock()
	protocol.AudioPathfind{
		CallbackID:   id,
		A:            a,
		B:            dst,
		Entry:        entry,
		Listener:     listener,
		StraightDist: straightDist,
		Target:       target,
	}.WriteTo(b.in)
	b.in.Unlock()
	return id
}

// RecordInit/RecordAdd/RecordClose forward the life-telemetry side
// channel (spec.md §4.6).
func (b *Bridge) RecordInit(id uint32, team core.Team, remainingDrones uint8) {
	b.in.Lock()
	protocol.RecordInit{ID: id, Team: team, RemainingDrones: remainingDrones}.WriteTo(b.in)
	b.in.Unlock()
}

func (b *Bridge) RecordAdd(id uint32, tag, action uint16) {
	b.in.Lock()
	protocol.RecordAdd{ID: id, Tag: tag, Action: action}.WriteTo(b.in)
	b.in.Unlock()
}

func (b *Bridge) RecordClose(id uint32) {
	b.in.Lock()
	protocol.RecordClose{ID: id}.WriteTo(b.in)
	b.in.Unlock()
}
