package bridge

import (
	"testing"

	"github.com/lixenwraith/ai-pathfinder/config"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/protocol"
)

func testTunables() config.Tunables {
	t := config.Default()
	t.ObstacleCapacity = 2
	return t
}

func TestObstacleAddExhaustionAndReuse(t *testing.T) {
	b := New(testTunables())

	id0 := b.ObstacleAdd(geom.Vec3{X: 1}, 1, 1)
	id1 := b.ObstacleAdd(geom.Vec3{X: 2}, 1, 1)
	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected ids 0,1, got %d,%d", id0, id1)
	}

	full := b.ObstacleAdd(geom.Vec3{X: 3}, 1, 1)
	if full != uint32(len(b.obstacleUsed)) {
		t.Fatalf("expected capacity sentinel %d when full, got %d", len(b.obstacleUsed), full)
	}

	b.ObstacleRemove(id0)
	reused := b.ObstacleAdd(geom.Vec3{X: 4}, 1, 1)
	if reused != id0 {
		t.Fatalf("expected freed id %d to be reused, got %d", id0, reused)
	}
}

func TestDrainOutboundDiscardsStaleRevision(t *testing.T) {
	b := New(config.Default())
	b.revision = 5

	staleID := b.allocID()
	b.register(staleID, protocol.CallbackPath, protocol.Handle{9})
	b.outstanding[staleID] = Outstanding{Kind: protocol.CallbackPath, Target: protocol.Handle{9}, LevelRevision: 3}

	b.out.Lock()
	protocol.PathResult{CallbackID: staleID, LevelRevision: 3, Target: protocol.Handle{9}}.WriteTo(b.out)
	b.out.Unlock()

	results := b.drainOutbound()
	if len(results) != 0 {
		t.Fatalf("expected stale result to be discarded, got %+v", results)
	}
	if _, ok := b.outstanding[staleID]; ok {
		t.Fatal("expected stale outstanding entry to be removed regardless of discard")
	}
}

func TestDrainOutboundDeliversMatchingRevision(t *testing.T) {
	b := New(config.Default())
	freshID := b.allocID()
	b.register(freshID, protocol.CallbackPath, protocol.Handle{1})

	b.out.Lock()
	protocol.PathResult{CallbackID: freshID, LevelRevision: b.revision, Target: protocol.Handle{1}}.WriteTo(b.out)
	b.out.Unlock()

	results := b.drainOutbound()
	if len(results) != 1 {
		t.Fatalf("expected one delivered result, got %d", len(results))
	}
	if results[0].Target != (protocol.Handle{1}) {
		t.Errorf("unexpected target: %+v", results[0].Target)
	}
}

func TestDrainOutboundAlwaysSurfacesLoad(t *testing.T) {
	b := New(config.Default())

	b.out.Lock()
	protocol.LoadResult{LevelRevision: 7}.WriteTo(b.out)
	b.out.Unlock()

	results := b.drainOutbound()
	if len(results) != 1 || results[0].Kind != protocol.CallbackLoad {
		t.Fatalf("expected a Load callback, got %+v", results)
	}
}
