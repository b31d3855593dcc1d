package protocol

import (
	"testing"

	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

func TestPathfindRoundTrip(t *testing.T) {
	ring := ringbuf.New(4096)
	want := Pathfind{
		CallbackID: 42,
		Team:       core.TeamB,
		A:          geom.Vec3{X: 1, Y: 2, Z: 3},
		B:          geom.Vec3{X: 4, Y: 5, Z: 6},
		Target:     Handle{1, 2, 3, 4, 5, 6, 7, 8},
	}

	ring.Lock()
	want.WriteTo(ring)
	ring.Unlock()

	ring.Lock()
	op := Op(getUint8(ring))
	if op != OpPathfind {
		t.Fatalf("expected OpPathfind, got %d", op)
	}
	got := ReadPathfind(ring)
	ring.Unlock()

	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestUpdateStateRoundTrip(t *testing.T) {
	ring := ringbuf.New(4096)
	want := UpdateState{
		Rectifiers:  []StateEntry{{Pos: geom.Vec3{X: 1}, Team: core.TeamA}},
		ForceFields: []StateEntry{{Pos: geom.Vec3{X: 2}, Team: core.TeamC}, {Pos: geom.Vec3{X: 3}, Team: core.TeamD}},
	}

	ring.Lock()
	want.WriteTo(ring)
	ring.Unlock()

	ring.Lock()
	op := Op(getUint8(ring))
	got := ReadUpdateState(ring)
	ring.Unlock()

	if op != OpUpdateState {
		t.Fatalf("expected OpUpdateState, got %d", op)
	}
	if len(got.Rectifiers) != 1 || len(got.ForceFields) != 2 {
		t.Fatalf("unexpected lengths: %+v", got)
	}
	if got.ForceFields[1].Team != core.TeamD {
		t.Errorf("expected team D, got %v", got.ForceFields[1].Team)
	}
}
