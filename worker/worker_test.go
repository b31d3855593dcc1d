package worker

import (
	"testing"
	"time"

	"github.com/lixenwraith/ai-pathfinder/config"
	"github.com/lixenwraith/ai-pathfinder/protocol"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

func TestHandleLoadMissingFilesStillBumpsRevisionAndEmits(t *testing.T) {
	out := ringbuf.New(4096)
	w := New(ringbuf.New(4096), out, config.Default())

	w.handleLoad(protocol.Load{LevelID: 1, LevelPath: "/nonexistent/level", RecordPath: ""})

	if w.mesh != nil || w.scratch != nil || w.minion != nil {
		t.Fatal("expected nil graph/scratch/minion when load files are missing")
	}

	out.Lock()
	if !out.CanRead() {
		t.Fatal("expected a LoadResult to have been emitted")
	}
	op := protocol.ReadCallback(out)
	got := protocol.ReadLoadResult(out)
	out.Unlock()

	if op != protocol.CallbackLoad {
		t.Fatalf("expected CallbackLoad, got %d", op)
	}
	if got.LevelRevision != 1 {
		t.Fatalf("expected level_revision to bump to 1 from zero, got %d", got.LevelRevision)
	}
}

func TestDispatchLoopQuitsOnQuitMessage(t *testing.T) {
	in := ringbuf.New(4096)
	out := ringbuf.New(4096)
	w := New(in, out, config.Default())
	w.Start()

	in.Lock()
	protocol.Quit{}.WriteTo(in)
	in.Unlock()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not terminate after Quit")
	}
}

func TestHandleDronePathfindNoGraphYieldsEmptyPath(t *testing.T) {
	out := ringbuf.New(4096)
	w := New(ringbuf.New(4096), out, config.Default())

	w.handleDronePathfind(protocol.DronePathfind{
		CallbackID: 1,
		Type:       protocol.DroneQueryTarget,
	})

	out.Lock()
	op := protocol.ReadCallback(out)
	got := protocol.ReadDronePathResult(out)
	out.Unlock()

	if op != protocol.CallbackDronePath {
		t.Fatalf("expected CallbackDronePath, got %d", op)
	}
	if got.Points != nil {
		t.Fatalf("expected nil path with no loaded graph, got %+v", got.Points)
	}
}
