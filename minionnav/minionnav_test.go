package minionnav

import (
	"testing"

	"github.com/lixenwraith/ai-pathfinder/geom"
)

func TestFindNearestPolyAndPath(t *testing.T) {
	m := New(geom.Vec3{}, 10, 1, 10, 1.0)

	start, startPos, ok := m.FindNearestPoly(geom.Vec3{X: 0.4, Y: 0.4, Z: 0.4}, SearchExtent)
	if !ok {
		t.Fatal("expected a nearest poly at origin")
	}
	end, _, ok := m.FindNearestPoly(geom.Vec3{X: 9.4, Y: 0.4, Z: 9.4}, SearchExtent)
	if !ok {
		t.Fatal("expected a nearest poly at far corner")
	}

	path, ok := m.FindPath(start, end)
	if !ok {
		t.Fatal("expected a path across an open grid")
	}
	if len(path) < 2 {
		t.Fatalf("expected a multi-point path, got %d points", len(path))
	}
	if path[0].DistanceSquared(startPos) > 0.01 {
		t.Errorf("expected path to start near snap point, got %+v vs %+v", path[0], startPos)
	}
}

func TestObstacleBlocksPath(t *testing.T) {
	m := New(geom.Vec3{}, 5, 1, 1, 1.0)
	m.AddObstacle(1, geom.Vec3{X: 2.5, Y: 0.5, Z: 0.5}, 0.6, 1)

	start, _, _ := m.FindNearestPoly(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, SearchExtent)
	end, _, _ := m.FindNearestPoly(geom.Vec3{X: 4.5, Y: 0.5, Z: 0.5}, SearchExtent)

	if _, ok := m.FindPath(start, end); ok {
		t.Fatal("expected obstacle to block the only row")
	}

	m.RemoveObstacle(1)
	if _, ok := m.FindPath(start, end); !ok {
		t.Error("expected path to reopen after obstacle removal")
	}
}
