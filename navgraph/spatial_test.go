package navgraph

import (
	"testing"

	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
)

func singleChunkMesh(verts, normals []geom.Vec3, adj []Adjacency) *DroneNavMesh {
	return &DroneNavMesh{
		ChunkSize: 100,
		VMin:      geom.Vec3{X: -50, Y: -50, Z: -50},
		SizeX:     1, SizeY: 1, SizeZ: 1,
		Chunks: []Chunk{{Vertices: verts, Normals: normals, Adjacency: adj}},
	}
}

func TestNearestPointRequiresSignatureMatchWithQueryPoint(t *testing.T) {
	// v0 is geometrically closer to target but outside the enemy field;
	// v1 is farther but shares the field-containing target's signature.
	verts := []geom.Vec3{{X: 0}, {X: 5}}
	normals := []geom.Vec3{{Y: 1}, {Y: 1}}
	adj := []Adjacency{{}, {}}
	mesh := singleChunkMesh(verts, normals, adj)

	state := &GameState{
		ForceFields: []ForceField{{Pos: geom.Vec3{X: 3}, Team: core.TeamB}},
	}
	target := geom.Vec3{X: 1}

	got := NearestPoint(mesh, state, core.TeamA, target, geom.Vec3{}, false, geom.Vec3{}, false, 2.5)
	want := Node{Chunk: 0, Vertex: 1}
	if got != want {
		t.Errorf("expected the signature-matching vertex %v despite being farther, got %v", want, got)
	}
}

func TestNearestPointPrefersMatchingNormalOverCloserSurvivor(t *testing.T) {
	verts := []geom.Vec3{{X: 0}, {X: 0.1}}
	normals := []geom.Vec3{{Y: 1}, {Y: -1}}
	adj := []Adjacency{{}, {}}
	mesh := singleChunkMesh(verts, normals, adj)
	state := &GameState{}

	target := geom.Vec3{X: 0.2}
	queryNormal := geom.Vec3{Y: 1}

	got := NearestPoint(mesh, state, core.TeamA, target, geom.Vec3{}, false, queryNormal, true, 1)
	want := Node{Chunk: 0, Vertex: 0}
	if got != want {
		t.Errorf("expected the normal-preferred vertex %v over the merely-closer one, got %v", want, got)
	}
}

func TestNearestPointFallsBackWhenNoNormalClearsPreference(t *testing.T) {
	verts := []geom.Vec3{{X: 0}, {X: 0.1}}
	normals := []geom.Vec3{{X: 1}, {X: -1}} // neither faces the query normal
	adj := []Adjacency{{}, {}}
	mesh := singleChunkMesh(verts, normals, adj)
	state := &GameState{}

	target := geom.Vec3{X: 0.2}
	queryNormal := geom.Vec3{Y: 1}

	got := NearestPoint(mesh, state, core.TeamA, target, geom.Vec3{}, false, queryNormal, true, 1)
	want := Node{Chunk: 0, Vertex: 1} // the plain closest survivor
	if got != want {
		t.Errorf("expected fallback to the closest survivor %v, got %v", want, got)
	}
}

func TestCanHitFromRequiresShootEdgeAndColinearity(t *testing.T) {
	// vertex 0 at origin, shoot neighbor (1) directly behind the target
	// along the same line, crawl neighbor (2) identically positioned but
	// flagged as a crawl edge.
	verts := []geom.Vec3{{X: 0}, {X: 10}, {X: 10, Y: 1}}
	normals := []geom.Vec3{{Y: 1}, {Y: 1}, {Y: 1}}
	adj := []Adjacency{
		{Neighbors: []Node{{Chunk: 0, Vertex: 1}, {Chunk: 0, Vertex: 2}}, Flags: EdgeFlags(0).setBit(1, true)},
		{}, {},
	}
	mesh := singleChunkMesh(verts, normals, adj)

	target := geom.Vec3{X: 5}
	if dot, ok := CanHitFrom(mesh, Node{Chunk: 0, Vertex: 0}, target, 0.999); !ok || dot <= 0.999 {
		t.Errorf("expected a colinear shoot neighbor to qualify, got dot=%v ok=%v", dot, ok)
	}

	// With the shoot neighbor removed, only the crawl-flagged neighbor
	// remains and must be rejected regardless of alignment.
	adjNoShoot := []Adjacency{
		{Neighbors: []Node{{Chunk: 0, Vertex: 2}}, Flags: EdgeFlags(0).setBit(0, true)},
		{}, {},
	}
	mesh2 := singleChunkMesh(verts, normals, adjNoShoot)
	if _, ok := CanHitFrom(mesh2, Node{Chunk: 0, Vertex: 0}, target, 0.999); ok {
		t.Error("expected a crawl-flagged neighbor to never qualify as a hit line")
	}
}

func TestCanHitFromRejectsTargetBeyondNeighbor(t *testing.T) {
	verts := []geom.Vec3{{X: 0}, {X: 10}}
	normals := []geom.Vec3{{Y: 1}, {Y: 1}}
	adj := []Adjacency{
		{Neighbors: []Node{{Chunk: 0, Vertex: 1}}},
		{},
	}
	mesh := singleChunkMesh(verts, normals, adj)

	// target lies beyond the neighbor, not between vertex and neighbor.
	target := geom.Vec3{X: 20}
	if _, ok := CanHitFrom(mesh, Node{Chunk: 0, Vertex: 0}, target, 0.999); ok {
		t.Error("expected no hit when the target is not between vertex and neighbor")
	}
}
