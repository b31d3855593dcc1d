package navgraph

import "github.com/lixenwraith/ai-pathfinder/geom"

// DroneNavMesh is the chunked vertex graph spanning arbitrary surfaces that
// drones crawl and shoot across. Immutable after load except for per-edge
// deletion (MarkAdjacencyBad) applied to an individual chunk.
type DroneNavMesh struct {
	ChunkSize float32
	VMin      geom.Vec3
	SizeX     int16
	SizeY     int16
	SizeZ     int16
	Chunks    []Chunk
}

// ChunkIndex converts a chunk-grid coordinate to a flat chunk slice index,
// matching spec.md §3: chunk_index(x,y,z) = x + sx*(y + sy*z).
func (m *DroneNavMesh) ChunkIndex(x, y, z int) int {
	return x + int(m.SizeX)*(y+int(m.SizeY)*z)
}

// ChunkCoord returns the (clamped) chunk-grid coordinate containing p.
func (m *DroneNavMesh) ChunkCoord(p geom.Vec3) (x, y, z int) {
	rel := p.Sub(m.VMin)
	x = clampInt(int(rel.X/m.ChunkSize), 0, int(m.SizeX)-1)
	y = clampInt(int(rel.Y/m.ChunkSize), 0, int(m.SizeY)-1)
	z = clampInt(int(rel.Z/m.ChunkSize), 0, int(m.SizeZ)-1)
	return
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// VertexCount returns the total vertex count across all chunks -- the size
// the A* scratch table must be resized to on Load (spec.md §4.7, §8).
func (m *DroneNavMesh) VertexCount() int {
	total := 0
	for i := range m.Chunks {
		total += len(m.Chunks[i].Vertices)
	}
	return total
}

// Position returns the world position of node n.
func (m *DroneNavMesh) Position(n Node) geom.Vec3 {
	return m.Chunks[n.Chunk].Vertices[n.Vertex]
}

// Normal returns the surface normal at node n.
func (m *DroneNavMesh) Normal(n Node) geom.Vec3 {
	return m.Chunks[n.Chunk].Normals[n.Vertex]
}

// AdjacencyOf returns the adjacency record for node n.
func (m *DroneNavMesh) AdjacencyOf(n Node) *Adjacency {
	return &m.Chunks[n.Chunk].Adjacency[n.Vertex]
}

// MarkAdjacencyBad removes the one-directional edge a->b. Irreversible for
// the session (spec.md §4.3).
func (m *DroneNavMesh) MarkAdjacencyBad(a, b Node) {
	m.Chunks[a.Chunk].MarkAdjacencyBad(int(a.Vertex), b)
}
