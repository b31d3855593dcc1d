package navgraph

// MaxNeighbors bounds the per-vertex adjacency list (spec.md §3: "cap <= 8").
const MaxNeighbors = 8

// Node identifies a vertex in a DroneNavMesh by (chunk, vertex) index pair.
// The zero value is NOT the "no node" sentinel -- use NoNode / Node.IsNone.
type Node struct {
	Chunk  int16
	Vertex int16
}

// NoNode is the sentinel meaning "no node" (spec.md §3: "-1, -1").
var NoNode = Node{Chunk: -1, Vertex: -1}

// Equal reports field-wise equality (spec.md §3: "Node equality is field-wise").
func (n Node) Equal(o Node) bool {
	return n.Chunk == o.Chunk && n.Vertex == o.Vertex
}

// IsNone reports whether n is the sentinel "no node" value.
func (n Node) IsNone() bool {
	return n.Equal(NoNode)
}
