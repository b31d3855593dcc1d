// Package astar implements the drone graph's A* search: a reusable
// per-vertex scratch table, a hand-rolled binary min-heap, and a generic
// engine parameterized by a Scorer strategy (spec.md §4.4).
package astar

import (
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

// Flags is the per-vertex scratch bitset (spec.md §3 AstarNodeData.flags).
type Flags uint8

const (
	Visited Flags = 1 << iota
	InQueue
	CrawledFromParent
)

// NodeData is one vertex's scratch-table entry. Total priority for the heap
// is TravelScore + EstimateScore + SensorScore (spec.md §3).
type NodeData struct {
	TravelScore   float32
	EstimateScore float32
	SensorScore   float32
	Parent        navgraph.Node
	Flags         Flags
	heapIndex     int // -1 when not in the heap
}

func (d *NodeData) priority() float32 {
	return d.TravelScore + d.EstimateScore + d.SensorScore
}

// Scratch is the per-vertex working set for one DroneNavMesh, sized once on
// Load and Reset (not reallocated) between queries (spec.md §9 "Scratch +
// heap reuse"). Index i of Data corresponds to the i-th vertex in mesh
// traversal order (chunk by chunk, vertex by vertex) as built by Resize.
type Scratch struct {
	mesh  *navgraph.DroneNavMesh
	index map[navgraph.Node]int
	nodes []navgraph.Node
	Data  []NodeData
	queue Queue
}

// NewScratch builds a scratch table sized to mesh's total vertex count.
func NewScratch(mesh *navgraph.DroneNavMesh) *Scratch {
	s := &Scratch{mesh: mesh}
	s.Resize(mesh)
	return s
}

// Resize rebuilds the vertex index and reallocates Data for a newly loaded
// mesh (spec.md §4.7 Load: "Resize scratch to total vertex count").
func (s *Scratch) Resize(mesh *navgraph.DroneNavMesh) {
	s.mesh = mesh
	total := mesh.VertexCount()
	s.index = make(map[navgraph.Node]int, total)
	s.nodes = make([]navgraph.Node, 0, total)
	for ci := range mesh.Chunks {
		for vi := range mesh.Chunks[ci].Vertices {
			n := navgraph.Node{Chunk: int16(ci), Vertex: int16(vi)}
			s.index[n] = len(s.nodes)
			s.nodes = append(s.nodes, n)
		}
	}
	s.Data = make([]NodeData, total)
	s.queue.items = make([]int, 0, total)
	s.queue.bind(s.Data)
}

// Reset zeroes every vertex's scratch entry at the start of a run (spec.md
// §4.4 step 1), without reallocating the backing slice.
func (s *Scratch) Reset() {
	for i := range s.Data {
		s.Data[i] = NodeData{heapIndex: -1}
	}
	s.queue.items = s.queue.items[:0]
}

// At returns the scratch entry for n.
func (s *Scratch) At(n navgraph.Node) *NodeData {
	return &s.Data[s.index[n]]
}

// Position is a convenience forward to the owning mesh.
func (s *Scratch) Position(n navgraph.Node) geom.Vec3 {
	return s.mesh.Position(n)
}
