package navgraph

import "github.com/lixenwraith/ai-pathfinder/geom"

// EdgeFlags is the per-vertex neighbor flag bitset: bit k is 1 iff the edge
// to Neighbors[k] is a crawl edge (co-planar / around-a-corner), 0 iff a
// shoot edge (free-space line). Stored as u64 to match the on-disk layout
// (spec.md §6), though at most MaxNeighbors=8 bits are ever meaningful.
type EdgeFlags uint64

// IsCrawl reports whether the edge at slot i is a crawl edge.
func (f EdgeFlags) IsCrawl(i int) bool {
	return f&(1<<uint(i)) != 0
}

func (f EdgeFlags) setBit(i int, crawl bool) EdgeFlags {
	mask := EdgeFlags(1) << uint(i)
	if crawl {
		return f | mask
	}
	return f &^ mask
}

// Adjacency is one vertex's neighbor list plus per-neighbor edge flags.
type Adjacency struct {
	Neighbors []Node // bounded, cap <= MaxNeighbors
	Flags     EdgeFlags
}

// Chunk is one cubic cell of the drone graph's uniform grid: an ordered
// vertex list, parallel normals, and one adjacency record per vertex.
//
// Invariant: len(Vertices) == len(Normals) == len(Adjacency); every
// neighbor reference names an existing node.
type Chunk struct {
	Vertices  []geom.Vec3
	Normals   []geom.Vec3
	Adjacency []Adjacency
}

// MarkAdjacencyBad removes the one-directional edge from vertex at index
// fromVertex to node b, swapping b out with the list's last entry and
// truncating (spec.md §4.3). Copying the last flag bit into slot i
// preserves the flag-to-neighbor correspondence across the swap. A no-op
// (idempotent) if b is not currently a neighbor -- spec.md §8: "marking
// (a,b) bad twice is indistinguishable from once."
func (c *Chunk) MarkAdjacencyBad(fromVertex int, b Node) {
	adj := &c.Adjacency[fromVertex]
	for i, n := range adj.Neighbors {
		if !n.Equal(b) {
			continue
		}
		last := len(adj.Neighbors) - 1
		if i != last {
			adj.Neighbors[i] = adj.Neighbors[last]
			if adj.Flags.IsCrawl(last) {
				adj.Flags = adj.Flags.setBit(i, true)
			} else {
				adj.Flags = adj.Flags.setBit(i, false)
			}
		}
		adj.Flags = adj.Flags.setBit(last, false) // clear vacated high slot
		adj.Neighbors = adj.Neighbors[:last]
		return
	}
}
