// Package minionnav is a minimal pure-Go grid navmesh standing in for the
// Detour/Recast walker navmesh spec.md §6 treats as an external
// collaborator this module never reimplements. No Go binding for
// Recast/Detour exists in the retrieved corpus, and fabricating one is
// off the table, so this package implements the same call contract
// (nearest-poly snap, path query, obstacle add/remove) over a uniform
// voxel grid with a hand-rolled Dijkstra search, grounded on the
// teacher's navigation/flowfield.go grid/heap style.
package minionnav

import "github.com/lixenwraith/ai-pathfinder/geom"

// PolyRef is the opaque walker-navmesh cell handle, standing in for
// Detour's dtPolyRef. Zero is the "no poly" sentinel.
type PolyRef uint32

// MinionNavMesh is a uniform 3-D voxel grid: a cell is walkable unless
// obstructed by an obstacle footprint.
type MinionNavMesh struct {
	VMin     geom.Vec3
	CellSize float32
	SizeX    int
	SizeY    int
	SizeZ    int
	blocked  []bool
	obs      map[uint32]obstacleFootprint
}

type obstacleFootprint struct {
	cells []int
}

// New allocates an all-walkable grid spanning vmin..vmin+size*cellSize.
func New(vmin geom.Vec3, sizeX, sizeY, sizeZ int, cellSize float32) *MinionNavMesh {
	return &MinionNavMesh{
		VMin:     vmin,
		CellSize: cellSize,
		SizeX:    sizeX,
		SizeY:    sizeY,
		SizeZ:    sizeZ,
		blocked:  make([]bool, sizeX*sizeY*sizeZ),
		obs:      make(map[uint32]obstacleFootprint),
	}
}

func (m *MinionNavMesh) index(x, y, z int) int {
	return x + m.SizeX*(y+m.SizeY*z)
}

func (m *MinionNavMesh) inBounds(x, y, z int) bool {
	return x >= 0 && x < m.SizeX && y >= 0 && y < m.SizeY && z >= 0 && z < m.SizeZ
}

func (m *MinionNavMesh) cellCoord(p geom.Vec3) (x, y, z int) {
	rel := p.Sub(m.VMin)
	x = int(rel.X / m.CellSize)
	y = int(rel.Y / m.CellSize)
	z = int(rel.Z / m.CellSize)
	return
}

func (m *MinionNavMesh) cellCenter(x, y, z int) geom.Vec3 {
	return geom.Vec3{
		X: m.VMin.X + (float32(x)+0.5)*m.CellSize,
		Y: m.VMin.Y + (float32(y)+0.5)*m.CellSize,
		Z: m.VMin.Z + (float32(z)+0.5)*m.CellSize,
	}
}

func refOf(idx int) PolyRef {
	return PolyRef(idx + 1)
}

func idxOf(ref PolyRef) int {
	return int(ref) - 1
}
