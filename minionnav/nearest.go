package minionnav

import "github.com/lixenwraith/ai-pathfinder/geom"

// SearchExtent is the fixed Detour query extent spec.md §4.7 names for
// every walker snap (Pathfind/RandomPath/ClosestWalkPoint): "(15, 10,
// 15)".
var SearchExtent = geom.Vec3{X: 15, Y: 10, Z: 15}

// FindNearestPoly snaps p to the nearest walkable cell within extent,
// preferring the cell directly containing p. Returns ok=false if no
// walkable cell lies within extent.
func (m *MinionNavMesh) FindNearestPoly(p geom.Vec3, extent geom.Vec3) (PolyRef, geom.Vec3, bool) {
	cx, cy, cz := m.cellCoord(p)
	rx := int(extent.X/m.CellSize) + 1
	ry := int(extent.Y/m.CellSize) + 1
	rz := int(extent.Z/m.CellSize) + 1

	best := PolyRef(0)
	bestPos := geom.Vec3{}
	bestDist := float32(0)
	found := false

	for dz := -rz; dz <= rz; dz++ {
		z := cz + dz
		if z < 0 || z >= m.SizeZ {
			continue
		}
		for dy := -ry; dy <= ry; dy++ {
			y := cy + dy
			if y < 0 || y >= m.SizeY {
				continue
			}
			for dx := -rx; dx <= rx; dx++ {
				x := cx + dx
				if x < 0 || x >= m.SizeX {
					continue
				}
				idx := m.index(x, y, z)
				if m.blocked[idx] {
					continue
				}
				center := m.cellCenter(x, y, z)
				d := center.DistanceSquared(p)
				if !found || d < bestDist {
					found = true
					bestDist = d
					best = refOf(idx)
					bestPos = center
				}
			}
		}
	}

	return best, bestPos, found
}
