package minionnav

import "github.com/lixenwraith/ai-pathfinder/geom"

// AddObstacle marks every cell within radius (and height along Y) of pos
// as blocked, standing in for Detour's tile-cache obstacle add + affected-
// tile recompile (spec.md §4.7 ObstacleAdd).
func (m *MinionNavMesh) AddObstacle(id uint32, pos geom.Vec3, radius, height float32) {
	cx, cy, cz := m.cellCoord(pos)
	rCells := int(radius/m.CellSize) + 1
	hCells := int(height/m.CellSize) + 1

	var cells []int
	r2 := radius * radius
	for dz := -rCells; dz <= rCells; dz++ {
		z := cz + dz
		if z < 0 || z >= m.SizeZ {
			continue
		}
		for dy := 0; dy <= hCells; dy++ {
			y := cy + dy
			if y < 0 || y >= m.SizeY {
				continue
			}
			for dx := -rCells; dx <= rCells; dx++ {
				x := cx + dx
				if x < 0 || x >= m.SizeX {
					continue
				}
				center := m.cellCenter(x, y, z)
				flat := geom.Vec3{X: center.X - pos.X, Z: center.Z - pos.Z}
				if flat.X*flat.X+flat.Z*flat.Z > r2 {
					continue
				}
				idx := m.index(x, y, z)
				if !m.blocked[idx] {
					m.blocked[idx] = true
					cells = append(cells, idx)
				}
			}
		}
	}
	m.obs[id] = obstacleFootprint{cells: cells}
}

// RemoveObstacle clears the cells a prior AddObstacle(id, ...) blocked
// (spec.md §4.7 ObstacleRemove). No-op if id is unknown.
func (m *MinionNavMesh) RemoveObstacle(id uint32) {
	fp, ok := m.obs[id]
	if !ok {
		return
	}
	for _, idx := range fp.cells {
		m.blocked[idx] = false
	}
	delete(m.obs, id)
}
