package minionnav

import "github.com/lixenwraith/ai-pathfinder/geom"

// 6-connected grid neighborhood; Detour's funnel algorithm string-pulls
// across polygon portals, which this grid has no analogue for, so
// FindPath returns cell-center waypoints directly (spec.md §4.7: "run
// Detour's A*/funnel" -- the funnel step is Detour-internal and out of
// scope here).
var neighborOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

type heapEntry struct {
	idx  int
	dist int
}

type minHeap []heapEntry

func (h *minHeap) push(e heapEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].dist <= (*h)[i].dist {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].dist < (*h)[left].dist {
			smallest = right
		}
		if (*h)[i].dist <= (*h)[smallest].dist {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FindPath runs a grid Dijkstra from start to end, returning cell-center
// waypoints. ok is false if end is unreachable from start.
func (m *MinionNavMesh) FindPath(start, end PolyRef) ([]geom.Vec3, bool) {
	if start == 0 || end == 0 {
		return nil, false
	}
	n := len(m.blocked)
	const unreachable = 1<<31 - 1
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = unreachable
		prev[i] = -1
	}

	startIdx := idxOf(start)
	endIdx := idxOf(end)
	dist[startIdx] = 0

	var h minHeap
	h.push(heapEntry{idx: startIdx, dist: 0})

	sx, sy := m.SizeX, m.SizeY

	for len(h) > 0 {
		cur := h.pop()
		if cur.dist > dist[cur.idx] {
			continue
		}
		if cur.idx == endIdx {
			break
		}
		cx := cur.idx % sx
		cy := (cur.idx / sx) % sy
		cz := cur.idx / (sx * sy)

		for _, off := range neighborOffsets {
			nx, ny, nz := cx+off[0], cy+off[1], cz+off[2]
			if !m.inBounds(nx, ny, nz) {
				continue
			}
			nidx := m.index(nx, ny, nz)
			if m.blocked[nidx] {
				continue
			}
			nd := cur.dist + 10
			if nd < dist[nidx] {
				dist[nidx] = nd
				prev[nidx] = cur.idx
				h.push(heapEntry{idx: nidx, dist: nd})
			}
		}
	}

	if dist[endIdx] == unreachable {
		return nil, false
	}

	var cells []int
	for at := endIdx; at != -1; at = prev[at] {
		cells = append(cells, at)
		if at == startIdx {
			break
		}
	}

	pts := make([]geom.Vec3, len(cells))
	for i, idx := range cells {
		x := idx % sx
		y := (idx / sx) % sy
		z := idx / (sx * sy)
		pts[len(cells)-1-i] = m.cellCenter(x, y, z)
	}
	return pts, true
}
