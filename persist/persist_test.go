package persist

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

func tinyMesh() *navgraph.DroneNavMesh {
	mesh := &navgraph.DroneNavMesh{
		ChunkSize: 4,
		VMin:      geom.Vec3{X: -2, Y: -2, Z: -2},
		SizeX:     1, SizeY: 1, SizeZ: 1,
		Chunks: []navgraph.Chunk{
			{
				Vertices: []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
				Normals:  []geom.Vec3{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
				Adjacency: []navgraph.Adjacency{
					{Neighbors: []navgraph.Node{{Chunk: 0, Vertex: 1}}, Flags: 0},
					{Neighbors: []navgraph.Node{{Chunk: 0, Vertex: 0}}, Flags: 1},
				},
			},
		},
	}
	return mesh
}

func TestDroneGraphRoundTrip(t *testing.T) {
	mesh := tinyMesh()

	var buf bytes.Buffer
	if err := SaveDroneGraph(&buf, mesh); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadDroneGraph(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.ChunkSize != mesh.ChunkSize || got.SizeX != mesh.SizeX {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Chunks) != 1 || len(got.Chunks[0].Vertices) != 2 {
		t.Fatalf("unexpected chunk shape: %+v", got.Chunks)
	}
	if !got.Chunks[0].Adjacency[0].Neighbors[0].Equal(navgraph.Node{Chunk: 0, Vertex: 1}) {
		t.Errorf("adjacency mismatch: %+v", got.Chunks[0].Adjacency[0])
	}
	if got.Chunks[0].Adjacency[1].Flags.IsCrawl(0) != true {
		t.Errorf("expected crawl flag on vertex 1's sole neighbor")
	}
}

func TestTileCacheRoundTrip(t *testing.T) {
	tc := &TileCache{
		TileMin: geom.Vec3{X: 1, Y: 2, Z: 3},
		Width:   2,
		Height:  1,
		Cells: [][]TileLayer{
			{{Data: []byte("layer-a-data")}},
			{{Data: []byte("layer-b-data")}, {Data: []byte("second layer")}},
		},
	}

	var buf bytes.Buffer
	if err := SaveTileCache(&buf, tc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadTileCache(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Width != 2 || got.Height != 1 {
		t.Fatalf("dimension mismatch: %+v", got)
	}
	if len(got.Cells[1]) != 2 {
		t.Fatalf("expected 2 layers in cell 1, got %d", len(got.Cells[1]))
	}
	if string(got.Cells[0][0].Data) != "layer-a-data" {
		t.Errorf("layer data mismatch: %q", got.Cells[0][0].Data)
	}
	if string(got.Cells[1][1].Data) != "second layer" {
		t.Errorf("layer data mismatch: %q", got.Cells[1][1].Data)
	}
}
