// Package persist implements the binary load/save format for the drone
// graph and the minion tile-cache blob, each in its own file (spec.md §6),
// grounded on
// the teacher's genetic/persistence/manager.go save/load convention
// (base path, per-key file), adapted from TOML DTOs to raw
// encoding/binary framing since spec.md's file format is a fixed binary
// layout rather than a structured document.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

func writeVec3(w io.Writer, v geom.Vec3) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Z))
	_, err := w.Write(buf[:])
	return err
}

func readVec3(r io.Reader) (geom.Vec3, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return geom.Vec3{}, err
	}
	return geom.Vec3{
		X: math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

// SaveDroneGraph writes mesh to w in the spec.md §6 little-endian layout:
// chunk_size, vmin, (sx,sy,sz), then each chunk's vertex/normal/adjacency
// arrays in row-major chunk order.
func SaveDroneGraph(w io.Writer, mesh *navgraph.DroneNavMesh) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, mesh.ChunkSize); err != nil {
		return err
	}
	if err := writeVec3(bw, mesh.VMin); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, [3]int16{mesh.SizeX, mesh.SizeY, mesh.SizeZ}); err != nil {
		return err
	}

	for ci := range mesh.Chunks {
		c := &mesh.Chunks[ci]
		n := int32(len(c.Vertices))
		if err := binary.Write(bw, binary.LittleEndian, n); err != nil {
			return err
		}
		for _, v := range c.Vertices {
			if err := writeVec3(bw, v); err != nil {
				return err
			}
		}
		for _, v := range c.Normals {
			if err := writeVec3(bw, v); err != nil {
				return err
			}
		}
		for _, adj := range c.Adjacency {
			if err := binary.Write(bw, binary.LittleEndian, uint16(len(adj.Neighbors))); err != nil {
				return err
			}
			var neighbors [navgraph.MaxNeighbors]navgraph.Node
			copy(neighbors[:], adj.Neighbors)
			if err := binary.Write(bw, binary.LittleEndian, neighbors); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, uint64(adj.Flags)); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// LoadDroneGraph reads a mesh written by SaveDroneGraph.
func LoadDroneGraph(r io.Reader) (*navgraph.DroneNavMesh, error) {
	mesh := &navgraph.DroneNavMesh{}

	if err := binary.Read(r, binary.LittleEndian, &mesh.ChunkSize); err != nil {
		return nil, err
	}
	vmin, err := readVec3(r)
	if err != nil {
		return nil, err
	}
	mesh.VMin = vmin

	var size [3]int16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	mesh.SizeX, mesh.SizeY, mesh.SizeZ = size[0], size[1], size[2]

	chunkCount := int(mesh.SizeX) * int(mesh.SizeY) * int(mesh.SizeZ)
	mesh.Chunks = make([]navgraph.Chunk, chunkCount)

	for ci := range mesh.Chunks {
		var count int32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("persist: negative vertex count in chunk %d", ci)
		}

		c := &mesh.Chunks[ci]
		c.Vertices = make([]geom.Vec3, count)
		for i := range c.Vertices {
			v, err := readVec3(r)
			if err != nil {
				return nil, err
			}
			c.Vertices[i] = v
		}
		c.Normals = make([]geom.Vec3, count)
		for i := range c.Normals {
			v, err := readVec3(r)
			if err != nil {
				return nil, err
			}
			c.Normals[i] = v
		}
		c.Adjacency = make([]navgraph.Adjacency, count)
		for i := range c.Adjacency {
			var neighborsLen uint16
			if err := binary.Read(r, binary.LittleEndian, &neighborsLen); err != nil {
				return nil, err
			}
			var neighbors [navgraph.MaxNeighbors]navgraph.Node
			if err := binary.Read(r, binary.LittleEndian, &neighbors); err != nil {
				return nil, err
			}
			var flags uint64
			if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
				return nil, err
			}
			if int(neighborsLen) > navgraph.MaxNeighbors {
				return nil, fmt.Errorf("persist: chunk %d vertex %d neighbor count %d exceeds cap", ci, i, neighborsLen)
			}
			c.Adjacency[i] = navgraph.Adjacency{
				Neighbors: append([]navgraph.Node(nil), neighbors[:neighborsLen]...),
				Flags:     navgraph.EdgeFlags(flags),
			}
		}
	}

	return mesh, nil
}

// LoadDroneGraphFile opens path and loads a drone graph from it.
func LoadDroneGraphFile(path string) (*navgraph.DroneNavMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDroneGraph(bufio.NewReader(f))
}

// SaveDroneGraphFile writes mesh to path, truncating any existing file.
func SaveDroneGraphFile(path string, mesh *navgraph.DroneNavMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SaveDroneGraph(f, mesh)
}
