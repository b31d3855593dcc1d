package persist

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lixenwraith/ai-pathfinder/geom"
)

// TileCacheFormatVersion tags the compressed-layer codec. The original
// format compresses each layer with FastLZ; no FastLZ implementation (or
// other compression library) appears anywhere in the retrieved corpus, so
// this substitutes the standard library's own DEFLATE (compress/flate).
// The constant names the codec in use; it is not written into the blob,
// and LoadTileCache does not check it.
const TileCacheFormatVersion = 1

// TileCache is the minion walker navmesh's tile blob (spec.md §6). It is
// stored in its own file (the worker loads levelPath + ".tilecache"), not
// as a prefix of the drone graph file. The worker uses only TileMin,
// Width and Height, to size its minionnav grid; the layer bytes are
// round-tripped by this package but not interpreted anywhere.
type TileCache struct {
	TileMin geom.Vec3
	Width   int32
	Height  int32
	Cells   [][]TileLayer // len == Width*Height
}

// TileLayer is one compressed layer of one cell.
type TileLayer struct {
	Data []byte // decompressed tile data
}

// SaveTileCache writes tc in the spec.md §6 layout, DEFLATE-compressing
// each layer's data (FastLZ substitution, see TileCacheFormatVersion).
func SaveTileCache(w io.Writer, tc *TileCache) error {
	if err := writeVec3(w, tc.TileMin); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, tc.Width); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, tc.Height); err != nil {
		return err
	}

	expected := int(tc.Width) * int(tc.Height)
	if len(tc.Cells) != expected {
		return fmt.Errorf("persist: tile cache has %d cells, want %d (width*height)", len(tc.Cells), expected)
	}

	for _, layers := range tc.Cells {
		if err := binary.Write(w, binary.LittleEndian, int32(len(layers))); err != nil {
			return err
		}
		for _, layer := range layers {
			compressed, err := deflateBytes(layer.Data)
			if err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, int32(len(compressed))); err != nil {
				return err
			}
			if _, err := w.Write(compressed); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadTileCache reads a blob written by SaveTileCache.
func LoadTileCache(r io.Reader) (*TileCache, error) {
	tc := &TileCache{}

	tileMin, err := readVec3(r)
	if err != nil {
		return nil, err
	}
	tc.TileMin = tileMin

	if err := binary.Read(r, binary.LittleEndian, &tc.Width); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &tc.Height); err != nil {
		return nil, err
	}
	if tc.Width < 0 || tc.Height < 0 {
		return nil, fmt.Errorf("persist: negative tile cache dimensions")
	}

	cellCount := int(tc.Width) * int(tc.Height)
	tc.Cells = make([][]TileLayer, cellCount)

	for ci := 0; ci < cellCount; ci++ {
		var layerCount int32
		if err := binary.Read(r, binary.LittleEndian, &layerCount); err != nil {
			return nil, err
		}
		if layerCount < 0 {
			return nil, fmt.Errorf("persist: negative layer count in cell %d", ci)
		}
		layers := make([]TileLayer, layerCount)
		for li := range layers {
			var dataSize int32
			if err := binary.Read(r, binary.LittleEndian, &dataSize); err != nil {
				return nil, err
			}
			if dataSize < 0 {
				return nil, fmt.Errorf("persist: negative layer data size in cell %d layer %d", ci, li)
			}
			compressed := make([]byte, dataSize)
			if _, err := io.ReadFull(r, compressed); err != nil {
				return nil, err
			}
			data, err := inflateBytes(compressed)
			if err != nil {
				return nil, err
			}
			layers[li] = TileLayer{Data: data}
		}
		tc.Cells[ci] = layers
	}

	return tc, nil
}

func deflateBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflateBytes(compressed []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	return io.ReadAll(fr)
}
