package protocol

import (
	"encoding/binary"
	"math"

	"github.com/lixenwraith/ai-pathfinder/core"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/ringbuf"
)

// PathBufLen bounds on-wire level/record path strings. Every op carries a
// fixed-shape payload (spec.md §4.2: "No length prefix"); a path field is
// a fixed PathBufLen-byte buffer, nul-padded, rather than a length-
// prefixed string.
const PathBufLen = 256

func putFloat32(ring *ringbuf.Ring, f float32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(f))
	ring.Write(b[:])
}

func getFloat32(ring *ringbuf.Ring) float32 {
	var b [4]byte
	ring.Read(b[:])
	return math.Float32frombits(binary.BigEndian.Uint32(b[:]))
}

func putUint32(ring *ringbuf.Ring, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	ring.Write(b[:])
}

func getUint32(ring *ringbuf.Ring) uint32 {
	var b [4]byte
	ring.Read(b[:])
	return binary.BigEndian.Uint32(b[:])
}

func putUint16(ring *ringbuf.Ring, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	ring.Write(b[:])
}

func getUint16(ring *ringbuf.Ring) uint16 {
	var b [2]byte
	ring.Read(b[:])
	return binary.BigEndian.Uint16(b[:])
}

func putUint8(ring *ringbuf.Ring, v uint8) {
	ring.Write([]byte{v})
}

func getUint8(ring *ringbuf.Ring) uint8 {
	var b [1]byte
	ring.Read(b[:])
	return b[0]
}

func putTeam(ring *ringbuf.Ring, t core.Team) {
	putUint8(ring, uint8(int8(t)))
}

func getTeam(ring *ringbuf.Ring) core.Team {
	return core.Team(int8(getUint8(ring)))
}

func putVec3(ring *ringbuf.Ring, v geom.Vec3) {
	putFloat32(ring, v.X)
	putFloat32(ring, v.Y)
	putFloat32(ring, v.Z)
}

func getVec3(ring *ringbuf.Ring) geom.Vec3 {
	return geom.Vec3{X: getFloat32(ring), Y: getFloat32(ring), Z: getFloat32(ring)}
}

// putPath writes a fixed PathBufLen-byte nul-padded buffer.
func putPath(ring *ringbuf.Ring, path string) {
	buf := make([]byte, PathBufLen)
	copy(buf, path)
	ring.Write(buf)
}

func getPath(ring *ringbuf.Ring) string {
	buf := make([]byte, PathBufLen)
	ring.Read(buf)
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

// Handle is the opaque caller-supplied target the core never interprets
// (spec.md §3 "Outstanding callback": "the core treats it as opaque
// bytes"), carried as a fixed 8-byte slot.
type Handle [8]byte

func putHandle(ring *ringbuf.Ring, h Handle) {
	ring.Write(h[:])
}

func getHandle(ring *ringbuf.Ring) Handle {
	var h Handle
	ring.Read(h[:])
	return h
}
