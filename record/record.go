// Package record implements the per-life telemetry side channel (spec.md
// §4.6): tag/action pairs accumulated in memory per life id and appended
// to a per-level file on close. Records never feed back into pathfinding
// decisions -- this is purely observational. Grounded on the teacher's
// genetic/persistence/manager.go save-with-version-check-and-truncate-on-
// mismatch convention.
package record

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/lixenwraith/ai-pathfinder/core"
)

// BuildVersion is written as the file's first 4 bytes and checked on
// Open; a mismatch truncates and recreates the file (spec.md §4.6).
const BuildVersion int32 = 1

// Entry is one (tag, action) pair recorded during a life.
type Entry struct {
	Tag    uint16
	Action uint16
}

// Life accumulates entries for one in-flight life between RecordInit and
// RecordClose.
type Life struct {
	ID              uint32
	Team            core.Team
	RemainingDrones uint8
	Entries         []Entry
}

// Store owns the pending-life table and the append-only record file for
// one loaded level.
type Store struct {
	path  string
	file  *os.File
	lives map[uint32]*Life
}

// Open opens (or creates) the record file at path, checking the leading
// build-version header and truncating on mismatch (spec.md §4.6).
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	var version int32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		if err != io.EOF {
			f.Close()
			return nil, err
		}
		version = 0 // empty file
	}

	if version != BuildVersion {
		if err := f.Truncate(0); err != nil {
			f.Close()
			return nil, err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
		if err := binary.Write(f, binary.LittleEndian, BuildVersion); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, err
	}

	return &Store{path: path, file: f, lives: make(map[uint32]*Life)}, nil
}

// Init starts accumulating a new life (spec.md §4.6 RecordInit).
func (s *Store) Init(id uint32, team core.Team, remainingDrones uint8) {
	s.lives[id] = &Life{ID: id, Team: team, RemainingDrones: remainingDrones}
}

// Add appends one (tag, action) pair to an in-flight life (spec.md §4.6
// RecordAdd). A no-op if id has no open life -- the worker never aborts
// on a recoverable error (spec.md §7).
func (s *Store) Add(id uint32, tag, action uint16) {
	life, ok := s.lives[id]
	if !ok {
		return
	}
	life.Entries = append(life.Entries, Entry{Tag: tag, Action: action})
}

// Close flushes the life's accumulated entries to the record file and
// discards it from the pending table (spec.md §4.6 RecordClose).
func (s *Store) Close(id uint32) error {
	life, ok := s.lives[id]
	if !ok {
		return nil
	}
	delete(s.lives, id)

	bw := bufio.NewWriter(s.file)
	if err := binary.Write(bw, binary.LittleEndian, life.ID); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int8(life.Team)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, life.RemainingDrones); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(life.Entries))); err != nil {
		return err
	}
	for _, e := range life.Entries {
		if err := binary.Write(bw, binary.LittleEndian, e); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CloseFile closes the underlying file handle (spec.md §4.7 Load: "free
// existing ... records" before loading the next level's store).
func (s *Store) CloseFile() error {
	return s.file.Close()
}
