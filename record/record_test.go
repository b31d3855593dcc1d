package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/ai-pathfinder/core"
)

func TestInitAddCloseWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.rec")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	s.Init(7, core.TeamB, 3)
	s.Add(7, 1, 100)
	s.Add(7, 2, 200)
	if err := s.Close(7); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.CloseFile(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() <= 4 {
		t.Errorf("expected file to contain more than the version header, got %d bytes", info.Size())
	}
}

func TestAddWithoutInitIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.rec")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.CloseFile()

	s.Add(99, 1, 1) // no Init for id 99
	if err := s.Close(99); err != nil {
		t.Fatalf("close on unknown id should be a no-op, got error: %v", err)
	}
}

func TestVersionMismatchTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.rec")
	if err := os.WriteFile(path, []byte{0xff, 0xff, 0xff, 0xff, 1, 2, 3}, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.CloseFile()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("expected truncate-and-rewrite to leave just the version header, got %d bytes", info.Size())
	}
}
