package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaultsForSpecifiedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.toml")
	body := "sensor_range = 30.0\npath_cap = 16\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.SensorRange = 30.0
	want.PathCap = 16

	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing tunables file")
	}
}
