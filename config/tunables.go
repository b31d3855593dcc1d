// Package config holds the named constants spec.md §6 calls out as
// tunable, loadable from a TOML file via the teacher's own toml package,
// with defaults matching the spec's approximate values.
package config

import (
	"os"

	"github.com/lixenwraith/ai-pathfinder/toml"
)

// Tunables bundles every §6 named constant plus the obstacle-bitmask
// capacity and the reconstructed-path length cap.
type Tunables struct {
	// ForceFieldRadius is R_FF, the force-field sphere radius.
	ForceFieldRadius float32 `toml:"force_field_radius"`
	// SensorRange is R_S, the rectifier sensing radius.
	SensorRange float32 `toml:"sensor_range"`
	// MaxShotDistance is DMAX, the maximum drone shot distance.
	MaxShotDistance float32 `toml:"max_shot_distance"`
	// BiasLongshot is added to travel cost for long-range shoot edges.
	BiasLongshot float32 `toml:"bias_longshot"`
	// BiasFriendly is the baseline sensor/force-field cost absent coverage.
	BiasFriendly float32 `toml:"bias_friendly"`
	// ObstacleCapacity is N_OB, the obstacle-id bitmask's bit count.
	ObstacleCapacity int `toml:"obstacle_capacity"`
	// PathCap bounds the vertex count of any reconstructed path.
	PathCap int `toml:"path_cap"`
	// StateResyncInterval is the seconds between rectifier/force-field
	// snapshots pushed from the game thread (spec.md §4.1 update()).
	StateResyncInterval float32 `toml:"state_resync_interval"`
}

// Default returns the spec's approximate baseline values (spec.md §6).
func Default() Tunables {
	return Tunables{
		ForceFieldRadius:    12.0,
		SensorRange:         20.0,
		MaxShotDistance:     10.0,
		BiasLongshot:        4.0,
		BiasFriendly:        8.0,
		ObstacleCapacity:    128,
		PathCap:             64,
		StateResyncInterval: 0.5,
	}
}

// Load reads tunables from a TOML file at path, falling back to Default
// for any field the file omits.
func Load(path string) (Tunables, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, err
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return Tunables{}, err
	}
	return t, nil
}
