// Package scenario loads the JSON scenario files simbench runs: a name,
// a tick count, a set of seeds (either an explicit list or an inclusive
// range), a content directory, and constant overrides.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scenario is one simbench run definition.
type Scenario struct {
	Name         string                 `json:"name"`
	Ticks        uint64                 `json:"ticks"`
	MetricsEvery uint64                 `json:"metrics_every"`
	Seeds        SeedSpec               `json:"seeds"`
	ContentDir   string                 `json:"content_dir"`
	Overrides    map[string]interface{} `json:"overrides"`
}

// SeedSpec is either an explicit list of seeds ([1,2,3]) or an inclusive
// range ({"range":[1,5]}), matching the original scenario format's
// untagged enum.
type SeedSpec struct {
	List  []uint64
	Range [2]uint64
	isRange bool
}

// UnmarshalJSON accepts either a bare array of seeds or a {"range": [lo,
// hi]} object.
func (s *SeedSpec) UnmarshalJSON(data []byte) error {
	var list []uint64
	if err := json.Unmarshal(data, &list); err == nil {
		s.List = list
		s.isRange = false
		return nil
	}

	var ranged struct {
		Range [2]uint64 `json:"range"`
	}
	if err := json.Unmarshal(data, &ranged); err != nil {
		return fmt.Errorf("seeds must be a list of integers or {\"range\":[lo,hi]}: %w", err)
	}
	s.Range = ranged.Range
	s.isRange = true
	return nil
}

// Expand returns the concrete list of seeds this spec covers.
func (s SeedSpec) Expand() []uint64 {
	if !s.isRange {
		return s.List
	}
	lo, hi := s.Range[0], s.Range[1]
	if hi < lo {
		return nil
	}
	out := make([]uint64, 0, hi-lo+1)
	for seed := lo; seed <= hi; seed++ {
		out = append(out, seed)
	}
	return out
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario file %s: %w", path, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}

	if s.Name == "" {
		return Scenario{}, fmt.Errorf("scenario %q: 'name' must not be empty", path)
	}
	if s.Ticks == 0 {
		return Scenario{}, fmt.Errorf("scenario %q: 'ticks' must be > 0", path)
	}
	if s.MetricsEvery == 0 {
		s.MetricsEvery = 60
	}
	if s.ContentDir == "" {
		s.ContentDir = "./content"
	}
	if len(s.Seeds.Expand()) == 0 {
		return Scenario{}, fmt.Errorf("scenario %q: 'seeds' must produce at least one seed", path)
	}
	return s, nil
}
