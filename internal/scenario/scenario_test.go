package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempScenario(t *testing.T, json string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, []byte(json), 0644); err != nil {
		t.Fatalf("writing temp scenario: %v", err)
	}
	return path
}

func TestLoadScenarioWithSeedList(t *testing.T) {
	path := writeTempScenario(t, `{"name": "test_scenario", "ticks": 1000, "seeds": [1, 2, 3]}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Name != "test_scenario" || s.Ticks != 1000 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
	if s.MetricsEvery != 60 {
		t.Fatalf("expected default metrics_every=60, got %d", s.MetricsEvery)
	}
	if s.ContentDir != "./content" {
		t.Fatalf("expected default content_dir, got %q", s.ContentDir)
	}
	got := s.Seeds.Expand()
	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected seeds %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected seeds %v, got %v", want, got)
		}
	}
}

func TestLoadScenarioWithSeedRange(t *testing.T) {
	path := writeTempScenario(t, `{"name": "range_test", "ticks": 500, "seeds": {"range": [1, 5]}}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := s.Seeds.Expand()
	if len(got) != 5 {
		t.Fatalf("expected 5 seeds, got %d (%v)", len(got), got)
	}
	for i, want := range []uint64{1, 2, 3, 4, 5} {
		if got[i] != want {
			t.Fatalf("expected seeds 1..5, got %v", got)
		}
	}
}

func TestLoadScenarioRejectsEmptyName(t *testing.T) {
	path := writeTempScenario(t, `{"name": "", "ticks": 100, "seeds": [1]}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for empty name")
	}
}

func TestLoadScenarioRejectsZeroTicks(t *testing.T) {
	path := writeTempScenario(t, `{"name": "x", "ticks": 0, "seeds": [1]}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for zero ticks")
	}
}
