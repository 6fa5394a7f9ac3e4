package metrics

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func TestComputeTalliesFleetPhasesAndScanSites(t *testing.T) {
	state := &simstate.GameState{
		Meta:      simstate.MetaState{Tick: 7},
		ScanSites: []simstate.ScanSite{{ID: "site_0001"}, {ID: "site_0002"}},
		Asteroids: map[simid.AsteroidID]simstate.Asteroid{"asteroid_000001": {}},
		Ships: map[simid.ShipID]simstate.Ship{
			"ship_0001": {Task: &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}}},
			"ship_0002": {Task: &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskMine}}},
		},
		Stations: map[simid.StationID]simstate.Station{},
		Research: simstate.NewResearchState(),
	}
	c := &content.GameContent{}

	snap := Compute(state, c)

	if snap.Tick != 7 {
		t.Fatalf("expected tick 7, got %d", snap.Tick)
	}
	if snap.ScanSiteCount != 2 {
		t.Fatalf("expected 2 scan sites, got %d", snap.ScanSiteCount)
	}
	if snap.AsteroidCount != 1 {
		t.Fatalf("expected 1 asteroid, got %d", snap.AsteroidCount)
	}
	if snap.Fleet.Idle != 1 || snap.Fleet.Mining != 1 {
		t.Fatalf("expected 1 idle + 1 mining, got %+v", snap.Fleet)
	}
}

func TestComputeTalliesModuleHealth(t *testing.T) {
	c := &content.GameContent{
		Constants: content.Constants{WearBandDegradedThreshold: 0.5, WearBandCriticalThreshold: 0.85},
	}
	state := &simstate.GameState{
		Ships: map[simid.ShipID]simstate.Ship{},
		Stations: map[simid.StationID]simstate.Station{
			"station_0001": {
				Modules: []simstate.ModuleState{
					{ID: "m1", Enabled: true, Wear: 0.9, KindState: simstate.ModuleKindState{Kind: simstate.KindStateProcessor, Processor: &simstate.ProcessorState{RefineryStarved: true}}},
					{ID: "m2", Enabled: false, Wear: 0.6, KindState: simstate.ModuleKindState{Kind: simstate.KindStateSolarArray, SolarArray: &simstate.SolarArrayState{}}},
				},
				Inventory: []simstate.InventoryItem{
					{Kind: simstate.ItemComponent, ComponentID: "repair_kit", Count: 3},
				},
			},
		},
		Research: simstate.NewResearchState(),
	}

	snap := Compute(state, c)

	if snap.Modules.TotalModules != 2 {
		t.Fatalf("expected 2 modules, got %d", snap.Modules.TotalModules)
	}
	if snap.Modules.DisabledModules != 1 {
		t.Fatalf("expected 1 disabled, got %d", snap.Modules.DisabledModules)
	}
	if snap.Modules.CriticalModules != 1 || snap.Modules.DegradedModules != 1 {
		t.Fatalf("expected 1 critical + 1 degraded, got %+v", snap.Modules)
	}
	if snap.Modules.RefineriesStarved != 1 {
		t.Fatalf("expected 1 starved refinery, got %d", snap.Modules.RefineriesStarved)
	}
	if snap.Modules.RepairKitsHeld != 3 {
		t.Fatalf("expected 3 repair kits held, got %d", snap.Modules.RepairKitsHeld)
	}
}
