package stationmods

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func assemblerContent() *content.GameContent {
	return &content.GameContent{
		Constants: content.Constants{
			WearBandDegradedThreshold:  0.5,
			WearBandCriticalThreshold:  0.85,
			WearBandDegradedEfficiency: 0.7,
			WearBandCriticalEfficiency: 0.4,
		},
		Elements: []content.ElementDef{
			{ID: "Fe", DensityKgPerM3: 7870.0},
		},
		ComponentDefs: map[simid.ComponentID]content.ComponentDef{
			"repair_kit": {ID: "repair_kit", MassKg: 20.0, VolumeM3: 0.05},
		},
		ModuleDefs: map[string]content.ModuleDef{
			"module_basic_assembler": {
				ID: "module_basic_assembler", WearPerRun: 0.008,
				Behavior: content.ModuleBehaviorDef{
					Kind: content.BehaviorAssembler,
					Assembler: &content.AssemblerDef{
						ProcessingIntervalTicks: 2,
						Recipe: content.AssemblerRecipe{
							Inputs:      []content.AssemblerInput{{Element: "Fe", Kg: 100.0, MinQuality: 0.5}},
							ComponentID: "repair_kit",
							Quality:     1.0,
						},
					},
				},
			},
		},
	}
}

func stationWithAssembler() *simstate.Station {
	return &simstate.Station{
		ID:              "station_earth_orbit",
		CargoCapacityM3: 2000.0,
		Inventory: []simstate.InventoryItem{
			{Kind: simstate.ItemMaterial, Element: "Fe", Kg: 500.0, Quality: 0.7},
		},
		Modules: []simstate.ModuleState{
			{
				ID: "asmb_inst_0001", DefID: "module_basic_assembler", Enabled: true,
				KindState: simstate.ModuleKindState{Kind: simstate.KindStateAssembler, Assembler: &simstate.AssemblerState{}},
			},
		},
	}
}

func TestRunAssemblersProducesComponentAndConsumesMaterial(t *testing.T) {
	c := assemblerContent()
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *stationWithAssembler()}}
	eligible := []bool{true}
	var out []events.Envelope

	RunAssemblers(state, "station_earth_orbit", c, eligible, &out)

	station := state.Stations["station_earth_orbit"]
	if simstate.MaterialKg(station.Inventory, "Fe", 0.7) != 400.0 {
		t.Fatalf("expected 400.0 kg Fe remaining, got %v", simstate.MaterialKg(station.Inventory, "Fe", 0.7))
	}

	ran := false
	for _, env := range out {
		if env.Event.Kind == events.KindAssemblerRan {
			ran = true
		}
	}
	if !ran {
		t.Fatalf("expected AssemblerRan event")
	}

	kitCount := uint32(0)
	for _, item := range station.Inventory {
		if item.Kind == simstate.ItemComponent && item.ComponentID == "repair_kit" {
			kitCount += item.Count
		}
	}
	if kitCount != 1 {
		t.Fatalf("expected 1 repair kit, got %d", kitCount)
	}
}

func TestRunAssemblersSkipsInsufficientMaterial(t *testing.T) {
	c := assemblerContent()
	station := stationWithAssembler()
	station.Inventory = []simstate.InventoryItem{
		{Kind: simstate.ItemMaterial, Element: "Fe", Kg: 50.0, Quality: 0.7},
	}
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	eligible := []bool{true}
	var out []events.Envelope

	RunAssemblers(state, "station_earth_orbit", c, eligible, &out)

	for _, env := range out {
		if env.Event.Kind == events.KindAssemblerRan {
			t.Fatalf("assembler should not run with insufficient material")
		}
	}
	got := state.Stations["station_earth_orbit"]
	for _, item := range got.Inventory {
		if item.Kind == simstate.ItemComponent {
			t.Fatalf("no component should be produced, got %+v", item)
		}
	}
}

func TestRunAssemblersStallsOnCapacity(t *testing.T) {
	c := assemblerContent()
	station := stationWithAssembler()
	station.CargoCapacityM3 = 0.001
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	eligible := []bool{true}
	var out []events.Envelope

	RunAssemblers(state, "station_earth_orbit", c, eligible, &out)

	got := state.Stations["station_earth_orbit"]
	if !got.Modules[0].KindState.Assembler.Stalled {
		t.Fatalf("expected assembler stalled when output won't fit")
	}
	found := false
	for _, env := range out {
		if env.Event.Kind == events.KindModuleStalled {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ModuleStalled event")
	}
}

func TestRunAssemblersMergesComponentStacks(t *testing.T) {
	c := assemblerContent()
	station := stationWithAssembler()
	station.Inventory = append(station.Inventory, simstate.InventoryItem{
		Kind: simstate.ItemComponent, ComponentID: "repair_kit", Count: 3, Quality: 1.0,
	})
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	eligible := []bool{true}
	var out []events.Envelope

	RunAssemblers(state, "station_earth_orbit", c, eligible, &out)

	got := state.Stations["station_earth_orbit"]
	var kitCount uint32
	var stacks int
	for _, item := range got.Inventory {
		if item.Kind == simstate.ItemComponent && item.ComponentID == "repair_kit" {
			kitCount += item.Count
			stacks++
		}
	}
	if kitCount != 4 {
		t.Fatalf("expected 3 original + 1 produced = 4, got %d", kitCount)
	}
	if stacks != 1 {
		t.Fatalf("expected a single merged stack, got %d", stacks)
	}
}
