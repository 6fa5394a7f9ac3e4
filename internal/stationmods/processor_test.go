package stationmods

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func processorContent() *content.GameContent {
	return &content.GameContent{
		Elements: []content.ElementDef{
			{ID: "Fe", DensityKgPerM3: 7870.0},
		},
		ModuleDefs: map[string]content.ModuleDef{
			"module_basic_iron_refinery": {
				ID: "module_basic_iron_refinery", WearPerRun: 0.01,
				Behavior: content.ModuleBehaviorDef{
					Kind: content.BehaviorProcessor,
					Processor: &content.ProcessorDef{
						ProcessingIntervalTicks: 10,
						Recipes: []content.ProcessorRecipe{
							{
								Input:   content.InputFilter{MinComposition: map[string]float32{"Fe": 0.5}, MinKg: 10.0},
								Outputs: []content.RecipeOutput{{Element: "Fe", KgRatio: 0.8, Quality: 0.9}},
							},
						},
					},
				},
			},
		},
	}
}

func stationWithProcessor() *simstate.Station {
	return &simstate.Station{
		ID:              "station_earth_orbit",
		CargoCapacityM3: 2000.0,
		Inventory: []simstate.InventoryItem{
			{Kind: simstate.ItemOre, Kg: 100.0, Composition: map[string]float32{"Fe": 1.0}},
		},
		Modules: []simstate.ModuleState{
			{
				ID: "refinery_inst_0001", DefID: "module_basic_iron_refinery", Enabled: true,
				KindState: simstate.ModuleKindState{Kind: simstate.KindStateProcessor, Processor: &simstate.ProcessorState{}},
			},
		},
	}
}

func TestRunProcessorsConsumesOreProducesMaterialAndSlag(t *testing.T) {
	c := processorContent()
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *stationWithProcessor()}}
	eligible := []bool{true}
	var out []events.Envelope

	RunProcessors(state, "station_earth_orbit", c, eligible, &out)

	station := state.Stations["station_earth_orbit"]
	if simstate.MaterialKg(station.Inventory, "Fe", 0.9) != 80.0 {
		t.Fatalf("expected 80.0 kg refined Fe, got %v", simstate.MaterialKg(station.Inventory, "Fe", 0.9))
	}

	var slagKg float32
	for _, item := range station.Inventory {
		if isMinedOre(item) {
			t.Fatalf("all mined ore should be consumed, found leftover lot: %+v", item)
		}
		if item.Kind == simstate.ItemOre && !isMinedOre(item) {
			slagKg = item.Kg
		}
	}
	if slagKg != 20.0 {
		t.Fatalf("expected 20.0 kg slag, got %v", slagKg)
	}

	ran := false
	for _, env := range out {
		if env.Event.Kind == events.KindProcessorRan {
			ran = true
		}
	}
	if !ran {
		t.Fatalf("expected ProcessorRan event")
	}
}

func TestRunProcessorsNoMatchMarksRefineryStarved(t *testing.T) {
	c := processorContent()
	station := stationWithProcessor()
	station.Inventory = []simstate.InventoryItem{
		{Kind: simstate.ItemOre, Kg: 5.0, Composition: map[string]float32{"Fe": 1.0}},
	}
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	eligible := []bool{true}
	var out []events.Envelope

	RunProcessors(state, "station_earth_orbit", c, eligible, &out)

	got := state.Stations["station_earth_orbit"]
	if !got.Modules[0].KindState.Processor.RefineryStarved {
		t.Fatalf("expected refinery_starved when no recipe matches (below min_kg)")
	}
	for _, env := range out {
		if env.Event.Kind == events.KindProcessorRan {
			t.Fatalf("no ProcessorRan expected when starved")
		}
	}
}
