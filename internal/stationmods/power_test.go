package stationmods

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func solarArrayContent() *content.GameContent {
	return &content.GameContent{
		Constants: content.Constants{
			WearBandDegradedThreshold:  0.5,
			WearBandCriticalThreshold:  0.85,
			WearBandDegradedEfficiency: 0.7,
			WearBandCriticalEfficiency: 0.4,
		},
		SolarSystem: content.SolarSystemDef{
			Nodes: []content.NodeDef{{ID: "node_earth_orbit", SolarIntensity: 1.0}},
		},
		ModuleDefs: map[string]content.ModuleDef{
			"module_basic_solar_array": {
				ID: "module_basic_solar_array", WearPerRun: 0.002,
				Behavior: content.ModuleBehaviorDef{
					Kind:       content.BehaviorSolarArray,
					SolarArray: &content.SolarArrayDef{BaseOutputKw: 50.0},
				},
			},
			"module_power_hungry": {
				ID: "module_power_hungry", PowerConsumptionPerRun: 80.0,
				Behavior: content.ModuleBehaviorDef{
					Kind:      content.BehaviorProcessor,
					Processor: &content.ProcessorDef{ProcessingIntervalTicks: 60},
				},
			},
		},
	}
}

func stationWithSolarArray() *simstate.Station {
	return &simstate.Station{
		ID: "station_earth_orbit", LocationNode: "node_earth_orbit",
		CargoCapacityM3: 2000.0,
		Modules: []simstate.ModuleState{
			{
				ID: "solar_inst_0001", DefID: "module_basic_solar_array", Enabled: true,
				KindState: simstate.ModuleKindState{Kind: simstate.KindStateSolarArray, SolarArray: &simstate.SolarArrayState{}},
			},
		},
	}
}

func TestComputePowerBudgetSolarOnly(t *testing.T) {
	c := solarArrayContent()
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *stationWithSolarArray()}}
	var out []events.Envelope

	ComputePowerBudget(state, "station_earth_orbit", c, &out)

	station := state.Stations["station_earth_orbit"]
	if station.Power.GeneratedKw != 50.0 {
		t.Fatalf("expected 50.0 generated, got %v", station.Power.GeneratedKw)
	}
	if station.Power.ConsumedKw != 0.0 || station.Power.DeficitKw != 0.0 {
		t.Fatalf("expected no consumption/deficit, got %+v", station.Power)
	}
}

func TestComputePowerBudgetDeficitWhenInsufficient(t *testing.T) {
	c := solarArrayContent()
	station := stationWithSolarArray()
	station.Modules = append(station.Modules, simstate.ModuleState{
		ID: "hungry_inst_0001", DefID: "module_power_hungry", Enabled: true,
		KindState: simstate.ModuleKindState{Kind: simstate.KindStateProcessor, Processor: &simstate.ProcessorState{TicksSinceLastRun: 60}},
	})
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	var out []events.Envelope

	ComputePowerBudget(state, "station_earth_orbit", c, &out)

	got := state.Stations["station_earth_orbit"]
	if got.Power.GeneratedKw != 50.0 {
		t.Fatalf("expected generated 50.0, got %v", got.Power.GeneratedKw)
	}
	if got.Power.ConsumedKw != 80.0 {
		t.Fatalf("expected consumed 80.0 (pre-deactivation total), got %v", got.Power.ConsumedKw)
	}
	if got.Power.DeficitKw != 30.0 {
		t.Fatalf("expected deficit 30.0, got %v", got.Power.DeficitKw)
	}
	if !got.Modules[1].PowerStalled {
		t.Fatalf("expected the hungry module to be stalled off")
	}

	found := false
	for _, env := range out {
		if env.Event.Kind == events.KindModuleStalled && env.Event.Reason == events.StallReasonPower {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a power ModuleStalled event")
	}
}

func TestComputePowerBudgetWearReducesOutput(t *testing.T) {
	c := solarArrayContent()
	station := stationWithSolarArray()
	station.Modules[0].Wear = c.Constants.WearBandDegradedThreshold
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	var out []events.Envelope

	ComputePowerBudget(state, "station_earth_orbit", c, &out)

	got := state.Stations["station_earth_orbit"]
	expected := float32(50.0) * c.Constants.WearBandDegradedEfficiency
	if diff := got.Power.GeneratedKw - expected; diff > 0.01 || diff < -0.01 {
		t.Fatalf("expected generated ~%v with degraded wear, got %v", expected, got.Power.GeneratedKw)
	}
}

func TestComputePowerBudgetEmitsPowerConsumed(t *testing.T) {
	c := solarArrayContent()
	station := stationWithSolarArray()
	station.Modules = append(station.Modules, simstate.ModuleState{
		ID: "hungry_inst_0001", DefID: "module_power_hungry", Enabled: true,
		KindState: simstate.ModuleKindState{Kind: simstate.KindStateProcessor, Processor: &simstate.ProcessorState{TicksSinceLastRun: 60}},
	})
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	var out []events.Envelope

	ComputePowerBudget(state, "station_earth_orbit", c, &out)

	found := false
	for _, env := range out {
		if env.Event.Kind == events.KindPowerConsumed && env.Event.StationID == "station_earth_orbit" {
			if env.Event.Amount != 80.0 {
				t.Fatalf("expected PowerConsumed amount 80.0, got %v", env.Event.Amount)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a PowerConsumed event reporting the station's consumed load")
	}
}

func TestComputePowerBudgetDisabledModuleExcluded(t *testing.T) {
	c := solarArrayContent()
	station := stationWithSolarArray()
	station.Modules[0].Enabled = false
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	var out []events.Envelope

	ComputePowerBudget(state, "station_earth_orbit", c, &out)

	got := state.Stations["station_earth_orbit"]
	if got.Power.GeneratedKw != 0.0 {
		t.Fatalf("expected 0 kW from a disabled solar array, got %v", got.Power.GeneratedKw)
	}
}
