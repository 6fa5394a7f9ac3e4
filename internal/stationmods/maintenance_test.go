package stationmods

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func maintenanceContent() *content.GameContent {
	return &content.GameContent{
		ModuleDefs: map[string]content.ModuleDef{
			"module_basic_maintenance_bay": {
				ID: "module_basic_maintenance_bay",
				Behavior: content.ModuleBehaviorDef{
					Kind: content.BehaviorMaintenance,
					Maintenance: &content.MaintenanceDef{
						WearReductionPerRun: 0.2,
						RepairKitCost:       1,
						RepairThreshold:     0.3,
						IntervalTicks:       10,
					},
				},
			},
		},
	}
}

func stationWithMaintenanceAndWornModule() *simstate.Station {
	return &simstate.Station{
		ID: "station_earth_orbit",
		Inventory: []simstate.InventoryItem{
			{Kind: simstate.ItemComponent, ComponentID: "repair_kit", Count: 2, Quality: 1.0},
		},
		Modules: []simstate.ModuleState{
			{
				ID: "maint_inst_0001", DefID: "module_basic_maintenance_bay", Enabled: true,
				KindState: simstate.ModuleKindState{Kind: simstate.KindStateMaintenance, Maintenance: &simstate.MaintenanceState{}},
			},
			{
				ID: "worn_inst_0001", DefID: "module_worn", Enabled: false, Wear: 0.95,
				KindState: simstate.ModuleKindState{Kind: simstate.KindStateProcessor, Processor: &simstate.ProcessorState{}},
			},
		},
	}
}

func TestRunMaintenanceRepairsMostWornOtherModuleAndReenables(t *testing.T) {
	c := maintenanceContent()
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *stationWithMaintenanceAndWornModule()}}
	eligible := []bool{true, false}
	var out []events.Envelope

	RunMaintenance(state, "station_earth_orbit", c, eligible, &out)

	got := state.Stations["station_earth_orbit"]
	target := got.Modules[1]
	if target.Wear != 0.75 {
		t.Fatalf("expected wear reduced to 0.75, got %v", target.Wear)
	}
	if !target.Enabled {
		t.Fatalf("expected the auto-disabled module to be re-enabled after repair")
	}

	var kits uint32
	for _, item := range got.Inventory {
		if item.Kind == simstate.ItemComponent && item.ComponentID == "repair_kit" {
			kits += item.Count
		}
	}
	if kits != 1 {
		t.Fatalf("expected 1 repair kit consumed leaving 1, got %d", kits)
	}

	found := false
	for _, env := range out {
		if env.Event.Kind == events.KindMaintenanceRan {
			found = true
			if env.Event.WearBefore != 0.95 || env.Event.WearAfter != 0.75 {
				t.Fatalf("unexpected wear before/after on event: %+v", env.Event)
			}
		}
	}
	if !found {
		t.Fatalf("expected MaintenanceRan event")
	}
}

func TestRunMaintenanceSkipsWhenNoKitAvailable(t *testing.T) {
	c := maintenanceContent()
	station := stationWithMaintenanceAndWornModule()
	station.Inventory = nil
	state := &simstate.GameState{Stations: map[simid.StationID]simstate.Station{"station_earth_orbit": *station}}
	eligible := []bool{true, false}
	var out []events.Envelope

	RunMaintenance(state, "station_earth_orbit", c, eligible, &out)

	got := state.Stations["station_earth_orbit"]
	if got.Modules[1].Wear != 0.95 {
		t.Fatalf("expected wear unchanged without a kit, got %v", got.Modules[1].Wear)
	}
	for _, env := range out {
		if env.Event.Kind == events.KindMaintenanceRan {
			t.Fatalf("expected no MaintenanceRan event without a kit")
		}
	}
}
