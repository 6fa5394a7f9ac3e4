package engine

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func engineFixtureContent() *content.GameContent {
	return &content.GameContent{
		Constants: content.Constants{
			SurveyScanTicks:     2,
			DeepScanTicks:       1,
			AsteroidMassMinKg:   200.0,
			AsteroidMassMaxKg:   200.0,
			MiningRateKgPerTick: 50.0,
			DepositTicks:        1,
			StationCargoCapacityM3: 5000.0,
			ShipCargoCapacityM3:    100.0,
		},
		SolarSystem: content.SolarSystemDef{
			Nodes: []content.NodeDef{{ID: "node_earth_orbit", SolarIntensity: 1.0}},
		},
	}
}

func TestTickAdvancesTickCounter(t *testing.T) {
	c := engineFixtureContent()
	state := BuildInitialState(c, 1, simrng.New(1))
	rng := simrng.New(1)

	envs := Tick(&state, nil, c, rng, events.LevelNormal)
	_ = envs

	if state.Meta.Tick != 1 {
		t.Fatalf("expected tick to advance to 1, got %d", state.Meta.Tick)
	}
}

func TestApplyCommandStartsTaskAndEmitsTaskStarted(t *testing.T) {
	c := engineFixtureContent()
	state := BuildInitialState(c, 1, simrng.New(1))
	state.ScanSites = []simstate.ScanSite{{ID: "site_0001", Node: "node_earth_orbit", TemplateID: "template_iron"}}
	c.AsteroidTemplates = []content.AsteroidTemplateDef{{ID: "template_iron", CompositionRanges: map[string]content.ElementRange{"Fe": {Min: 1.0, Max: 1.0}}}}

	cmds := []events.CommandEnvelope{
		{
			IssuedBy:      "",
			ExecuteAtTick: 0,
			Command: events.Command{
				ShipID:   "ship_0001",
				TaskKind: simstate.TaskKind{Kind: simstate.TaskSurvey, Site: "site_0001"},
			},
		},
	}

	out := Tick(&state, cmds, c, simrng.New(2), events.LevelNormal)

	started := false
	for _, env := range out {
		if env.Event.Kind == events.KindTaskStarted {
			started = true
		}
	}
	if !started {
		t.Fatalf("expected TaskStarted event, got %+v", out)
	}

	ship := state.Ships["ship_0001"]
	if ship.Task == nil || ship.Task.Kind.Kind != simstate.TaskSurvey {
		t.Fatalf("expected ship on a Survey task, got %+v", ship.Task)
	}
	if ship.Task.EtaTick != 2 {
		t.Fatalf("expected eta tick 2 (survey_scan_ticks=2), got %d", ship.Task.EtaTick)
	}
}

func TestApplyCommandDropsMismatchedOwner(t *testing.T) {
	c := engineFixtureContent()
	state := BuildInitialState(c, 1, simrng.New(1))

	cmds := []events.CommandEnvelope{
		{
			IssuedBy:      "someone_else",
			ExecuteAtTick: 0,
			Command: events.Command{
				ShipID:   "ship_0001",
				TaskKind: simstate.TaskKind{Kind: simstate.TaskTransit, Destination: "node_earth_orbit", TotalTicks: 1},
			},
		},
	}

	out := Tick(&state, cmds, c, simrng.New(2), events.LevelNormal)

	for _, env := range out {
		if env.Event.Kind == events.KindTaskStarted {
			t.Fatalf("expected no TaskStarted for a mismatched owner, got %+v", out)
		}
	}
	ship := state.Ships["ship_0001"]
	if ship.Task.Kind.Kind != simstate.TaskIdle {
		t.Fatalf("expected ship to remain idle, got %+v", ship.Task)
	}
}

func TestBuildInitialStateCreatesStationShipAndScanSites(t *testing.T) {
	c := engineFixtureContent()
	c.AsteroidTemplates = []content.AsteroidTemplateDef{{ID: "template_iron"}}
	c.Constants.AsteroidCountPerTemplate = 3

	state := BuildInitialState(c, 42, simrng.New(42))

	if len(state.Stations) != 1 {
		t.Fatalf("expected 1 station, got %d", len(state.Stations))
	}
	if len(state.Ships) != 1 {
		t.Fatalf("expected 1 ship, got %d", len(state.Ships))
	}
	if len(state.ScanSites) != 3 {
		t.Fatalf("expected 3 scan sites, got %d", len(state.ScanSites))
	}
}
