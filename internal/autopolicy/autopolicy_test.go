package autopolicy

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

func fixtureContentWithGraph() *content.GameContent {
	return &content.GameContent{
		Constants: content.Constants{
			AutopilotIronRichConfidenceThreshold: 0.5,
			AutopilotRefineryThresholdKg:          400.0,
			TravelTicksPerHop:                     3,
			MiningRateKgPerTick:                   50.0,
		},
		SolarSystem: content.SolarSystemDef{
			Nodes: []content.NodeDef{{ID: "node_earth_orbit"}, {ID: "node_belt"}},
			Edges: [][2]simid.NodeID{{"node_earth_orbit", "node_belt"}},
		},
	}
}

func TestDecideSurveysWhenNothingElseToDo(t *testing.T) {
	c := fixtureContentWithGraph()
	state := &simstate.GameState{
		ScanSites: []simstate.ScanSite{{ID: "site_0001", Node: "node_belt"}},
		Ships: map[simid.ShipID]simstate.Ship{
			"ship_0001": {ID: "ship_0001", LocationNode: "node_earth_orbit", Task: &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}}},
		},
		Asteroids: map[simid.AsteroidID]simstate.Asteroid{},
	}

	cmds := Basic{HomeStation: "station_earth_orbit"}.Decide(state, c, simrng.New(1))

	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	cmd := cmds[0].Command
	if cmd.TaskKind.Kind != simstate.TaskTransit {
		t.Fatalf("expected a Transit wrapping the Survey since the site is elsewhere, got %+v", cmd.TaskKind)
	}
	if cmd.TaskKind.Then == nil || cmd.TaskKind.Then.Kind != simstate.TaskSurvey {
		t.Fatalf("expected the Transit's Then to be Survey, got %+v", cmd.TaskKind.Then)
	}
}

func TestDecideDepositsWhenOreAboveThreshold(t *testing.T) {
	c := fixtureContentWithGraph()
	station := simstate.Station{ID: "station_earth_orbit", LocationNode: "node_earth_orbit"}
	state := &simstate.GameState{
		Ships: map[simid.ShipID]simstate.Ship{
			"ship_0001": {
				ID: "ship_0001", LocationNode: "node_earth_orbit",
				Task:      &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}},
				Inventory: []simstate.InventoryItem{{Kind: simstate.ItemOre, Kg: 500.0}},
			},
		},
		Stations:  map[simid.StationID]simstate.Station{"station_earth_orbit": station},
		Asteroids: map[simid.AsteroidID]simstate.Asteroid{},
	}

	cmds := Basic{HomeStation: "station_earth_orbit"}.Decide(state, c, simrng.New(1))

	if len(cmds) != 1 || cmds[0].Command.TaskKind.Kind != simstate.TaskDeposit {
		t.Fatalf("expected an immediate Deposit command, got %+v", cmds)
	}
}

func TestDecideSkipsShipsAlreadyOnATask(t *testing.T) {
	c := fixtureContentWithGraph()
	state := &simstate.GameState{
		Ships: map[simid.ShipID]simstate.Ship{
			"ship_0001": {ID: "ship_0001", Task: &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskTransit}}},
		},
		Asteroids: map[simid.AsteroidID]simstate.Asteroid{},
	}

	cmds := Basic{}.Decide(state, c, simrng.New(1))

	if len(cmds) != 0 {
		t.Fatalf("expected no commands for a busy ship, got %+v", cmds)
	}
}
