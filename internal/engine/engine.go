// Package engine orchestrates one tick of the simulation: applying due
// commands, resolving ship tasks, running station modules, advancing
// research, and building a fresh initial world from content.
package engine

import (
	"fmt"
	"sort"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/research"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/stationmods"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/tasks"
)

// Tick advances state by exactly one unit: applies commands scheduled for
// this tick, resolves ship tasks whose eta has arrived, runs every
// station's modules, advances research, and increments the tick counter.
// It never spawns goroutines, takes locks, or performs I/O.
func Tick(state *simstate.GameState, commands []events.CommandEnvelope, c *content.GameContent, rng simrng.Rng, level events.Level) []events.Envelope {
	var out []events.Envelope

	applyCommands(state, commands, c, &out)
	resolveShipTasks(state, c, rng, &out)
	runStations(state, c, &out)
	research.AdvanceResearch(state, c, rng, level, &out)

	state.Meta.Tick++
	return out
}

// applyCommands validates and applies every envelope scheduled for the
// current tick, dropping invalid ones silently. Envelopes for a future
// tick are the caller's concern — they are never buffered here.
func applyCommands(state *simstate.GameState, commands []events.CommandEnvelope, c *content.GameContent, out *[]events.Envelope) {
	tick := state.Meta.Tick
	for _, env := range commands {
		if env.ExecuteAtTick != tick {
			continue
		}
		cmd := env.Command
		ship, ok := state.Ships[cmd.ShipID]
		if !ok || ship.Owner != env.IssuedBy {
			continue
		}
		if cmd.TaskKind.Kind == simstate.TaskDeepScan && !research.DeepScanEnabled(&state.Research, c) {
			continue
		}
		if cmd.TaskKind.Then != nil && cmd.TaskKind.Then.Then != nil {
			continue
		}

		duration := tasks.Duration(cmd.TaskKind, &c.Constants)
		ship.Task = &simstate.TaskState{
			Kind:        cmd.TaskKind,
			StartedTick: tick,
			EtaTick:     tick + duration,
		}
		state.Ships[cmd.ShipID] = ship

		*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
			Kind:         events.KindTaskStarted,
			ShipID:       cmd.ShipID,
			TaskKindName: tasks.KindLabel(cmd.TaskKind),
			Target:       tasks.Target(cmd.TaskKind),
		}))
	}
}

// resolveShipTasks dispatches every ship whose task eta has arrived, in
// lexical ship-id order, to the matching tasks.Resolve* function.
func resolveShipTasks(state *simstate.GameState, c *content.GameContent, rng simrng.Rng, out *[]events.Envelope) {
	tick := state.Meta.Tick

	var due []simid.ShipID
	for id, ship := range state.Ships {
		if ship.Task != nil && ship.Task.Kind.Kind != simstate.TaskIdle && ship.Task.EtaTick == tick {
			due = append(due, id)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	for _, shipID := range due {
		kind := state.Ships[shipID].Task.Kind
		switch kind.Kind {
		case simstate.TaskSurvey:
			tasks.ResolveSurvey(state, shipID, kind.Site, c, rng, out)
		case simstate.TaskDeepScan:
			tasks.ResolveDeepScan(state, shipID, kind.Asteroid, c, rng, out)
		case simstate.TaskTransit:
			tasks.ResolveTransit(state, shipID, kind.Destination, kind.Then, &c.Constants, out)
		case simstate.TaskMine:
			tasks.ResolveMine(state, shipID, kind.Asteroid, kind.DurationTicks, &c.Constants, out)
		case simstate.TaskDeposit:
			tasks.ResolveDeposit(state, shipID, kind.Station, c, out)
		}
	}
}

// runStations ticks every station's modules in sorted id order.
func runStations(state *simstate.GameState, c *content.GameContent, out *[]events.Envelope) {
	var ids []simid.StationID
	for id := range state.Stations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		stationmods.RunStation(state, id, c, out)
	}
}

// BuildInitialState constructs a fresh world from content: one station at
// node_earth_orbit with one ship docked there, and asteroid_count_per_template
// scan sites per template scattered uniformly over the solar system's nodes.
func BuildInitialState(c *content.GameContent, seed uint64, rng simrng.Rng) simstate.GameState {
	state := simstate.GameState{
		Meta: simstate.MetaState{
			Tick: 0, Seed: seed, SchemaVersion: 1, ContentVersion: c.ContentVersion,
		},
		Asteroids: make(map[simid.AsteroidID]simstate.Asteroid),
		Ships:     make(map[simid.ShipID]simstate.Ship),
		Stations:  make(map[simid.StationID]simstate.Station),
		Research:  simstate.NewResearchState(),
	}

	const homeNode = simid.NodeID("node_earth_orbit")

	stationID := simid.StationID("station_earth_orbit")
	state.Stations[stationID] = simstate.Station{
		ID:              stationID,
		LocationNode:    homeNode,
		CargoCapacityM3: c.Constants.StationCargoCapacityM3,
		PowerAvailablePerTick: c.Constants.StationPowerAvailablePerTick,
	}

	shipID := simid.ShipID("ship_0001")
	state.Ships[shipID] = simstate.Ship{
		ID:              shipID,
		LocationNode:    homeNode,
		CargoCapacityM3: c.Constants.ShipCargoCapacityM3,
		Task:            &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}},
	}

	nodes := c.SolarSystem.Nodes
	if len(nodes) == 0 {
		return state
	}

	for ti, template := range c.AsteroidTemplates {
		for i := uint64(0); i < c.Constants.AsteroidCountPerTemplate; i++ {
			nodeIdx := int(rng.Float32() * float32(len(nodes)))
			if nodeIdx >= len(nodes) {
				nodeIdx = len(nodes) - 1
			}
			siteID := simid.SiteID(fmt.Sprintf("site_%04d_%04d", ti, i))
			state.ScanSites = append(state.ScanSites, simstate.ScanSite{
				ID:         siteID,
				Node:       nodes[nodeIdx].ID,
				TemplateID: template.ID,
			})
		}
	}

	return state
}
