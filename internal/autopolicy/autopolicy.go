// Package autopolicy is an example CommandSource driving idle ships
// without a human operator: survey unknown sites, deep-scan promising
// finds, then mine and deposit once a haul is worth hauling. It is policy,
// not core — it only calls the public surface (tasks.MiningDuration,
// simgraph.ShortestHopCount, simstate.TotalOreKg) and reads GameState
// without mutating it.
package autopolicy

import (
	"sort"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simgraph"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/tasks"
)

// CommandSource produces the next batch of commands to feed into
// engine.Tick given the current state.
type CommandSource interface {
	Decide(state *simstate.GameState, c *content.GameContent, rng simrng.Rng) []events.CommandEnvelope
}

// Basic is a minimal autopolicy: for every idle ship, in lexical id order,
// it picks one action — deposit a refinery-worthy ore haul, deep-scan an
// iron-rich candidate, mine a known asteroid, or survey an unclaimed scan
// site — and issues at most one command per ship per call.
type Basic struct {
	// HomeStation is where ships deposit once loaded past the refinery
	// threshold.
	HomeStation simid.StationID
}

// Decide scans every idle ship and emits at most one command each, immediate
// (executable this tick).
func (b Basic) Decide(state *simstate.GameState, c *content.GameContent, rng simrng.Rng) []events.CommandEnvelope {
	var shipIDs []simid.ShipID
	for id := range state.Ships {
		shipIDs = append(shipIDs, id)
	}
	sort.Slice(shipIDs, func(i, j int) bool { return shipIDs[i] < shipIDs[j] })

	var out []events.CommandEnvelope
	for _, id := range shipIDs {
		ship := state.Ships[id]
		if ship.Task != nil && ship.Task.Kind.Kind != simstate.TaskIdle {
			continue
		}
		if cmd, ok := b.decideOne(state, c, id, ship, rng); ok {
			out = append(out, cmd)
		}
	}
	return out
}

func (b Basic) decideOne(state *simstate.GameState, c *content.GameContent, shipID simid.ShipID, ship simstate.Ship, rng simrng.Rng) (events.CommandEnvelope, bool) {
	tick := state.Meta.Tick

	if oreKg := simstate.TotalOreKg(ship.Inventory); oreKg >= c.Constants.AutopilotRefineryThresholdKg {
		if station, ok := state.Stations[b.HomeStation]; ok {
			return b.transitOrImmediate(state, c, shipID, ship, station.LocationNode,
				simstate.TaskKind{Kind: simstate.TaskDeposit, Station: b.HomeStation}, rng, tick), true
		}
	}

	if asteroidID, ok := pickIronRichCandidate(state, c, ship.LocationNode); ok {
		asteroid := state.Asteroids[asteroidID]
		if asteroid.Knowledge.Composition == nil {
			return b.transitOrImmediate(state, c, shipID, ship, asteroid.Node,
				simstate.TaskKind{Kind: simstate.TaskDeepScan, Asteroid: asteroidID}, rng, tick), true
		}
		duration := tasks.MiningDuration(asteroid.MassKg, &c.Constants)
		return b.transitOrImmediate(state, c, shipID, ship, asteroid.Node,
			simstate.TaskKind{Kind: simstate.TaskMine, Asteroid: asteroidID, DurationTicks: duration}, rng, tick), true
	}

	if siteID, ok := pickScanSite(state, ship.LocationNode); ok {
		site := findScanSite(state, siteID)
		return b.transitOrImmediate(state, c, shipID, ship, site.Node,
			simstate.TaskKind{Kind: simstate.TaskSurvey, Site: siteID}, rng, tick), true
	}

	return events.CommandEnvelope{}, false
}

// transitOrImmediate issues target directly if the ship is already at its
// node, otherwise wraps it in a Transit task with target attached as Then.
func (b Basic) transitOrImmediate(state *simstate.GameState, c *content.GameContent, shipID simid.ShipID, ship simstate.Ship, destination simid.NodeID, target simstate.TaskKind, rng simrng.Rng, tick uint64) events.CommandEnvelope {
	kind := target
	if ship.LocationNode != destination {
		hops, ok := simgraph.ShortestHopCount(ship.LocationNode, destination, &c.SolarSystem)
		if !ok {
			hops = 1
		}
		then := target
		kind = simstate.TaskKind{
			Kind:        simstate.TaskTransit,
			Destination: destination,
			TotalTicks:  hops * c.Constants.TravelTicksPerHop,
			Then:        &then,
		}
	}
	return events.CommandEnvelope{
		ID:            simrng.GenerateUUID(rng).String(),
		IssuedBy:      ship.Owner,
		IssuedTick:    tick,
		ExecuteAtTick: tick,
		Command:       events.Command{ShipID: shipID, TaskKind: kind},
	}
}

// pickIronRichCandidate returns the lexically-first asteroid carrying an
// iron_rich tag at or above the confidence threshold, preferring one
// already at the ship's node.
func pickIronRichCandidate(state *simstate.GameState, c *content.GameContent, shipNode simid.NodeID) (simid.AsteroidID, bool) {
	var ids []simid.AsteroidID
	for id, asteroid := range state.Asteroids {
		for _, tag := range asteroid.Knowledge.Tags {
			if tag.Tag == content.AnomalyIronRich && tag.Confidence >= c.Constants.AutopilotIronRichConfidenceThreshold {
				ids = append(ids, id)
				break
			}
		}
	}
	if len(ids) == 0 {
		return "", false
	}
	sort.Slice(ids, func(i, j int) bool {
		iAtHome := state.Asteroids[ids[i]].Node == shipNode
		jAtHome := state.Asteroids[ids[j]].Node == shipNode
		if iAtHome != jAtHome {
			return iAtHome
		}
		return ids[i] < ids[j]
	})
	return ids[0], true
}

func pickScanSite(state *simstate.GameState, shipNode simid.NodeID) (simid.SiteID, bool) {
	if len(state.ScanSites) == 0 {
		return "", false
	}
	sites := append([]simstate.ScanSite(nil), state.ScanSites...)
	sort.Slice(sites, func(i, j int) bool {
		iAtHome := sites[i].Node == shipNode
		jAtHome := sites[j].Node == shipNode
		if iAtHome != jAtHome {
			return iAtHome
		}
		return sites[i].ID < sites[j].ID
	})
	return sites[0].ID, true
}

func findScanSite(state *simstate.GameState, id simid.SiteID) simstate.ScanSite {
	for _, s := range state.ScanSites {
		if s.ID == id {
			return s
		}
	}
	return simstate.ScanSite{}
}
