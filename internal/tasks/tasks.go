// Package tasks resolves ship tasks whose eta has arrived: Survey,
// DeepScan, Transit, Mine, and Deposit. Idle tasks are never dispatched
// here — the engine filters them out before resolution.
package tasks

import (
	"fmt"
	"math"
	"sort"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/cargo"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/composition"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/research"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// Duration returns how many ticks a task of this kind takes to resolve
// once started. Idle has no duration (callers must not schedule it).
func Duration(kind simstate.TaskKind, c *content.Constants) uint64 {
	switch kind.Kind {
	case simstate.TaskSurvey:
		return c.SurveyScanTicks
	case simstate.TaskDeepScan:
		return c.DeepScanTicks
	case simstate.TaskMine:
		return kind.DurationTicks
	case simstate.TaskDeposit:
		return c.DepositTicks
	case simstate.TaskTransit:
		return kind.TotalTicks
	default:
		return 0
	}
}

// KindLabel returns a caller-facing label for a task kind, used in
// TaskStarted events.
func KindLabel(kind simstate.TaskKind) string {
	return string(kind.Kind)
}

// Target returns a caller-facing identifier for the task's destination
// entity (site, asteroid, node, or station), used in TaskStarted events.
func Target(kind simstate.TaskKind) string {
	switch kind.Kind {
	case simstate.TaskSurvey:
		return string(kind.Site)
	case simstate.TaskDeepScan:
		return string(kind.Asteroid)
	case simstate.TaskMine:
		return string(kind.Asteroid)
	case simstate.TaskTransit:
		return string(kind.Destination)
	case simstate.TaskDeposit:
		return string(kind.Station)
	default:
		return ""
	}
}

// ResolveSurvey handles a Survey task's completion: it creates a new
// asteroid from the scan site's template, samples its true composition
// and anomaly tags, removes the site, and idles the ship.
func ResolveSurvey(state *simstate.GameState, shipID simid.ShipID, siteID simid.SiteID, c *content.GameContent, rng simrng.Rng, out *[]events.Envelope) {
	tick := state.Meta.Tick

	siteIdx := -1
	for i, site := range state.ScanSites {
		if site.ID == siteID {
			siteIdx = i
			break
		}
	}
	if siteIdx == -1 {
		idle(state, shipID)
		return
	}
	site := state.ScanSites[siteIdx]

	var template content.AsteroidTemplateDef
	found := false
	for _, t := range c.AsteroidTemplates {
		if t.ID == site.TemplateID {
			template, found = t, true
			break
		}
	}
	if !found {
		idle(state, shipID)
		return
	}

	massRange := c.Constants.AsteroidMassMaxKg - c.Constants.AsteroidMassMinKg
	mass := c.Constants.AsteroidMassMinKg + rng.Float32()*massRange

	elements := sortedKeys(template.CompositionRanges)
	rawComposition := make(map[string]float32, len(elements))
	var total float32
	for _, element := range elements {
		r := template.CompositionRanges[element]
		v := r.Min + rng.Float32()*(r.Max-r.Min)
		rawComposition[element] = v
		total += v
	}
	trueComposition := make(map[string]float32, len(elements))
	if total > 0 {
		for _, element := range elements {
			trueComposition[element] = rawComposition[element] / total
		}
	}

	var tags []simstate.TagConfidence
	for _, tag := range template.AnomalyTags {
		if rng.Float32() < c.Constants.SurveyTagDetectionProbability {
			tags = append(tags, simstate.TagConfidence{Tag: tag, Confidence: c.Constants.SurveyTagDetectionProbability})
		}
	}

	asteroidID := simid.AsteroidID(fmt.Sprintf("asteroid_%06d", state.Counters.NextAsteroidID))
	state.Counters.NextAsteroidID++

	asteroid := simstate.Asteroid{
		ID:              asteroidID,
		Node:            site.Node,
		MassKg:          mass,
		TrueComposition: trueComposition,
		Knowledge:       simstate.AsteroidKnowledge{Tags: tags},
	}
	state.Asteroids[asteroidID] = asteroid

	state.ScanSites = append(state.ScanSites[:siteIdx], state.ScanSites[siteIdx+1:]...)

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:       events.KindAsteroidDiscovered,
		AsteroidID: asteroidID,
	}))

	evTags := make([]events.TagConfidence, len(tags))
	for i, t := range tags {
		evTags[i] = events.TagConfidence{Tag: t.Tag, Confidence: t.Confidence}
	}
	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind: events.KindScanResult,
		Tags: evTags,
	}))

	amount := research.GenerateData(&state.Research, content.DataKindScanData, "survey", &c.Constants)
	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:     events.KindDataGenerated,
		DataKind: content.DataKindScanData,
		Amount:   amount,
	}))

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:   events.KindTaskCompleted,
		ShipID: shipID,
	}))

	idle(state, shipID)
}

// ResolveDeepScan handles a DeepScan task's completion: it maps the
// asteroid's composition with Gaussian noise applied per the unlocked
// DeepScanCompositionNoise effect (sigma 0 means exact), then idles the
// ship. The unlock is re-checked here since it may have been revoked
// between command application and resolution (it cannot be today, but
// the re-check matches the command-application gate).
func ResolveDeepScan(state *simstate.GameState, shipID simid.ShipID, asteroidID simid.AsteroidID, c *content.GameContent, rng simrng.Rng, out *[]events.Envelope) {
	tick := state.Meta.Tick

	if !research.DeepScanEnabled(&state.Research, c) {
		idle(state, shipID)
		return
	}

	asteroid, ok := state.Asteroids[asteroidID]
	if !ok {
		idle(state, shipID)
		return
	}

	sigma := research.DeepScanNoiseSigma(&state.Research, c)
	elements := sortedKeys(asteroid.TrueComposition)
	noisy := make(map[string]float32, len(elements))
	var total float32
	for _, element := range elements {
		v := asteroid.TrueComposition[element]
		if sigma > 0 {
			v = simrng.Gaussian(rng, v, sigma)
		}
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		noisy[element] = v
		total += v
	}
	mapped := make(composition.Composition, len(elements))
	if total > 0 {
		for _, element := range elements {
			mapped[element] = noisy[element] / total
		}
	}

	asteroid.Knowledge.Composition = &mapped
	state.Asteroids[asteroidID] = asteroid

	amount := research.GenerateData(&state.Research, content.DataKindScanData, "deep_scan", &c.Constants)
	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:     events.KindDataGenerated,
		DataKind: content.DataKindScanData,
		Amount:   amount,
	}))

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:   events.KindTaskCompleted,
		ShipID: shipID,
	}))

	idle(state, shipID)
}

// ResolveTransit handles a Transit task's completion: it moves the ship
// to its destination node and, if a follow-on task kind was attached,
// starts it immediately in the same tick.
func ResolveTransit(state *simstate.GameState, shipID simid.ShipID, destination simid.NodeID, then *simstate.TaskKind, c *content.Constants, out *[]events.Envelope) {
	tick := state.Meta.Tick

	ship, ok := state.Ships[shipID]
	if !ok {
		return
	}
	ship.LocationNode = destination

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:   events.KindShipArrived,
		ShipID: shipID,
		Node:   destination,
	}))

	if then != nil && then.Kind != simstate.TaskIdle {
		duration := Duration(*then, c)
		ship.Task = &simstate.TaskState{
			Kind:        *then,
			StartedTick: tick,
			EtaTick:     tick + duration,
		}
		state.Ships[shipID] = ship
		*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
			Kind:         events.KindTaskStarted,
			ShipID:       shipID,
			TaskKindName: KindLabel(*then),
			Target:       Target(*then),
		}))
		return
	}

	ship.Task = &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}}
	state.Ships[shipID] = ship
}

// ResolveMine handles a Mine task's completion: it extracts up to
// mining_rate_kg_per_tick * duration_ticks from the asteroid (capped at
// its remaining mass), merges an Ore lot into the ship's inventory, and
// removes the asteroid if fully depleted.
func ResolveMine(state *simstate.GameState, shipID simid.ShipID, asteroidID simid.AsteroidID, durationTicks uint64, c *content.Constants, out *[]events.Envelope) {
	tick := state.Meta.Tick

	ship, ok := state.Ships[shipID]
	if !ok {
		return
	}

	asteroid, ok := state.Asteroids[asteroidID]
	if !ok {
		idle(state, shipID)
		return
	}

	requested := c.MiningRateKgPerTick * float32(durationTicks)
	extracted := requested
	if asteroid.MassKg < extracted {
		extracted = asteroid.MassKg
	}

	composition := make(map[string]float32, len(asteroid.TrueComposition))
	for k, v := range asteroid.TrueComposition {
		composition[k] = v
	}
	asteroidIDCopy := asteroidID
	ship.Inventory = mergeOreLot(ship.Inventory, simstate.InventoryItem{
		Kind:           simstate.ItemOre,
		Kg:             extracted,
		SourceAsteroid: &asteroidIDCopy,
		Composition:    composition,
	})
	state.Ships[shipID] = ship

	asteroid.MassKg -= extracted
	if asteroid.MassKg <= 0 {
		delete(state.Asteroids, asteroidID)
	} else {
		state.Asteroids[asteroidID] = asteroid
	}

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:     events.KindOreMined,
		ShipID:   shipID,
		KgAmount: extracted,
	}))
	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:   events.KindTaskCompleted,
		ShipID: shipID,
	}))

	idle(state, shipID)
}

// ResolveDeposit handles a Deposit task's completion: if the station has
// free cargo volume for the ship's inventory, every lot is merged into
// the station (materials by element+quality, ore kept distinct by
// source asteroid, components by component id+quality) and the ship's
// hold is emptied. Otherwise the transfer is blocked and the ship keeps
// its cargo.
func ResolveDeposit(state *simstate.GameState, shipID simid.ShipID, stationID simid.StationID, c *content.GameContent, out *[]events.Envelope) {
	tick := state.Meta.Tick

	ship, ok := state.Ships[shipID]
	if !ok {
		return
	}
	station, ok := state.Stations[stationID]
	if !ok {
		idle(state, shipID)
		return
	}

	shipVolume := cargo.TotalVolumeM3(ship.Inventory, c)
	stationVolume := cargo.TotalVolumeM3(station.Inventory, c)
	freeVolume := station.CargoCapacityM3 - stationVolume

	if shipVolume > freeVolume {
		*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
			Kind:      events.KindDepositBlocked,
			ShipID:    shipID,
			StationID: stationID,
			Blocked:   true,
		}))
		idle(state, shipID)
		return
	}

	for _, item := range ship.Inventory {
		switch item.Kind {
		case simstate.ItemMaterial:
			station.Inventory = simstate.MergeMaterialLot(station.Inventory, item.Element, item.Kg, item.Quality)
		case simstate.ItemComponent:
			station.Inventory = simstate.MergeComponentLot(station.Inventory, item.ComponentID, item.Count, item.Quality)
		case simstate.ItemOre:
			station.Inventory = mergeOreLot(station.Inventory, item)
		}
	}
	station.CachedInventoryVolumeM3 = nil
	state.Stations[stationID] = station

	ship.Inventory = nil
	state.Ships[shipID] = ship

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:   events.KindTaskCompleted,
		ShipID: shipID,
	}))

	idle(state, shipID)
}

// mergeOreLot merges an Ore lot into inventory by exact source_asteroid
// match, mass-weighting the composition of the combined lot.
func mergeOreLot(inventory []simstate.InventoryItem, fresh simstate.InventoryItem) []simstate.InventoryItem {
	for i := range inventory {
		item := &inventory[i]
		if item.Kind != simstate.ItemOre {
			continue
		}
		if item.SourceAsteroid == nil || fresh.SourceAsteroid == nil || *item.SourceAsteroid != *fresh.SourceAsteroid {
			continue
		}
		totalKg := item.Kg + fresh.Kg
		if totalKg <= 0 {
			item.Kg = totalKg
			return inventory
		}
		blended := make(map[string]float32)
		for element, frac := range item.Composition {
			blended[element] += frac * item.Kg
		}
		for element, frac := range fresh.Composition {
			blended[element] += frac * fresh.Kg
		}
		for element := range blended {
			blended[element] /= totalKg
		}
		item.Kg = totalKg
		item.Composition = blended
		return inventory
	}
	return append(inventory, fresh)
}

func idle(state *simstate.GameState, shipID simid.ShipID) {
	ship, ok := state.Ships[shipID]
	if !ok {
		return
	}
	ship.Task = &simstate.TaskState{Kind: simstate.TaskKind{Kind: simstate.TaskIdle}}
	state.Ships[shipID] = ship
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MiningDuration computes ceil(mass_kg / mining_rate_kg_per_tick), the
// canonical Mine task duration when an autopilot wants to fully deplete
// an asteroid in one task.
func MiningDuration(massKg float32, c *content.Constants) uint64 {
	if c.MiningRateKgPerTick <= 0 {
		return 0
	}
	return uint64(math.Ceil(float64(massKg / c.MiningRateKgPerTick)))
}
