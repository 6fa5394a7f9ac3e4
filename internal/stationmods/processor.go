package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/cargo"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/composition"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// RunProcessors executes every Processor module on the station whose
// index is marked eligible, in array order. Each tries its recipes in
// order, applying the first whose input_filter matches the station's
// blended ore inventory (minimum richness per element, minimum total
// kg). A match consumes all mined ore, converts it to Material
// outputs by kg_ratio, and blends the remainder into the station's slag
// lot. No match marks the processor refinery_starved for this tick
// (metrics-only, no event).
func RunProcessors(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, runEligible []bool, out *[]events.Envelope) {
	withStation(state, stationID, func(station *simstate.Station) {
		tick := state.Meta.Tick
		for i := range station.Modules {
			if i >= len(runEligible) || !runEligible[i] {
				continue
			}
			mod := &station.Modules[i]
			def, ok := c.ModuleDefByID(mod.DefID)
			if !ok || def.Behavior.Kind != content.BehaviorProcessor || mod.KindState.Kind != simstate.KindStateProcessor {
				continue
			}

			outcome := runOneProcessor(station, mod, def, c)
			resetCounter(mod, true)

			switch outcome {
			case OutcomeCompleted:
				mod.KindState.Processor.Stalled = false
				mod.KindState.Processor.RefineryStarved = false
				*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
					Kind:      events.KindProcessorRan,
					StationID: stationID,
					ModuleID:  mod.ID,
				}))
				applyWear(mod, def, stationID, &state.Counters, tick, out)
			case OutcomeStalledCapacity:
				mod.KindState.Processor.Stalled = true
				*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
					Kind:      events.KindModuleStalled,
					StationID: stationID,
					ModuleID:  mod.ID,
					Reason:    events.StallReasonCapacity,
				}))
			case OutcomeNoMatch:
				mod.KindState.Processor.RefineryStarved = true
			}
		}
	})
}

// runOneProcessor tries def's recipes in order against station's ore
// inventory and applies the first match, mutating station.Inventory.
func runOneProcessor(station *simstate.Station, mod *simstate.ModuleState, def content.ModuleDef, c *content.GameContent) RunOutcome {
	blended, totalOreKg := blendedOreComposition(station.Inventory)
	if totalOreKg <= 0 {
		return OutcomeNoMatch
	}

	for _, recipe := range def.Behavior.Processor.Recipes {
		if !matchesFilter(blended, totalOreKg, recipe.Input) {
			continue
		}

		consumedKg := totalOreKg
		var outputs []simstate.InventoryItem
		var outputKg float32
		for _, out := range recipe.Outputs {
			kg := consumedKg * out.KgRatio
			outputKg += kg
			outputs = append(outputs, simstate.InventoryItem{
				Kind:    simstate.ItemMaterial,
				Element: out.Element,
				Kg:      kg,
				Quality: out.Quality,
			})
		}
		slagKg := consumedKg - outputKg
		if slagKg < 0 {
			slagKg = 0
		}

		addedVolume := float32(0)
		for _, o := range outputs {
			addedVolume += cargo.ItemVolumeM3(o, c)
		}
		if slagKg > 0 {
			addedVolume += cargo.ItemVolumeM3(simstate.InventoryItem{Kind: simstate.ItemOre, Kg: slagKg, Composition: blended}, c)
		}

		withoutOre := removeMinedOre(station.Inventory)
		currentVolume := cargo.TotalVolumeM3(withoutOre, c)
		if currentVolume+addedVolume > station.CargoCapacityM3 {
			return OutcomeStalledCapacity
		}

		inv := withoutOre
		for _, o := range outputs {
			inv = simstate.MergeMaterialLot(inv, o.Element, o.Kg, o.Quality)
		}
		if slagKg > 0 {
			inv = mergeSlagLot(inv, blended, slagKg)
		}
		station.Inventory = inv
		return OutcomeCompleted
	}

	return OutcomeNoMatch
}

func blendedOreComposition(inventory []simstate.InventoryItem) (composition.Composition, float32) {
	var pairs []composition.WeightedPair
	var total float32
	for _, item := range inventory {
		if !isMinedOre(item) {
			continue
		}
		pairs = append(pairs, composition.WeightedPair{Composition: item.Composition, Kg: item.Kg})
		total += item.Kg
	}
	return composition.Weighted(pairs), total
}

// isMinedOre reports whether item is raw mined ore rather than the
// station's own slag byproduct (both are ItemOre-kind lots).
func isMinedOre(item simstate.InventoryItem) bool {
	if item.Kind != simstate.ItemOre {
		return false
	}
	return item.SourceAsteroid == nil || *item.SourceAsteroid != slagSourceMarker
}

func matchesFilter(blended composition.Composition, totalKg float32, filter content.InputFilter) bool {
	if totalKg < filter.MinKg {
		return false
	}
	for element, minFraction := range filter.MinComposition {
		if blended[element] < minFraction {
			return false
		}
	}
	return true
}

func removeMinedOre(inventory []simstate.InventoryItem) []simstate.InventoryItem {
	kept := make([]simstate.InventoryItem, 0, len(inventory))
	for _, item := range inventory {
		if !isMinedOre(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// slagSourceMarker distinguishes the station's one slag lot from mined
// ore: slag is represented as an Ore-kind item (it carries a
// multi-element Composition like raw ore) whose SourceAsteroid is this
// sentinel id.
const slagSourceMarker = simid.AsteroidID("slag")

// mergeSlagLot blends freshKg of a processor's slag byproduct (using the
// ore's own blended composition as the slag composition) into the
// station's existing slag lot, per §4.6's mass-weighting.
func mergeSlagLot(inventory []simstate.InventoryItem, fresh composition.Composition, freshKg float32) []simstate.InventoryItem {
	marker := slagSourceMarker
	for i := range inventory {
		item := &inventory[i]
		if item.Kind == simstate.ItemOre && item.SourceAsteroid != nil && *item.SourceAsteroid == slagSourceMarker {
			blended := composition.BlendSlag(item.Composition, item.Kg, fresh, freshKg)
			item.Kg += freshKg
			item.Composition = blended
			return inventory
		}
	}
	return append(inventory, simstate.InventoryItem{
		Kind:           simstate.ItemOre,
		Kg:             freshKg,
		SourceAsteroid: &marker,
		Composition:    fresh,
	})
}
