package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/cargo"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// RunAssemblers executes every Assembler module on the station whose index
// is marked eligible, in array order. Each checks whether the station holds
// every input material at the required kg and minimum quality; if so it
// consumes those exact kg amounts and produces one component lot. A missing
// or under-quality input leaves the module idle for the tick with no event.
func RunAssemblers(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, runEligible []bool, out *[]events.Envelope) {
	withStation(state, stationID, func(station *simstate.Station) {
		tick := state.Meta.Tick
		for i := range station.Modules {
			if i >= len(runEligible) || !runEligible[i] {
				continue
			}
			mod := &station.Modules[i]
			def, ok := c.ModuleDefByID(mod.DefID)
			if !ok || def.Behavior.Kind != content.BehaviorAssembler || mod.KindState.Kind != simstate.KindStateAssembler {
				continue
			}

			outcome := runOneAssembler(station, def, c)
			resetCounter(mod, true)

			switch outcome {
			case OutcomeCompleted:
				mod.KindState.Assembler.Stalled = false
				*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
					Kind:      events.KindAssemblerRan,
					StationID: stationID,
					ModuleID:  mod.ID,
				}))
				applyWear(mod, def, stationID, &state.Counters, tick, out)
			case OutcomeStalledCapacity:
				mod.KindState.Assembler.Stalled = true
				*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
					Kind:      events.KindModuleStalled,
					StationID: stationID,
					ModuleID:  mod.ID,
					Reason:    events.StallReasonCapacity,
				}))
			case OutcomeNoMatch:
				// insufficient material this tick; not tracked as a flag.
			}
		}
	})
}

// runOneAssembler checks def's single recipe against station's Material
// inventory and applies it if every input is satisfied, mutating
// station.Inventory.
func runOneAssembler(station *simstate.Station, def content.ModuleDef, c *content.GameContent) RunOutcome {
	recipe := def.Behavior.Assembler.Recipe

	for _, in := range recipe.Inputs {
		if !hasSufficientMaterial(station.Inventory, in.Element, in.Kg, in.MinQuality) {
			return OutcomeNoMatch
		}
	}

	inv := make([]simstate.InventoryItem, len(station.Inventory))
	copy(inv, station.Inventory)
	for _, in := range recipe.Inputs {
		inv = consumeMaterial(inv, in.Element, in.Kg, in.MinQuality)
	}

	produced := simstate.InventoryItem{
		Kind:        simstate.ItemComponent,
		ComponentID: recipe.ComponentID,
		Count:       1,
		Quality:     recipe.Quality,
	}
	addedVolume := cargo.ItemVolumeM3(produced, c)

	currentVolume := cargo.TotalVolumeM3(inv, c)
	if currentVolume+addedVolume > station.CargoCapacityM3 {
		return OutcomeStalledCapacity
	}

	station.Inventory = simstate.MergeComponentLot(inv, recipe.ComponentID, 1, recipe.Quality)
	return OutcomeCompleted
}

// hasSufficientMaterial reports whether inventory holds at least kg of
// element at quality >= minQuality, summed across every matching lot.
func hasSufficientMaterial(inventory []simstate.InventoryItem, element string, kg float32, minQuality float32) bool {
	var total float32
	for _, item := range inventory {
		if item.Kind == simstate.ItemMaterial && item.Element == element && item.Quality >= minQuality {
			total += item.Kg
		}
	}
	return total >= kg
}

// consumeMaterial removes kg of element (quality >= minQuality) from
// inventory, draining matching lots in order and dropping any that reach
// zero.
func consumeMaterial(inventory []simstate.InventoryItem, element string, kg float32, minQuality float32) []simstate.InventoryItem {
	remaining := kg
	out := make([]simstate.InventoryItem, 0, len(inventory))
	for _, item := range inventory {
		if remaining > 0 && item.Kind == simstate.ItemMaterial && item.Element == element && item.Quality >= minQuality {
			if item.Kg <= remaining {
				remaining -= item.Kg
				continue
			}
			item.Kg -= remaining
			remaining = 0
		}
		out = append(out, item)
	}
	return out
}
