package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

const repairKitComponent = simid.ComponentID("repair_kit")

// RunMaintenance executes every Maintenance module on the station whose
// index is marked eligible. Each picks the most-worn other module at or
// above the behavior's repair_threshold (ties broken by ascending module
// id), consumes repair_kit_cost repair kits, and reduces that module's wear.
// No eligible target or insufficient kits leaves the maintenance module's
// run counter reset with no repair and no event, mirroring a should_run
// attempt that found nothing to do.
func RunMaintenance(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, runEligible []bool, out *[]events.Envelope) {
	withStation(state, stationID, func(station *simstate.Station) {
		tick := state.Meta.Tick
		for i := range station.Modules {
			if i >= len(runEligible) || !runEligible[i] {
				continue
			}
			mod := &station.Modules[i]
			def, ok := c.ModuleDefByID(mod.DefID)
			if !ok || def.Behavior.Kind != content.BehaviorMaintenance || mod.KindState.Kind != simstate.KindStateMaintenance {
				continue
			}

			ran := runOneMaintenance(state, station, mod.ID, def, stationID, tick, out)
			resetCounter(mod, true)
			if ran {
				applyWear(mod, def, stationID, &state.Counters, tick, out)
			}
		}
	})
}

// runOneMaintenance selects a repair target, consumes a repair kit, and
// applies wear reduction. Returns false if no target qualified or no kit
// was available.
func runOneMaintenance(state *simstate.GameState, station *simstate.Station, selfID simid.ModuleInstanceID, def content.ModuleDef, stationID simid.StationID, tick uint64, out *[]events.Envelope) bool {
	maint := def.Behavior.Maintenance

	targetIdx := selectMaintenanceTarget(station.Modules, selfID, maint.RepairThreshold)
	if targetIdx < 0 {
		return false
	}

	if !consumeRepairKit(station, maint.RepairKitCost) {
		return false
	}
	station.Inventory = gcZeroComponentStacks(station.Inventory)

	target := &station.Modules[targetIdx]
	wearBefore := target.Wear
	target.Wear -= maint.WearReductionPerRun
	if target.Wear < 0 {
		target.Wear = 0
	}
	wearAfter := target.Wear

	if !target.Enabled && wearAfter < 1.0 {
		target.Enabled = true
	}

	*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
		Kind:          events.KindMaintenanceRan,
		StationID:     stationID,
		Target:        string(target.ID),
		ModuleID:      selfID,
		WearBefore:    wearBefore,
		WearAfter:     wearAfter,
		KitsRemaining: repairKitCount(station.Inventory),
	}))

	return true
}

// selectMaintenanceTarget returns the index of the most-worn other module
// at or above threshold, ties broken by ascending module id, or -1.
func selectMaintenanceTarget(modules []simstate.ModuleState, selfID simid.ModuleInstanceID, threshold float32) int {
	best := -1
	for i := range modules {
		m := &modules[i]
		if m.ID == selfID || m.Wear < threshold || m.Wear <= 0 {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		if m.Wear > modules[best].Wear || (m.Wear == modules[best].Wear && m.ID < modules[best].ID) {
			best = i
		}
	}
	return best
}

func consumeRepairKit(station *simstate.Station, cost uint32) bool {
	for i := range station.Inventory {
		item := &station.Inventory[i]
		if item.Kind == simstate.ItemComponent && item.ComponentID == repairKitComponent && item.Count >= cost {
			item.Count -= cost
			return true
		}
	}
	return false
}

func gcZeroComponentStacks(inventory []simstate.InventoryItem) []simstate.InventoryItem {
	kept := make([]simstate.InventoryItem, 0, len(inventory))
	for _, item := range inventory {
		if item.Kind == simstate.ItemComponent && item.Count == 0 {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func repairKitCount(inventory []simstate.InventoryItem) uint32 {
	var total uint32
	for _, item := range inventory {
		if item.Kind == simstate.ItemComponent && item.ComponentID == repairKitComponent {
			total += item.Count
		}
	}
	return total
}
