package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/wear"
)

// ComputePowerBudget is the per-station, per-tick pre-step: it sums
// generated_kw across enabled SolarArray modules (base output scaled by
// the node's solar intensity and the array's wear efficiency), and
// consumed_kw across enabled non-solar modules whose should_run is true
// this tick. If consumption exceeds generation, modules marked as
// running this tick are deactivated in reverse module-index order —
// each one's power_stalled set true and a ModuleStalled{Power} emitted —
// until the deficit clears. Returns, per module index, whether the
// module is eligible to execute its behavior this tick.
func ComputePowerBudget(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, out *[]events.Envelope) []bool {
	station, ok := state.Stations[stationID]
	if !ok {
		return nil
	}
	node, _ := c.SolarSystem.Node(station.LocationNode)

	runEligible := make([]bool, len(station.Modules))
	var generated, consumed float32

	for i := range station.Modules {
		mod := &station.Modules[i]
		mod.PowerStalled = false

		def, ok := c.ModuleDefByID(mod.DefID)
		if !ok {
			continue
		}
		if def.Behavior.Kind == content.BehaviorSolarArray {
			if mod.Enabled {
				generated += def.Behavior.SolarArray.BaseOutputKw * node.SolarIntensity * wear.Efficiency(mod.Wear, &c.Constants)
			}
			continue
		}
		if shouldRun(*mod, def) {
			runEligible[i] = true
			consumed += def.PowerConsumptionPerRun
		} else {
			resetCounter(mod, false)
		}
	}

	deficit := consumed - generated
	if deficit < 0 {
		deficit = 0
	}

	// The reported budget reflects the pre-deactivation totals; only
	// run-eligibility is affected by the stalling cascade below.
	station.Power = simstate.PowerState{
		GeneratedKw: generated,
		ConsumedKw:  consumed,
		DeficitKw:   deficit,
	}
	*out = append(*out, events.Emit(&state.Counters, state.Meta.Tick, events.Event{
		Kind:      events.KindPowerConsumed,
		StationID: stationID,
		Amount:    consumed,
	}))

	remaining := deficit
	tick := state.Meta.Tick
	for i := len(station.Modules) - 1; i >= 0 && remaining > 0; i-- {
		if !runEligible[i] {
			continue
		}
		def, ok := c.ModuleDefByID(station.Modules[i].DefID)
		if !ok {
			continue
		}
		runEligible[i] = false
		station.Modules[i].PowerStalled = true
		resetCounter(&station.Modules[i], false)
		remaining -= def.PowerConsumptionPerRun
		*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
			Kind:      events.KindModuleStalled,
			StationID: stationID,
			ModuleID:  station.Modules[i].ID,
			Reason:    events.StallReasonPower,
		}))
	}

	state.Stations[stationID] = station

	return runEligible
}
