package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/research"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// RunSensorArrays executes every SensorArray module on the station whose
// index is marked eligible, generating its data_kind's diminishing-returns
// amount into the shared research data pool and emitting DataGenerated.
// A sensor array always completes when it runs; there is no input to be
// short of.
func RunSensorArrays(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, runEligible []bool, out *[]events.Envelope) {
	withStation(state, stationID, func(station *simstate.Station) {
		tick := state.Meta.Tick
		for i := range station.Modules {
			if i >= len(runEligible) || !runEligible[i] {
				continue
			}
			mod := &station.Modules[i]
			def, ok := c.ModuleDefByID(mod.DefID)
			if !ok || def.Behavior.Kind != content.BehaviorSensorArray || mod.KindState.Kind != simstate.KindStateSensorArray {
				continue
			}

			sensorDef := def.Behavior.SensorArray
			amount := research.GenerateData(&state.Research, sensorDef.DataKind, sensorDef.ActionKey, &c.Constants)

			*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
				Kind:      events.KindDataGenerated,
				StationID: stationID,
				ModuleID:  mod.ID,
				DataKind:  sensorDef.DataKind,
				Amount:    amount,
			}))

			resetCounter(mod, true)
			applyWear(mod, def, stationID, &state.Counters, tick, out)
		}
	})
}
