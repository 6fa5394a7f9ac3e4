// Package stationmods runs a station's modules for one tick: the power
// budget pre-step, then each behavior kind in the fixed order Solar →
// Processor → Assembler → Sensor → Maintenance.
package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// withStation fetches station by id, runs fn against a pointer to it, and
// writes the (possibly mutated) value back to the map. Station.Modules is
// a slice, so index-level field mutation inside fn is visible without
// this write-back, but value fields like Power need it. Returns false if
// the station doesn't exist.
func withStation(state *simstate.GameState, id simid.StationID, fn func(*simstate.Station)) bool {
	station, ok := state.Stations[id]
	if !ok {
		return false
	}
	fn(&station)
	state.Stations[id] = station
	return true
}

// intervalTicks returns the configured run cadence for a module's
// behavior kind.
func intervalTicks(def content.ModuleDef) uint64 {
	switch def.Behavior.Kind {
	case content.BehaviorProcessor:
		return def.Behavior.Processor.ProcessingIntervalTicks
	case content.BehaviorAssembler:
		return def.Behavior.Assembler.ProcessingIntervalTicks
	case content.BehaviorSensorArray:
		return def.Behavior.SensorArray.ScanIntervalTicks
	case content.BehaviorMaintenance:
		return def.Behavior.Maintenance.IntervalTicks
	default:
		return 0
	}
}

// ticksSinceLastRun reads the per-kind counter out of a module's tagged
// kind_state.
func ticksSinceLastRun(mod simstate.ModuleState) uint64 {
	switch mod.KindState.Kind {
	case simstate.KindStateProcessor:
		return mod.KindState.Processor.TicksSinceLastRun
	case simstate.KindStateAssembler:
		return mod.KindState.Assembler.TicksSinceLastRun
	case simstate.KindStateSensorArray:
		return mod.KindState.SensorArray.TicksSinceLastRun
	case simstate.KindStateMaintenance:
		return mod.KindState.Maintenance.TicksSinceLastRun
	default:
		return 0
	}
}

// shouldRun reports whether a non-solar module is due to run this tick:
// enabled, not power-stalled, and its interval has elapsed.
func shouldRun(mod simstate.ModuleState, def content.ModuleDef) bool {
	if !mod.Enabled || mod.PowerStalled {
		return false
	}
	return ticksSinceLastRun(mod) >= intervalTicks(def)
}

// resetCounter zeroes a module's per-kind run counter (called whenever
// should_run gated a run attempt this tick, success or not) or
// increments it otherwise.
func resetCounter(mod *simstate.ModuleState, ran bool) {
	switch mod.KindState.Kind {
	case simstate.KindStateProcessor:
		if ran {
			mod.KindState.Processor.TicksSinceLastRun = 0
		} else {
			mod.KindState.Processor.TicksSinceLastRun++
		}
	case simstate.KindStateAssembler:
		if ran {
			mod.KindState.Assembler.TicksSinceLastRun = 0
		} else {
			mod.KindState.Assembler.TicksSinceLastRun++
		}
	case simstate.KindStateSensorArray:
		if ran {
			mod.KindState.SensorArray.TicksSinceLastRun = 0
		} else {
			mod.KindState.SensorArray.TicksSinceLastRun++
		}
	case simstate.KindStateMaintenance:
		if ran {
			mod.KindState.Maintenance.TicksSinceLastRun = 0
		} else {
			mod.KindState.Maintenance.TicksSinceLastRun++
		}
	}
}

// applyWear accumulates wear_per_run on a successful module execution,
// emitting WearAccumulated, and auto-disables the module (emitting
// ModuleAutoDisabled) once wear reaches 1.0.
func applyWear(mod *simstate.ModuleState, def content.ModuleDef, stationID simid.StationID, counters *simstate.Counters, tick uint64, out *[]events.Envelope) {
	before := mod.Wear
	mod.Wear += def.WearPerRun
	if mod.Wear > 1.0 {
		mod.Wear = 1.0
	}
	after := mod.Wear

	*out = append(*out, events.Emit(counters, tick, events.Event{
		Kind:       events.KindWearAccumulated,
		StationID:  stationID,
		ModuleID:   mod.ID,
		WearBefore: before,
		WearAfter:  after,
	}))

	if mod.Wear >= 1.0 && mod.Enabled {
		mod.Enabled = false
		*out = append(*out, events.Emit(counters, tick, events.Event{
			Kind:      events.KindModuleAutoDisabled,
			StationID: stationID,
			ModuleID:  mod.ID,
		}))
	}
}
