package stationmods

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// RunStation ticks one station: computes its power budget (which also
// covers SolarArray generation), then runs each remaining behavior kind in
// the fixed order Processor, Assembler, Sensor, Maintenance. Each stage only
// sees modules the power budget marked eligible this tick.
func RunStation(state *simstate.GameState, stationID simid.StationID, c *content.GameContent, out *[]events.Envelope) {
	runEligible := ComputePowerBudget(state, stationID, c, out)
	RunProcessors(state, stationID, c, runEligible, out)
	RunAssemblers(state, stationID, c, runEligible, out)
	RunSensorArrays(state, stationID, c, runEligible, out)
	RunMaintenance(state, stationID, c, runEligible, out)
}
