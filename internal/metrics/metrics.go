// Package metrics computes a pure, point-in-time snapshot over a
// GameState: storage utilization, fleet phase counts, discovery counts,
// research progress, and station module health. Nothing here mutates
// state.
package metrics

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/cargo"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// SnapshotVersion is bumped whenever Snapshot's shape changes in a way
// that would break a consumer relying on field presence.
const SnapshotVersion = 1

// FleetPhaseCounts tallies ships by their current task kind.
type FleetPhaseCounts struct {
	Idle       uint32
	Transiting uint32
	Surveying  uint32
	DeepScanning uint32
	Mining     uint32
	Depositing uint32
}

// StorageUtilization reports cargo volume used vs. capacity for ships and
// stations combined.
type StorageUtilization struct {
	ShipUsedM3      float32
	ShipCapacityM3  float32
	StationUsedM3   float32
	StationCapacityM3 float32
}

// ModuleHealth aggregates station-module wear and operational counts.
type ModuleHealth struct {
	TotalModules      uint32
	DisabledModules   uint32
	DegradedModules   uint32
	CriticalModules   uint32
	RefineriesActive  uint32
	RefineriesStarved uint32
	ModulesStalled    uint32
	RepairKitsHeld    uint32
}

// Snapshot is the pure point-in-time metrics view over a GameState.
type Snapshot struct {
	MetricsVersion int
	Tick           uint64
	ScanSiteCount  uint32
	AsteroidCount  uint32
	TechsUnlocked  uint32
	Fleet          FleetPhaseCounts
	Storage        StorageUtilization
	Modules        ModuleHealth
}

// Compute aggregates state into a Snapshot. Pure: it never mutates state
// or content.
func Compute(state *simstate.GameState, c *content.GameContent) Snapshot {
	snap := Snapshot{
		MetricsVersion: SnapshotVersion,
		Tick:           state.Meta.Tick,
		ScanSiteCount:  uint32(len(state.ScanSites)),
		AsteroidCount:  uint32(len(state.Asteroids)),
		TechsUnlocked:  uint32(len(state.Research.Unlocked)),
	}

	for _, ship := range state.Ships {
		snap.Storage.ShipUsedM3 += cargo.TotalVolumeM3(ship.Inventory, c)
		snap.Storage.ShipCapacityM3 += ship.CargoCapacityM3
		tallyFleetPhase(&snap.Fleet, ship.Task)
	}

	for _, station := range state.Stations {
		snap.Storage.StationUsedM3 += cargo.TotalVolumeM3(station.Inventory, c)
		snap.Storage.StationCapacityM3 += station.CargoCapacityM3
		tallyModuleHealth(&snap.Modules, &station, c)
	}

	return snap
}

func tallyFleetPhase(fleet *FleetPhaseCounts, task *simstate.TaskState) {
	if task == nil {
		fleet.Idle++
		return
	}
	switch task.Kind.Kind {
	case simstate.TaskTransit:
		fleet.Transiting++
	case simstate.TaskSurvey:
		fleet.Surveying++
	case simstate.TaskDeepScan:
		fleet.DeepScanning++
	case simstate.TaskMine:
		fleet.Mining++
	case simstate.TaskDeposit:
		fleet.Depositing++
	default:
		fleet.Idle++
	}
}

func tallyModuleHealth(health *ModuleHealth, station *simstate.Station, c *content.GameContent) {
	for _, mod := range station.Modules {
		health.TotalModules++
		if !mod.Enabled {
			health.DisabledModules++
		}
		if mod.Wear >= c.Constants.WearBandCriticalThreshold {
			health.CriticalModules++
		} else if mod.Wear >= c.Constants.WearBandDegradedThreshold {
			health.DegradedModules++
		}
		if mod.PowerStalled {
			health.ModulesStalled++
		}

		switch mod.KindState.Kind {
		case simstate.KindStateProcessor:
			if mod.KindState.Processor.Stalled {
				health.ModulesStalled++
			}
			if mod.KindState.Processor.RefineryStarved {
				health.RefineriesStarved++
			} else if mod.Enabled {
				health.RefineriesActive++
			}
		case simstate.KindStateAssembler:
			if mod.KindState.Assembler.Stalled {
				health.ModulesStalled++
			}
		}
	}

	for _, item := range station.Inventory {
		if item.Kind == simstate.ItemComponent && item.ComponentID == "repair_kit" {
			health.RepairKitsHeld += item.Count
		}
	}
}
