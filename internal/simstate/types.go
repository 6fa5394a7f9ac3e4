// Package simstate holds the mutable per-run world state: ships, stations,
// asteroids, scan sites, research, and the monotonic counters the core uses
// to mint ids. Nothing outside internal/engine and its subordinate packages
// mutates a GameState directly.
package simstate

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/composition"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
)

// MetaState carries run-level bookkeeping that isn't entity state.
type MetaState struct {
	Tick           uint64
	Seed           uint64
	SchemaVersion  uint32
	ContentVersion string
}

// ScanSite is an undiscovered survey target.
type ScanSite struct {
	ID         simid.SiteID
	Node       simid.NodeID
	TemplateID string
}

// TagConfidence pairs a detected anomaly tag with the confidence a survey
// assigned it.
type TagConfidence struct {
	Tag        content.AnomalyTag
	Confidence float32
}

// AsteroidKnowledge is what has been learned about an asteroid so far.
// Composition is nil until a DeepScan maps it.
type AsteroidKnowledge struct {
	Tags        []TagConfidence
	Composition *composition.Composition
}

// Asteroid is a discovered mineable body.
type Asteroid struct {
	ID              simid.AsteroidID
	Node            simid.NodeID
	MassKg          float32
	TrueComposition composition.Composition
	Knowledge       AsteroidKnowledge
}

// TaskKindTag discriminates TaskKind variants.
type TaskKindTag string

const (
	TaskIdle     TaskKindTag = "idle"
	TaskTransit  TaskKindTag = "transit"
	TaskSurvey   TaskKindTag = "survey"
	TaskDeepScan TaskKindTag = "deep_scan"
	TaskMine     TaskKindTag = "mine"
	TaskDeposit  TaskKindTag = "deposit"
)

// TaskKind is a tagged union over a ship's possible task kinds. Only the
// fields relevant to Kind are populated; Then is the one level of boxed
// recursion Transit supports (spec.md's Design Notes forbid deeper
// nesting).
type TaskKind struct {
	Kind TaskKindTag

	// Transit
	Destination simid.NodeID
	TotalTicks  uint64
	Then        *TaskKind

	// Survey
	Site simid.SiteID

	// DeepScan / Mine share Asteroid; Mine additionally uses DurationTicks.
	Asteroid      simid.AsteroidID
	DurationTicks uint64

	// Deposit
	Station simid.StationID
	Blocked bool
}

// TaskState wraps a TaskKind with its scheduling window.
type TaskState struct {
	Kind        TaskKind
	StartedTick uint64
	EtaTick     uint64
}

// InventoryItemKind discriminates InventoryItem variants.
type InventoryItemKind string

const (
	ItemOre       InventoryItemKind = "ore"
	ItemMaterial  InventoryItemKind = "material"
	ItemComponent InventoryItemKind = "component"
)

// InventoryItem is a tagged union over the three cargo lot kinds a ship or
// station can hold.
type InventoryItem struct {
	Kind InventoryItemKind

	// Ore
	Kg              float32
	SourceAsteroid  *simid.AsteroidID
	Composition     composition.Composition

	// Material (Kg shared with Ore)
	Element string
	Quality float32
	Thermal *float32

	// Component
	ComponentID simid.ComponentID
	Count       uint32
}

// Ship is a mobile unit with a cargo hold and at most one active task.
type Ship struct {
	ID              simid.ShipID
	LocationNode    simid.NodeID
	Owner           simid.PrincipalID
	Inventory       []InventoryItem
	CargoCapacityM3 float32
	Task            *TaskState
}

// PowerState is a station's per-tick power budget result.
type PowerState struct {
	GeneratedKw float32
	ConsumedKw  float32
	DeficitKw   float32
}

// ProcessorState is the Processor module's per-instance counters.
type ProcessorState struct {
	ThresholdKg       float32
	TicksSinceLastRun uint64
	Stalled           bool
	RefineryStarved   bool
}

// AssemblerState is the Assembler module's per-instance counters.
type AssemblerState struct {
	TicksSinceLastRun uint64
	Stalled           bool
}

// SensorArrayState is the SensorArray module's per-instance counters.
type SensorArrayState struct {
	TicksSinceLastRun uint64
}

// SolarArrayState is the SolarArray module's per-instance state (currently
// empty; generation is computed fresh each tick in the power budget step).
type SolarArrayState struct{}

// MaintenanceState is the Maintenance module's per-instance counters.
type MaintenanceState struct {
	TicksSinceLastRun uint64
}

// ModuleKindStateKind discriminates ModuleKindState variants.
type ModuleKindStateKind string

const (
	KindStateProcessor   ModuleKindStateKind = "processor"
	KindStateAssembler   ModuleKindStateKind = "assembler"
	KindStateSensorArray ModuleKindStateKind = "sensor_array"
	KindStateSolarArray  ModuleKindStateKind = "solar_array"
	KindStateMaintenance ModuleKindStateKind = "maintenance"
)

// ModuleKindState is a tagged union matching the owning module's behavior.
type ModuleKindState struct {
	Kind        ModuleKindStateKind
	Processor   *ProcessorState
	Assembler   *AssemblerState
	SensorArray *SensorArrayState
	SolarArray  *SolarArrayState
	Maintenance *MaintenanceState
}

// ModuleState is one station module instance.
type ModuleState struct {
	ID           simid.ModuleInstanceID
	DefID        string
	Enabled      bool
	KindState    ModuleKindState
	Wear         float32
	PowerStalled bool
	Thermal      *float32
}

// Station holds modules, cargo, and the power budget computed each tick.
type Station struct {
	ID                      simid.StationID
	LocationNode            simid.NodeID
	Inventory               []InventoryItem
	CargoCapacityM3         float32
	Modules                 []ModuleState
	Power                   PowerState
	PowerAvailablePerTick   float32
	CachedInventoryVolumeM3 *float32
}

// ResearchState tracks unlocked techs, the shared data pool, per-tech
// evidence, and per-action diminishing-returns counters.
type ResearchState struct {
	Unlocked     map[simid.TechID]bool
	DataPool     map[content.DataKind]float32
	Evidence     map[simid.TechID]float32
	ActionCounts map[string]uint32
}

// Counters holds the monotonically increasing id sequences the core owns.
// Only the core mutates these; NextCommandID is unused by the core itself
// (command ids are the caller's concern, see SPEC_FULL.md §9).
type Counters struct {
	NextEventID          uint64
	NextCommandID        uint64
	NextAsteroidID       uint64
	NextLotID            uint64
	NextModuleInstanceID uint64
}

// GameState is the full mutable world state for one run.
type GameState struct {
	Meta      MetaState
	ScanSites []ScanSite
	Asteroids map[simid.AsteroidID]Asteroid
	Ships     map[simid.ShipID]Ship
	Stations  map[simid.StationID]Station
	Research  ResearchState
	Counters  Counters
}

// NewResearchState returns an empty, properly initialized ResearchState.
func NewResearchState() ResearchState {
	return ResearchState{
		Unlocked:     make(map[simid.TechID]bool),
		DataPool:     make(map[content.DataKind]float32),
		Evidence:     make(map[simid.TechID]float32),
		ActionCounts: make(map[string]uint32),
	}
}
