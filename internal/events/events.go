// Package events defines the event and command envelope types the core
// exchanges with its callers, plus the monotonic id/emit helper the engine
// uses to produce them.
package events

import (
	"fmt"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// Level controls whether debug-only events (ResearchRoll) are emitted.
type Level int

const (
	LevelNormal Level = iota
	LevelDebug
)

// Kind discriminates Event variants.
type Kind string

const (
	KindTaskStarted        Kind = "task_started"
	KindTaskCompleted      Kind = "task_completed"
	KindAsteroidDiscovered Kind = "asteroid_discovered"
	KindScanResult         Kind = "scan_result"
	KindOreMined           Kind = "ore_mined"
	KindShipArrived        Kind = "ship_arrived"
	KindDataGenerated      Kind = "data_generated"
	KindResearchRoll       Kind = "research_roll"
	KindTechUnlocked       Kind = "tech_unlocked"
	KindPowerConsumed      Kind = "power_consumed"
	KindProcessorRan       Kind = "processor_ran"
	KindAssemblerRan       Kind = "assembler_ran"
	KindModuleStalled      Kind = "module_stalled"
	KindModuleAutoDisabled Kind = "module_auto_disabled"
	KindWearAccumulated    Kind = "wear_accumulated"
	KindMaintenanceRan     Kind = "maintenance_ran"
	KindDepositBlocked     Kind = "deposit_blocked"
)

// StallReason discriminates why a module was forced off this tick.
type StallReason string

const (
	StallReasonPower    StallReason = "power"
	StallReasonCapacity StallReason = "capacity"
)

// TagConfidence is the wire shape of a detected anomaly tag and its
// confidence, used by the ScanResult event.
type TagConfidence struct {
	Tag        content.AnomalyTag
	Confidence float32
}

// Event is a tagged union over every event kind the core can emit. Only
// the fields relevant to Kind are populated.
type Event struct {
	Kind Kind

	ShipID       simid.ShipID
	StationID    simid.StationID
	AsteroidID   simid.AsteroidID
	ModuleID     simid.ModuleInstanceID
	TechID       simid.TechID
	Node         simid.NodeID
	TaskKindName string
	Target       string

	Tags []TagConfidence

	DataKind content.DataKind
	Amount   float32

	KgAmount float32

	Evidence float32
	Prob     float32
	Rolled   float32

	Reason StallReason

	WearBefore float32
	WearAfter  float32
	KitsRemaining uint32

	Blocked bool
}

// Envelope wraps an Event with its id and the tick it was emitted on.
type Envelope struct {
	ID   simid.EventID
	Tick uint64
	Event Event
}

// Emit mints the next event id from counters and wraps ev into an
// Envelope stamped with tick.
func Emit(counters *simstate.Counters, tick uint64, ev Event) Envelope {
	id := counters.NextEventID
	counters.NextEventID++
	return Envelope{
		ID:    simid.EventID(fmt.Sprintf("evt_%06d", id)),
		Tick:  tick,
		Event: ev,
	}
}

// Command is a tagged union over the commands callers issue against ships.
// AssignShipTask is presently the only variant.
type Command struct {
	ShipID   simid.ShipID
	TaskKind simstate.TaskKind
}

// CommandEnvelope schedules a Command for application at a specific tick.
type CommandEnvelope struct {
	ID            string
	IssuedBy      simid.PrincipalID
	IssuedTick    uint64
	ExecuteAtTick uint64
	Command       Command
}
