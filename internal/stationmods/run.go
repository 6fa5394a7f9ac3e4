package stationmods

// RunOutcome is what a module kind's execution decided this tick.
type RunOutcome int

const (
	// OutcomeCompleted means the module produced output and wear accrues.
	OutcomeCompleted RunOutcome = iota
	// OutcomeStalledCapacity means output couldn't fit cargo capacity.
	OutcomeStalledCapacity
	// OutcomeNoMatch means no recipe/input set matched available inventory
	// (processor: refinery_starved; assembler: insufficient material).
	OutcomeNoMatch
)
