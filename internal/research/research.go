// Package research implements data-pool generation with diminishing
// returns and evidence-driven technology unlocks.
//
// advance_research in the project this was distilled from runs a real
// model: for every not-yet-unlocked, prereq-satisfied tech it shares a
// per-station compute budget as evidence and rolls p = 1 -
// exp(-evidence/difficulty) against an RNG draw. This package reproduces
// that model and additionally gates eligibility on data_pool domain
// requirements (spec.md §4.5), which the original's eligible-tech filter
// does not check.
package research

import (
	"math"
	"sort"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// GenerateData accumulates a diminishing-returns amount of dataKind into
// the research data pool, keyed by actionKey's per-action run count:
// amount = max(floor, peak * decay^n), n incremented on every call.
func GenerateData(research *simstate.ResearchState, dataKind content.DataKind, actionKey string, c *content.Constants) float32 {
	n := research.ActionCounts[actionKey]
	research.ActionCounts[actionKey] = n + 1

	amount := float32(c.DataGenerationPeak) * float32(math.Pow(float64(c.DataGenerationDecayRate), float64(n)))
	if amount < c.DataGenerationFloor {
		amount = c.DataGenerationFloor
	}

	research.DataPool[dataKind] += amount
	return amount
}

func domainRequirementsMet(research *simstate.ResearchState, reqs []content.DomainRequirement) bool {
	for _, req := range reqs {
		if research.DataPool[req.DataKind] < req.Threshold {
			return false
		}
	}
	return true
}

func prereqsMet(research *simstate.ResearchState, prereqs []simid.TechID) bool {
	for _, p := range prereqs {
		if !research.Unlocked[p] {
			return false
		}
	}
	return true
}

// AdvanceResearch runs once every research_roll_interval_ticks. For every
// not-yet-unlocked tech whose prereqs and domain_requirements are
// satisfied (iterated in sorted TechID order), it adds evidence
// proportional to a station-derived compute budget shared across the
// tick's eligible techs, rolls unlock probability p = 1 - exp(-evidence/
// difficulty), and unlocks the tech if a draw from rng falls below p.
func AdvanceResearch(state *simstate.GameState, c *content.GameContent, rng simrng.Rng, level events.Level, out *[]events.Envelope) {
	tick := state.Meta.Tick
	if c.Constants.ResearchRollIntervalTicks == 0 || tick%c.Constants.ResearchRollIntervalTicks != 0 {
		return
	}

	var eligible []content.TechDef
	for _, tech := range c.Techs {
		if state.Research.Unlocked[tech.ID] {
			continue
		}
		if !prereqsMet(&state.Research, tech.Prereqs) {
			continue
		}
		if !domainRequirementsMet(&state.Research, tech.DomainRequirements) {
			continue
		}
		eligible = append(eligible, tech)
	}
	if len(eligible) == 0 {
		return
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	computeBudget := float32(len(state.Stations))
	perTechCompute := computeBudget / float32(len(eligible))

	for _, tech := range eligible {
		evidence := state.Research.Evidence[tech.ID] + perTechCompute
		state.Research.Evidence[tech.ID] = evidence

		p := float32(1.0 - math.Exp(-float64(evidence)/float64(tech.Difficulty)))
		rolled := rng.Float32()

		if level == events.LevelDebug {
			*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
				Kind:     events.KindResearchRoll,
				TechID:   tech.ID,
				Evidence: evidence,
				Prob:     p,
				Rolled:   rolled,
			}))
		}

		if rolled < p {
			state.Research.Unlocked[tech.ID] = true
			*out = append(*out, events.Emit(&state.Counters, tick, events.Event{
				Kind:   events.KindTechUnlocked,
				TechID: tech.ID,
			}))
		}
	}
}

// DeepScanEnabled reports whether the EnableDeepScan tech effect has been
// unlocked by any unlocked tech.
func DeepScanEnabled(research *simstate.ResearchState, c *content.GameContent) bool {
	for _, tech := range c.Techs {
		if !research.Unlocked[tech.ID] {
			continue
		}
		for _, eff := range tech.Effects {
			if eff.Kind == content.TechEffectEnableDeepScan {
				return true
			}
		}
	}
	return false
}

// DeepScanNoiseSigma returns the sigma of the unlocked
// DeepScanCompositionNoise effect, or 0 if none is unlocked (meaning
// exact composition mapping).
func DeepScanNoiseSigma(research *simstate.ResearchState, c *content.GameContent) float32 {
	for _, tech := range c.Techs {
		if !research.Unlocked[tech.ID] {
			continue
		}
		for _, eff := range tech.Effects {
			if eff.Kind == content.TechEffectDeepScanCompositionNoise {
				return eff.Sigma
			}
		}
	}
	return 0
}
