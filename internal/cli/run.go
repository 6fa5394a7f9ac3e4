package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/autopolicy"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/engine"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/metrics"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
)

var (
	runContentDir string
	runTicks      uint64
	runSeed       uint64
	runAutopilot  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation locally for a number of ticks",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runContentDir, "content", "./content", "content directory (constants.json, techs.json, ...)")
	runCmd.Flags().Uint64Var(&runTicks, "ticks", 100, "number of ticks to advance")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 1, "deterministic RNG seed")
	runCmd.Flags().BoolVar(&runAutopilot, "autopilot", true, "drive idle ships with the built-in autopolicy")
}

func runRun(cmd *cobra.Command, args []string) error {
	c, err := content.Load(runContentDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	rng := simrng.New(runSeed)
	state := engine.BuildInitialState(&c, runSeed, rng)

	var policy autopolicy.CommandSource
	if runAutopilot {
		policy = autopolicy.Basic{HomeStation: homeStationID(&state)}
	}

	for i := uint64(0); i < runTicks; i++ {
		var cmds []events.CommandEnvelope
		if policy != nil {
			cmds = policy.Decide(&state, &c, rng)
		}
		engine.Tick(&state, cmds, &c, rng, events.LevelNormal)
	}

	snapshot := metrics.Compute(&state, &c)
	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metrics snapshot: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
