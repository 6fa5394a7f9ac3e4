// Command simbench runs a scenario across a batch of seeds, each on its
// own goroutine behind a bounded worker pool — the same fan-out idiom
// the teacher uses for its background peer services, applied here to
// seeds instead of peers.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/applog"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/autopolicy"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/benchcodec"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/benchdb"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/engine"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/events"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/metrics"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/scenario"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simrng"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
	"github.com/google/uuid"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to the scenario JSON file (required)")
	outputDir := flag.String("output-dir", "runs", "output directory")
	dbPath := flag.String("db", "./data/simbench.db", "sqlite run-history database path")
	workers := flag.Int("workers", runtime.NumCPU(), "max concurrent seeds")
	flag.Parse()

	log, err := applog.Setup("simbench")
	if err != nil {
		panic(err)
	}

	if *scenarioPath == "" {
		log.Error.Fatal("--scenario is required")
	}

	sc, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Error.Fatalf("loading scenario: %v", err)
	}

	c, err := content.Load(sc.ContentDir)
	if err != nil {
		log.Error.Fatalf("loading content: %v", err)
	}
	if err := content.ApplyOverrides(&c.Constants, sc.Overrides); err != nil {
		log.Error.Fatalf("applying overrides: %v", err)
	}

	seeds := sc.Seeds.Expand()
	runDir := filepath.Join(*outputDir, fmt.Sprintf("%s_%d", sc.Name, time.Now().Unix()))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Error.Fatalf("creating output directory: %v", err)
	}

	db, err := benchdb.Open(*dbPath)
	if err != nil {
		log.Error.Fatalf("opening run-history database: %v", err)
	}
	defer db.Close()

	log.Info.Printf("scenario %q: %d seeds x %d ticks -> %s", sc.Name, len(seeds), sc.Ticks, runDir)
	fmt.Printf("Loading scenario %q: %d seeds x %d ticks\n", sc.Name, len(seeds), sc.Ticks)
	fmt.Printf("Output: %s\n", runDir)

	results := runSeeds(seeds, sc, &c, runDir, db, log, *workers)
	if len(results) == 0 {
		log.Error.Fatal("all seeds failed")
	}

	stats := computeSummary(results)
	printSummary(sc.Name, sc.Ticks, stats)
	if err := writeSummaryCSV(filepath.Join(runDir, "summary.csv"), stats); err != nil {
		log.Error.Printf("writing summary.csv: %v", err)
	}
}

type seedResult struct {
	seed       uint64
	runID      string
	wallTimeMs int64
	snapshot   metrics.Snapshot
}

func runSeeds(seeds []uint64, sc scenario.Scenario, c *content.GameContent, runDir string, db *benchdb.DB, log *applog.Pair, workers int) []seedResult {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan uint64)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []seedResult

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				result, err := runSeed(sc, c, seed, runDir, db, log)
				if err != nil {
					log.Error.Printf("seed %d failed: %v", seed, err)
					continue
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, seed := range seeds {
		jobs <- seed
	}
	close(jobs)
	wg.Wait()

	return results
}

func runSeed(sc scenario.Scenario, c *content.GameContent, seed uint64, runDir string, db *benchdb.DB, log *applog.Pair) (seedResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	seedDir := filepath.Join(runDir, fmt.Sprintf("seed_%d", seed))
	if err := os.MkdirAll(seedDir, 0755); err != nil {
		return seedResult{}, fmt.Errorf("creating seed directory: %w", err)
	}

	rng := simrng.New(seed)
	state := engine.BuildInitialState(c, seed, rng)
	policy := autopolicy.Basic{HomeStation: homeStationID(&state)}

	csvFile, err := os.Create(filepath.Join(seedDir, "metrics.csv"))
	if err != nil {
		return seedResult{}, fmt.Errorf("creating metrics.csv: %w", err)
	}
	defer csvFile.Close()
	writer := csv.NewWriter(csvFile)
	defer writer.Flush()
	writeMetricsHeader(writer)

	var eventLog []events.Envelope
	var final metrics.Snapshot
	for tick := uint64(0); tick < sc.Ticks; tick++ {
		cmds := policy.Decide(&state, c, rng)
		out := engine.Tick(&state, cmds, c, rng, events.LevelNormal)
		eventLog = append(eventLog, out...)

		if state.Meta.Tick%sc.MetricsEvery == 0 {
			snap := metrics.Compute(&state, c)
			writeMetricsRow(writer, snap)
			final = snap
		}
	}
	if state.Meta.Tick%sc.MetricsEvery != 0 {
		final = metrics.Compute(&state, c)
		writeMetricsRow(writer, final)
	}

	finalHash, err := benchcodec.HashState(&state)
	if err != nil {
		return seedResult{}, fmt.Errorf("hashing final state: %w", err)
	}

	encodedLog, err := benchcodec.CompressEventLog(eventLog)
	if err != nil {
		return seedResult{}, fmt.Errorf("compressing event log: %w", err)
	}
	if err := os.WriteFile(filepath.Join(seedDir, "events.lz4"), encodedLog.Compressed, 0644); err != nil {
		return seedResult{}, fmt.Errorf("writing event log: %w", err)
	}
	log.Info.Printf("seed %d: event log %d bytes -> %d bytes (ratio %.2f)", seed, encodedLog.RawBytes, len(encodedLog.Compressed), encodedLog.Ratio())

	wallTimeMs := time.Since(start).Milliseconds()
	if err := db.Insert(benchdb.RunHistoryRow{
		RunID:          runID,
		ScenarioName:   sc.Name,
		Seed:           seed,
		Ticks:          sc.Ticks,
		WallTimeMs:     wallTimeMs,
		FinalTick:      final.Tick,
		TechsUnlocked:  final.TechsUnlocked,
		FinalStateHash: finalHash,
		EventLogBlob:   encodedLog.Compressed,
	}); err != nil {
		return seedResult{}, err
	}

	return seedResult{seed: seed, runID: runID, wallTimeMs: wallTimeMs, snapshot: final}, nil
}

func homeStationID(state *simstate.GameState) simid.StationID {
	var id simid.StationID
	first := true
	for sid := range state.Stations {
		if first || sid < id {
			id = sid
			first = false
		}
	}
	return id
}

func writeMetricsHeader(w *csv.Writer) {
	w.Write([]string{
		"tick", "scan_sites_remaining", "asteroids_discovered", "techs_unlocked",
		"fleet_total", "fleet_idle", "fleet_transiting", "fleet_surveying",
		"fleet_deep_scanning", "fleet_mining", "fleet_depositing",
		"station_storage_used_pct", "ship_cargo_used_pct",
		"modules_total", "modules_disabled", "modules_degraded", "modules_critical",
		"refineries_active", "refineries_starved", "modules_stalled", "repair_kits_held",
	})
}

func writeMetricsRow(w *csv.Writer, s metrics.Snapshot) {
	fleetTotal := s.Fleet.Idle + s.Fleet.Transiting + s.Fleet.Surveying + s.Fleet.DeepScanning + s.Fleet.Mining + s.Fleet.Depositing
	w.Write([]string{
		fmt.Sprint(s.Tick), fmt.Sprint(s.ScanSiteCount), fmt.Sprint(s.AsteroidCount), fmt.Sprint(s.TechsUnlocked),
		fmt.Sprint(fleetTotal), fmt.Sprint(s.Fleet.Idle), fmt.Sprint(s.Fleet.Transiting), fmt.Sprint(s.Fleet.Surveying),
		fmt.Sprint(s.Fleet.DeepScanning), fmt.Sprint(s.Fleet.Mining), fmt.Sprint(s.Fleet.Depositing),
		fmt.Sprint(pct(s.Storage.StationUsedM3, s.Storage.StationCapacityM3)), fmt.Sprint(pct(s.Storage.ShipUsedM3, s.Storage.ShipCapacityM3)),
		fmt.Sprint(s.Modules.TotalModules), fmt.Sprint(s.Modules.DisabledModules), fmt.Sprint(s.Modules.DegradedModules), fmt.Sprint(s.Modules.CriticalModules),
		fmt.Sprint(s.Modules.RefineriesActive), fmt.Sprint(s.Modules.RefineriesStarved), fmt.Sprint(s.Modules.ModulesStalled), fmt.Sprint(s.Modules.RepairKitsHeld),
	})
}

func pct(used, capacity float32) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(used / capacity)
}

// metricSummary mirrors the original's SummaryStats: mean/min/max/stddev
// across seeds for a handful of headline metrics, plus a collapse rate
// (a seed "collapsed" if its fleet went fully idle while a refinery sat
// starved).
type metricSummary struct {
	name               string
	mean, min, max, sd float64
}

type summaryStats struct {
	seedCount      int
	collapsedCount int
	metrics        []metricSummary
}

func computeSummary(results []seedResult) summaryStats {
	extract := map[string]func(metrics.Snapshot) float64{
		"storage_saturation_pct": func(s metrics.Snapshot) float64 { return pct(s.Storage.StationUsedM3, s.Storage.StationCapacityM3) },
		"fleet_idle_pct": func(s metrics.Snapshot) float64 {
			total := s.Fleet.Idle + s.Fleet.Transiting + s.Fleet.Surveying + s.Fleet.DeepScanning + s.Fleet.Mining + s.Fleet.Depositing
			if total == 0 {
				return 0
			}
			return float64(s.Fleet.Idle) / float64(total)
		},
		"refineries_starved":   func(s metrics.Snapshot) float64 { return float64(s.Modules.RefineriesStarved) },
		"techs_unlocked":       func(s metrics.Snapshot) float64 { return float64(s.TechsUnlocked) },
		"repair_kits_held":     func(s metrics.Snapshot) float64 { return float64(s.Modules.RepairKitsHeld) },
	}
	order := []string{"storage_saturation_pct", "fleet_idle_pct", "refineries_starved", "techs_unlocked", "repair_kits_held"}

	collapsed := 0
	for _, r := range results {
		total := r.snapshot.Fleet.Idle + r.snapshot.Fleet.Transiting + r.snapshot.Fleet.Surveying + r.snapshot.Fleet.DeepScanning + r.snapshot.Fleet.Mining + r.snapshot.Fleet.Depositing
		if r.snapshot.Modules.RefineriesStarved > 0 && r.snapshot.Fleet.Idle == total {
			collapsed++
		}
	}

	stats := summaryStats{seedCount: len(results), collapsedCount: collapsed}
	for _, name := range order {
		fn := extract[name]
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = fn(r.snapshot)
		}
		stats.metrics = append(stats.metrics, summarizeValues(name, values))
	}
	return stats
}

func summarizeValues(name string, values []float64) metricSummary {
	n := float64(len(values))
	var sum float64
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / n
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= n
	return metricSummary{name: name, mean: mean, min: min, max: max, sd: math.Sqrt(variance)}
}

func printSummary(name string, ticks uint64, stats summaryStats) {
	tickDisplay := fmt.Sprint(ticks)
	if ticks >= 1000 {
		tickDisplay = fmt.Sprintf("%dk", ticks/1000)
	}
	fmt.Printf("\n=== %s (%d seeds, %s ticks each) ===\n\n", name, stats.seedCount, tickDisplay)
	fmt.Printf("%-30s %8s %8s %8s %8s\n", "Metric", "Mean", "Min", "Max", "StdDev")
	fmt.Println(strings.Repeat("-", 70))
	for _, m := range stats.metrics {
		fmt.Printf("%-30s %8.2f %8.2f %8.2f %8.2f\n", m.name, m.mean, m.min, m.max, m.sd)
	}
	fmt.Printf("%-30s %d/%d\n", "collapse_rate", stats.collapsedCount, stats.seedCount)
}

func writeSummaryCSV(path string, stats summaryStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	w.Write([]string{"metric", "mean", "min", "max", "stddev"})
	for _, m := range stats.metrics {
		w.Write([]string{m.name, fmt.Sprintf("%.4f", m.mean), fmt.Sprintf("%.4f", m.min), fmt.Sprintf("%.4f", m.max), fmt.Sprintf("%.4f", m.sd)})
	}
	w.Write([]string{"collapse_rate", fmt.Sprintf("%d", stats.collapsedCount), "", "", fmt.Sprintf("of %d", stats.seedCount)})
	return nil
}
