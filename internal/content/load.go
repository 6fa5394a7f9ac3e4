package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"
)

// Load reads constants.json, techs.json, solar_system.json,
// asteroid_templates.json, elements.json, module_defs.json and
// component_defs.json from dir and assembles a GameContent.
//
// Every read is wrapped with the offending file path; every unmarshal is
// wrapped with the offending file name, matching the teacher's "context the
// key/path" error design (see Vitadek-OwnWorld's initDB/createSchema panic
// style, adapted here to returned errors instead of panics since this runs
// before any long-lived process state exists).
func Load(dir string) (GameContent, error) {
	var constants Constants
	if err := readJSON(filepath.Join(dir, "constants.json"), &constants); err != nil {
		return GameContent{}, err
	}

	var techsFile struct {
		ContentVersion string    `json:"content_version"`
		Techs          []TechDef `json:"techs"`
	}
	if err := readJSON(filepath.Join(dir, "techs.json"), &techsFile); err != nil {
		return GameContent{}, err
	}

	var solarSystem SolarSystemDef
	if err := readJSON(filepath.Join(dir, "solar_system.json"), &solarSystem); err != nil {
		return GameContent{}, err
	}

	var templatesFile struct {
		Templates []AsteroidTemplateDef `json:"templates"`
	}
	if err := readJSON(filepath.Join(dir, "asteroid_templates.json"), &templatesFile); err != nil {
		return GameContent{}, err
	}

	var elements []ElementDef
	if err := readJSON(filepath.Join(dir, "elements.json"), &elements); err != nil {
		return GameContent{}, err
	}

	var moduleDefList []ModuleDef
	if err := readJSON(filepath.Join(dir, "module_defs.json"), &moduleDefList); err != nil {
		return GameContent{}, err
	}
	moduleDefs := make(map[string]ModuleDef, len(moduleDefList))
	for _, m := range moduleDefList {
		moduleDefs[m.ID] = m
	}

	var componentDefList []ComponentDef
	if err := readJSON(filepath.Join(dir, "component_defs.json"), &componentDefList); err != nil {
		return GameContent{}, err
	}
	componentDefs := make(map[simid.ComponentID]ComponentDef, len(componentDefList))
	for _, c := range componentDefList {
		componentDefs[c.ID] = c
	}

	return GameContent{
		ContentVersion:    techsFile.ContentVersion,
		Constants:         constants,
		Elements:          elements,
		SolarSystem:       solarSystem,
		AsteroidTemplates: templatesFile.Templates,
		Techs:             techsFile.Techs,
		ModuleDefs:        moduleDefs,
		ComponentDefs:     componentDefs,
	}, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// allowedOverrideKeys is the explicit allow-list content overrides must
// validate against (spec.md §7): unknown keys fail loudly with the list of
// valid options instead of being silently ignored.
var allowedOverrideKeys = map[string]bool{
	"survey_scan_ticks": true, "deep_scan_ticks": true, "travel_ticks_per_hop": true,
	"survey_tag_detection_probability": true, "asteroid_count_per_template": true,
	"asteroid_mass_min_kg": true, "asteroid_mass_max_kg": true,
	"ship_cargo_capacity_m3": true, "station_cargo_capacity_m3": true,
	"station_power_available_per_tick": true, "mining_rate_kg_per_tick": true,
	"deposit_ticks": true, "autopilot_iron_rich_confidence_threshold": true,
	"autopilot_refinery_threshold_kg": true, "research_roll_interval_ticks": true,
	"data_generation_peak": true, "data_generation_floor": true,
	"data_generation_decay_rate": true, "wear_band_degraded_threshold": true,
	"wear_band_critical_threshold": true, "wear_band_degraded_efficiency": true,
	"wear_band_critical_efficiency": true, "maintenance_interval_ticks": true,
}

// ApplyOverrides mutates constants in place from a loosely typed map (as
// decoded from a scenario file's "overrides" object). Numeric coercion
// failures and unknown keys are both reported with the offending key/value,
// per spec.md §7.
func ApplyOverrides(constants *Constants, overrides map[string]interface{}) error {
	for key, raw := range overrides {
		if !allowedOverrideKeys[key] {
			return fmt.Errorf("unknown override key %q (valid keys: %v)", key, sortedKeys(allowedOverrideKeys))
		}
		f, ok := toFloat(raw)
		if !ok {
			return fmt.Errorf("override %q: cannot coerce value %v to a number", key, raw)
		}
		setConstant(constants, key, f)
	}
	return nil
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func setConstant(c *Constants, key string, f float64) {
	switch key {
	case "survey_scan_ticks":
		c.SurveyScanTicks = uint64(f)
	case "deep_scan_ticks":
		c.DeepScanTicks = uint64(f)
	case "travel_ticks_per_hop":
		c.TravelTicksPerHop = uint64(f)
	case "survey_tag_detection_probability":
		c.SurveyTagDetectionProbability = float32(f)
	case "asteroid_count_per_template":
		c.AsteroidCountPerTemplate = uint64(f)
	case "asteroid_mass_min_kg":
		c.AsteroidMassMinKg = float32(f)
	case "asteroid_mass_max_kg":
		c.AsteroidMassMaxKg = float32(f)
	case "ship_cargo_capacity_m3":
		c.ShipCargoCapacityM3 = float32(f)
	case "station_cargo_capacity_m3":
		c.StationCargoCapacityM3 = float32(f)
	case "station_power_available_per_tick":
		c.StationPowerAvailablePerTick = float32(f)
	case "mining_rate_kg_per_tick":
		c.MiningRateKgPerTick = float32(f)
	case "deposit_ticks":
		c.DepositTicks = uint64(f)
	case "autopilot_iron_rich_confidence_threshold":
		c.AutopilotIronRichConfidenceThreshold = float32(f)
	case "autopilot_refinery_threshold_kg":
		c.AutopilotRefineryThresholdKg = float32(f)
	case "research_roll_interval_ticks":
		c.ResearchRollIntervalTicks = uint64(f)
	case "data_generation_peak":
		c.DataGenerationPeak = float32(f)
	case "data_generation_floor":
		c.DataGenerationFloor = float32(f)
	case "data_generation_decay_rate":
		c.DataGenerationDecayRate = float32(f)
	case "wear_band_degraded_threshold":
		c.WearBandDegradedThreshold = float32(f)
	case "wear_band_critical_threshold":
		c.WearBandCriticalThreshold = float32(f)
	case "wear_band_degraded_efficiency":
		c.WearBandDegradedEfficiency = float32(f)
	case "wear_band_critical_efficiency":
		c.WearBandCriticalEfficiency = float32(f)
	case "maintenance_interval_ticks":
		c.MaintenanceIntervalTicks = uint64(f)
	}
}
