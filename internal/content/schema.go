// Package content holds the immutable, per-run content schema: constants,
// elements, the solar system graph, asteroid templates, techs, module and
// component definitions. Nothing in this package mutates after a run
// starts.
package content

import "github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"

// Constants bundles the tuning scalars governing durations, capacities,
// thresholds, rates, wear bands, and research generation.
type Constants struct {
	SurveyScanTicks                       uint64  `json:"survey_scan_ticks"`
	DeepScanTicks                         uint64  `json:"deep_scan_ticks"`
	TravelTicksPerHop                     uint64  `json:"travel_ticks_per_hop"`
	SurveyTagDetectionProbability         float32 `json:"survey_tag_detection_probability"`
	AsteroidCountPerTemplate              uint64  `json:"asteroid_count_per_template"`
	AsteroidMassMinKg                     float32 `json:"asteroid_mass_min_kg"`
	AsteroidMassMaxKg                     float32 `json:"asteroid_mass_max_kg"`
	ShipCargoCapacityM3                   float32 `json:"ship_cargo_capacity_m3"`
	StationCargoCapacityM3                float32 `json:"station_cargo_capacity_m3"`
	StationPowerAvailablePerTick          float32 `json:"station_power_available_per_tick"`
	MiningRateKgPerTick                   float32 `json:"mining_rate_kg_per_tick"`
	DepositTicks                          uint64  `json:"deposit_ticks"`
	AutopilotIronRichConfidenceThreshold  float32 `json:"autopilot_iron_rich_confidence_threshold"`
	AutopilotRefineryThresholdKg          float32 `json:"autopilot_refinery_threshold_kg"`
	ResearchRollIntervalTicks             uint64  `json:"research_roll_interval_ticks"`
	DataGenerationPeak                    float32 `json:"data_generation_peak"`
	DataGenerationFloor                   float32 `json:"data_generation_floor"`
	DataGenerationDecayRate               float32 `json:"data_generation_decay_rate"`
	WearBandDegradedThreshold              float32 `json:"wear_band_degraded_threshold"`
	WearBandCriticalThreshold              float32 `json:"wear_band_critical_threshold"`
	WearBandDegradedEfficiency             float32 `json:"wear_band_degraded_efficiency"`
	WearBandCriticalEfficiency             float32 `json:"wear_band_critical_efficiency"`
	MaintenanceIntervalTicks               uint64  `json:"maintenance_interval_ticks"`
}

// ElementDef describes one raw or refined element/ore kind.
type ElementDef struct {
	ID              string  `json:"id"`
	DensityKgPerM3  float32 `json:"density_kg_per_m3"`
	DisplayName     string  `json:"display_name"`
	RefinedName     *string `json:"refined_name,omitempty"`
}

// NodeDef is one node in the solar system graph.
type NodeDef struct {
	ID             simid.NodeID `json:"id"`
	Name           string       `json:"name"`
	SolarIntensity float32      `json:"solar_intensity"`
}

// SolarSystemDef is the undirected node graph ships transit over.
type SolarSystemDef struct {
	Nodes []NodeDef               `json:"nodes"`
	Edges [][2]simid.NodeID       `json:"edges"`
}

// AnomalyTag marks a notable trait a survey may detect on an asteroid.
type AnomalyTag string

const (
	AnomalyIronRich  AnomalyTag = "iron_rich"
	AnomalyVolatile  AnomalyTag = "volatile"
	AnomalyRadioactive AnomalyTag = "radioactive"
)

// ElementRange is the (min, max) fraction an element may take within a
// template's sampled composition.
type ElementRange struct {
	Min float32
	Max float32
}

// AsteroidTemplateDef is the blueprint a scan site's discovery samples from.
type AsteroidTemplateDef struct {
	ID                string                  `json:"id"`
	AnomalyTags       []AnomalyTag            `json:"anomaly_tags"`
	CompositionRanges map[string]ElementRange `json:"composition_ranges"`
}

// DataKind categorizes an accumulated research data-pool bucket.
type DataKind string

const (
	DataKindScanData DataKind = "scan_data"
)

// TechEffectKind discriminates TechEffect variants.
type TechEffectKind string

const (
	TechEffectEnableDeepScan          TechEffectKind = "enable_deep_scan"
	TechEffectDeepScanCompositionNoise TechEffectKind = "deep_scan_composition_noise"
)

// TechEffect is a tagged union of the effects a tech unlock grants.
// Sigma is only meaningful when Kind == TechEffectDeepScanCompositionNoise.
type TechEffect struct {
	Kind  TechEffectKind `json:"kind"`
	Sigma float32        `json:"sigma,omitempty"`
}

// DomainRequirement is a single (data kind, threshold) gate a tech's
// eligibility must clear before evidence can accumulate toward it.
type DomainRequirement struct {
	DataKind  DataKind `json:"data_kind"`
	Threshold float32  `json:"threshold"`
}

// TechDef describes one unlockable technology.
type TechDef struct {
	ID                simid.TechID        `json:"id"`
	Prereqs           []simid.TechID      `json:"prereqs"`
	Difficulty        float32             `json:"difficulty"`
	Effects           []TechEffect        `json:"effects"`
	AcceptedData      []DataKind          `json:"accepted_data"`
	DomainRequirements []DomainRequirement `json:"domain_requirements"`
}

// ModuleBehaviorKind discriminates ModuleBehaviorDef variants.
type ModuleBehaviorKind string

const (
	BehaviorProcessor   ModuleBehaviorKind = "processor"
	BehaviorAssembler   ModuleBehaviorKind = "assembler"
	BehaviorSensorArray ModuleBehaviorKind = "sensor_array"
	BehaviorSolarArray  ModuleBehaviorKind = "solar_array"
	BehaviorMaintenance ModuleBehaviorKind = "maintenance"
)

// InputFilter matches a processor recipe's required inputs: a minimum
// composition fraction per element, plus a minimum total kg of ore.
type InputFilter struct {
	MinComposition map[string]float32 `json:"min_composition"`
	MinKg          float32            `json:"min_kg"`
}

// RecipeOutput is one material yielded by a processor recipe.
type RecipeOutput struct {
	Element string  `json:"element"`
	KgRatio float32 `json:"kg_ratio"` // fraction of consumed ore kg converted to this output
	Quality float32 `json:"quality"`
}

// ProcessorRecipe consumes ore matching Input and yields Outputs plus slag.
type ProcessorRecipe struct {
	Input   InputFilter    `json:"input"`
	Outputs []RecipeOutput `json:"outputs"`
}

// ProcessorDef is the behavior of a Processor module.
type ProcessorDef struct {
	ProcessingIntervalTicks uint64            `json:"processing_interval_ticks"`
	Recipes                 []ProcessorRecipe `json:"recipes"`
}

// AssemblerInput is one material requirement for an assembler recipe.
type AssemblerInput struct {
	Element    string  `json:"element"`
	Kg         float32 `json:"kg"`
	MinQuality float32 `json:"min_quality"`
}

// AssemblerRecipe consumes Inputs and yields one component.
type AssemblerRecipe struct {
	Inputs      []AssemblerInput `json:"inputs"`
	ComponentID simid.ComponentID `json:"component_id"`
	Quality     float32           `json:"quality"`
}

// AssemblerDef is the behavior of an Assembler module.
type AssemblerDef struct {
	ProcessingIntervalTicks uint64          `json:"processing_interval_ticks"`
	Recipe                  AssemblerRecipe `json:"recipe"`
}

// SensorArrayDef is the behavior of a SensorArray module.
type SensorArrayDef struct {
	DataKind         DataKind `json:"data_kind"`
	ActionKey        string   `json:"action_key"`
	ScanIntervalTicks uint64  `json:"scan_interval_ticks"`
}

// SolarArrayDef is the behavior of a SolarArray module.
type SolarArrayDef struct {
	BaseOutputKw float32 `json:"base_output_kw"`
}

// MaintenanceDef is the behavior of a Maintenance module.
type MaintenanceDef struct {
	WearReductionPerRun float32 `json:"wear_reduction_per_run"`
	RepairKitCost       uint32  `json:"repair_kit_cost"`
	RepairThreshold     float32 `json:"repair_threshold"`
	IntervalTicks       uint64  `json:"interval_ticks"`
}

// ModuleBehaviorDef is a tagged union over the five module behavior kinds.
// Exactly one of the pointer fields matching Kind is populated.
type ModuleBehaviorDef struct {
	Kind        ModuleBehaviorKind `json:"kind"`
	Processor   *ProcessorDef      `json:"processor,omitempty"`
	Assembler   *AssemblerDef      `json:"assembler,omitempty"`
	SensorArray *SensorArrayDef    `json:"sensor_array,omitempty"`
	SolarArray  *SolarArrayDef     `json:"solar_array,omitempty"`
	Maintenance *MaintenanceDef    `json:"maintenance,omitempty"`
}

// ModuleDef is the immutable definition shared by every instance of a
// module kind.
type ModuleDef struct {
	ID                       string            `json:"id"`
	MassKg                   float32           `json:"mass_kg"`
	VolumeM3                 float32           `json:"volume_m3"`
	PowerConsumptionPerRun   float32           `json:"power_consumption_per_run"`
	WearPerRun               float32           `json:"wear_per_run"`
	Behavior                 ModuleBehaviorDef `json:"behavior"`
}

// ComponentDef describes a manufactured component kind (mass/volume used
// for cargo accounting).
type ComponentDef struct {
	ID       simid.ComponentID `json:"id"`
	MassKg   float32           `json:"mass_kg"`
	VolumeM3 float32           `json:"volume_m3"`
}

// GameContent is the full immutable content bundle for a run.
type GameContent struct {
	ContentVersion    string
	Constants         Constants
	Elements          []ElementDef
	SolarSystem       SolarSystemDef
	AsteroidTemplates []AsteroidTemplateDef
	Techs             []TechDef
	ModuleDefs        map[string]ModuleDef
	ComponentDefs     map[simid.ComponentID]ComponentDef
}

// ModuleDefByID looks up a module definition by id, ok=false if undefined.
func (c *GameContent) ModuleDefByID(id string) (ModuleDef, bool) {
	def, ok := c.ModuleDefs[id]
	return def, ok
}

// Node looks up a node definition by id, ok=false if undefined.
func (s *SolarSystemDef) Node(id simid.NodeID) (NodeDef, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeDef{}, false
}

// ElementByID looks up an element definition by id, ok=false if undefined.
func (c *GameContent) ElementByID(id string) (ElementDef, bool) {
	for _, e := range c.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return ElementDef{}, false
}

// TechByID looks up a tech definition by id, ok=false if undefined.
func (c *GameContent) TechByID(id simid.TechID) (TechDef, bool) {
	for _, t := range c.Techs {
		if t.ID == id {
			return t, true
		}
	}
	return TechDef{}, false
}
