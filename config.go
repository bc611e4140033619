package parkfee

import (
	"encoding/json"
	"fmt"
	"os"
)

// NewDefaultElasticitySettings returns default settings for the analytic
// elasticity evaluator (spec.md §4.1), a reasonable starting point for a
// caller that only needs to set OptimizerType and per-zone bounds.
func NewDefaultElasticitySettings() OptimizerSettings {
	return OptimizerSettings{
		OptimizerType:   OptimizerElasticity,
		RandomSeed:      1,
		PopulationSize:  92,
		Generations:     100,
		TargetOccupancy: 0.85,
		MinFee:          0,
		MaxFee:          20,
		FeeIncrement:    0.25,
	}
}

// NewDefaultAgentSettings returns default settings for the agent-based
// assignment evaluator (spec.md §4.2), including the driver-weight
// defaults the score function uses.
func NewDefaultAgentSettings() OptimizerSettings {
	s := NewDefaultElasticitySettings()
	s.OptimizerType = OptimizerAgent
	s.DriversPerZoneCapacity = 1.5
	s.SimulationRuns = 3
	s.WeightFee = 0.4
	s.WeightDistance = 0.3
	s.WeightWalking = 0.2
	s.WeightAvailability = 0.1
	return s
}

// ValidateSettings checks the OptimizerSettings invariants spec.md §6/§7
// impose before Optimize may run, analogous to mayfly's ValidateConfig: it
// reports the first violated invariant with the offending value attached.
func ValidateSettings(s OptimizerSettings) error {
	if s.OptimizerType != OptimizerElasticity && s.OptimizerType != OptimizerAgent {
		return fmtErrorfSettings("optimizer_type %q is neither %q nor %q", s.OptimizerType, OptimizerElasticity, OptimizerAgent)
	}
	if s.PopulationSize <= 0 {
		return fmtErrorfSettings("population_size must be positive (got %d)", s.PopulationSize)
	}
	if s.PopulationSize < 10 {
		return fmtErrorfSettings("population_size must be at least 10 (got %d)", s.PopulationSize)
	}
	if s.Generations < 1 {
		return fmtErrorfSettings("generations must be at least 1 (got %d)", s.Generations)
	}
	if s.TargetOccupancy < 0 || s.TargetOccupancy > 1 {
		return fmtErrorfSettings("target_occupancy must be in [0,1] (got %f)", s.TargetOccupancy)
	}
	if s.MinFee < 0 {
		return fmtErrorfSettings("min_fee must be non-negative (got %f)", s.MinFee)
	}
	if s.MinFee > s.MaxFee {
		return fmtErrorfSettings("min_fee %f exceeds max_fee %f", s.MinFee, s.MaxFee)
	}
	if s.FeeIncrement < 0 {
		return fmtErrorfSettings("fee_increment must be non-negative (got %f)", s.FeeIncrement)
	}

	if s.OptimizerType == OptimizerAgent {
		if s.DriversPerZoneCapacity < 0 {
			return fmtErrorfSettings("drivers_per_zone_capacity must be non-negative (got %f)", s.DriversPerZoneCapacity)
		}
		if s.SimulationRuns < 1 {
			return fmtErrorfSettings("simulation_runs must be at least 1 (got %d)", s.SimulationRuns)
		}
		if s.WeightFee < 0 || s.WeightDistance < 0 || s.WeightWalking < 0 || s.WeightAvailability < 0 {
			return fmtErrorfSettings("driver score weights must be non-negative")
		}
	}

	return nil
}

// fmtErrorfSettings wraps ErrInvalidSettings the same way ValidateCity wraps
// ErrInvalidCity, kept as a tiny helper so every branch above reads as one line.
func fmtErrorfSettings(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...)
}

// LoadSettingsFromFile loads OptimizerSettings from a JSON file, mirroring
// mayfly's config_loader.go LoadConfigFromFile, and validates it before
// returning so a bad settings file fails fast rather than inside Optimize.
func LoadSettingsFromFile(path string) (OptimizerSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OptimizerSettings{}, fmt.Errorf("parkfee: failed to read settings file: %w", err)
	}

	var s OptimizerSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return OptimizerSettings{}, fmt.Errorf("parkfee: failed to parse settings file: %w", err)
	}
	if err := ValidateSettings(s); err != nil {
		return OptimizerSettings{}, err
	}
	return s, nil
}

// SaveSettingsToFile writes OptimizerSettings to a JSON file, mirroring
// mayfly's config_loader.go SaveConfigToFile.
func SaveSettingsToFile(s OptimizerSettings, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("parkfee: failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("parkfee: failed to write settings file: %w", err)
	}
	return nil
}
