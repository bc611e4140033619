package parkfee

import "github.com/google/uuid"

// Report wraps one Optimize invocation's Pareto front with the run metadata
// callers typically want to log or persist alongside it: a unique run
// identifier, how many generations actually ran, how large the returned
// front is, and the settings that produced it.
type Report struct {
	RunID       string
	Generations int
	FrontSize   int
	Settings    OptimizerSettings
	Scenarios   []PricingScenario
}

// Run validates city and settings, runs Optimize, and wraps the result in a
// Report. It exists alongside Optimize rather than replacing it so callers
// that only want the raw scenario slice (e.g. SelectBest's typical caller)
// aren't forced to unwrap a Report first.
func Run(city City, settings OptimizerSettings) (Report, error) {
	scenarios, err := Optimize(city, settings)
	if err != nil {
		return Report{}, err
	}
	return Report{
		RunID:       uuid.NewString(),
		Generations: settings.Generations,
		FrontSize:   len(scenarios),
		Settings:    settings,
		Scenarios:   scenarios,
	}, nil
}
