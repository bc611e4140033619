package parkfee

import "testing"

func TestRunProducesReport(t *testing.T) {
	city := validCity()
	settings := NewDefaultElasticitySettings()
	settings.PopulationSize = 10
	settings.Generations = 2

	report, err := Run(city, settings)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if report.RunID == "" {
		t.Fatal("Report.RunID is empty")
	}
	if report.Generations != settings.Generations {
		t.Fatalf("Report.Generations = %d, want %d", report.Generations, settings.Generations)
	}
	if report.FrontSize != len(report.Scenarios) {
		t.Fatalf("Report.FrontSize = %d, want %d", report.FrontSize, len(report.Scenarios))
	}
	if report.FrontSize == 0 {
		t.Fatal("Report.FrontSize = 0, want at least one scenario")
	}
}

func TestRunPropagatesValidationError(t *testing.T) {
	city := validCity()
	settings := NewDefaultElasticitySettings()
	settings.PopulationSize = 0

	if _, err := Run(city, settings); err == nil {
		t.Fatal("Run() = nil error, want ErrInvalidSettings")
	}
}
