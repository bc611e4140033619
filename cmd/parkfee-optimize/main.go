// Command parkfee-optimize is a worked demonstration of the parkfee
// package: it builds a small sample city, runs both evaluators over it, and
// prints the size of each resulting Pareto front and the weighted-selection
// winner from each.
package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/parkfee/optimizer"
)

func main() {
	city := sampleCity()

	fmt.Println("=== Elasticity Evaluator ===")
	runDemo(city, parkfee.NewDefaultElasticitySettings())

	fmt.Println("\n=== Agent Evaluator ===")
	runDemo(city, parkfee.NewDefaultAgentSettings())
}

func sampleCity() parkfee.City {
	return parkfee.City{
		ID:     1,
		Name:   "Riverside",
		MinLat: 0,
		MaxLat: 1,
		MinLon: 0,
		MaxLon: 1,
		Zones: []parkfee.ParkingZone{
			{ID: 1, Name: "Downtown Garage", Lat: 0.5, Lon: 0.5, MaximumCapacity: 200, CurrentCapacity: 180, CurrentFee: 4.0, MinFee: 1, MaxFee: 12, Elasticity: -0.6, ShortTermShare: 0.7},
			{ID: 2, Name: "Riverside Lot", Lat: 0.2, Lon: 0.3, MaximumCapacity: 120, CurrentCapacity: 60, CurrentFee: 2.5, MinFee: 0.5, MaxFee: 8, Elasticity: -0.4, ShortTermShare: 0.5},
			{ID: 3, Name: "Stadium Annex", Lat: 0.8, Lon: 0.7, MaximumCapacity: 300, CurrentCapacity: 90, CurrentFee: 3.0, MinFee: 1, MaxFee: 10, Elasticity: -0.5, ShortTermShare: 0.6},
		},
		POIs: []parkfee.PointOfInterest{
			{ID: 1, Name: "City Hall", Lat: 0.5, Lon: 0.5},
			{ID: 2, Name: "Stadium", Lat: 0.8, Lon: 0.7},
		},
	}
}

func runDemo(city parkfee.City, settings parkfee.OptimizerSettings) {
	settings.Generations = 30
	settings.PopulationSize = 40

	report, err := parkfee.Run(city, settings)
	if err != nil {
		fmt.Printf("optimize failed: %v\n", err)
		return
	}

	fmt.Printf("run %s: %d generations, %d scenarios on the front\n", report.RunID, report.Generations, report.FrontSize)

	weights := map[string]float64{
		"revenue":   0.4,
		"occupancy": 0.3,
		"drop":      0.2,
		"fairness":  0.1,
	}
	best, ok := parkfee.SelectBest(report.Scenarios, weights)
	if !ok {
		fmt.Println("no scenario selected")
		return
	}

	snapped := parkfee.SnapFee(*best, city.Zones, settings.FeeIncrement)
	fmt.Printf("selected scenario %d: revenue=%s occupancy_gap=%.3f demand_drop=%.3f user_balance=%.3f\n",
		snapped.ScenarioID, humanize.FormatFloat("#,###.##", snapped.ScoreRevenue), snapped.ScoreOccupancyGap, snapped.ScoreDemandDrop, snapped.ScoreUserBalance)
	for _, z := range snapped.Zones {
		fmt.Printf("  zone %d: new_fee=%.2f predicted_occupancy=%.2f predicted_revenue=%s\n",
			z.ZoneID, z.NewFee, z.PredictedOccupancy, humanize.FormatFloat("#,###.##", z.PredictedRevenue))
	}
}
