package parkfee

import "math"

// lossAversionUp / lossAversionDown are the asymmetric reaction multipliers
// from spec.md §4.1: hikes (Δ > 0) are felt 1.2x, cuts 0.8x.
const (
	lossAversionUp   = 1.2
	lossAversionDown = 0.8
)

// elasticityObjectives is the pure analytic model of spec.md §4.1. Given a
// fee vector p (one entry per zone, already clamped by the caller into each
// zone's [min_fee, max_fee]) and the zones it prices, it returns the four
// objective scores plus the per-zone predicted occupancy and revenue.
//
// The fourth return value, impact, is the raw (to-be-minimized) fairness
// axis; ScoreUserBalance = 1 - impact is computed by the caller when
// assembling a PricingScenario, matching spec.md's split between the
// internally-minimized axis and the emitted form.
func elasticityObjectives(zones []ParkingZone, fees []float64, targetOccupancy float64) (
	revenue, occupancyGap, demandDrop, impact float64,
	predictedOccupancy, predictedRevenue []float64,
) {
	n := len(zones)
	predictedOccupancy = make([]float64, n)
	predictedRevenue = make([]float64, n)

	var sumGap, sumDrop, sumImpact float64

	for i, z := range zones {
		p := fees[i]
		delta := (p - z.CurrentFee) / (z.CurrentFee + epsilon)

		lambda := lossAversionDown
		if delta > 0 {
			lambda = lossAversionUp
		}

		shortTermDemandChange := z.Elasticity * delta * lambda
		longTermDemandChange := (z.Elasticity / 2) * delta * lambda
		s := z.ShortTermShare
		demandChange := s*shortTermDemandChange + (1-s)*longTermDemandChange

		occ := clampFloat(z.Occupancy()*(1+demandChange), 0.05, 1.0)
		predictedOccupancy[i] = occ
		predictedRevenue[i] = p * float64(z.MaximumCapacity) * occ

		revenue += predictedRevenue[i]
		sumGap += math.Abs(occ - targetOccupancy)
		sumDrop += math.Max(0, -demandChange)
		sumImpact += math.Max(0, delta) * s
	}

	if n > 0 {
		occupancyGap = sumGap / float64(n)
		demandDrop = sumDrop / float64(n)
		impact = sumImpact / float64(n)
	}

	return revenue, occupancyGap, demandDrop, impact, predictedOccupancy, predictedRevenue
}

// elasticityEvaluator implements the evaluator capability set of spec.md §9
// (evaluate_objectives / detailed_results) over the analytic elasticity
// model. It is a pure function of (zones, fee vector, target occupancy) —
// no mutable state, so it is safe to call concurrently across individuals.
type elasticityEvaluator struct {
	zones           []ParkingZone
	targetOccupancy float64
}

func newElasticityEvaluator(zones []ParkingZone, targetOccupancy float64) *elasticityEvaluator {
	return &elasticityEvaluator{zones: zones, targetOccupancy: targetOccupancy}
}

// evaluateObjectives returns the four internally-minimized objectives:
// (-revenue, occupancyGap, demandDrop, impact).
func (e *elasticityEvaluator) evaluateObjectives(fees []float64) [4]float64 {
	revenue, gap, drop, impact, _, _ := elasticityObjectives(e.zones, fees, e.targetOccupancy)
	return [4]float64{-revenue, gap, drop, impact}
}

// detailedResults returns per-zone predicted occupancy/revenue plus the
// emitted-form scenario objectives, for converting a surviving individual
// into a PricingScenario.
func (e *elasticityEvaluator) detailedResults(fees []float64) (occupancy, revenue []float64, scenario PricingScenario) {
	rev, gap, drop, impact, occ, perZoneRevenue := elasticityObjectives(e.zones, fees, e.targetOccupancy)
	scenario = PricingScenario{
		ScoreRevenue:      rev,
		ScoreOccupancyGap: gap,
		ScoreDemandDrop:   drop,
		ScoreUserBalance:  1 - impact,
	}
	return occ, perZoneRevenue, scenario
}
