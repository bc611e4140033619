package parkfee

import "math"

// SelectBest scores each scenario on a weighted sum of its four min-max
// normalized objectives and returns the highest-scoring one, per spec.md
// §4.4. Axes where higher is better in the raw scenario (revenue, user
// balance) are normalized directly; axes where lower is better (occupancy
// gap, demand drop) are inverted after normalization so every axis
// contributes positively to the score. weights is keyed by the spec.md §6
// wire names "revenue", "occupancy", "drop", and "fairness"; a missing key
// is treated as weight 0.
//
// Returns (nil, false) for an empty scenario slice. Ties are broken by
// input order: the first scenario to reach the maximum score wins.
func SelectBest(scenarios []PricingScenario, weights map[string]float64) (*PricingScenario, bool) {
	if len(scenarios) == 0 {
		return nil, false
	}

	revenue := make([]float64, len(scenarios))
	gap := make([]float64, len(scenarios))
	drop := make([]float64, len(scenarios))
	balance := make([]float64, len(scenarios))
	for i, s := range scenarios {
		revenue[i] = s.ScoreRevenue
		gap[i] = s.ScoreOccupancyGap
		drop[i] = s.ScoreDemandDrop
		balance[i] = s.ScoreUserBalance
	}

	normRevenue := minMaxNormalize(revenue, false)
	normGap := minMaxNormalize(gap, true)
	normDrop := minMaxNormalize(drop, true)
	normBalance := minMaxNormalize(balance, false)

	wRevenue := weights["revenue"]
	wGap := weights["occupancy"]
	wDrop := weights["drop"]
	wBalance := weights["fairness"]

	bestIdx := 0
	bestScore := math.Inf(-1)
	for i := range scenarios {
		score := wRevenue*normRevenue[i] + wGap*normGap[i] + wDrop*normDrop[i] + wBalance*normBalance[i]
		if score > bestScore {
			bestScore, bestIdx = score, i
		}
	}

	best := scenarios[bestIdx]
	return &best, true
}

// minMaxNormalize scales xs into [0,1] by its own min/max. A degenerate
// range (all values equal) maps every element to 1, so a tied axis
// contributes its full weight rather than silently zeroing out — the
// axis just failed to discriminate between scenarios, it didn't vanish.
// invert flips the result (1-x) for axes where a smaller raw value is better;
// a degenerate range still maps to 1 when invert is set.
func minMaxNormalize(xs []float64, invert bool) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}

	min, max := xs[0], xs[0]
	for _, v := range xs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	spread := max - min
	for i, v := range xs {
		n := 1.0
		if spread > 1e-12 {
			n = (v - min) / spread
			if invert {
				n = 1 - n
			}
		}
		out[i] = n
	}
	return out
}
