package parkfee

import "math"

// defaultAssignmentBatchSize is the batch size spec.md §4.2 step 3
// specifies for processing drivers ("batches of size 500 (configurable)").
const defaultAssignmentBatchSize = 500

// rejectionPenalty is the fixed per-driver cost counted toward
// average_driver_cost for drivers who find no lot (spec.md §4.2 step 4).
// Chosen equal to the maximum default driver fee so an unparked driver is
// never cheaper, on average, than a parked one.
const rejectionPenalty = 10.0

// agentWorkingState is the mutable per-task evaluation state mayfly's
// DESMA-style scoped mutation pattern generalizes to: fees and capacities
// rewritten for one evaluation, then restored, never aliased across tasks
// (spec.md §9's "immutable input city plus a mutable per-task evaluation
// state" design note).
type agentWorkingState struct {
	zoneIDs         []int
	maxCapacity     []int
	minFee          []float64
	maxFee          []float64
	lotLat          []float64
	lotLon          []float64
	originalFee     []float64
	originalCap     []int
	currentFee      []float64
	currentCapacity []int
}

// agentEvaluator implements the discrete driver-assignment simulation of
// spec.md §4.2. Its driver population is built once at construction and
// reused, read-only, across every evaluation in the run (spec.md §4.2
// "Working state" / §9's "random draws ... done once up-front").
type agentEvaluator struct {
	state           agentWorkingState
	drivers         []Driver
	weights         agentWeights
	targetOccupancy float64
	batchSize       int
	simulationRuns  int
	rng             *rngSource
}

func newAgentEvaluator(city City, settings OptimizerSettings, rng *rngSource) *agentEvaluator {
	n := len(city.Zones)
	st := agentWorkingState{
		zoneIDs:         make([]int, n),
		maxCapacity:     make([]int, n),
		minFee:          make([]float64, n),
		maxFee:          make([]float64, n),
		lotLat:          make([]float64, n),
		lotLon:          make([]float64, n),
		originalFee:     make([]float64, n),
		originalCap:     make([]int, n),
		currentFee:      make([]float64, n),
		currentCapacity: make([]int, n),
	}
	for i, z := range city.Zones {
		st.zoneIDs[i] = z.ID
		st.maxCapacity[i] = z.MaximumCapacity
		st.minFee[i] = z.MinFee
		st.maxFee[i] = z.MaxFee
		st.lotLat[i] = z.Lat
		st.lotLon[i] = z.Lon
		st.originalFee[i] = z.CurrentFee
		st.originalCap[i] = z.CurrentCapacity
		st.currentFee[i] = z.CurrentFee
		st.currentCapacity[i] = z.CurrentCapacity
	}

	batchSize := defaultAssignmentBatchSize
	simulationRuns := settings.SimulationRuns
	if simulationRuns < 1 {
		simulationRuns = 1
	}

	drivers := buildDriverPopulation(city, rng, settings.DriversPerZoneCapacity)

	return &agentEvaluator{
		state:   st,
		drivers: drivers,
		weights: agentWeights{
			fee:          settings.WeightFee,
			distance:     settings.WeightDistance,
			walking:      settings.WeightWalking,
			availability: settings.WeightAvailability,
		},
		targetOccupancy: settings.TargetOccupancy,
		batchSize:       batchSize,
		simulationRuns:  simulationRuns,
		rng:             rng,
	}
}

// assignmentMetrics summarizes one simulation run over the working state.
type assignmentMetrics struct {
	totalRevenue      float64
	lotRevenue        []float64 // per lot
	occupancy         []float64 // per lot, after assignment
	rejectionRate     float64
	occupancyVariance float64
	averageDriverCost float64
}

// runAssignment applies fee vector p to the working copy, runs the batched
// assignment of spec.md §4.2 steps 1-4, and restores the working copy
// before returning. order, if non-nil, is the driver processing order for
// this run (identity order when nil); it is how simulation_runs > 1
// introduces run-to-run variation without re-sampling the population.
func (a *agentEvaluator) runAssignment(p []float64, order []int) assignmentMetrics {
	st := &a.state
	copy(st.currentFee, p)
	for i := range st.currentCapacity {
		st.currentCapacity[i] = 0
	}
	defer func() {
		copy(st.currentFee, st.originalFee)
		copy(st.currentCapacity, st.originalCap)
	}()

	n := len(st.maxCapacity)
	lotRevenue := make([]float64, n)
	paidFeesSum := 0.0
	rejected := 0

	d := len(a.drivers)
	batch := a.batchSize
	if batch <= 0 {
		batch = d
		if batch == 0 {
			batch = 1
		}
	}

	driverAt := func(k int) Driver {
		if order == nil {
			return a.drivers[k]
		}
		return a.drivers[order[k]]
	}

	for start := 0; start < d; start += batch {
		end := start + batch
		if end > d {
			end = d
		}

		occupancy := make([]float64, n)
		full := make([]bool, n)
		for j := 0; j < n; j++ {
			occupancy[j] = float64(st.currentCapacity[j]) / float64(st.maxCapacity[j])
			full[j] = st.currentCapacity[j] >= st.maxCapacity[j]
		}

		batchDrivers := make([]Driver, end-start)
		for k := start; k < end; k++ {
			batchDrivers[k-start] = driverAt(k)
		}

		scores := scoreMatrix(batchDrivers, st.currentFee, occupancy, full, st.lotLat, st.lotLon, a.weights)

		for i, drv := range batchDrivers {
			bestLot, bestScore := -1, math.Inf(1)
			for j, v := range scores[i] {
				if v < bestScore {
					bestScore, bestLot = v, j
				}
			}

			if bestLot < 0 || math.IsInf(bestScore, 1) {
				rejected++
				continue
			}

			if st.currentCapacity[bestLot] < st.maxCapacity[bestLot] {
				st.currentCapacity[bestLot]++
				lotRevenue[bestLot] += st.currentFee[bestLot] * float64(drv.DesiredParkingTime) / 60
				paidFeesSum += st.currentFee[bestLot]
			} else {
				rejected++
			}
		}
	}

	metrics := assignmentMetrics{occupancy: make([]float64, n), lotRevenue: lotRevenue}
	for j := 0; j < n; j++ {
		metrics.totalRevenue += lotRevenue[j]
		metrics.occupancy[j] = float64(st.currentCapacity[j]) / float64(st.maxCapacity[j])
	}

	if d > 0 {
		metrics.rejectionRate = float64(rejected) / float64(d)
		metrics.averageDriverCost = (paidFeesSum + float64(rejected)*rejectionPenalty) / float64(d)
	}
	metrics.occupancyVariance = variance(metrics.occupancy)

	return metrics
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	v := 0.0
	for _, x := range xs {
		d := x - mean
		v += d * d
	}
	return v / float64(len(xs))
}

// evaluateAveraged runs the assignment simulationRuns times, averaging
// objectives across runs per spec.md §4.2 step 6. Run k > 0 permutes driver
// processing order using an RNG derived from the evaluator's seed so
// repeated runs are themselves reproducible; run 0 always uses identity
// order, which keeps the single-run (simulation_runs == 1) case exactly
// deterministic in input driver order.
func (a *agentEvaluator) evaluateAveraged(fees []float64) (revenue, occupancyGap, demandDrop, balance float64, occupancy []float64) {
	n := len(a.state.maxCapacity)
	var sumRevenue, sumGap, sumDrop, sumBalance float64
	occAccum := make([]float64, n)

	for run := 0; run < a.simulationRuns; run++ {
		var order []int
		if run > 0 {
			order = a.rng.derive(run).rng.Perm(len(a.drivers))
		}

		m := a.runAssignment(fees, order)

		gap := 0.0
		for _, o := range m.occupancy {
			gap += math.Abs(o - a.targetOccupancy)
		}
		if n > 0 {
			gap /= float64(n)
		}

		bal := 0.5 * (1/(m.averageDriverCost+1) + 1/(m.occupancyVariance+1))

		sumRevenue += m.totalRevenue
		sumGap += gap
		sumDrop += m.rejectionRate
		sumBalance += bal
		for j := 0; j < n; j++ {
			occAccum[j] += m.occupancy[j]
		}
	}

	runs := float64(a.simulationRuns)
	for j := range occAccum {
		occAccum[j] /= runs
	}

	return sumRevenue / runs, sumGap / runs, sumDrop / runs, sumBalance / runs, occAccum
}

// evaluateObjectives returns the four internally-minimized objectives:
// (-revenue, occupancyGap, demandDrop, 1-balance). See PricingScenario's
// ScoreUserBalance doc comment for why the agent formula differs from the
// elasticity evaluator's.
func (a *agentEvaluator) evaluateObjectives(fees []float64) [4]float64 {
	revenue, gap, drop, balance, _ := a.evaluateAveraged(fees)
	return [4]float64{-revenue, gap, drop, 1 - balance}
}

// detailedResults mirrors elasticityEvaluator.detailedResults. It runs a
// single (unaveraged) assignment in identity driver order so per-zone
// predicted revenue and occupancy come straight from one concrete
// assignment, the same way a surviving individual is re-evaluated once for
// its final scenario in spec.md §4.3's termination step.
func (a *agentEvaluator) detailedResults(fees []float64) (occupancy, revenue []float64, scenario PricingScenario) {
	m := a.runAssignment(fees, nil)

	gap := 0.0
	n := len(m.occupancy)
	for _, o := range m.occupancy {
		gap += math.Abs(o - a.targetOccupancy)
	}
	if n > 0 {
		gap /= float64(n)
	}

	bal := 0.5 * (1/(m.averageDriverCost+1) + 1/(m.occupancyVariance+1))

	scenario = PricingScenario{
		ScoreRevenue:      m.totalRevenue,
		ScoreOccupancyGap: gap,
		ScoreDemandDrop:   m.rejectionRate,
		ScoreUserBalance:  bal,
	}
	return m.occupancy, m.lotRevenue, scenario
}
