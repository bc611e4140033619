package parkfee

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// evaluator is the capability set spec.md §9 requires of a fitness backend:
// a cheap internally-minimized objective vector for search, and a slower
// detailed breakdown for turning a surviving individual into a
// PricingScenario. Both elasticityEvaluator and agentEvaluator satisfy it.
type evaluator interface {
	evaluateObjectives(fees []float64) [4]float64
	detailedResults(fees []float64) (occupancy, revenue []float64, scenario PricingScenario)
}

// newEvaluator builds the evaluator settings.OptimizerType selects.
func newEvaluator(city City, settings OptimizerSettings, rng *rngSource) evaluator {
	if settings.OptimizerType == OptimizerAgent {
		return newAgentEvaluator(city, settings, rng)
	}
	return newElasticityEvaluator(city.Zones, settings.TargetOccupancy)
}

// zoneBounds returns per-zone [MinFee, MaxFee] pairs in city.Zones order,
// the genome bounds spec.md §4.3 fixes: "bounded by the corresponding
// zone's [min_fee, max_fee]".
func zoneBounds(zones []ParkingZone) (lower, upper []float64) {
	lower = make([]float64, len(zones))
	upper = make([]float64, len(zones))
	for i, z := range zones {
		lower[i], upper[i] = z.MinFee, z.MaxFee
	}
	return lower, upper
}

func randomGenome(rng *rngSource, lower, upper []float64) []float64 {
	genome := make([]float64, len(lower))
	for i := range genome {
		genome[i] = rng.uniform(lower[i], upper[i])
	}
	return genome
}

// evaluatePopulation scores every genome into a *candidate. The elasticity
// evaluator is a pure function of its arguments with no shared mutable
// state, so its individuals are fanned out across goroutines with errgroup
// (spec.md §5's "at least one parallel path" — the evaluation fan-out path;
// kernel.go's scoreMatrixParallel is the row-sharded path for the score
// matrix). The agent evaluator reuses one working-state copy with a
// restore-on-return discipline per call and is therefore evaluated
// sequentially here; it computes each batch's score matrix with the
// sequential scoreMatrix.
func evaluatePopulation(ev evaluator, genomes [][]float64) []*candidate {
	pop := make([]*candidate, len(genomes))

	if _, pure := ev.(*elasticityEvaluator); pure {
		var g errgroup.Group
		for i, genome := range genomes {
			i, genome := i, genome
			g.Go(func() error {
				pop[i] = &candidate{genome: genome, objectives: ev.evaluateObjectives(genome)}
				return nil
			})
		}
		_ = g.Wait()
		return pop
	}

	for i, genome := range genomes {
		pop[i] = &candidate{genome: genome, objectives: ev.evaluateObjectives(genome)}
	}
	return pop
}

// tournamentSelect picks the better of two randomly drawn individuals by
// rank, breaking ties by a coin flip. pop must already carry ranks from a
// prior fastNonDominatedSort call.
func tournamentSelect(pop []*candidate, rng *rngSource) *candidate {
	a := pop[rng.intn(len(pop))]
	b := pop[rng.intn(len(pop))]
	if a.rank == b.rank {
		if rng.float64() < 0.5 {
			return a
		}
		return b
	}
	if a.rank < b.rank {
		return a
	}
	return b
}

// genomeKey renders a genome to a comparable string for within-generation
// duplicate elimination; six decimal digits is well under fee precision
// anyone would care about.
func genomeKey(genome []float64) string {
	var b strings.Builder
	for _, v := range genome {
		fmt.Fprintf(&b, "%.6f|", v)
	}
	return b.String()
}

// makeOffspring produces populationSize/2 offspring genomes via binary
// tournament selection, SBX crossover, and polynomial mutation (spec.md
// §4.3 step 4), discarding exact genome duplicates produced within this
// generation. If the attempt budget is exhausted before enough distinct
// genomes are found (a collapsing search space), the remainder is filled
// with fresh random genomes rather than looping forever.
func makeOffspring(pop []*candidate, lower, upper []float64, rng *rngSource, populationSize int) [][]float64 {
	target := populationSize / 2
	if target < 2 {
		target = 2
	}

	seen := make(map[string]bool, target)
	offspring := make([][]float64, 0, target)

	maxAttempts := target * 20
	for attempt := 0; len(offspring) < target && attempt < maxAttempts; attempt++ {
		p1 := tournamentSelect(pop, rng)
		p2 := tournamentSelect(pop, rng)

		c1, c2 := simulatedBinaryCrossover(p1.genome, p2.genome, lower, upper, rng)
		c1 = polynomialMutate(c1, lower, upper, rng)
		c2 = polynomialMutate(c2, lower, upper, rng)

		for _, c := range [][]float64{c1, c2} {
			if len(offspring) >= target {
				break
			}
			key := genomeKey(c)
			if seen[key] {
				continue
			}
			seen[key] = true
			offspring = append(offspring, c)
		}
	}

	for len(offspring) < target {
		offspring = append(offspring, randomGenome(rng, lower, upper))
	}

	return offspring
}

// selectSurvivors fills the next generation of size populationSize from
// combined (parents+offspring, already non-dominated sorted into fronts),
// per spec.md §4.3 step 3: whole fronts are accepted front-by-front until
// the next front would overflow the target size; normalizeObjectives,
// associateToNiches, and nicheSelect then pick the remainder from the
// overflowing front.
func selectSurvivors(combined []*candidate, fronts [][]int, populationSize int, refDirs [][]float64, rng *rngSource) []*candidate {
	survivors := make([]*candidate, 0, populationSize)
	var accepted [][]int

	frontIdx := 0
	for frontIdx < len(fronts) && len(survivors)+len(fronts[frontIdx]) <= populationSize {
		for _, i := range fronts[frontIdx] {
			survivors = append(survivors, combined[i])
		}
		accepted = append(accepted, fronts[frontIdx])
		frontIdx++
	}

	need := populationSize - len(survivors)
	if need > 0 && frontIdx < len(fronts) {
		acceptedCandidates := make([]*candidate, 0, len(survivors))
		for _, f := range accepted {
			for _, i := range f {
				acceptedCandidates = append(acceptedCandidates, combined[i])
			}
		}

		lastFront := fronts[frontIdx]
		normPool := make([]*candidate, 0, len(acceptedCandidates)+len(lastFront))
		normPool = append(normPool, acceptedCandidates...)
		for _, i := range lastFront {
			normPool = append(normPool, combined[i])
		}

		normalized := normalizeObjectives(normPool)
		acceptedNormalized := normalized[:len(acceptedCandidates)]
		lastFrontNormalized := normalized[len(acceptedCandidates):]

		priorNiche, _ := associateToNiches(acceptedNormalized, refDirs)
		priorCounts := make([]int, len(refDirs))
		for _, n := range priorNiche {
			priorCounts[n]++
		}

		lastNiche, lastDist := associateToNiches(lastFrontNormalized, refDirs)
		chosen := nicheSelect(lastFront, lastNiche, lastDist, priorCounts, need, rng)
		for _, i := range chosen {
			survivors = append(survivors, combined[i])
		}
	}

	return survivors
}

// Optimize runs the NSGA-III search of spec.md §4.3 to completion and
// returns the final first (non-dominated) front as PricingScenarios, one
// per surviving genome, scenario IDs assigned in front order. It validates
// city and settings before doing any search work.
func Optimize(city City, settings OptimizerSettings) ([]PricingScenario, error) {
	if err := ValidateCity(city); err != nil {
		return nil, err
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	rng := newRNG(settings.RandomSeed)
	ev := newEvaluator(city, settings, rng)
	lower, upper := zoneBounds(city.Zones)
	refDirs := referenceDirections()

	genomes := make([][]float64, settings.PopulationSize)
	for i := range genomes {
		genomes[i] = randomGenome(rng, lower, upper)
	}
	pop := evaluatePopulation(ev, genomes)
	fastNonDominatedSort(pop)

	for gen := 0; gen < settings.Generations; gen++ {
		offspringGenomes := makeOffspring(pop, lower, upper, rng, settings.PopulationSize)
		offspring := evaluatePopulation(ev, offspringGenomes)

		combined := make([]*candidate, 0, len(pop)+len(offspring))
		combined = append(combined, pop...)
		combined = append(combined, offspring...)

		fronts := fastNonDominatedSort(combined)
		pop = selectSurvivors(combined, fronts, settings.PopulationSize, refDirs, rng)
	}

	finalFronts := fastNonDominatedSort(pop)
	if len(finalFronts) == 0 {
		return nil, fmt.Errorf("%w: empty final population", ErrEvaluation)
	}

	firstFront := finalFronts[0]
	scenarios := make([]PricingScenario, 0, len(firstFront))
	for id, idx := range firstFront {
		c := pop[idx]
		occupancy, revenue, scenario := ev.detailedResults(c.genome)
		scenario.ScenarioID = id
		scenario.Zones = make([]OptimizedZoneResult, len(city.Zones))
		for i, z := range city.Zones {
			scenario.Zones[i] = OptimizedZoneResult{
				ZoneID:             z.ID,
				NewFee:             c.genome[i],
				PredictedOccupancy: occupancy[i],
				PredictedRevenue:   revenue[i],
			}
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}
