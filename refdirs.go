package parkfee

// numObjectives is the fixed dimensionality of the Pareto front this module
// searches: revenue, occupancy gap, demand drop, user balance (spec.md §3).
const numObjectives = 4

// dasDennisPartitions is the n_partitions parameter spec.md §4.3 fixes for
// reference-direction generation, yielding C(n_partitions+M-1, M-1) = 165
// directions for M=4.
const dasDennisPartitions = 8

// referenceDirections generates the structured Das–Dennis sampling of the
// (M-1)-simplex used to guide NSGA-III niching: every integer composition
// of dasDennisPartitions over numObjectives coordinates, normalized to sum
// to one. The result is fixed for the run, computed once before the main
// generational loop starts.
func referenceDirections() [][]float64 {
	var dirs [][]float64
	point := make([]int, numObjectives)
	dasDennisRecurse(&dirs, point, 0, dasDennisPartitions)
	return dirs
}

// dasDennisRecurse fills coordinate idx of point with every value from 0 up
// to the remaining budget, recursing until the last coordinate absorbs
// whatever is left — the standard way to enumerate compositions of an
// integer into a fixed number of non-negative parts.
func dasDennisRecurse(dirs *[][]float64, point []int, idx, remaining int) {
	if idx == len(point)-1 {
		point[idx] = remaining
		*dirs = append(*dirs, normalizedCopy(point))
		return
	}

	for v := 0; v <= remaining; v++ {
		point[idx] = v
		dasDennisRecurse(dirs, point, idx+1, remaining-v)
	}
}

func normalizedCopy(point []int) []float64 {
	out := make([]float64, len(point))
	for i, v := range point {
		out[i] = float64(v) / float64(dasDennisPartitions)
	}
	return out
}
