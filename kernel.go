package parkfee

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Normalization constants from spec.md §4.2 step 2.
const (
	normFee  = 10.0
	normDist = 100.0
)

// scoreRowShard is the minimum number of driver rows handed to a single
// goroutine when computing the score matrix in parallel; below this the
// matrix is small enough that sharding overhead would dominate.
const scoreRowShard = 256

// planarDistance returns a flat-earth Euclidean approximation of distance
// between two lat/lon points, scaled to the same arbitrary units spec.md
// §4.2 divides by NORM_DIST. The spec defines drive_dist/walk_dist as plain
// ‖·‖₂ over position pairs, so positions are treated as a 2-D plane here —
// acceptable at city scale and consistent with "NORM_DIST = 100" being a
// tuning constant rather than a physical unit conversion.
func planarDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// scoreMatrix computes the (D, L) driver×lot utility matrix of spec.md §4.2
// step 2. occupancy and full report the zone state at the moment the matrix
// is computed (in runAssignment: the start of the current driver batch).
// Each driver's MaxParkingFee is used to mask unaffordable lots with +Inf;
// full marks lots that are already at capacity (no free spot for
// newly-arriving drivers).
func scoreMatrix(drivers []Driver, fees []float64, occupancy []float64, full []bool, lotLat, lotLon []float64, weights agentWeights) [][]float64 {
	d := len(drivers)
	l := len(fees)
	s := make([][]float64, d)
	for i := range s {
		s[i] = make([]float64, l)
	}
	scoreMatrixInto(s, drivers, fees, occupancy, full, lotLat, lotLon, weights)
	return s
}

// scoreMatrixInto fills a preallocated (D, L) matrix; it is the inner loop
// shared by the sequential and parallel paths.
func scoreMatrixInto(s [][]float64, drivers []Driver, fees []float64, occupancy []float64, full []bool, lotLat, lotLon []float64, weights agentWeights) {
	l := len(fees)
	for i, drv := range drivers {
		row := s[i]
		for j := 0; j < l; j++ {
			if full[j] || drv.MaxParkingFee < fees[j] {
				row[j] = math.Inf(1)
				continue
			}
			feeScore := fees[j] / normFee
			driveDist := planarDistance(drv.StartLat, drv.StartLon, lotLat[j], lotLon[j])
			walkDist := planarDistance(lotLat[j], lotLon[j], drv.DestLat, drv.DestLon)
			row[j] = weights.fee*feeScore +
				weights.distance*(driveDist/normDist) +
				weights.walking*(walkDist/normDist) +
				weights.availability*occupancy[j]
		}
	}
}

// scoreMatrixParallel computes the same matrix as scoreMatrix but shards
// driver rows across goroutines with errgroup, per spec.md §5's requirement
// that at least one parallel path exist for the score matrix: each row is
// an independent reduction with no cross-driver dependency, so sharding
// introduces no ordering sensitivity despite concurrent writes — every
// goroutine owns a disjoint row range of the same preallocated matrix.
func scoreMatrixParallel(drivers []Driver, fees []float64, occupancy []float64, full []bool, lotLat, lotLon []float64, weights agentWeights) [][]float64 {
	d := len(drivers)
	l := len(fees)
	s := make([][]float64, d)
	for i := range s {
		s[i] = make([]float64, l)
	}

	if d < scoreRowShard*2 {
		scoreMatrixInto(s, drivers, fees, occupancy, full, lotLat, lotLon, weights)
		return s
	}

	var g errgroup.Group
	for start := 0; start < d; start += scoreRowShard {
		start := start
		end := start + scoreRowShard
		if end > d {
			end = d
		}
		g.Go(func() error {
			scoreMatrixInto(s[start:end], drivers[start:end], fees, occupancy, full, lotLat, lotLon, weights)
			return nil
		})
	}
	_ = g.Wait() // shards never return an error; kept for the errgroup idiom

	return s
}

// agentWeights holds the four driver-weight coefficients from
// OptimizerSettings (fee, distance-to-lot, walking, availability).
type agentWeights struct {
	fee          float64
	distance     float64
	walking      float64
	availability float64
}
