package parkfee

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// AgentEvaluatorSuite exercises the batched driver-assignment simulation
// against the capacity, affordability, and determinism invariants spec.md
// §4.2 and §8 require.
type AgentEvaluatorSuite struct {
	suite.Suite
}

func (s *AgentEvaluatorSuite) city() City {
	return City{
		MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1,
		Zones: []ParkingZone{
			{ID: 1, Lat: 0.5, Lon: 0.5, MaximumCapacity: 2, CurrentCapacity: 0, CurrentFee: 3, MinFee: 1, MaxFee: 10, Elasticity: -0.5, ShortTermShare: 0.5},
		},
	}
}

func (s *AgentEvaluatorSuite) settings() OptimizerSettings {
	st := NewDefaultAgentSettings()
	st.DriversPerZoneCapacity = 3 // 3 drivers per unit capacity -> 6 drivers chasing 2 spots
	st.SimulationRuns = 1
	return st
}

func (s *AgentEvaluatorSuite) TestCapacityNeverExceeded() {
	city := s.city()
	ev := newAgentEvaluator(city, s.settings(), newRNG(1))

	m := ev.runAssignment([]float64{3}, nil)
	require.LessOrEqual(s.T(), m.occupancy[0], 1.0, "occupancy exceeded 1.0 (capacity violated)")
	require.Greater(s.T(), m.rejectionRate, 0.0, "with 6 drivers chasing 2 spots some must be rejected")
}

func (s *AgentEvaluatorSuite) TestAffordabilityMaskRejectsUnaffordableDrivers() {
	city := s.city()
	city.Zones[0].MaximumCapacity = 10 // plenty of room, isolate the affordability mask
	st := s.settings()
	st.DriversPerZoneCapacity = 0.2

	ev := newAgentEvaluator(city, st, newRNG(1))
	for i := range ev.drivers {
		ev.drivers[i].MaxParkingFee = 0 // nobody can afford any fee
	}

	m := ev.runAssignment([]float64{3}, nil)
	require.Equal(s.T(), 1.0, m.rejectionRate, "every driver was unaffordable, rejection rate should be 1")
}

func (s *AgentEvaluatorSuite) TestSingleRunIsDeterministic() {
	city := s.city()
	settings := s.settings()

	evA := newAgentEvaluator(city, settings, newRNG(123))
	evB := newAgentEvaluator(city, settings, newRNG(123))

	revA, gapA, dropA, balA, _ := evA.evaluateAveraged([]float64{3})
	revB, gapB, dropB, balB, _ := evB.evaluateAveraged([]float64{3})

	require.Equal(s.T(), revA, revB)
	require.Equal(s.T(), gapA, gapB)
	require.Equal(s.T(), dropA, dropB)
	require.Equal(s.T(), balA, balB)
}

func (s *AgentEvaluatorSuite) TestRunAssignmentLeavesWorkingStateRestored() {
	city := s.city()
	ev := newAgentEvaluator(city, s.settings(), newRNG(1))

	before := append([]float64{}, ev.state.currentFee...)
	ev.runAssignment([]float64{7}, nil)
	for i, fee := range ev.state.currentFee {
		require.Equal(s.T(), before[i], fee, "currentFee was not restored after runAssignment")
	}
}

func TestAgentEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(AgentEvaluatorSuite))
}
