package uksim

import (
	"io"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newTestSimulator builds a tiny single-household population: citizen 0
// starts Infected, the rest Susceptible, and every citizen's schedule
// keeps them in the household all day. This is scenario S1's shape: one
// household, one seed infection, checking whether exposure/state-machine
// phases behave.
func newTestSimulator(t *testing.T, n int, disease DiseaseModel, seed int64) *Simulator {
	t.Helper()
	areaIndex := NewAreaIndex()
	areaID, err := areaIndex.Register("E00000001")
	require.NoError(t, err)
	areaIndex.Freeze()

	area := NewOutputArea(areaID, Point{})
	household := area.AddBuilding(Household, Point{}, BuildingParams{CrowdingFactor: 1})

	citizens := make([]*Citizen, n)
	citizenArea := make([]int, n)
	for i := 0; i < n; i++ {
		c := &Citizen{
			ID:          CitizenID{Index: i},
			HouseholdID: household.ID(),
			Status:      Susceptible(),
		}
		for h := 0; h < 24; h++ {
			c.Schedule[h] = household.ID()
		}
		citizens[i] = c
		citizenArea[i] = areaID.Index
	}
	citizens[0].Status = Infected(disease.InfectedTime)

	out := &LoaderOutput{
		AreaIndex:   areaIndex,
		Areas:       []*OutputArea{area},
		Citizens:    citizens,
		CitizenArea: citizenArea,
	}
	sim, err := NewSimulator(out, disease, seed, silentLogger())
	require.NoError(t, err)
	return sim
}

func TestSimulator_SingleHouseholdOutbreak(t *testing.T) {
	disease := DiseaseModel{
		ReproductionRate: 5,
		ExposureChance:   0.9,
		DeathRate:        0,
		ExposedTime:      1,
		InfectedTime:     3,
		MaxTimeStep:      48,
	}
	sim := newTestSimulator(t, 5, disease, 42)
	require.NoError(t, sim.Run())

	final := sim.Stats.History()[len(sim.Stats.History())-1]
	assert.Equal(t, 0, final.Susceptible, "a high-probability household outbreak should saturate")
	assert.Equal(t, 0, final.Exposed)
	assert.Equal(t, 0, final.Infected)
	assert.Equal(t, 5, final.Recovered+final.Dead+final.Infected)
}

func TestSimulator_NoOverlap_NoTransmission(t *testing.T) {
	disease := DiseaseModel{
		ReproductionRate: 5,
		ExposureChance:   0.9,
		DeathRate:        0,
		ExposedTime:      1,
		InfectedTime:     3,
		MaxTimeStep:      10,
	}
	sim := newTestSimulator(t, 1, disease, 1)
	require.NoError(t, sim.Run())

	// A lone infected citizen has no one to expose.
	for _, rec := range sim.Stats.History() {
		assert.Equal(t, 0, rec.Exposed)
	}
}

func TestSimulator_ConservesPopulation(t *testing.T) {
	disease := DiseaseModel{
		ReproductionRate: 2,
		ExposureChance:   0.3,
		DeathRate:        0.1,
		ExposedTime:      2,
		InfectedTime:     4,
		MaxTimeStep:      200,
	}
	sim := newTestSimulator(t, 20, disease, 7)
	require.NoError(t, sim.Run())

	for _, rec := range sim.Stats.History() {
		total := rec.Susceptible + rec.Exposed + rec.Infected + rec.Recovered + rec.Vaccinated + rec.Dead
		assert.Equal(t, 20, total)
	}
}

func TestSimulator_DeterministicAcrossGOMAXPROCS(t *testing.T) {
	disease := DiseaseModel{
		ReproductionRate: 3,
		ExposureChance:   0.5,
		DeathRate:        0.05,
		ExposedTime:      2,
		InfectedTime:     3,
		MaxTimeStep:      60,
	}

	runOnce := func(procs int) []CountRecord {
		prev := runtime.GOMAXPROCS(procs)
		defer runtime.GOMAXPROCS(prev)
		sim := newTestSimulator(t, 12, disease, 99)
		require.NoError(t, sim.Run())
		return sim.Stats.History()
	}

	a := runOnce(1)
	b := runOnce(8)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i], "tick %d diverged between runs with identical seed", i)
	}
}

func TestStopWhenNoActiveInfection(t *testing.T) {
	disease := DiseaseModel{
		ReproductionRate: 1,
		ExposureChance:   0,
		DeathRate:        0,
		ExposedTime:      1,
		InfectedTime:     2,
		MaxTimeStep:      1000,
	}
	sim := newTestSimulator(t, 3, disease, 5)
	sim.AddStopCondition(StopWhenNoActiveInfection())
	require.NoError(t, sim.Run())

	assert.Less(t, sim.Tick(), 1000, "stop condition should end the run once the lone infection clears")
}
