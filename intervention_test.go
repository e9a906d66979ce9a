package uksim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterventionPolicy_Validate(t *testing.T) {
	good := InterventionPolicy{LockdownTrigger: 10, LockdownRelease: 5, MaskingEffect: 0.5, VaccinationRate: 0.1}
	require.NoError(t, good.Validate())

	bad := good
	bad.LockdownRelease = 20
	assert.Error(t, bad.Validate(), "release threshold above trigger should fail validation")

	bad = good
	bad.MaskingEffect = 1.5
	assert.Error(t, bad.Validate())

	bad = good
	bad.VaccinationRate = -0.1
	assert.Error(t, bad.Validate())
}

// buildLockdownSimulator gives every citizen a workplace scheduled for
// hour 1 (the hour tick 1 maps to) and a household for the rest of the
// day, with a low lockdown trigger so the controller engages almost
// immediately.
func buildLockdownSimulator(t *testing.T, essential bool) *Simulator {
	t.Helper()
	areaIndex := NewAreaIndex()
	areaID, err := areaIndex.Register("E00000001")
	require.NoError(t, err)
	areaIndex.Freeze()

	area := NewOutputArea(areaID, Point{})
	household := area.AddBuilding(Household, Point{}, BuildingParams{CrowdingFactor: 1})
	workplace := area.AddBuilding(Workplace, Point{X: 1}, BuildingParams{CrowdingFactor: 1})

	n := 4
	citizens := make([]*Citizen, n)
	citizenArea := make([]int, n)
	for i := 0; i < n; i++ {
		c := &Citizen{
			ID:          CitizenID{Index: i},
			HouseholdID: household.ID(),
			WorkplaceID: workplace.ID(),
			Status:      Susceptible(),
		}
		if essential {
			c.Occupation = OccupationEssential
		}
		for h := 0; h < 24; h++ {
			c.Schedule[h] = household.ID()
		}
		c.Schedule[1] = workplace.ID()
		citizens[i] = c
		citizenArea[i] = areaID.Index
	}
	citizens[0].Status = Infected(100)

	out := &LoaderOutput{
		AreaIndex:   areaIndex,
		Areas:       []*OutputArea{area},
		Citizens:    citizens,
		CitizenArea: citizenArea,
	}
	disease := DiseaseModel{
		ReproductionRate: 1,
		ExposureChance:   0,
		DeathRate:        0,
		ExposedTime:      1,
		InfectedTime:     100,
		MaxTimeStep:      2,
	}
	sim, err := NewSimulator(out, disease, 11, silentLogger())
	require.NoError(t, err)
	sim.Interventions.Policy = InterventionPolicy{LockdownTrigger: 1, LockdownRelease: 0}
	// Record the tick-0 counts, as Run does, so Evaluate sees the seed
	// infection.
	sim.Stats.Snapshot(0)
	return sim
}

func TestLockdown_RedirectsNonEssentialWorkersHome(t *testing.T) {
	sim := buildLockdownSimulator(t, false)
	sim.Interventions.Evaluate(sim, 1)
	require.True(t, sim.Interventions.LockdownActive())

	require.NoError(t, sim.advancePositions(1))
	for _, c := range sim.citizens {
		assert.Equal(t, c.HouseholdID, c.CurrentBuildingID, "non-essential worker should be redirected home under lockdown")
	}
}

func TestLockdown_EssentialWorkersStillCommute(t *testing.T) {
	sim := buildLockdownSimulator(t, true)
	sim.Interventions.Evaluate(sim, 1)
	require.True(t, sim.Interventions.LockdownActive())

	require.NoError(t, sim.advancePositions(1))
	for _, c := range sim.citizens {
		assert.Equal(t, c.WorkplaceID, c.CurrentBuildingID, "essential worker should still commute under lockdown")
	}
}

func TestVaccination_DrawsFromEligiblePool(t *testing.T) {
	sim := buildLockdownSimulator(t, true)
	sim.Interventions.Policy.VaccinationStart = 1
	sim.Interventions.Policy.VaccinationRate = 1
	sim.Interventions.SetEligiblePool([]int{1, 2, 3})

	sim.Interventions.Evaluate(sim, 1)

	for _, idx := range []int{1, 2, 3} {
		assert.Equal(t, VaccinatedStatus, sim.citizens[idx].Status.Code)
	}
	assert.Equal(t, InfectedStatus, sim.citizens[0].Status.Code, "already-infected citizens are never drawn into vaccination")
}

func TestMasking_ScalesExposureChance(t *testing.T) {
	ic := NewInterventionController()
	ic.Policy.MaskingEffect = 0.4
	assert.Equal(t, 0.8, ic.effectiveExposureChance(0.8), "masking inactive leaves exposure chance unchanged")

	ic.maskingActive = true
	assert.InDelta(t, 0.32, ic.effectiveExposureChance(0.8), 1e-9)
}
