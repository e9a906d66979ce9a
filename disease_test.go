package uksim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiseaseModel_Validate(t *testing.T) {
	good := DiseaseModel{
		ReproductionRate: 1.5,
		ExposureChance:   0.1,
		DeathRate:        0.02,
		ExposedTime:      24,
		InfectedTime:     48,
		MaxTimeStep:      100,
	}
	require.NoError(t, good.Validate())

	bad := good
	bad.ExposureChance = 1.5
	assert.Error(t, bad.Validate())

	bad = good
	bad.DeathRate = -0.1
	assert.Error(t, bad.Validate())

	bad = good
	bad.ExposedTime = 0
	assert.Error(t, bad.Validate())
}

func TestMonotoneFrom(t *testing.T) {
	assert.True(t, MonotoneFrom(SusceptibleStatus, ExposedStatus))
	assert.True(t, MonotoneFrom(ExposedStatus, InfectedStatus))
	assert.True(t, MonotoneFrom(InfectedStatus, RecoveredStatus))
	assert.False(t, MonotoneFrom(RecoveredStatus, SusceptibleStatus))
	assert.False(t, MonotoneFrom(InfectedStatus, SusceptibleStatus))
	assert.True(t, MonotoneFrom(DeadStatus, DeadStatus))
	assert.False(t, MonotoneFrom(DeadStatus, RecoveredStatus))
}

func TestDiseaseStatus_IsInfectious(t *testing.T) {
	assert.False(t, Susceptible().IsInfectious())
	assert.False(t, Exposed(5).IsInfectious())
	assert.True(t, Infected(5).IsInfectious())
	assert.False(t, Recovered().IsInfectious())
}
