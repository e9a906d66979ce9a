package uksim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPopulation_GeneratesAndCachesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := RegionConfig{Code: "E00000099", Directory: dir, GridSize: 20, UseCache: true}

	first, err := LoadPopulation(cfg, 50, 7)
	require.NoError(t, err)
	assert.Len(t, first.Citizens, 50)
	assert.NotEmpty(t, first.Areas[0].Buildings, "synthesis should produce at least a household")

	for _, c := range first.Citizens {
		require.False(t, c.HouseholdID.IsZero())
		for h := 0; h < 24; h++ {
			assert.False(t, c.Schedule[h].IsZero())
		}
	}

	second, err := LoadPopulation(cfg, 50, 7)
	require.NoError(t, err)
	assert.Len(t, second.Citizens, 50, "second call should replay the cache rather than regenerate")
	assert.Equal(t, len(first.Areas[0].Buildings), len(second.Areas[0].Buildings))
}

func TestLoadPopulation_IgnoresMissingCache(t *testing.T) {
	dir := t.TempDir()
	cfg := RegionConfig{Code: "E00000098", Directory: dir, GridSize: 10, UseCache: true}

	out, err := LoadPopulation(cfg, 10, 3)
	require.NoError(t, err)
	assert.Len(t, out.Citizens, 10)
}

func TestOccupationForAge_ChildAndRetiredBrackets(t *testing.T) {
	assert.Equal(t, OccupationChild, occupationForAge(3, 0.6))
	assert.Equal(t, OccupationStudent, occupationForAge(12, 0.6))
	assert.Equal(t, OccupationRetired, occupationForAge(70, 0.6))
}

func TestCachePayload_InflateRestoresScheduleAndEligibility(t *testing.T) {
	dir := t.TempDir()
	cfg := RegionConfig{Code: "E00000097", Directory: dir, GridSize: 10, UseCache: false}

	out, payload, err := generateSyntheticPopulation(cfg, 20, 5)
	require.NoError(t, err)
	require.Equal(t, len(out.Citizens), len(payload.Citizens))

	restored := inflate(payload)
	require.Len(t, restored.Citizens, len(out.Citizens))
	for i, c := range restored.Citizens {
		assert.Equal(t, out.Citizens[i].Age, c.Age)
		assert.Equal(t, c.Age >= 18, c.VaccinationEligible)
		for h := 0; h < 24; h++ {
			assert.Equal(t, out.Citizens[i].Schedule[h].LocalIndex, c.Schedule[h].LocalIndex)
			assert.Equal(t, out.Citizens[i].Schedule[h].Kind, c.Schedule[h].Kind)
		}
	}
}
