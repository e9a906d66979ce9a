package uksim

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRecorder_SnapshotAndHistory(t *testing.T) {
	sim := newTestSimulator(t, 4, DiseaseModel{
		ReproductionRate: 0, ExposureChance: 0, DeathRate: 0,
		ExposedTime: 1, InfectedTime: 1, MaxTimeStep: 1,
	}, 1)
	require.NoError(t, sim.Stats.Init())
	sim.Stats.Snapshot(0)

	current := sim.Stats.Current()
	assert.Equal(t, 1, current[InfectedStatus])
	assert.Equal(t, 3, current[SusceptibleStatus])

	history := sim.Stats.History()
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Tick)
	sim.Stats.Finalize()
}

func TestCSVStatsBackend_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.csv")
	backend := NewCSVStatsBackend(path)
	require.NoError(t, backend.Init())

	feed := make(chan CountRecord, 2)
	feed <- CountRecord{Tick: 1, Susceptible: 9, Infected: 1}
	feed <- CountRecord{Tick: 2, Susceptible: 8, Infected: 2}
	close(feed)
	backend.WriteSnapshots(feed)
	require.NoError(t, backend.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	assert.Equal(t, "tick,susceptible,exposed,infected,recovered,vaccinated,dead,lockdown,masking", scanner.Text())
	require.True(t, scanner.Scan())
	assert.Equal(t, "1,9,0,1,0,0,0,false,false", scanner.Text())
}

func TestSQLiteStatsBackend_RoundTripsViaReadCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.db")
	backend := NewSQLiteStatsBackend(path)
	require.NoError(t, backend.Init())

	feed := make(chan CountRecord, 2)
	feed <- CountRecord{Tick: 1, Susceptible: 9, Infected: 1, LockdownActive: true}
	feed <- CountRecord{Tick: 2, Susceptible: 8, Infected: 2}
	close(feed)
	backend.WriteSnapshots(feed)
	require.NoError(t, backend.Close())

	rows, err := ReadCounts(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Tick)
	assert.True(t, rows[0].LockdownActive)
	assert.Equal(t, 2, rows[1].Infected)
}
