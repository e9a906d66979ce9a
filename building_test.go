package uksim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputArea_AddBuilding_AssignsDenseLocalIndex(t *testing.T) {
	area := NewOutputArea(OutputAreaID{Code: "E00000001", Index: 0}, Point{})
	h := area.AddBuilding(Household, Point{X: 1, Y: 1}, BuildingParams{})
	w := area.AddBuilding(Workplace, Point{X: 2, Y: 2}, BuildingParams{})

	assert.Equal(t, 0, h.ID().LocalIndex)
	assert.Equal(t, 1, w.ID().LocalIndex)
	assert.Equal(t, Household, h.Kind())
	assert.Equal(t, Workplace, w.Kind())

	got, ok := area.Building(1)
	require.True(t, ok)
	assert.Same(t, w, got)

	_, ok = area.Building(2)
	assert.False(t, ok)
}

func TestBuilding_OccupantLifecycle(t *testing.T) {
	b := NewBuilding(BuildingID{}, Point{}, BuildingParams{})
	a := CitizenID{Index: 1}
	c := CitizenID{Index: 2}

	b.AddOccupant(a)
	b.AddOccupant(c)
	assert.Equal(t, 2, b.OccupantCount())

	b.RemoveOccupant(a)
	assert.Equal(t, []CitizenID{c}, b.Occupants())

	b.Clear()
	assert.Equal(t, 0, b.OccupantCount())
}

func TestBuilding_AssertNoDuplicateOccupants(t *testing.T) {
	b := NewBuilding(BuildingID{AreaIndex: 0, LocalIndex: 0}, Point{}, BuildingParams{})
	b.SetOccupants([]CitizenID{{Index: 1}, {Index: 2}, {Index: 1}})
	assert.Error(t, b.AssertNoDuplicateOccupants())

	b.SetOccupants([]CitizenID{{Index: 1}, {Index: 2}})
	assert.NoError(t, b.AssertNoDuplicateOccupants())
}

func TestBuildingParams_Crowding(t *testing.T) {
	p := BuildingParams{CrowdingFactor: 0.5}
	assert.Equal(t, 1.0, p.Crowding(0))
	assert.Equal(t, 1.0, p.Crowding(1))
	assert.InDelta(t, 0.5*(1+0.693), p.Crowding(2), 0.01)
}
