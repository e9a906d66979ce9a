package uksim

import "github.com/segmentio/ksuid"

// OutputArea owns the citizens and buildings located within one census
// output area, each stored in a dense per-area slice for O(1) indexed
// access (spec §3).
type OutputArea struct {
	ID OutputAreaID

	Centroid Point

	// CitizenIndices lists the global dense indices (into
	// Simulator.citizens) of every citizen resident in this area. The
	// citizen's workplace/school may be in a different area; this list
	// tracks residence, not current location.
	CitizenIndices []int

	// Buildings is this area's dense building slice; BuildingID.LocalIndex
	// is an index into this slice (spec §3 BuildingID invariant).
	Buildings []*Building
}

// NewOutputArea constructs an empty OutputArea for the given id/centroid.
func NewOutputArea(id OutputAreaID, centroid Point) *OutputArea {
	return &OutputArea{ID: id, Centroid: centroid}
}

// AddBuilding appends a building, assigning it the next free local index
// within this area (spec §3: "(output-area index, local building index)
// uniquely identifies a building").
func (oa *OutputArea) AddBuilding(kind BuildingKind, point Point, params BuildingParams) *Building {
	localIdx := len(oa.Buildings)
	id := BuildingID{
		AreaIndex:  oa.ID.Index,
		LocalIndex: localIdx,
		Opaque:     ksuid.New(),
		Kind:       kind,
	}
	b := NewBuilding(id, point, params)
	oa.Buildings = append(oa.Buildings, b)
	return b
}

// Building resolves a BuildingID to the concrete building it names.
// Returns false if the local index is out of range for this area — a
// fatal invariant violation per spec §4.1 ("a dangling building id...
// is a fatal invariant violation").
func (oa *OutputArea) Building(localIndex int) (*Building, bool) {
	if localIndex < 0 || localIndex >= len(oa.Buildings) {
		return nil, false
	}
	return oa.Buildings[localIndex], true
}
