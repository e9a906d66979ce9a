package uksim

import (
	"math"
	"sort"
	"sync"
)

// Point is an integer grid coordinate, the unit the loader expresses a
// building's geographic position in (spec §3 "integer grid coordinates").
type Point struct {
	X, Y int
}

// BuildingParams holds the per-kind parameters the exposure kernel reads
// when evaluating a building (spec §3: "Variants... differ only in
// per-building-kind parameters supplied to the exposure kernel").
type BuildingParams struct {
	// CrowdingFactor scales exposure probability with occupancy, applied
	// via Crowding(occupants) in the exposure kernel.
	CrowdingFactor float64
	// Closed marks a building shut by intervention (e.g. school
	// closure); the scheduler redirects citizens assigned here to their
	// household (spec §4.1 edge cases).
	Closed bool
}

// Crowding implements the crowding(|occupants|) term from spec §4.2. It
// grows sub-linearly with occupancy so a single extra occupant in a
// large building doesn't dominate the composed probability.
func (p BuildingParams) Crowding(occupants int) float64 {
	if occupants <= 1 {
		return 1
	}
	return p.CrowdingFactor * (1 + math.Log(float64(occupants)))
}

// Building is the capability set every building kind exposes (spec §3):
// id, geographic point, occupant list management, and the exposure hook.
// Household/Workplace/School are expressed as one concrete type carrying
// a BuildingKind tag plus BuildingParams, rather than three separate
// subtypes (spec §9 Design Notes: "re-express as a tagged variant with a
// shared capability set").
type Building struct {
	id     BuildingID
	point  Point
	params BuildingParams

	// baseCrowding is params.CrowdingFactor as configured at load time,
	// kept so ScaleCrowding can apply (and later undo) a lockdown
	// multiplier without compounding across repeated calls.
	baseCrowding float64

	mu        sync.Mutex
	occupants []CitizenID
}

// NewBuilding constructs an empty building of the given kind at point p.
func NewBuilding(id BuildingID, p Point, params BuildingParams) *Building {
	return &Building{id: id, point: p, params: params, baseCrowding: params.CrowdingFactor}
}

func (b *Building) ID() BuildingID     { return b.id }
func (b *Building) Point() Point       { return b.point }
func (b *Building) Kind() BuildingKind { return b.id.Kind }

func (b *Building) Params() BuildingParams {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

func (b *Building) SetClosed(closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.params.Closed = closed
}

func (b *Building) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params.Closed
}

// ScaleCrowding sets this building's effective CrowdingFactor to its
// configured baseline times multiplier, the "sets crowding multiplier on
// remaining open workplaces" half of spec §4.5 Lockdown. multiplier <= 0
// is treated as 1 (no change) so an unconfigured policy never zeroes out
// crowding.
func (b *Building) ScaleCrowding(multiplier float64) {
	if multiplier <= 0 {
		multiplier = 1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.params.CrowdingFactor = b.baseCrowding * multiplier
}

// Clear empties the occupant list. The scheduler does not call it:
// advancePositions replaces every building's list through SetOccupants.
func (b *Building) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.occupants = b.occupants[:0]
}

// AddOccupant appends a citizen id, serialised with a per-building lock
// (spec §4.1: "appends within a building must be serialised"). Callers
// that use the two-phase counting-sort rebuild (scheduler.go) bypass
// this lock entirely and call SetOccupants once instead.
func (b *Building) AddOccupant(id CitizenID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.occupants = append(b.occupants, id)
}

// SetOccupants replaces the occupant list wholesale. Used by the
// counting-sort rebuild path, which computes the full per-building slice
// in one pass and assigns it without per-append locking.
func (b *Building) SetOccupants(ids []CitizenID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.occupants = ids
}

func (b *Building) RemoveOccupant(id CitizenID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.occupants {
		if o.Index == id.Index {
			b.occupants = append(b.occupants[:i], b.occupants[i+1:]...)
			return
		}
	}
}

// Occupants returns a snapshot copy of the occupant list. Copying keeps
// the exposure kernel's phase-4 reads (spec §5) safe even though the
// slice header itself is never mutated again until the scheduler's next
// SetOccupants.
func (b *Building) Occupants() []CitizenID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]CitizenID, len(b.occupants))
	copy(out, b.occupants)
	return out
}

func (b *Building) OccupantCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.occupants)
}

// AssertNoDuplicateOccupants is the debug-build check named in spec §4.2
// failure semantics ("the kernel asserts uniqueness in debug builds").
func (b *Building) AssertNoDuplicateOccupants() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[int]bool, len(b.occupants))
	ids := make([]int, len(b.occupants))
	for i, o := range b.occupants {
		ids[i] = o.Index
	}
	sort.Ints(ids)
	for _, idx := range ids {
		if seen[idx] {
			return NewInvariantError(-1, b.id.String(), errorf(DuplicateOccupantError, idx, b.id.String()))
		}
		seen[idx] = true
	}
	return nil
}
