package uksim

// Occupation enumerates the broad occupation classes used to decide
// essential-worker status under a lockdown intervention (spec §4.5).
type Occupation uint8

const (
	OccupationChild Occupation = iota
	OccupationStudent
	OccupationRetired
	OccupationOther
	OccupationEssential
)

// Schedule maps hour-of-day (0-23) to the building a citizen should be
// at (spec §3, Glossary "Schedule").
type Schedule [24]BuildingID

// Citizen holds one person's static attributes and mutable disease/
// location state (spec §3). The dense index embedded in ID is the hot
// loop's array subscript; all other fields are read or written once per
// phase, never concurrently by two goroutines in the same phase (spec
// §5 "Shared-resource policy").
type Citizen struct {
	ID   CitizenID
	Age  int
	Occupation Occupation

	HouseholdID BuildingID
	WorkplaceID BuildingID // may equal HouseholdID for work-from-home

	CurrentBuildingID BuildingID
	Schedule          Schedule

	Status DiseaseStatus

	// PinnedToHousehold marks a citizen past the symptomatic threshold
	// (spec §4.1 edge cases, InterventionPolicy.SymptomaticPinThreshold)
	// who stays home for the rest of their infectious window regardless
	// of schedule.
	PinnedToHousehold bool

	// VaccinationEligible marks citizens the intervention controller may
	// draw from when sampling vaccinations (spec §3 "set of citizen ids
	// currently eligible for vaccination").
	VaccinationEligible bool
}

// BuildingForHour resolves the schedule-assigned building for hour h,
// before any intervention override is applied (spec §4.1 contract).
func (c *Citizen) BuildingForHour(h int) (BuildingID, error) {
	b := c.Schedule[h]
	if b.IsZero() && c.HouseholdID.IsZero() {
		return BuildingID{}, errorf(MissingScheduleError, c.ID.Index, h)
	}
	return b, nil
}

// IsAlive reports whether the citizen still participates in the
// simulation (not removed by a death draw).
func (c *Citizen) IsAlive() bool {
	return c.Status.Code != DeadStatus
}

// IsEssentialWorker reports whether a lockdown should still send this
// citizen to their workplace (spec §4.5 Lockdown: "non-essential
// occupations" are redirected home).
func (c *Citizen) IsEssentialWorker() bool {
	return c.Occupation == OccupationEssential
}
