package uksim

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	rv "github.com/kentwait/randomvariate"
	"github.com/segmentio/ksuid"
)

// cacheVersion is written as the first value of every cache file and
// checked on read, the self-describing version header spec §6's
// "Persisted state layout" requires so a stale cache from an older
// build is rejected instead of silently misread.
const cacheVersion = 1

// LoaderOutput is everything NewSimulator needs to construct a
// Simulator: the frozen area index, the per-area building/citizen
// structures, and the flat citizen array plus its area-of-residence
// lookup.
type LoaderOutput struct {
	AreaIndex   *AreaIndex
	Areas       []*OutputArea
	Citizens    []*Citizen
	CitizenArea []int
}

// cachePayload is the gob-serialised shape written to disk. It stores
// plain data (no mutexes, no pointers into AreaIndex/Building internals)
// so gob can round-trip it without custom GobEncode/GobDecode methods.
type cachePayload struct {
	Version   int
	AreaCodes []string
	Buildings []cachedBuilding
	Citizens  []cachedCitizen
}

type cachedBuilding struct {
	AreaIndex int
	Kind      BuildingKind
	X, Y      int
	Crowding  float64
}

type cachedCitizen struct {
	Age               int
	Occupation        Occupation
	HouseholdArea     int
	HouseholdLocal    int
	WorkplaceArea     int
	WorkplaceLocal    int
	HasWorkplace      bool
	Schedule          [24][2]int // [area, local] of each hour's building
	ScheduleKind      [24]BuildingKind
}

// LoadPopulation produces a LoaderOutput for the given region, either by
// replaying a cache file (UseCache) or generating a synthetic
// population and writing a fresh cache (spec §6: "subsequent runs may
// load a previously generated population from a cache file").
func LoadPopulation(cfg RegionConfig, populationSize int, seed int64) (*LoaderOutput, error) {
	cachePath := filepath.Join(cfg.Directory, fmt.Sprintf("%s.population.gob", cfg.Code))

	if cfg.UseCache {
		if out, err := loadCache(cachePath); err == nil {
			return out, nil
		}
		// Fall through to generation; a missing or stale cache is not
		// fatal, the teacher's loader.go treats a missing population file
		// the same way (regenerate rather than abort).
	}

	out, payload, err := generateSyntheticPopulation(cfg, populationSize, seed)
	if err != nil {
		return nil, err
	}
	if err := saveCache(cachePath, payload); err != nil {
		return nil, NewResourceError(err)
	}
	return out, nil
}

func loadCache(path string) (*LoaderOutput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var payload cachePayload
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Version != cacheVersion {
		return nil, fmt.Errorf("cache %s has version %d, expected %d", path, payload.Version, cacheVersion)
	}
	return inflate(payload), nil
}

func saveCache(path string, payload cachePayload) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(payload)
}

// generateSyntheticPopulation builds a single output area's worth of
// households, workplaces, schools and citizens using Poisson/Binomial
// draws from the teacher's stochastic-variate dependency.
// rv.Binomial/rv.Poisson draw from the shared global math/rand source
// (see rng.go's subStream doc comment), which is only safe because
// population generation runs single-threaded, once, before any
// concurrent tick phase starts.
func generateSyntheticPopulation(cfg RegionConfig, populationSize int, seed int64) (*LoaderOutput, cachePayload, error) {
	rand.Seed(seed)

	areaIndex := NewAreaIndex()
	areaID, err := areaIndex.Register(cfg.Code)
	if err != nil {
		return nil, cachePayload{}, NewResourceError(err)
	}
	areaIndex.Freeze()

	area := NewOutputArea(areaID, Point{X: 0, Y: 0})

	const avgHouseholdSize = 2.4
	const employmentRate = 0.6

	citizens := make([]*Citizen, 0, populationSize)

	for len(citizens) < populationSize {
		size := int(rv.Poisson(avgHouseholdSize))
		if size < 1 {
			size = 1
		}
		if len(citizens)+size > populationSize {
			size = populationSize - len(citizens)
		}
		h := area.AddBuilding(Household, Point{X: rand.Intn(cfg.GridSize), Y: rand.Intn(cfg.GridSize)}, BuildingParams{CrowdingFactor: 0.3})

		for i := 0; i < size; i++ {
			age := rand.Intn(90)
			occ := occupationForAge(age, employmentRate)
			idx := len(citizens)
			c := &Citizen{
				ID:          CitizenID{Index: idx, Opaque: newCitizenOpaque()},
				Age:         age,
				Occupation:  occ,
				HouseholdID: h.ID(),
			}
			c.Status = Susceptible()
			c.VaccinationEligible = age >= 18
			citizens = append(citizens, c)
		}
	}

	assignWorkAndSchool(area, citizens, cfg.GridSize)

	citizenArea := make([]int, len(citizens))
	payload := toPayload(areaIndex, area, citizens, citizenArea)

	return &LoaderOutput{
		AreaIndex:   areaIndex,
		Areas:       []*OutputArea{area},
		Citizens:    citizens,
		CitizenArea: citizenArea,
	}, payload, nil
}

func occupationForAge(age int, employmentRate float64) Occupation {
	switch {
	case age < 5:
		return OccupationChild
	case age < 18:
		return OccupationStudent
	case age >= 66:
		return OccupationRetired
	default:
		if rv.Binomial(1, employmentRate) == 1.0 {
			if rv.Binomial(1, 0.15) == 1.0 {
				return OccupationEssential
			}
			return OccupationOther
		}
		return OccupationOther
	}
}

// assignWorkAndSchool builds workplace/school buildings sized to absorb
// the working-age and school-age population and fills every citizen's
// 24-hour Schedule (spec §3 Glossary "Schedule"): home overnight, work
// or school during the day for those who have one, home otherwise.
func assignWorkAndSchool(area *OutputArea, citizens []*Citizen, gridSize int) {
	const workplaceCapacity = 40
	const schoolCapacity = 200

	var workplaces, schools []*Building
	nextWorkplace := func() *Building {
		if len(workplaces) == 0 || workplaces[len(workplaces)-1].OccupantCount() >= workplaceCapacity {
			w := area.AddBuilding(Workplace, Point{X: rand.Intn(gridSize), Y: rand.Intn(gridSize)}, BuildingParams{CrowdingFactor: 0.5})
			workplaces = append(workplaces, w)
		}
		return workplaces[len(workplaces)-1]
	}
	nextSchool := func() *Building {
		if len(schools) == 0 || schools[len(schools)-1].OccupantCount() >= schoolCapacity {
			s := area.AddBuilding(School, Point{X: rand.Intn(gridSize), Y: rand.Intn(gridSize)}, BuildingParams{CrowdingFactor: 0.7})
			schools = append(schools, s)
		}
		return schools[len(schools)-1]
	}

	for _, c := range citizens {
		var dayBuilding BuildingID
		switch c.Occupation {
		case OccupationStudent:
			b := nextSchool()
			b.AddOccupant(c.ID)
			dayBuilding = b.ID()
		case OccupationOther, OccupationEssential:
			b := nextWorkplace()
			b.AddOccupant(c.ID)
			dayBuilding = b.ID()
			c.WorkplaceID = b.ID()
		default:
			dayBuilding = c.HouseholdID
		}
		for h := 0; h < 24; h++ {
			if h >= 9 && h < 17 {
				c.Schedule[h] = dayBuilding
			} else {
				c.Schedule[h] = c.HouseholdID
			}
		}
	}
	// AddOccupant above only seeds initial occupancy counts used for
	// capacity sizing; the scheduler's advancePositions rebuilds every
	// building's real occupant list from Schedule at tick 1 regardless.
	for _, w := range workplaces {
		w.Clear()
	}
	for _, s := range schools {
		s.Clear()
	}
}

func toPayload(areaIndex *AreaIndex, area *OutputArea, citizens []*Citizen, citizenArea []int) cachePayload {
	payload := cachePayload{
		Version:   cacheVersion,
		AreaCodes: []string{area.ID.Code},
	}
	for _, b := range area.Buildings {
		payload.Buildings = append(payload.Buildings, cachedBuilding{
			AreaIndex: b.ID().AreaIndex,
			Kind:      b.Kind(),
			X:         b.Point().X,
			Y:         b.Point().Y,
			Crowding:  b.Params().CrowdingFactor,
		})
	}
	for i, c := range citizens {
		citizenArea[i] = area.ID.Index
		cc := cachedCitizen{
			Age:            c.Age,
			Occupation:     c.Occupation,
			HouseholdArea:  c.HouseholdID.AreaIndex,
			HouseholdLocal: c.HouseholdID.LocalIndex,
			WorkplaceArea:  c.WorkplaceID.AreaIndex,
			WorkplaceLocal: c.WorkplaceID.LocalIndex,
			HasWorkplace:   !c.WorkplaceID.IsZero(),
		}
		for h := 0; h < 24; h++ {
			cc.Schedule[h] = [2]int{c.Schedule[h].AreaIndex, c.Schedule[h].LocalIndex}
			cc.ScheduleKind[h] = c.Schedule[h].Kind
		}
		payload.Citizens = append(payload.Citizens, cc)
	}
	return payload
}

// inflate rebuilds a LoaderOutput from a cachePayload. Building opaque
// ids are regenerated rather than round-tripped, since the cache exists
// to avoid re-running population synthesis, not to preserve identity
// across runs (spec §6 Non-goals).
func inflate(payload cachePayload) *LoaderOutput {
	areaIndex := NewAreaIndex()
	var areaID OutputAreaID
	for _, code := range payload.AreaCodes {
		areaID, _ = areaIndex.Register(code)
	}
	areaIndex.Freeze()

	area := NewOutputArea(areaID, Point{})
	for _, cb := range payload.Buildings {
		area.AddBuilding(cb.Kind, Point{X: cb.X, Y: cb.Y}, BuildingParams{CrowdingFactor: cb.Crowding})
	}

	citizens := make([]*Citizen, len(payload.Citizens))
	citizenArea := make([]int, len(payload.Citizens))
	for i, cc := range payload.Citizens {
		c := &Citizen{
			ID:         CitizenID{Index: i, Opaque: newCitizenOpaque()},
			Age:        cc.Age,
			Occupation: cc.Occupation,
			Status:     Susceptible(),
		}
		if hb, ok := area.Building(cc.HouseholdLocal); ok {
			c.HouseholdID = hb.ID()
		}
		if cc.HasWorkplace {
			if wb, ok := area.Building(cc.WorkplaceLocal); ok {
				c.WorkplaceID = wb.ID()
			}
		}
		for h := 0; h < 24; h++ {
			if b, ok := area.Building(cc.Schedule[h][1]); ok && b.Kind() == cc.ScheduleKind[h] {
				c.Schedule[h] = b.ID()
			} else {
				c.Schedule[h] = c.HouseholdID
			}
		}
		c.VaccinationEligible = c.Age >= 18
		citizens[i] = c
		citizenArea[i] = areaID.Index
	}

	return &LoaderOutput{
		AreaIndex:   areaIndex,
		Areas:       []*OutputArea{area},
		Citizens:    citizens,
		CitizenArea: citizenArea,
	}
}

func newCitizenOpaque() ksuid.KSUID {
	return ksuid.New()
}
