package uksim

import "math"

// Exposure records that a citizen's contact with an infectious occupant
// in some building resulted in a successful transmission draw this
// tick (spec §4.2). SourceIndex is the infectious occupant credited with
// the infection tree entry (spec "Supplemented Features": transmission
// chain); when more than one infectious occupant was present, one of them
// is drawn at random.
type Exposure struct {
	CitizenIndex int
	SourceIndex  int
	BuildingID   BuildingID
}

// computeExposures is phase 4 from spec §5: for every building with at
// least one infectious occupant, every susceptible occupant draws a
// Bernoulli trial against the aggregate probability 1 - (1-p)^|infectious|,
// where p = exposure_chance * building_kind_factor * mask_multiplier *
// crowding(|occupants|) is clamped to [0,1] before the aggregate is formed
// (spec §4.2 steps 2-3, §7). building_kind_factor is folded into
// BuildingParams.CrowdingFactor, so Crowding() already carries it; masking
// is folded in via effectiveExposureChance. Buildings are processed in
// parallel (spec §9: "one worker per building, with
// buildings bucketed across worker goroutines"); because the scheduler
// phase partitions citizens disjointly across buildings, no two workers
// ever touch the same citizen, so the only shared state written here is
// per-citizen and safe without locking.
func (sim *Simulator) computeExposures(tick int) ([]Exposure, error) {
	var buildings []*Building
	for _, area := range sim.Areas {
		buildings = append(buildings, area.Buildings...)
	}

	results := make([][]Exposure, len(buildings))
	var errs errOnce
	withWaitGroup(len(buildings), func(bi int) {
		b := buildings[bi]
		occupants := b.Occupants()
		if len(occupants) < 2 {
			return
		}
		if err := b.AssertNoDuplicateOccupants(); err != nil {
			if ie, ok := err.(*InvariantError); ok {
				ie.Tick = tick
			}
			errs.set(err)
			return
		}

		infectious := make([]CitizenID, 0, len(occupants))
		for _, id := range occupants {
			if sim.citizens[id.Index].Status.IsInfectious() {
				infectious = append(infectious, id)
			}
		}
		if len(infectious) == 0 {
			return
		}

		base := sim.Interventions.effectiveExposureChance(sim.Disease.ExposureChance)
		p, outOfRange := clampProbability(base * b.Params().Crowding(len(occupants)))
		if outOfRange {
			sim.warnProbabilityClamped()
		}
		aggregate := 1 - math.Pow(1-p, float64(len(infectious)))

		var exposures []Exposure
		for _, id := range occupants {
			c := sim.citizens[id.Index]
			if c.Status.Code != SusceptibleStatus {
				continue
			}
			rng := sim.rngFor(tick, id.Index)
			if !bernoulli(rng, aggregate) {
				continue
			}
			source := -1
			if len(infectious) == 1 {
				source = infectious[0].Index
			} else {
				source = infectious[int(rng.Int63())%len(infectious)].Index
			}
			exposures = append(exposures, Exposure{
				CitizenIndex: id.Index,
				SourceIndex:  source,
				BuildingID:   b.ID(),
			})
		}
		results[bi] = exposures
	})
	if err := errs.get(); err != nil {
		return nil, err
	}

	var out []Exposure
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
