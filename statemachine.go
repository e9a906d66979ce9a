package uksim

import "sync/atomic"

// applyStateMachine is phase 5 from spec §5: it applies the fixed
// per-citizen transition table from spec §4.3 —
//
//	Susceptible -(exposure draw)->       Exposed(exposed_time)
//	Exposed     -(countdown hits 0)->    Infected(infected_time)
//	Infected    -(countdown hits 0)->    Dead | Recovered (death_rate draw)
//
// Vaccinated and Dead/Recovered are terminal per spec §8 invariant 3.
// Every write in this phase touches exactly one citizen's own Status
// field, so it runs as one flat parallel pass with no shared mutable
// state between goroutines other than the InfectionTree, whose AddEdge
// serialises on its own mutex.
func (sim *Simulator) applyStateMachine(tick int, exposures []Exposure) int {
	newlyExposed := make(map[int]Exposure, len(exposures))
	for _, e := range exposures {
		// First exposure recorded per citizen wins; later ones this tick
		// are redundant since the citizen is no longer susceptible once
		// the first is applied below.
		if _, ok := newlyExposed[e.CitizenIndex]; !ok {
			newlyExposed[e.CitizenIndex] = e
		}
	}

	var deaths int32
	withWaitGroup(len(sim.citizens), func(i int) {
		c := sim.citizens[i]
		if !c.IsAlive() {
			return
		}

		if e, ok := newlyExposed[i]; ok && c.Status.Code == SusceptibleStatus {
			c.Status = Exposed(sim.Disease.ExposedTime)
			sim.Tree.AddEdge(e.SourceIndex, e.CitizenIndex, tick, e.BuildingID)
			return
		}

		switch c.Status.Code {
		case ExposedStatus:
			if c.Status.Remaining <= 1 {
				c.Status = Infected(sim.Disease.InfectedTime)
				sim.updateSymptomaticPin(c)
			} else {
				c.Status.Remaining--
			}
		case InfectedStatus:
			if c.Status.Remaining <= 1 {
				rng := sim.rngFor(tick, i)
				if bernoulli(rng, sim.Disease.DeathRate) {
					c.Status = Dead()
					c.PinnedToHousehold = false
					atomic.AddInt32(&deaths, 1)
				} else {
					c.Status = Recovered()
					c.PinnedToHousehold = false
				}
			} else {
				c.Status.Remaining--
				sim.updateSymptomaticPin(c)
			}
		}
	})
	return int(deaths)
}

// updateSymptomaticPin pins an infected citizen to their household once
// they have spent at least InterventionPolicy.SymptomaticPinThreshold
// hours in the Infected compartment (spec §4.1 edge cases: "past the
// symptomatic threshold (intervention-configurable)").
func (sim *Simulator) updateSymptomaticPin(c *Citizen) {
	if c.PinnedToHousehold || c.Status.Code != InfectedStatus {
		return
	}
	elapsed := sim.Disease.InfectedTime - c.Status.Remaining
	if elapsed >= sim.Interventions.Policy.SymptomaticPinThreshold {
		c.PinnedToHousehold = true
	}
}
