package uksim

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StopCondition is a predicate over the running Simulator evaluated once
// per tick (spec §9 Design Notes, adapted from the teacher's
// StopCondition interface in stop_condition.go). Unlike the teacher's
// genotype-existence checks, these predicates look at aggregate
// compartment counts — e.g. "stop once zero citizens remain
// Exposed+Infected".
type StopCondition interface {
	Check(sim *Simulator) bool
}

// stopWhenNoActiveInfection is a StopCondition supplementing spec §6's
// max_time_step: most runs of this genre of simulator also stop early
// once the outbreak has burned out, rather than grinding through empty
// remaining ticks.
type stopWhenNoActiveInfection struct{}

// StopWhenNoActiveInfection returns a StopCondition satisfied once no
// citizen is Exposed or Infected.
func StopWhenNoActiveInfection() StopCondition { return stopWhenNoActiveInfection{} }

func (stopWhenNoActiveInfection) Check(sim *Simulator) bool {
	counts := sim.Stats.Current()
	return counts[ExposedStatus] == 0 && counts[InfectedStatus] == 0
}

// Simulator is the root object from spec §3: it owns all output areas,
// maintains the citizen→(output-area, local index) lookup, the set of
// vaccination-eligible citizen ids, and global per-tick counters. It is
// constructed once from loader output and advanced only by Run, one
// runTick per tick.
type Simulator struct {
	RunID uuid.UUID

	AreaIndex *AreaIndex
	Areas     []*OutputArea

	// citizens is the single dense [0, N) array every hot-path operation
	// indexes into (spec §3 CitizenID invariant).
	citizens []*Citizen

	// citizenArea[i] is the output-area index citizen i resides in, kept
	// alongside citizens so Simulator satisfies the "citizen→(output-area,
	// local index) lookup" requirement of spec §3 without a second map
	// lookup in the hot loop.
	citizenArea []int

	Disease DiseaseModel

	Interventions *InterventionController
	Stats         *StatsRecorder
	Tree          *InfectionTree
	Metrics       *Metrics

	stopConditions []StopCondition

	seed int64

	cancelled int32 // atomic flag, checked between ticks (spec §5 Cancellation)

	log zerolog.Logger

	tick int

	clampWarnOnce sync.Once
}

// warnProbabilityClamped logs spec §7(c)'s required once-per-run warning
// the first time a composed exposure probability falls outside [0,1] and
// has to be clamped. Later occurrences in the same run are expected (the
// same disease model keeps producing them every tick) and stay silent.
func (sim *Simulator) warnProbabilityClamped() {
	sim.clampWarnOnce.Do(func() {
		sim.log.Warn().Msg("composed exposure probability fell outside [0, 1] and was clamped")
	})
}

// NewSimulator constructs a Simulator from loader output. It does not
// run any ticks.
func NewSimulator(out *LoaderOutput, disease DiseaseModel, seed int64, logger zerolog.Logger) (*Simulator, error) {
	if err := disease.Validate(); err != nil {
		return nil, NewConfigurationError(err)
	}
	runID := uuid.New()
	sim := &Simulator{
		RunID:         runID,
		AreaIndex:     out.AreaIndex,
		Areas:         out.Areas,
		citizens:      out.Citizens,
		citizenArea:   out.CitizenArea,
		Disease:       disease,
		Interventions: NewInterventionController(),
		Tree:          NewInfectionTree(),
		seed:          seed,
		log:           logger.With().Str("run_id", runID.String()).Logger(),
	}
	sim.Stats = NewStatsRecorder(sim)
	sim.Metrics = NewMetrics()

	for _, area := range sim.Areas {
		area.CitizenIndices = area.CitizenIndices[:0]
	}
	for i, a := range sim.citizenArea {
		sim.Areas[a].CitizenIndices = append(sim.Areas[a].CitizenIndices, i)
	}

	eligible := make([]int, 0, len(sim.citizens))
	for i, c := range sim.citizens {
		if c.VaccinationEligible {
			eligible = append(eligible, i)
		}
	}
	sim.Interventions.SetEligiblePool(eligible)

	return sim, nil
}

// AddStopCondition registers an additional early-exit predicate checked
// at the end of every tick, alongside Disease.MaxTimeStep.
func (sim *Simulator) AddStopCondition(c StopCondition) {
	sim.stopConditions = append(sim.stopConditions, c)
}

// Cancel requests that Run stop before starting the next tick (spec §5
// Cancellation: "mid-tick cancellation is not supported").
func (sim *Simulator) Cancel() {
	atomic.StoreInt32(&sim.cancelled, 1)
}

func (sim *Simulator) cancelRequested() bool {
	return atomic.LoadInt32(&sim.cancelled) == 1
}

// NumCitizens returns the dense citizen count.
func (sim *Simulator) NumCitizens() int { return len(sim.citizens) }

// Citizen returns the citizen at dense index i.
func (sim *Simulator) Citizen(i int) *Citizen { return sim.citizens[i] }

// Tick returns the current (most recently completed, or in-progress)
// tick number.
func (sim *Simulator) Tick() int { return sim.tick }

// BuildingByID resolves a BuildingID to its concrete Building, the
// single indirection point spec §9 calls for ("a single bijection table
// ... mediates translation"). Returns an InvariantError if the id is
// dangling (spec §4.1 "a dangling building id ... is a fatal invariant
// violation").
func (sim *Simulator) BuildingByID(id BuildingID) (*Building, error) {
	if id.AreaIndex < 0 || id.AreaIndex >= len(sim.Areas) {
		return nil, NewInvariantError(sim.tick, id.String(), errorf(DanglingBuildingError, id.String(), -1))
	}
	b, ok := sim.Areas[id.AreaIndex].Building(id.LocalIndex)
	if !ok {
		return nil, NewInvariantError(sim.tick, id.String(), errorf(DanglingBuildingError, id.String(), -1))
	}
	return b, nil
}

// Run advances the simulation from tick 1 up to Disease.MaxTimeStep (or
// until a StopCondition fires), recording statistics after tick 0 (the
// initial state) and after every subsequent tick, following the
// teacher's SISimulation.Run shape (si_simulation.go): Init, Update(0),
// then Process/Transmit/Update per generation.
func (sim *Simulator) Run() error {
	sim.log.Info().Int("citizens", len(sim.citizens)).Int("areas", len(sim.Areas)).Msg("starting run")
	if err := sim.Stats.Init(); err != nil {
		return err
	}
	sim.Stats.Snapshot(0)

	for t := 1; t <= sim.Disease.MaxTimeStep; t++ {
		if sim.cancelRequested() {
			sim.log.Warn().Int("tick", t).Msg("cancellation requested, stopping before tick")
			break
		}
		if err := sim.runTick(t); err != nil {
			return err
		}
		for _, cond := range sim.stopConditions {
			if cond.Check(sim) {
				sim.log.Info().Int("tick", t).Msg("stop condition satisfied")
				sim.Stats.Finalize()
				return nil
			}
		}
	}
	sim.Stats.Finalize()
	sim.log.Info().Int("final_tick", sim.tick).Msg("run complete")
	return nil
}

// runTick executes the six barrier-separated phases from spec §5 for a
// single tick. Every phase fully completes (all spawned goroutines
// joined) before the next phase starts: "all threads join at each phase
// boundary... There is no overlap between phases."
func (sim *Simulator) runTick(t int) error {
	sim.tick = t
	start := sim.Metrics.StartTick()

	// Phase 1: intervention evaluation, single-threaded.
	sim.Interventions.Evaluate(sim, t)

	// Phase 2+3: schedule & move, then occupant-list rebuild.
	if err := sim.advancePositions(t); err != nil {
		return err
	}

	// Phase 4: exposure kernel.
	exposures, err := sim.computeExposures(t)
	if err != nil {
		return err
	}

	// Phase 5: state-machine apply.
	deaths := sim.applyStateMachine(t, exposures)
	sim.Metrics.ObserveExposures(len(exposures))
	sim.Metrics.ObserveDeaths(deaths)

	// Phase 6: statistics.
	sim.Stats.Snapshot(t)

	sim.Metrics.EndTick(start)
	return nil
}

// rngFor returns the deterministic sub-stream RNG for (tick, index),
// shared by every phase that needs reproducible stochastic draws.
func (sim *Simulator) rngFor(tick, index int) *rand.Rand {
	return subStream(sim.seed, tick, index)
}

// withWaitGroup runs fn(i) for every i in [0, n) on its own goroutine
// and blocks until all complete, mirroring the teacher's
// sync.WaitGroup fan-out idiom used throughout si_simulation.go and
// stop_condition.go.
func withWaitGroup(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}
