package uksim

import "sync"

// CountRecord is one tick's aggregate compartment snapshot, the unit
// every StatsBackend persists. Aggregating per tick rather than
// per-citizen (contrast the teacher's per-host StatusPackage in
// logger.go) keeps output size independent of population for the large
// populations this simulator targets (spec §3 "hundreds of thousands of
// citizens").
type CountRecord struct {
	Tick             int
	Susceptible      int
	Exposed          int
	Infected         int
	Recovered        int
	Vaccinated       int
	Dead             int
	LockdownActive   bool
	MaskingActive    bool
}

// StatsBackend persists a stream of CountRecords, mirroring the
// teacher's DataLogger shape (logger.go): Init before the run, a
// channel-consuming write method, explicit Close after.
type StatsBackend interface {
	Init() error
	WriteSnapshots(c <-chan CountRecord)
	Close() error
}

// StatsRecorder computes and retains per-tick compartment counts and
// forwards them to an optional StatsBackend. Current() is also the read
// path InterventionController.Evaluate and StopWhenNoActiveInfection
// use, so a Recorder always exists even when no backend is configured.
type StatsRecorder struct {
	sim *Simulator

	mu      sync.RWMutex
	current [6]int
	history []CountRecord

	Backend StatsBackend
	feed    chan CountRecord
	done    chan struct{}
}

func NewStatsRecorder(sim *Simulator) *StatsRecorder {
	return &StatsRecorder{sim: sim}
}

// Init prepares the backend, if any, and starts its write goroutine.
func (r *StatsRecorder) Init() error {
	if r.Backend == nil {
		return nil
	}
	if err := r.Backend.Init(); err != nil {
		return NewResourceError(err)
	}
	r.feed = make(chan CountRecord, 64)
	r.done = make(chan struct{})
	go func() {
		defer close(r.done)
		r.Backend.WriteSnapshots(r.feed)
	}()
	return nil
}

// Snapshot computes compartment counts for the current citizen array
// and appends + forwards a CountRecord for tick.
func (r *StatsRecorder) Snapshot(tick int) {
	var counts [6]int
	for _, c := range r.sim.citizens {
		counts[c.Status.Code]++
	}

	rec := CountRecord{
		Tick:           tick,
		Susceptible:    counts[SusceptibleStatus],
		Exposed:        counts[ExposedStatus],
		Infected:       counts[InfectedStatus],
		Recovered:      counts[RecoveredStatus],
		Vaccinated:     counts[VaccinatedStatus],
		Dead:           counts[DeadStatus],
		LockdownActive: r.sim.Interventions.LockdownActive(),
		MaskingActive:  r.sim.Interventions.MaskingActive(),
	}

	r.mu.Lock()
	r.current = counts
	r.history = append(r.history, rec)
	r.mu.Unlock()

	if r.feed != nil {
		r.feed <- rec
	}
}

// Current returns the most recent per-compartment counts, keyed by
// StatusCode, for callers that evaluate thresholds mid-run.
func (r *StatsRecorder) Current() map[StatusCode]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return map[StatusCode]int{
		SusceptibleStatus: r.current[SusceptibleStatus],
		ExposedStatus:     r.current[ExposedStatus],
		InfectedStatus:    r.current[InfectedStatus],
		RecoveredStatus:   r.current[RecoveredStatus],
		VaccinatedStatus:  r.current[VaccinatedStatus],
		DeadStatus:        r.current[DeadStatus],
	}
}

// History returns every recorded CountRecord in tick order.
func (r *StatsRecorder) History() []CountRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CountRecord, len(r.history))
	copy(out, r.history)
	return out
}

// Finalize closes the backend's input channel and waits for its write
// goroutine to drain, matching the teacher's close-then-range-exits
// channel lifecycle used throughout si_simulation.go.
func (r *StatsRecorder) Finalize() {
	if r.feed == nil {
		return
	}
	close(r.feed)
	<-r.done
	if err := r.Backend.Close(); err != nil {
		r.sim.log.Error().Err(err).Msg("closing stats backend")
	}
}
