package uksim

import "math/rand"

// subStream derives a per-(seed, tick, index) deterministic RNG, the
// "counter-based deterministic RNG or per-(tick, building) splittable
// RNG" spec §9 calls for so each work item draws from an independent
// sub-stream and results stop depending on thread count or goroutine
// scheduling order (spec §5 "Ordering guarantees").
//
// kentwait/randomvariate's Binomial/Poisson helpers (used elsewhere in
// this package, see loader.go) draw from the shared global math/rand
// source and so cannot give the per-substream independence the hot loop
// needs; subStream instead seeds a private *rand.Rand per call, mixed
// with a SplitMix64-style avalanche so adjacent (tick, index) pairs
// don't produce correlated sequences.
func subStream(seed int64, tick int, index int) *rand.Rand {
	s := splitmix64(uint64(seed))
	s = splitmix64(s ^ uint64(uint32(tick))<<32)
	s = splitmix64(s ^ uint64(uint32(index)))
	return rand.New(rand.NewSource(int64(s)))
}

// splitmix64 is the standard SplitMix64 avalanche step: cheap, and with
// good enough bit-mixing that successive small-integer seeds (as tick
// and building/citizen index are) don't produce visibly correlated
// streams once fed into math/rand.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// bernoulli draws a single trial with the local substream, equivalent to
// the teacher's `rv.Binomial(1, p) == 1.0` idiom (spreader.go,
// interhost_process.go) but against a caller-supplied deterministic
// source instead of the shared global one.
func bernoulli(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
