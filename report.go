package uksim

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// WriteSummaryReport writes the plain-text end-of-run summary spec's
// Supplemented Features call for: population size, final compartment
// counts, peak infected tick, largest traced transmission cluster, and
// total wall-clock duration. Nowhere else in this module needed a
// human-facing number/date formatter, so this is the one place
// go-humanize and go-strftime earn their import.
func WriteSummaryReport(w io.Writer, sim *Simulator, started time.Time, finished time.Time) error {
	history := sim.Stats.History()
	if len(history) == 0 {
		return fmt.Errorf("no statistics recorded")
	}
	final := history[len(history)-1]

	peakTick, peakInfected := 0, 0
	for _, rec := range history {
		if rec.Infected > peakInfected {
			peakInfected = rec.Infected
			peakTick = rec.Tick
		}
	}

	largestCluster := largestTransmissionCluster(sim.Tree)

	stamp, err := strftime.Format("%Y-%m-%d %H:%M:%S", finished)
	if err != nil {
		stamp = finished.Format(time.RFC3339)
	}

	fmt.Fprintf(w, "uksim run %s\n", sim.RunID)
	fmt.Fprintf(w, "completed %s (wall time %s)\n", stamp, humanize.RelTime(started, finished, "", ""))
	fmt.Fprintf(w, "population: %s citizens across %d output area(s)\n", humanize.Comma(int64(sim.NumCitizens())), len(sim.Areas))
	fmt.Fprintf(w, "ticks run: %d\n\n", sim.Tick())

	fmt.Fprintf(w, "final compartment counts:\n")
	fmt.Fprintf(w, "  susceptible: %s\n", humanize.Comma(int64(final.Susceptible)))
	fmt.Fprintf(w, "  exposed:     %s\n", humanize.Comma(int64(final.Exposed)))
	fmt.Fprintf(w, "  infected:    %s\n", humanize.Comma(int64(final.Infected)))
	fmt.Fprintf(w, "  recovered:   %s\n", humanize.Comma(int64(final.Recovered)))
	fmt.Fprintf(w, "  vaccinated:  %s\n", humanize.Comma(int64(final.Vaccinated)))
	fmt.Fprintf(w, "  dead:        %s\n\n", humanize.Comma(int64(final.Dead)))

	fmt.Fprintf(w, "peak infected: %s at tick %d\n", humanize.Comma(int64(peakInfected)), peakTick)
	fmt.Fprintf(w, "transmission edges recorded: %s\n", humanize.Comma(int64(sim.Tree.Size())))
	fmt.Fprintf(w, "largest traced cluster: %s citizens\n", humanize.Comma(int64(largestCluster)))
	return nil
}

// largestTransmissionCluster finds the largest set of citizens reachable
// from a single root infection in the transmission tree. A root is
// either a citizen infected with no attributable source (SourceIndex
// -1, the seed infections) or a citizen that only ever appears as a
// source and was never itself recorded as a target.
func largestTransmissionCluster(tree *InfectionTree) int {
	edges := tree.Edges()
	isTarget := make(map[int]bool, len(edges))
	for _, e := range edges {
		isTarget[e.TargetIndex] = true
	}
	roots := make(map[int]bool)
	for _, e := range edges {
		if e.SourceIndex < 0 {
			roots[e.TargetIndex] = true
		} else if !isTarget[e.SourceIndex] {
			roots[e.SourceIndex] = true
		}
	}
	best := 0
	for root := range roots {
		n := len(tree.Descendants(root)) + 1
		if n > best {
			best = n
		}
	}
	return best
}
