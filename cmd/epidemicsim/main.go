// Command epidemicsim runs a single instance of the agent-based
// epidemic simulator against one output area's population.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	uksim "github.com/epinet/uksim"
)

func main() {
	numCPU := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	directory := flag.String("directory", ".", "directory containing (or to cache) population data")
	gridSize := flag.Int("grid-size", 100, "synthetic population grid size")
	populationSize := flag.Int("population", 10000, "synthetic population size")
	useCache := flag.Bool("use-cache", false, "load a previously cached population if present")
	simulate := flag.Bool("simulate", true, "run the simulation after loading the population")
	outputName := flag.String("output_name", "run", "base name for statistics output files")
	backend := flag.String("logger", "csv", "statistics backend (csv|sqlite|none)")
	seed := flag.Int64("seed", time.Now().UTC().UnixNano(), "random seed")
	flag.Parse()

	regionCode := flag.Arg(0)
	if regionCode == "" {
		fmt.Fprintln(os.Stderr, "usage: epidemicsim [flags] <region-code>")
		os.Exit(2)
	}

	runtime.GOMAXPROCS(*numCPU)

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg := &uksim.Config{
		Region: uksim.RegionConfig{
			Code:      regionCode,
			Directory: *directory,
			GridSize:  *gridSize,
			UseCache:  *useCache,
		},
		Disease: uksim.DiseaseModel{
			ReproductionRate: 1.8,
			ExposureChance:   0.08,
			DeathRate:        0.01,
			ExposedTime:      72,
			InfectedTime:     168,
			MaxTimeStep:      24 * 90,
		},
		Logging: uksim.LoggingConfig{
			Backend: *backend,
			Path:    fmt.Sprintf("%s.%s", *outputName, backendExt(*backend)),
		},
		Seed: *seed,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	out, err := uksim.LoadPopulation(cfg.Region, *populationSize, cfg.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load population")
	}

	if !*simulate {
		log.Info().Int("citizens", len(out.Citizens)).Msg("population loaded, skipping simulation (--simulate=false)")
		return
	}

	sim, err := uksim.NewSimulator(out, cfg.Disease, cfg.Seed, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct simulator")
	}
	sim.Interventions.Policy = cfg.Policy
	backendImpl, err := cfg.Logging.NewBackend()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct statistics backend")
	}
	sim.Stats.Backend = backendImpl
	sim.AddStopCondition(uksim.StopWhenNoActiveInfection())

	started := time.Now()
	if err := sim.Run(); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
	finished := time.Now()

	if err := uksim.WriteSummaryReport(os.Stdout, sim, started, finished); err != nil {
		log.Error().Err(err).Msg("failed to write summary report")
	}
}

func backendExt(backend string) string {
	switch backend {
	case "sqlite":
		return "db"
	default:
		return "csv"
	}
}
