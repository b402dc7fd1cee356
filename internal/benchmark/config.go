package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/limaJavier/satsearch/pkg/sat"
	"github.com/mitchellh/mapstructure"
)

var validSolvers = []string{"walksat", "dpll", "dpll-vsids", "ils"}

// Config drives one benchmark batch over a directory of DIMACS files.
type Config struct {
	DataDir    string `mapstructure:"dataDir"`
	ResultsDir string `mapstructure:"resultsDir"`
	MaxFiles   int    `mapstructure:"maxFiles"`
	Solver     string `mapstructure:"solver"`
	Seed       uint64 `mapstructure:"seed"`

	MaxFlips         int     `mapstructure:"maxFlips"`
	MaxRestarts      int     `mapstructure:"maxRestarts"`
	NoiseProbability float64 `mapstructure:"noiseProbability"`

	MaxIterations        int     `mapstructure:"maxIterations"`
	LocalSearchFlips     int     `mapstructure:"localSearchFlips"`
	PerturbationStrength float64 `mapstructure:"perturbationStrength"`

	DecayFactor float64 `mapstructure:"decayFactor"`
	DecayPeriod int     `mapstructure:"decayPeriod"`
}

func DefaultConfig() Config {
	walksat := sat.DefaultWalkSATOptions()
	ils := sat.DefaultILSOptions()
	vsids := sat.DefaultVSIDSOptions()

	return Config{
		DataDir:              "data",
		ResultsDir:           "results",
		Solver:               "walksat",
		MaxFlips:             walksat.MaxFlips,
		MaxRestarts:          walksat.MaxRestarts,
		NoiseProbability:     walksat.NoiseProbability,
		MaxIterations:        ils.MaxIterations,
		LocalSearchFlips:     ils.LocalSearchFlips,
		PerturbationStrength: ils.PerturbationStrength,
		DecayFactor:          vsids.DecayFactor,
		DecayPeriod:          vsids.DecayPeriod,
	}
}

// ConfigFromJSON reads a benchmark configuration file; absent keys keep
// their defaults.
func ConfigFromJSON(file string) (Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}

	var configJson map[string]any
	if err := json.Unmarshal(content, &configJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", file, err)
	}

	config := DefaultConfig()
	if err := mapstructure.Decode(configJson, &config); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file %v: %w", file, err)
	}

	if !slices.Contains(validSolvers, config.Solver) {
		return Config{}, fmt.Errorf("unknown solver %q, valid solvers: %v", config.Solver, validSolvers)
	}
	return config, nil
}

// NewSolver builds the solver the configuration names.
func (config Config) NewSolver() sat.Solver {
	switch config.Solver {
	case "dpll":
		return sat.NewDPLLSolver(sat.NewFirstUnassignedHeuristic())
	case "dpll-vsids":
		return sat.NewDPLLSolver(sat.NewVSIDSHeuristic(sat.VSIDSOptions{
			DecayFactor: config.DecayFactor,
			DecayPeriod: config.DecayPeriod,
		}))
	case "ils":
		return sat.NewILSSolver(sat.ILSOptions{
			MaxIterations:        config.MaxIterations,
			LocalSearchFlips:     config.LocalSearchFlips,
			PerturbationStrength: config.PerturbationStrength,
			NoiseProbability:     config.NoiseProbability,
			Seed:                 config.Seed,
		})
	default:
		return sat.NewWalkSATSolver(sat.WalkSATOptions{
			MaxFlips:         config.MaxFlips,
			MaxRestarts:      config.MaxRestarts,
			NoiseProbability: config.NoiseProbability,
			Seed:             config.Seed,
		})
	}
}
