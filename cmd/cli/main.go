package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/satsearch/pkg/sat"
	"github.com/samber/lo"
)

var (
	validSolvers = []string{"walksat", "dpll", "dpll-vsids", "ils"}

	input       string
	solverName  string
	seed        uint64
	maxFlips    int
	maxRestarts int
	noise       float64
	iterations  int
	localFlips  int
	strength    float64
	decayFactor float64
	decayPeriod int
	showStats   bool
)

func main() {
	flag.StringVar(&input, "input", "", "path to a DIMACS-CNF instance (required)")
	flag.StringVar(&solverName, "solver", "walksat", fmt.Sprintf("solver to use: %v", strings.Join(validSolvers, ", ")))
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 draws a fresh one)")
	flag.IntVar(&maxFlips, "max-flips", sat.DefaultWalkSATOptions().MaxFlips, "walksat: flips per restart")
	flag.IntVar(&maxRestarts, "max-restarts", sat.DefaultWalkSATOptions().MaxRestarts, "walksat: restarts")
	flag.Float64Var(&noise, "noise", sat.DefaultWalkSATOptions().NoiseProbability, "walksat/ils: random-walk probability")
	flag.IntVar(&iterations, "iterations", sat.DefaultILSOptions().MaxIterations, "ils: perturbation rounds")
	flag.IntVar(&localFlips, "local-flips", sat.DefaultILSOptions().LocalSearchFlips, "ils: flips per local search")
	flag.Float64Var(&strength, "strength", sat.DefaultILSOptions().PerturbationStrength, "ils: fraction of variables perturbed")
	flag.Float64Var(&decayFactor, "decay-factor", sat.DefaultVSIDSOptions().DecayFactor, "dpll-vsids: activity decay factor")
	flag.IntVar(&decayPeriod, "decay-period", sat.DefaultVSIDSOptions().DecayPeriod, "dpll-vsids: conflicts between decays")
	flag.BoolVar(&showStats, "stats", false, "print solve statistics")
	flag.Parse()

	if input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !slices.Contains(validSolvers, solverName) {
		log.Fatalf("unknown solver %q, valid solvers: %v", solverName, validSolvers)
	}

	formula, err := sat.LoadDIMACS(input)
	if err != nil {
		log.Fatalf("cannot load instance: %v", err)
	}

	solvers := map[string]func() sat.Solver{
		"walksat": func() sat.Solver {
			return sat.NewWalkSATSolver(sat.WalkSATOptions{
				MaxFlips:         maxFlips,
				MaxRestarts:      maxRestarts,
				NoiseProbability: noise,
				Seed:             seed,
			})
		},
		"dpll": func() sat.Solver {
			return sat.NewDPLLSolver(sat.NewFirstUnassignedHeuristic())
		},
		"dpll-vsids": func() sat.Solver {
			return sat.NewDPLLSolver(sat.NewVSIDSHeuristic(sat.VSIDSOptions{
				DecayFactor: decayFactor,
				DecayPeriod: decayPeriod,
			}))
		},
		"ils": func() sat.Solver {
			return sat.NewILSSolver(sat.ILSOptions{
				MaxIterations:        iterations,
				LocalSearchFlips:     localFlips,
				PerturbationStrength: strength,
				NoiseProbability:     noise,
				Seed:                 seed,
			})
		},
	}

	stats := solvers[solverName]().SolveWithStats(formula)

	if stats.SolutionFound {
		fmt.Println("s SATISFIABLE")
		literals := lo.Map(stats.Assignment.Literals(), func(literal int64, _ int) string {
			return fmt.Sprintf("%d", literal)
		})
		fmt.Printf("v %v 0\n", strings.Join(literals, " "))
	} else if solverName == "dpll" || solverName == "dpll-vsids" {
		fmt.Println("s UNSATISFIABLE")
	} else {
		fmt.Printf("s UNKNOWN (best: %v/%v clauses satisfied)\n", stats.FinalSatisfied, len(formula.Clauses))
	}

	if showStats {
		fmt.Printf("c restarts=%v flips=%v satisfied=%v best_iteration=%v seed=%v\n",
			stats.RestartsUsed, stats.FlipsUsed, stats.FinalSatisfied, stats.BestIteration, stats.Seed)
	}
}
