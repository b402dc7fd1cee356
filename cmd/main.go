package main

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/kr/pretty"
	"github.com/limaJavier/satsearch/pkg/sat"
)

const (
	Variables  = 20
	Clauses    = 91
	ClauseSize = 3
)

func main() {
	rng := rand.New(rand.NewPCG(1, 1))
	formula := sat.GeneratePlantedFormula(rng, Variables, Clauses, ClauseSize)

	fmt.Printf("Random planted 3-SAT instance: %v variables, %v clauses\n\n", formula.Variables, len(formula.Clauses))

	solvers := map[string]sat.Solver{
		"walksat":    sat.NewWalkSATSolver(sat.DefaultWalkSATOptions()),
		"dpll":       sat.NewDPLLSolver(sat.NewFirstUnassignedHeuristic()),
		"dpll-vsids": sat.NewDPLLSolver(sat.NewVSIDSHeuristic(sat.DefaultVSIDSOptions())),
		"ils":        sat.NewILSSolver(sat.DefaultILSOptions()),
	}

	for name, solver := range solvers {
		stats := solver.SolveWithStats(formula)

		fmt.Printf("== %v ==\n", name)
		pretty.Println(stats)

		if stats.SolutionFound && !sat.AssertSolution(formula, stats.Assignment) {
			log.Fatalf("%v returned an invalid solution", name)
		}
	}

	fmt.Println("Well done!")
}
