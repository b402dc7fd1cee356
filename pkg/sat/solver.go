package sat

import "math/rand/v2"

// Solver solves a single CNF instance. Implementations are not safe for
// concurrent use; callers wanting parallel exploration must create one
// solver per unit of work.
type Solver interface {
	// Solve returns an assignment and whether it satisfies the formula.
	// Incomplete engines (WalkSAT, ILS) return the best assignment seen when
	// no satisfying one was found; the complete engine (DPLL) returns nil on
	// an unsatisfiable formula.
	Solve(formula Formula) (Assignment, bool)
	// SolveWithStats behaves like Solve and additionally reports the solve
	// statistics of the attempt.
	SolveWithStats(formula Formula) Stats
}

// Stats describes the outcome of one solving attempt. Engines leave counters
// that do not apply to them at zero: DPLL has no restarts, flips, iterations
// or seed, and WalkSAT/DPLL have no BestIteration.
type Stats struct {
	SolutionFound  bool
	Assignment     Assignment
	RestartsUsed   int
	FlipsUsed      int
	FinalSatisfied int
	BestIteration  int
	Seed           uint64
}

// newRand builds the solver-owned generator. A zero seed asks for a fresh
// one from the process entropy source; the effective seed is returned so it
// can be echoed in Stats for reproducibility.
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

func randomAssignment(rng *rand.Rand, variables uint64) Assignment {
	assignment := NewAssignment(variables)
	for variable := uint64(1); variable <= variables; variable++ {
		if rng.IntN(2) == 0 {
			assignment[variable] = True
		} else {
			assignment[variable] = False
		}
	}
	return assignment
}
