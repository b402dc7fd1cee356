package sat

import (
	"log"
	"math"
	"math/rand/v2"
)

// WalkSATOptions bounds the stochastic local search. A zero Seed draws a
// fresh one from the process entropy source; either way the effective seed is
// echoed in Stats.Seed.
type WalkSATOptions struct {
	MaxFlips         int
	MaxRestarts      int
	NoiseProbability float64
	Seed             uint64
}

func DefaultWalkSATOptions() WalkSATOptions {
	return WalkSATOptions{
		MaxFlips:         10000,
		MaxRestarts:      100,
		NoiseProbability: 0.57,
	}
}

type walkSATSolver struct {
	options WalkSATOptions
}

// NewWalkSATSolver returns the stochastic local-search engine: random-walk
// moves with probability NoiseProbability, minimum-break-count greedy moves
// otherwise, restarting from a fresh random assignment when the flip budget
// runs out.
func NewWalkSATSolver(options WalkSATOptions) Solver {
	if options.MaxFlips <= 0 || options.MaxRestarts <= 0 {
		log.Panicf("walksat: flip and restart budgets must be positive: %+v", options)
	}
	if options.NoiseProbability < 0 || options.NoiseProbability > 1 {
		log.Panicf("walksat: noise probability must lie in [0, 1]: %v", options.NoiseProbability)
	}
	return &walkSATSolver{options: options}
}

func (solver *walkSATSolver) Solve(formula Formula) (Assignment, bool) {
	stats := solver.SolveWithStats(formula)
	return stats.Assignment, stats.SolutionFound
}

func (solver *walkSATSolver) SolveWithStats(formula Formula) Stats {
	rng, seed := newRand(solver.options.Seed)
	occurrences := BuildOccurrenceIndex(formula)

	stats := Stats{Seed: seed}
	var best Assignment
	bestSatisfied := -1

	for restart := 0; restart < solver.options.MaxRestarts; restart++ {
		assignment := randomAssignment(rng, formula.Variables)

		for flip := 0; flip < solver.options.MaxFlips; flip++ {
			if formula.IsSatisfied(assignment) {
				stats.SolutionFound = true
				stats.Assignment = assignment
				stats.RestartsUsed = restart + 1
				stats.FlipsUsed += flip
				stats.FinalSatisfied = len(formula.Clauses)
				return stats
			}

			variable := pickFlipVariable(rng, formula, occurrences, assignment, solver.options.NoiseProbability)
			assignment.flip(variable)
		}

		stats.RestartsUsed = restart + 1
		stats.FlipsUsed += solver.options.MaxFlips

		// Keep the best assignment across restarts so a failed run still
		// reports the strongest partial result.
		if satisfied := formula.CountSatisfied(assignment); satisfied > bestSatisfied {
			bestSatisfied = satisfied
			best = assignment
		}
	}

	stats.Assignment = best
	stats.FinalSatisfied = bestSatisfied
	return stats
}

// pickFlipVariable performs one WalkSAT step selection: draw a random
// unsatisfied clause, then either a random-walk move or a greedy
// minimum-break-count move.
func pickFlipVariable(rng *rand.Rand, formula Formula, occurrences OccurrenceIndex, assignment Assignment, noiseProbability float64) int64 {
	unsatisfied := formula.UnsatisfiedClauses(assignment)
	clause := unsatisfied[rng.IntN(len(unsatisfied))]

	if rng.Float64() < noiseProbability {
		return abs(clause[rng.IntN(len(clause))])
	}
	return chooseBestVariable(rng, formula, occurrences, assignment, clause)
}

// chooseBestVariable returns a variable of the clause achieving the minimum
// break count, ties broken uniformly at random.
func chooseBestVariable(rng *rand.Rand, formula Formula, occurrences OccurrenceIndex, assignment Assignment, clause Clause) int64 {
	bestVariables := make([]int64, 0, len(clause))
	bestBreakCount := math.MaxInt

	for _, literal := range clause {
		variable := abs(literal)
		count := breakCount(formula, occurrences, assignment, variable)
		if count < bestBreakCount {
			bestBreakCount = count
			bestVariables = append(bestVariables[:0], variable)
		} else if count == bestBreakCount {
			bestVariables = append(bestVariables, variable)
		}
	}

	return bestVariables[rng.IntN(len(bestVariables))]
}

// breakCount counts the clauses containing the variable that hold now and
// would stop holding if the variable were flipped. Only the variable's
// occurrence list is examined; the flip is simulated in place and undone.
func breakCount(formula Formula, occurrences OccurrenceIndex, assignment Assignment, variable int64) int {
	count := 0
	for _, clauseIdx := range occurrences[variable] {
		clause := formula.Clauses[clauseIdx]
		if !clause.IsSatisfied(assignment) {
			continue
		}

		assignment.flip(variable)
		if !clause.IsSatisfied(assignment) {
			count++
		}
		assignment.flip(variable)
	}
	return count
}
