package sat

import (
	"log"
	"math"
	"math/rand/v2"
)

// ILSOptions bounds the iterated local search. PerturbationStrength is the
// fraction of variables flipped between local-search runs; a zero Seed draws
// a fresh one from the process entropy source.
type ILSOptions struct {
	MaxIterations        int
	LocalSearchFlips     int
	PerturbationStrength float64
	NoiseProbability     float64
	Seed                 uint64
}

func DefaultILSOptions() ILSOptions {
	return ILSOptions{
		MaxIterations:        100,
		LocalSearchFlips:     1000,
		PerturbationStrength: 0.1,
		NoiseProbability:     0.57,
	}
}

// acceptanceProbability lets a worsening candidate replace the current
// solution occasionally so the search can leave deep local optima.
const acceptanceProbability = 0.001

type ilsSolver struct {
	options ILSOptions
}

// NewILSSolver returns the MAX-SAT orchestrator: bounded WalkSAT runs
// alternated with random perturbations, keeping the best assignment seen.
// SolutionFound reports whether that best assignment satisfies everything.
func NewILSSolver(options ILSOptions) Solver {
	if options.MaxIterations <= 0 || options.LocalSearchFlips <= 0 {
		log.Panicf("ils: iteration and flip budgets must be positive: %+v", options)
	}
	if options.PerturbationStrength <= 0 || options.PerturbationStrength > 1 {
		log.Panicf("ils: perturbation strength must lie in (0, 1]: %v", options.PerturbationStrength)
	}
	if options.NoiseProbability < 0 || options.NoiseProbability > 1 {
		log.Panicf("ils: noise probability must lie in [0, 1]: %v", options.NoiseProbability)
	}
	return &ilsSolver{options: options}
}

func (solver *ilsSolver) Solve(formula Formula) (Assignment, bool) {
	stats := solver.SolveWithStats(formula)
	return stats.Assignment, stats.SolutionFound
}

func (solver *ilsSolver) SolveWithStats(formula Formula) Stats {
	rng, seed := newRand(solver.options.Seed)
	occurrences := BuildOccurrenceIndex(formula)

	current, currentFitness := solver.localSearch(rng, formula, occurrences, randomAssignment(rng, formula.Variables))
	best := current.Copy()
	bestFitness := currentFitness
	bestIteration := 0

	for iteration := 1; iteration <= solver.options.MaxIterations && bestFitness < len(formula.Clauses); iteration++ {
		perturbed := solver.perturb(rng, formula, current)
		candidate, candidateFitness := solver.localSearch(rng, formula, occurrences, perturbed)

		if candidateFitness >= currentFitness || rng.Float64() < acceptanceProbability {
			current = candidate
			currentFitness = candidateFitness
		}

		if candidateFitness > bestFitness {
			best = candidate.Copy()
			bestFitness = candidateFitness
			bestIteration = iteration
		}
	}

	return Stats{
		SolutionFound:  bestFitness == len(formula.Clauses),
		Assignment:     best,
		FinalSatisfied: bestFitness,
		BestIteration:  bestIteration,
		Seed:           seed,
	}
}

// localSearch runs the bounded WalkSAT inner loop on the given assignment,
// mutating it in place, and returns the best assignment and fitness seen
// during the run.
func (solver *ilsSolver) localSearch(rng *rand.Rand, formula Formula, occurrences OccurrenceIndex, assignment Assignment) (Assignment, int) {
	best := assignment.Copy()
	bestFitness := formula.CountSatisfied(assignment)

	for flip := 0; flip < solver.options.LocalSearchFlips; flip++ {
		if formula.IsSatisfied(assignment) {
			return assignment, len(formula.Clauses)
		}

		variable := pickFlipVariable(rng, formula, occurrences, assignment, solver.options.NoiseProbability)
		assignment.flip(variable)

		if fitness := formula.CountSatisfied(assignment); fitness > bestFitness {
			bestFitness = fitness
			best = assignment.Copy()
		}
	}

	return best, bestFitness
}

// perturb flips a uniformly random subset of variables of size
// max(1, round(variables*strength)) on a copy of the assignment.
func (solver *ilsSolver) perturb(rng *rand.Rand, formula Formula, assignment Assignment) Assignment {
	perturbed := assignment.Copy()
	flips := max(1, int(math.Round(float64(formula.Variables)*solver.options.PerturbationStrength)))

	for _, variable := range rng.Perm(int(formula.Variables))[:flips] {
		perturbed.flip(int64(variable) + 1)
	}
	return perturbed
}
