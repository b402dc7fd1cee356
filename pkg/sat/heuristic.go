package sat

import "log"

// DecisionHeuristic chooses branching variables for the backtracking engine
// and observes conflicts to steer later decisions. The engine depends only
// on this interface, never on a concrete variant.
type DecisionHeuristic interface {
	// Initialize performs one-time setup for the formula about to be solved.
	Initialize(formula Formula)
	// PickUnassignedVariable returns the next variable to branch on; ok is
	// false iff every variable is assigned.
	PickUnassignedVariable(assignment Assignment) (variable int64, ok bool)
	// HandleConflict is invoked after a failed propagation or branch with
	// the falsified clause. A nil clause must be a no-op.
	HandleConflict(conflict Clause)
}

// NewFirstUnassignedHeuristic returns the deterministic baseline heuristic:
// always the lowest-indexed unassigned variable, conflicts ignored.
func NewFirstUnassignedHeuristic() DecisionHeuristic {
	return &firstUnassignedHeuristic{}
}

type firstUnassignedHeuristic struct {
	variables uint64
}

func (heuristic *firstUnassignedHeuristic) Initialize(formula Formula) {
	heuristic.variables = formula.Variables
}

func (heuristic *firstUnassignedHeuristic) PickUnassignedVariable(assignment Assignment) (int64, bool) {
	for variable := int64(1); variable <= int64(heuristic.variables); variable++ {
		if assignment[variable] == Unassigned {
			return variable, true
		}
	}
	return 0, false
}

func (heuristic *firstUnassignedHeuristic) HandleConflict(Clause) {}

// VSIDSOptions controls the activity decay of the VSIDS heuristic.
type VSIDSOptions struct {
	DecayFactor float64
	DecayPeriod int
}

func DefaultVSIDSOptions() VSIDSOptions {
	return VSIDSOptions{
		DecayFactor: 0.95,
		DecayPeriod: 256,
	}
}

// NewVSIDSHeuristic returns the Variable State Independent Decaying Sum
// heuristic: scores seeded from literal occurrence counts, bumped for every
// variable of a conflict clause, and multiplied by DecayFactor after every
// DecayPeriod conflicts.
func NewVSIDSHeuristic(options VSIDSOptions) DecisionHeuristic {
	if options.DecayFactor <= 0 || options.DecayFactor >= 1 {
		log.Panicf("vsids: decay factor must lie in (0, 1): %v", options.DecayFactor)
	}
	if options.DecayPeriod <= 0 {
		log.Panicf("vsids: decay period must be positive: %v", options.DecayPeriod)
	}
	return &vsidsHeuristic{options: options}
}

type vsidsHeuristic struct {
	options             VSIDSOptions
	variables           uint64
	scores              []float64
	conflictsSinceDecay int
}

func (heuristic *vsidsHeuristic) Initialize(formula Formula) {
	heuristic.variables = formula.Variables
	heuristic.scores = make([]float64, formula.Variables+1)
	heuristic.conflictsSinceDecay = 0

	for _, clause := range formula.Clauses {
		for _, literal := range clause {
			heuristic.scores[abs(literal)]++
		}
	}
}

func (heuristic *vsidsHeuristic) HandleConflict(conflict Clause) {
	if conflict == nil {
		return
	}

	for _, literal := range conflict {
		heuristic.scores[abs(literal)]++
	}

	heuristic.conflictsSinceDecay++
	if heuristic.conflictsSinceDecay >= heuristic.options.DecayPeriod {
		for variable := int64(1); variable < int64(len(heuristic.scores)); variable++ {
			heuristic.scores[variable] *= heuristic.options.DecayFactor
		}
		heuristic.conflictsSinceDecay = 0
	}
}

// PickUnassignedVariable returns the unassigned variable with the strictly
// highest score; the ascending scan makes ties fall to the lowest id.
func (heuristic *vsidsHeuristic) PickUnassignedVariable(assignment Assignment) (int64, bool) {
	best := int64(0)
	bestScore := -1.0

	for variable := int64(1); variable <= int64(heuristic.variables); variable++ {
		if assignment[variable] == Unassigned && heuristic.scores[variable] > bestScore {
			best = variable
			bestScore = heuristic.scores[variable]
		}
	}

	return best, best != 0
}
