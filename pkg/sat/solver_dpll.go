package sat

import "log"

// NewDPLLSolver returns the complete backtracking engine: unit propagation
// to a fixpoint, then heuristic-driven branching with trail-based undo. A
// nil heuristic defaults to FirstUnassigned.
func NewDPLLSolver(heuristic DecisionHeuristic) Solver {
	if heuristic == nil {
		heuristic = NewFirstUnassignedHeuristic()
	}
	return &dpllSolver{heuristic: heuristic}
}

type dpllSolver struct {
	heuristic DecisionHeuristic

	formula Formula
	assigns Assignment
	// trail records assigned variables in order; backtracking unassigns the
	// suffix pushed since the branch mark instead of copying the assignment.
	trail []int64
	// conflict points at the clause falsified by the last failed propagation
	// and is valid until the next propagate call.
	conflict Clause
}

func (solver *dpllSolver) Solve(formula Formula) (Assignment, bool) {
	stats := solver.SolveWithStats(formula)
	return stats.Assignment, stats.SolutionFound
}

func (solver *dpllSolver) SolveWithStats(formula Formula) Stats {
	solver.formula = formula
	solver.assigns = NewAssignment(formula.Variables)
	solver.trail = solver.trail[:0]
	solver.conflict = nil
	solver.heuristic.Initialize(formula)

	if !solver.dpll() {
		return Stats{FinalSatisfied: formula.CountSatisfied(solver.assigns)}
	}

	return Stats{
		SolutionFound:  true,
		Assignment:     solver.assigns,
		FinalSatisfied: len(formula.Clauses),
	}
}

func (solver *dpllSolver) dpll() bool {
	if !solver.propagate() {
		solver.heuristic.HandleConflict(solver.conflict)
		return false
	}

	if solver.assigns.Complete() {
		// Propagation cannot complete an assignment without satisfying the
		// formula; the check stays as a safety net.
		return solver.formula.IsSatisfied(solver.assigns)
	}

	variable, ok := solver.heuristic.PickUnassignedVariable(solver.assigns)
	if !ok {
		return solver.formula.IsSatisfied(solver.assigns)
	}
	if solver.assigns[variable] != Unassigned {
		log.Panicf("dpll: heuristic picked assigned variable %v", variable)
	}

	mark := len(solver.trail)

	solver.assign(variable, True)
	if solver.dpll() {
		return true
	}
	solver.undoTo(mark)
	solver.heuristic.HandleConflict(solver.conflict)

	solver.assign(variable, False)
	if solver.dpll() {
		return true
	}
	solver.undoTo(mark)
	solver.heuristic.HandleConflict(solver.conflict)

	return false
}

// propagate runs unit propagation to a fixpoint. A clause with no satisfied
// and no unassigned literal is falsified: it is recorded as the conflict and
// propagation fails. A clause with exactly one unassigned literal forces
// that literal true and triggers a re-scan.
func (solver *dpllSolver) propagate() bool {
	solver.conflict = nil

	changed := true
	for changed {
		changed = false
		for _, clause := range solver.formula.Clauses {
			if clause.IsSatisfied(solver.assigns) {
				continue
			}

			var unit int64
			unassigned := 0
			for _, literal := range clause {
				if solver.assigns[abs(literal)] == Unassigned {
					unit = literal
					unassigned++
				}
			}

			if unassigned == 0 {
				solver.conflict = clause
				return false
			}
			if unassigned == 1 {
				if unit > 0 {
					solver.assign(unit, True)
				} else {
					solver.assign(-unit, False)
				}
				changed = true
			}
		}
	}
	return true
}

func (solver *dpllSolver) assign(variable int64, value Value) {
	if variable < 1 || variable > int64(solver.formula.Variables) {
		log.Panicf("dpll: variable %v out of range [1, %v]", variable, solver.formula.Variables)
	}
	if solver.assigns[variable] != Unassigned {
		log.Panicf("dpll: variable %v assigned twice", variable)
	}
	solver.assigns[variable] = value
	solver.trail = append(solver.trail, variable)
}

// undoTo unassigns every variable recorded after the trail mark.
func (solver *dpllSolver) undoTo(mark int) {
	for i := len(solver.trail) - 1; i >= mark; i-- {
		solver.assigns[solver.trail[i]] = Unassigned
	}
	solver.trail = solver.trail[:mark]
}
