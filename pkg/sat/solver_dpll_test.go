package sat

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func dpllHeuristics() map[string]func() DecisionHeuristic {
	return map[string]func() DecisionHeuristic{
		"FirstUnassigned": NewFirstUnassignedHeuristic,
		"VSIDS":           func() DecisionHeuristic { return NewVSIDSHeuristic(DefaultVSIDSOptions()) },
	}
}

func TestDPLLSimpleSatisfiable(t *testing.T) {
	formula, err := NewFormula(2, []Clause{{1, 2}, {-1, -2}})
	assert.Nil(t, err)

	for name, newHeuristic := range dpllHeuristics() {
		t.Run(name, func(t *testing.T) {
			assignment, found := NewDPLLSolver(newHeuristic()).Solve(formula)

			assert.True(t, found)
			assert.True(t, AssertSolution(formula, assignment))
			assert.NotEqual(t, assignment[1], assignment[2], "exactly one of x1, x2 must hold")
		})
	}
}

func TestDPLLUnsatisfiable(t *testing.T) {
	formula, err := NewFormula(1, []Clause{{1}, {-1}})
	assert.Nil(t, err)

	for name, newHeuristic := range dpllHeuristics() {
		t.Run(name, func(t *testing.T) {
			stats := NewDPLLSolver(newHeuristic()).SolveWithStats(formula)

			assert.False(t, stats.SolutionFound)
			assert.Nil(t, stats.Assignment)
			assert.Zero(t, stats.RestartsUsed)
			assert.Zero(t, stats.FlipsUsed)
			assert.Zero(t, stats.Seed)
		})
	}
}

func TestDPLLMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 17))

	for name, newHeuristic := range dpllHeuristics() {
		t.Run(name, func(t *testing.T) {
			for i := range 60 {
				variables := uint64(rng.IntN(8) + 2)
				formula := GenerateFormula(rng, variables, rng.IntN(20)+1)

				expected := bruteForceSatisfiable(formula)
				assignment, found := NewDPLLSolver(newHeuristic()).Solve(formula)

				assert.Equal(t, expected, found, fmt.Sprintf("instance %v: %v", i, formula.Clauses))
				if found {
					assert.True(t, AssertSolution(formula, assignment))
				}
			}
		})
	}
}

// bruteForceSatisfiable enumerates all 2^n assignments.
func bruteForceSatisfiable(formula Formula) bool {
	assignment := NewAssignment(formula.Variables)
	for mask := 0; mask < 1<<formula.Variables; mask++ {
		for variable := uint64(1); variable <= formula.Variables; variable++ {
			if mask&(1<<(variable-1)) != 0 {
				assignment[variable] = True
			} else {
				assignment[variable] = False
			}
		}
		if formula.IsSatisfied(assignment) {
			return true
		}
	}
	return false
}

func TestDPLLPropagateUnitChain(t *testing.T) {
	// Arrange: (x1) (¬x1 ∨ x2) (¬x2 ∨ x3) forces all three variables.
	formula, err := NewFormula(3, []Clause{{1}, {-1, 2}, {-2, 3}})
	assert.Nil(t, err)

	solver := &dpllSolver{heuristic: NewFirstUnassignedHeuristic()}
	solver.formula = formula
	solver.assigns = NewAssignment(formula.Variables)

	// Act
	ok := solver.propagate()

	// Assert
	assert.True(t, ok)
	assert.Nil(t, solver.conflict)
	assert.Equal(t, Assignment{Unassigned, True, True, True}, solver.assigns)
	assert.Equal(t, []int64{1, 2, 3}, solver.trail)
}

func TestDPLLPropagateConflict(t *testing.T) {
	// (x1) (¬x1) falsifies the second clause after forcing x1.
	formula, err := NewFormula(1, []Clause{{1}, {-1}})
	assert.Nil(t, err)

	solver := &dpllSolver{heuristic: NewFirstUnassignedHeuristic()}
	solver.formula = formula
	solver.assigns = NewAssignment(formula.Variables)

	ok := solver.propagate()

	assert.False(t, ok)
	assert.Equal(t, Clause{-1}, solver.conflict)
}

func TestDPLLTrailUndo(t *testing.T) {
	formula, err := NewFormula(3, []Clause{{1, 2, 3}})
	assert.Nil(t, err)

	solver := &dpllSolver{heuristic: NewFirstUnassignedHeuristic()}
	solver.formula = formula
	solver.assigns = NewAssignment(formula.Variables)

	solver.assign(1, True)
	mark := len(solver.trail)
	solver.assign(2, False)
	solver.assign(3, True)

	solver.undoTo(mark)

	assert.Equal(t, Assignment{Unassigned, True, Unassigned, Unassigned}, solver.assigns)
	assert.Equal(t, []int64{1}, solver.trail)
}

func TestDPLLNotifiesHeuristicOnConflicts(t *testing.T) {
	// Arrange
	formula, err := NewFormula(2, []Clause{{1}, {-1, 2}, {-1, -2}})
	assert.Nil(t, err)

	spy := &conflictSpy{inner: NewFirstUnassignedHeuristic()}

	// Act
	_, found := NewDPLLSolver(spy).Solve(formula)

	// Assert
	assert.False(t, found)
	assert.Positive(t, spy.conflicts)
}

type conflictSpy struct {
	inner     DecisionHeuristic
	conflicts int
}

func (spy *conflictSpy) Initialize(formula Formula) { spy.inner.Initialize(formula) }

func (spy *conflictSpy) PickUnassignedVariable(assignment Assignment) (int64, bool) {
	return spy.inner.PickUnassignedVariable(assignment)
}

func (spy *conflictSpy) HandleConflict(conflict Clause) {
	if conflict != nil {
		spy.conflicts++
	}
	spy.inner.HandleConflict(conflict)
}

func TestDPLLPicksFromInvalidHeuristicPanics(t *testing.T) {
	formula, err := NewFormula(2, []Clause{{1, 2}})
	assert.Nil(t, err)

	assert.Panics(t, func() {
		NewDPLLSolver(&brokenHeuristic{}).Solve(formula)
	})
}

// brokenHeuristic violates the contract by returning an assigned variable.
type brokenHeuristic struct{}

func (*brokenHeuristic) Initialize(Formula) {}

func (*brokenHeuristic) PickUnassignedVariable(Assignment) (int64, bool) { return 1, true }

func (*brokenHeuristic) HandleConflict(Clause) {}
