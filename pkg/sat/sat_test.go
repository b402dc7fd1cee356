package sat

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseIsSatisfied(t *testing.T) {
	clause := Clause{1, -2}

	t.Run("Positive literal holds", func(t *testing.T) {
		assignment := Assignment{Unassigned, True, True}
		assert.True(t, clause.IsSatisfied(assignment))
	})

	t.Run("Negative literal holds", func(t *testing.T) {
		assignment := Assignment{Unassigned, False, False}
		assert.True(t, clause.IsSatisfied(assignment))
	})

	t.Run("No literal holds", func(t *testing.T) {
		assignment := Assignment{Unassigned, False, True}
		assert.False(t, clause.IsSatisfied(assignment))
	})

	t.Run("Unassigned variables satisfy nothing", func(t *testing.T) {
		assignment := NewAssignment(2)
		assert.False(t, clause.IsSatisfied(assignment))
	})
}

func TestFormulaOperations(t *testing.T) {
	formula, err := NewFormula(3, []Clause{{1, 2}, {-1, 3}, {-2, -3}})
	assert.Nil(t, err)

	assignment := Assignment{Unassigned, True, False, True}

	t.Run("IsSatisfied is the conjunction of the clauses", func(t *testing.T) {
		satisfied := true
		for _, clause := range formula.Clauses {
			satisfied = satisfied && clause.IsSatisfied(assignment)
		}
		assert.Equal(t, satisfied, formula.IsSatisfied(assignment))
		assert.True(t, formula.IsSatisfied(assignment))
	})

	t.Run("CountSatisfied", func(t *testing.T) {
		assert.Equal(t, 3, formula.CountSatisfied(assignment))

		unsatisfying := Assignment{Unassigned, False, False, False}
		assert.Equal(t, 2, formula.CountSatisfied(unsatisfying))
	})

	t.Run("UnsatisfiedClauses preserves clause order", func(t *testing.T) {
		units, err := NewFormula(3, []Clause{{1}, {2}, {3}})
		assert.Nil(t, err)

		unsatisfying := Assignment{Unassigned, False, True, False}
		assert.Equal(t, []Clause{{1}, {3}}, units.UnsatisfiedClauses(unsatisfying))
	})

	t.Run("Operations do not mutate the assignment", func(t *testing.T) {
		before := assignment.Copy()
		formula.IsSatisfied(assignment)
		formula.CountSatisfied(assignment)
		formula.UnsatisfiedClauses(assignment)
		assert.Equal(t, before, assignment)
	})
}

func TestNewFormulaValidation(t *testing.T) {
	t.Run("Zero literal", func(t *testing.T) {
		_, err := NewFormula(2, []Clause{{1, 0}})
		assert.True(t, errors.Is(err, ErrZeroLiteral))
	})

	t.Run("Variable out of range", func(t *testing.T) {
		_, err := NewFormula(2, []Clause{{1, -3}})
		assert.True(t, errors.Is(err, ErrVariableOutOfRange))
	})

	t.Run("Empty clause", func(t *testing.T) {
		_, err := NewFormula(2, []Clause{{}})
		assert.NotNil(t, err)
	})

	t.Run("Zero variables", func(t *testing.T) {
		_, err := NewFormula(0, nil)
		assert.NotNil(t, err)
	})

	t.Run("Valid formula", func(t *testing.T) {
		formula, err := NewFormula(2, []Clause{{1, 2}, {-1, -2}})
		assert.Nil(t, err)
		assert.Equal(t, uint64(2), formula.Variables)
		assert.Len(t, formula.Clauses, 2)
	})
}

func TestBuildOccurrenceIndex(t *testing.T) {
	// Arrange
	formula, err := NewFormula(3, []Clause{{1, 2}, {-1, 3}, {-2, -3}, {1}})
	assert.Nil(t, err)

	// Act
	index := BuildOccurrenceIndex(formula)

	// Assert
	assert.Equal(t, OccurrenceIndex{
		nil,
		{0, 1, 3},
		{0, 2},
		{1, 2},
	}, index)
}

func TestAssignmentLiterals(t *testing.T) {
	assignment := Assignment{Unassigned, True, False, Unassigned, True}
	assert.Equal(t, []int64{1, -2, 4}, assignment.Literals())
}

func TestAssignmentCopyIsIndependent(t *testing.T) {
	assignment := Assignment{Unassigned, True, False}
	duplicate := assignment.Copy()

	duplicate.flip(1)

	assert.Equal(t, True, assignment[1])
	assert.Equal(t, False, duplicate[1])
}

func TestAssignmentComplete(t *testing.T) {
	assignment := NewAssignment(2)
	assert.False(t, assignment.Complete())

	assignment[1] = True
	assert.False(t, assignment.Complete())

	assignment[2] = False
	assert.True(t, assignment.Complete())
}

func TestGeneratePlantedFormulaIsSatisfiable(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	for range 10 {
		formula := GeneratePlantedFormula(rng, 20, 91, 3)

		assert.Equal(t, uint64(20), formula.Variables)
		assert.Len(t, formula.Clauses, 91)
		for _, clause := range formula.Clauses {
			assert.Len(t, clause, 3)
		}

		// The planted witness guarantees satisfiability; the complete engine
		// must agree.
		_, found := NewDPLLSolver(nil).Solve(formula)
		assert.True(t, found)
	}
}
