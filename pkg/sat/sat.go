package sat

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrZeroLiteral        = errors.New("clause literal cannot be zero")
	ErrVariableOutOfRange = errors.New("literal references a variable out of range")
)

// Value is the truth value held by a variable: Unassigned, True or False.
type Value int8

const (
	Unassigned Value = 0
	True       Value = 1
	False      Value = -1
)

// Clause is a disjunction of literals. A literal is a nonzero integer whose
// absolute value is a variable id; a negative literal means the variable
// appears negated. For example, []int64{1, 2, -4} encodes x1 ∨ x2 ∨ ¬x4.
type Clause []int64

// IsSatisfied reports whether at least one literal of the clause holds under
// the assignment. Unassigned variables satisfy no literal.
func (clause Clause) IsSatisfied(assignment Assignment) bool {
	for _, literal := range clause {
		if literalHolds(literal, assignment) {
			return true
		}
	}
	return false
}

// Variables returns the ids of the variables mentioned by the clause.
func (clause Clause) Variables() []int64 {
	return lo.Map(clause, func(literal int64, _ int) int64 { return abs(literal) })
}

func (clause Clause) String() string {
	var builder strings.Builder
	for i, literal := range clause {
		if i > 0 {
			builder.WriteString(" ∨ ")
		}
		if literal < 0 {
			builder.WriteString("¬")
		}
		fmt.Fprintf(&builder, "x%d", abs(literal))
	}
	return builder.String()
}

func literalHolds(literal int64, assignment Assignment) bool {
	value := assignment[abs(literal)]
	return (literal > 0 && value == True) || (literal < 0 && value == False)
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}

// Formula is a CNF instance: a conjunction of clauses over the variables
// 1..Variables. It is immutable once a solver starts working on it.
type Formula struct {
	Variables uint64
	Clauses   []Clause
}

// NewFormula validates the clause set and builds a Formula. Every clause must
// be nonempty and contain only nonzero literals over variables in range;
// solvers rely on construction having enforced this.
func NewFormula(variables uint64, clauses []Clause) (Formula, error) {
	if variables == 0 {
		return Formula{}, errors.New("formula must have at least one variable")
	}
	for i, clause := range clauses {
		if len(clause) == 0 {
			return Formula{}, fmt.Errorf("clause %v is empty", i)
		}
		for _, literal := range clause {
			if literal == 0 {
				return Formula{}, fmt.Errorf("clause %v: %w", i, ErrZeroLiteral)
			}
			if uint64(abs(literal)) > variables {
				return Formula{}, fmt.Errorf("clause %v: literal %v: %w", i, literal, ErrVariableOutOfRange)
			}
		}
	}
	return Formula{Variables: variables, Clauses: clauses}, nil
}

// IsSatisfied reports whether every clause holds under the assignment.
func (formula Formula) IsSatisfied(assignment Assignment) bool {
	return lo.EveryBy(formula.Clauses, func(clause Clause) bool {
		return clause.IsSatisfied(assignment)
	})
}

// CountSatisfied counts the clauses that hold under the assignment.
func (formula Formula) CountSatisfied(assignment Assignment) int {
	return lo.CountBy(formula.Clauses, func(clause Clause) bool {
		return clause.IsSatisfied(assignment)
	})
}

// UnsatisfiedClauses returns the clauses left unsatisfied under the
// assignment, in clause order.
func (formula Formula) UnsatisfiedClauses(assignment Assignment) []Clause {
	return lo.Filter(formula.Clauses, func(clause Clause, _ int) bool {
		return !clause.IsSatisfied(assignment)
	})
}

// Assignment maps variable ids to truth values. Index 0 is unused. A fresh
// assignment starts fully Unassigned. An Assignment is owned by exactly one
// solving attempt and is never shared.
type Assignment []Value

func NewAssignment(variables uint64) Assignment {
	return make(Assignment, variables+1)
}

func (assignment Assignment) Copy() Assignment {
	duplicate := make(Assignment, len(assignment))
	copy(duplicate, assignment)
	return duplicate
}

// Complete reports whether every variable has a value.
func (assignment Assignment) Complete() bool {
	for _, value := range assignment[1:] {
		if value == Unassigned {
			return false
		}
	}
	return true
}

// Literals encodes the assigned variables as signed literals, the same shape
// external DIMACS solvers print on their v-lines.
func (assignment Assignment) Literals() []int64 {
	literals := make([]int64, 0, len(assignment)-1)
	for variable := int64(1); variable < int64(len(assignment)); variable++ {
		switch assignment[variable] {
		case True:
			literals = append(literals, variable)
		case False:
			literals = append(literals, -variable)
		}
	}
	return literals
}

func (assignment Assignment) flip(variable int64) {
	switch assignment[variable] {
	case True:
		assignment[variable] = False
	case False:
		assignment[variable] = True
	default:
		log.Panicf("cannot flip unassigned variable %v", variable)
	}
}

// OccurrenceIndex lists, for every variable, the indices of the clauses that
// mention it, in ascending clause order. Slot 0 is unused. It is built once
// per formula and read-only afterwards.
type OccurrenceIndex [][]int

// BuildOccurrenceIndex builds the index for a formula. Solvers use it to
// re-examine exactly the clauses affected by a candidate flip instead of
// scanning the whole clause set.
func BuildOccurrenceIndex(formula Formula) OccurrenceIndex {
	index := make(OccurrenceIndex, formula.Variables+1)
	for clauseIdx, clause := range formula.Clauses {
		for _, literal := range clause {
			variable := abs(literal)
			index[variable] = append(index[variable], clauseIdx)
		}
	}
	return index
}
