package sat

import "math/rand/v2"

// GenerateFormula builds a random CNF instance: each variable joins each
// clause with probability 1/2 and a random polarity; a clause that comes out
// empty receives one random literal.
func GenerateFormula(rng *rand.Rand, variables uint64, clauses int) Formula {
	instance := Formula{
		Variables: variables,
		Clauses:   make([]Clause, clauses),
	}

	for i := range clauses {
		instance.Clauses[i] = make(Clause, 0, variables)
		for j := range variables {
			if rng.Float64() < 0.5 {
				instance.Clauses[i] = append(instance.Clauses[i], randomSign(rng)*(1+int64(j)))
			}
		}

		if len(instance.Clauses[i]) == 0 {
			instance.Clauses[i] = append(instance.Clauses[i], randomSign(rng)*(1+rng.Int64N(int64(variables))))
		}
	}

	return instance
}

// GeneratePlantedFormula builds a random k-SAT instance guaranteed
// satisfiable: one literal per clause is forced to agree with a hidden
// random assignment.
func GeneratePlantedFormula(rng *rand.Rand, variables uint64, clauses int, clauseSize int) Formula {
	hidden := randomAssignment(rng, variables)
	instance := Formula{
		Variables: variables,
		Clauses:   make([]Clause, clauses),
	}

	for i := range clauses {
		clause := make(Clause, clauseSize)
		for j, variable := range rng.Perm(int(variables))[:clauseSize] {
			clause[j] = randomSign(rng) * int64(variable+1)
		}

		witness := rng.IntN(clauseSize)
		variable := abs(clause[witness])
		if hidden[variable] == True {
			clause[witness] = variable
		} else {
			clause[witness] = -variable
		}

		instance.Clauses[i] = clause
	}

	return instance
}

func randomSign(rng *rand.Rand) int64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}

// AssertSolution reports whether the assignment is complete and satisfies
// every clause of the instance.
func AssertSolution(instance Formula, assignment Assignment) bool {
	return assignment.Complete() && instance.IsSatisfied(assignment)
}
