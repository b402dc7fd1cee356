package sat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrInvalidDIMACS = errors.New("invalid DIMACS input")

// ParseDIMACS reads a DIMACS-CNF description: `c` comment lines, one
// `p cnf <variables> <clauses>` header, then one clause per line as
// whitespace-separated literals terminated by a 0 sentinel. A `%` line ends
// the clause section, as in the SATLIB benchmark files.
func ParseDIMACS(reader io.Reader) (Formula, error) {
	scanner := bufio.NewScanner(reader)

	var variables uint64
	headerSeen := false
	clauses := make([]Clause, 0)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "%") {
			break
		}

		if strings.HasPrefix(line, "p") {
			if headerSeen {
				return Formula{}, fmt.Errorf("%w: duplicate problem line %q", ErrInvalidDIMACS, line)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return Formula{}, fmt.Errorf("%w: malformed problem line %q", ErrInvalidDIMACS, line)
			}
			parsed, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return Formula{}, fmt.Errorf("%w: bad variable count %q", ErrInvalidDIMACS, fields[2])
			}
			variables = parsed
			headerSeen = true
			continue
		}

		if !headerSeen {
			return Formula{}, fmt.Errorf("%w: clause before the p cnf header", ErrInvalidDIMACS)
		}

		clause := make(Clause, 0)
		for _, field := range strings.Fields(line) {
			literal, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return Formula{}, fmt.Errorf("%w: bad literal %q", ErrInvalidDIMACS, field)
			}
			if literal == 0 {
				break
			}
			clause = append(clause, literal)
		}
		if len(clause) > 0 {
			clauses = append(clauses, clause)
		}
	}
	if err := scanner.Err(); err != nil {
		return Formula{}, err
	}
	if !headerSeen {
		return Formula{}, fmt.Errorf("%w: missing p cnf header", ErrInvalidDIMACS)
	}

	return NewFormula(variables, clauses)
}

// LoadDIMACS parses the DIMACS-CNF file at the given path.
func LoadDIMACS(filename string) (Formula, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Formula{}, err
	}
	defer file.Close()

	formula, err := ParseDIMACS(file)
	if err != nil {
		return Formula{}, fmt.Errorf("%v: %w", filename, err)
	}
	return formula, nil
}

// ToDIMACS renders the formula as a DIMACS-CNF string.
func (formula Formula) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", formula.Variables, len(formula.Clauses))
	for _, clause := range formula.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
