package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCSV renders one row per result, with the solver statistics flattened.
func WriteCSV(writer io.Writer, results []Result) error {
	csvWriter := csv.NewWriter(writer)

	header := []string{
		"filename", "variables", "clauses",
		"solution_found", "restarts_used", "flips_used", "final_satisfied", "best_iteration", "seed",
		"load_seconds", "solve_seconds", "flips_per_second",
	}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		row := []string{
			result.Filename,
			strconv.FormatUint(result.Variables, 10),
			strconv.Itoa(result.Clauses),
			strconv.FormatBool(result.Stats.SolutionFound),
			strconv.Itoa(result.Stats.RestartsUsed),
			strconv.Itoa(result.Stats.FlipsUsed),
			strconv.Itoa(result.Stats.FinalSatisfied),
			strconv.Itoa(result.Stats.BestIteration),
			strconv.FormatUint(result.Stats.Seed, 10),
			fmt.Sprintf("%.4f", result.LoadSeconds),
			fmt.Sprintf("%.4f", result.SolveSeconds),
			fmt.Sprintf("%.2f", result.FlipsPerSecond),
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// RenderSummary renders the aggregate statistics as a readable block.
func (summary Summary) RenderSummary() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Instances: %v (solved %v, unsolved %v, success rate %.2f%%)\n",
		summary.TotalInstances, summary.SolvedCount, summary.UnsolvedCount, summary.SuccessRate*100)
	fmt.Fprintf(&builder, "Solved: avg time %.4fs, median time %.4fs, avg flips %.1f, avg restarts %.1f\n",
		summary.AvgSolveTimeSolved, summary.MedianSolveTimeSolved, summary.AvgFlipsSolved, summary.AvgRestartsSolved)
	fmt.Fprintf(&builder, "Unsolved: avg satisfied clauses %.1f\n", summary.AvgFinalSatisfiedUnsolved)

	return builder.String()
}
