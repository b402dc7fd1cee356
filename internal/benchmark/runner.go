package benchmark

import (
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/limaJavier/satsearch/pkg/sat"
	"github.com/samber/lo"
)

// Result is the record of one solver run on one instance file.
type Result struct {
	Filename       string
	Variables      uint64
	Clauses        int
	Stats          sat.Stats
	LoadSeconds    float64
	SolveSeconds   float64
	FlipsPerSecond float64
}

// Summary aggregates a batch of results.
type Summary struct {
	TotalInstances int
	SolvedCount    int
	UnsolvedCount  int
	SuccessRate    float64

	AvgSolveTimeSolved    float64
	MedianSolveTimeSolved float64
	AvgFlipsSolved        float64
	AvgRestartsSolved     float64

	AvgFinalSatisfiedUnsolved float64
}

// Runner fetches DIMACS instances from a directory, solves each one with a
// fresh solver and collects timing and solve statistics.
type Runner struct {
	config Config
}

func NewRunner(config Config) *Runner {
	return &Runner{config: config}
}

func (runner *Runner) Run() ([]Result, Summary, error) {
	files, err := filepath.Glob(filepath.Join(runner.config.DataDir, "*.cnf"))
	if err != nil {
		return nil, Summary{}, err
	}
	if len(files) == 0 {
		return nil, Summary{}, fmt.Errorf("no .cnf files found in %v", runner.config.DataDir)
	}
	slices.Sort(files)
	if runner.config.MaxFiles > 0 && len(files) > runner.config.MaxFiles {
		files = files[:runner.config.MaxFiles]
	}

	log.Printf("Found %v CNF files in %v", len(files), runner.config.DataDir)

	results := make([]Result, 0, len(files))
	for _, file := range files {
		result, err := runner.runOne(file)
		if err != nil {
			log.Printf("Error processing %v: %v", file, err)
			continue
		}
		results = append(results, result)
	}

	return results, Summarize(results), nil
}

func (runner *Runner) runOne(file string) (Result, error) {
	startLoad := time.Now()
	formula, err := sat.LoadDIMACS(file)
	if err != nil {
		return Result{}, err
	}
	loadSeconds := time.Since(startLoad).Seconds()

	solver := runner.config.NewSolver()
	startSolve := time.Now()
	stats := solver.SolveWithStats(formula)
	solveSeconds := time.Since(startSolve).Seconds()

	result := Result{
		Filename:     filepath.Base(file),
		Variables:    formula.Variables,
		Clauses:      len(formula.Clauses),
		Stats:        stats,
		LoadSeconds:  loadSeconds,
		SolveSeconds: solveSeconds,
	}
	if solveSeconds > 0 {
		result.FlipsPerSecond = float64(stats.FlipsUsed) / solveSeconds
	}

	verdict := "UNSOLVED"
	if stats.SolutionFound {
		verdict = "SOLVED"
	}
	log.Printf("  %v: %v in %.4fs (%v flips)", result.Filename, verdict, solveSeconds, stats.FlipsUsed)

	return result, nil
}

// Summarize computes the aggregate statistics of a batch.
func Summarize(results []Result) Summary {
	solved := lo.Filter(results, func(result Result, _ int) bool { return result.Stats.SolutionFound })
	unsolved := lo.Filter(results, func(result Result, _ int) bool { return !result.Stats.SolutionFound })

	summary := Summary{
		TotalInstances: len(results),
		SolvedCount:    len(solved),
		UnsolvedCount:  len(unsolved),
	}
	if len(results) > 0 {
		summary.SuccessRate = float64(len(solved)) / float64(len(results))
	}

	if len(solved) > 0 {
		summary.AvgSolveTimeSolved = mean(lo.Map(solved, func(result Result, _ int) float64 { return result.SolveSeconds }))
		summary.MedianSolveTimeSolved = median(lo.Map(solved, func(result Result, _ int) float64 { return result.SolveSeconds }))
		summary.AvgFlipsSolved = mean(lo.Map(solved, func(result Result, _ int) float64 { return float64(result.Stats.FlipsUsed) }))
		summary.AvgRestartsSolved = mean(lo.Map(solved, func(result Result, _ int) float64 { return float64(result.Stats.RestartsUsed) }))
	}
	if len(unsolved) > 0 {
		summary.AvgFinalSatisfiedUnsolved = mean(lo.Map(unsolved, func(result Result, _ int) float64 { return float64(result.Stats.FinalSatisfied) }))
	}

	return summary
}

func mean(values []float64) float64 {
	return lo.Sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}
	return sorted[middle]
}
