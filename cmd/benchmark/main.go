package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/limaJavier/satsearch/internal/benchmark"
)

func main() {
	configPath := flag.String("config", "", "path to a benchmark config JSON file")
	flag.Parse()

	config := benchmark.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = benchmark.ConfigFromJSON(*configPath)
		if err != nil {
			log.Fatalf("cannot read benchmark config: %v", err)
		}
	}

	results, summary, err := benchmark.NewRunner(config).Run()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(config.ResultsDir, 0o755); err != nil {
		log.Fatalf("cannot create results directory: %v", err)
	}

	resultsFile := filepath.Join(config.ResultsDir,
		fmt.Sprintf("%v_%v.csv", config.Solver, time.Now().Format("20060102_150405")))
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Fatalf("cannot create results file: %v", err)
	}
	defer file.Close()

	if err := benchmark.WriteCSV(file, results); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}

	fmt.Println(summary.RenderSummary())
	fmt.Printf("Results saved to %v\n", resultsFile)
}
