package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvistberg/arena2d/internal/config"
	"github.com/kvistberg/arena2d/internal/games/bench"
	"github.com/kvistberg/arena2d/internal/storage"
)

var (
	flagBenchConfig string
	flagBenchNoSave bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [scene]",
	Short: "Run the physics benchmark suite headless",
	Long: `Run the physics benchmark scenes without a UI and print throughput.

Each scene builds a world that stresses one engine subsystem, steps it for
the configured number of steps, and reports steps per second plus
scene-specific statistics. Results are recorded to the database so runs
can be compared over time.

Scenes: ` + fmt.Sprintf("%v", bench.SceneNames()) + `

Examples:
  arena2d bench                    # Run every scene
  arena2d bench pyramid            # Run one scene
  arena2d bench --config big.yaml  # Use a custom benchmark config
  arena2d bench --no-save          # Skip recording results`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagBenchConfig, "config", "", "Path to custom benchmark config YAML")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record results to the database")
}

func runBench(_ *cobra.Command, args []string) {
	scene := ""
	if len(args) == 1 {
		scene = args[0]
	}

	cfg, err := config.LoadBench(flagBenchConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading benchmark config: %v\n", err)
		os.Exit(1)
	}

	results := bench.Run(cfg, scene)
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", scene)
		fmt.Fprintf(os.Stderr, "Scenes: %v\n", bench.SceneNames())
		os.Exit(1)
	}

	// Print results table
	fmt.Printf("%-14s  %8s  %7s  %12s  %s\n", "Scene", "Steps", "Bodies", "Steps/s", "Notes")
	for _, r := range results {
		fmt.Printf("%-14s  %8d  %7d  %12.0f  %s\n",
			r.Scene, r.Steps, r.Bodies, r.StepsPerSecond(), r.Notes)
	}

	if flagBenchNoSave {
		return
	}

	// Record the runs
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, results not saved: %v\n", err)
		return
	}
	defer store.Close()

	for _, r := range results {
		_, err := store.SaveBenchResult(storage.BenchResult{
			Scene:     r.Scene,
			Steps:     r.Steps,
			Bodies:    r.Bodies,
			StepsPerS: r.StepsPerSecond(),
			Notes:     r.Notes,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save result for %s: %v\n", r.Scene, err)
		}
	}
}
