// arena2d is a terminal platform for physics-driven VS minigames.
//
// Usage:
//
//	arena2d list              - List available games
//	arena2d play <game>       - Play a game
//	arena2d menu              - Start menu to pick games interactively
//	arena2d serve             - Start SSH server for remote play
//	arena2d scores <game>     - Show high scores for a game
//	arena2d bench [scene]     - Run the physics benchmark suite headless
//	arena2d weapons           - List weapon kinds for brawl rosters
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arena2d/scores.db)
//	--mute          - Disable sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/kvistberg/arena2d/internal/games/bench"
	_ "github.com/kvistberg/arena2d/internal/games/blockbreak"
	_ "github.com/kvistberg/arena2d/internal/games/brawl"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagMute   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena2d",
	Short: "arena2d - Physics VS minigames in your terminal",
	Long: `arena2d is a terminal-based platform for physics-driven VS minigames:
weapon brawls, brick breaking, and engine benchmarks, all simulated on a
rigid-body physics world.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  bench    - Run the physics benchmark suite
  weapons  - List weapon kinds for brawl rosters

Examples:
  arena2d list
  arena2d play brawl
  arena2d play blockbreak --difficulty hard
  arena2d menu
  arena2d serve --ssh :2222
  arena2d bench pyramid`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena2d/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(weaponsCmd)
}
