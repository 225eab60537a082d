package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kvistberg/arena2d/internal/audio"
	"github.com/kvistberg/arena2d/internal/core"
	"github.com/kvistberg/arena2d/internal/games/bench"
	"github.com/kvistberg/arena2d/internal/games/blockbreak"
	"github.com/kvistberg/arena2d/internal/games/brawl"
	"github.com/kvistberg/arena2d/internal/platform/tui"
	"github.com/kvistberg/arena2d/internal/registry"
	"github.com/kvistberg/arena2d/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  A/D or Left/Right - Move paddle (blockbreak)
  Space             - Serve / fire
  Enter             - Toggle the live tuning panel (brawl)
  P/Esc             - Pause
  R                 - Restart (after game over)
  M                 - Mute
  Q/Ctrl+C          - Quit

Difficulty options (blockbreak):
  easy   - 5 lives, wide paddle, slow ball
  normal - Default settings
  hard   - 2 lives, narrow paddle, fast ball
  fixed  - No progression, stays at config's initial level

Examples:
  arena2d play brawl
  arena2d play brawl --config ./duel.yaml
  arena2d play blockbreak --difficulty hard
  arena2d play bench`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// newSoundBank creates and initializes the effect bank, or returns nil when
// muted or when the speaker cannot be opened.
func newSoundBank() *audio.Bank {
	if flagMute {
		return nil
	}
	bank := audio.NewBank()
	if err := bank.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio disabled: %v\n", err)
		return nil
	}
	return bank
}

// attachSounds wires the effect bank into games that support audio.
func attachSounds(game registry.Game, bank *audio.Bank) {
	if bank == nil {
		return
	}
	switch g := game.(type) {
	case *brawl.Game:
		g.Sounds = bank
	case *blockbreak.Game:
		g.Sounds = bank
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arena2d list' to see available games.")
		os.Exit(1)
	}

	// Get terminal size early for mode selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty for games before creation
	switch gameID {
	case "brawl":
		brawl.SetConfigPath(flagConfig)
	case "bench":
		bench.SetConfigPath(flagConfig)
	case "blockbreak":
		blockbreak.SetConfigPath(flagConfig)
		blockbreak.SetDifficultyPreset(flagDifficulty)

		// Show the difficulty selector unless a preset was given on the
		// command line.
		if flagDifficulty == "" {
			selection, updatedCfg, selErr := tui.RunBlockbreakSelector(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				os.Exit(1)
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				return
			}
			blockbreak.SetDifficultyPreset(selection.Preset)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	bank := newSoundBank()
	attachSounds(game, bank)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	if bank != nil {
		bank.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
