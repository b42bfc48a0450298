// rakesh is a tile-based physics platformer: collect coins and stars, carry
// keys to their locks and reach the exit of each level.
//
// Usage:
//
//	rakesh                   - Open the title screen
//	rakesh play --level 2    - Jump straight into a level
//	rakesh levels            - List the embedded levels
//	rakesh scores [level]    - Show recorded runs
//
// Global flags:
//
//	--db <path>  - Score database (default: ~/.rakesh/scores.db)
//	--debug      - Debug logging, physics overlay and prefab hot reload
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/levels"
	"github.com/milk9111/rakesh/storage"
	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagDebug  bool

	flagLevel      int
	flagSkipMenu   bool
	flagFullscreen bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rakesh",
	Short: "The Legend of Rakesh, a physics platformer",
	Long: `The Legend of Rakesh is a side-scrolling platformer. Collect every star,
carry keys to their locks and reach the exit to finish a level.

Run without a subcommand to open the title screen.`,
	PersistentPreRun: setupLogging,
	RunE:             runPlay,
	SilenceUsage:     true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the game window.

Examples:
  rakesh play
  rakesh play --level 3 --skip-menu`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "score database path")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "debug logging, physics overlay and prefab hot reload")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().IntVar(&flagLevel, "level", 0, "level to start on (1-based)")
		cmd.Flags().BoolVar(&flagSkipMenu, "skip-menu", false, "skip the title screen")
		cmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "start fullscreen")
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
}

func setupLogging(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rakesh",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if n := levels.Count(); flagLevel < 0 || flagLevel > n {
		return fmt.Errorf("level %d out of range 1..%d", flagLevel, n)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, runs will not be saved", "path", flagDBPath, "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	game, err := NewGame(Options{
		StartLevel: flagLevel,
		SkipMenu:   flagSkipMenu,
		Debug:      flagDebug,
		Store:      store,
	})
	if err != nil {
		log.Fatal("could not start game", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowTitle(common.Title)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(flagFullscreen)
	ebiten.SetTPS(common.TPS)

	return ebiten.RunGame(game)
}
