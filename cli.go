package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/levels"
	"github.com/milk9111/rakesh/storage"
	"github.com/spf13/cobra"
)

const topRunsLimit = 10

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the embedded levels",
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs",
	Long: `Without a level, show the best run of every level played so far.
With a level number, show its top 10 runs.

Examples:
  rakesh scores
  rakesh scores 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runLevels(cmd *cobra.Command, args []string) {
	names := levels.Names()
	if len(names) == 0 {
		fmt.Println("No levels embedded.")
		return
	}

	rows := make([][]string, 0, len(names))
	for i, name := range names {
		lvl, err := levels.LoadLevelFromFS(name)
		if err != nil {
			rows = append(rows, []string{strconv.Itoa(i + 1), name, "invalid: " + err.Error(), "", "", ""})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
			strconv.Itoa(lvl.Count(levels.KindCoins)),
			strconv.Itoa(lvl.Count(levels.KindStars)),
			strconv.Itoa(lvl.Count(levels.KindKey)),
		})
	}

	fmt.Println(headingStyle.Render(common.Title + " - Levels"))
	fmt.Println(newTable("#", "Name", "Tiles", "Coins", "Stars", "Keys").Rows(rows...).Render())
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}
	printTopRuns(store, level)
}

func printSummary(store *storage.Store) {
	summary, err := store.Summary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(headingStyle.Render("Best runs"))
	if len(summary) == 0 {
		fmt.Println(mutedStyle.Render("No runs recorded yet. Finish a level to set the first score!"))
		return
	}

	rows := make([][]string, 0, len(summary))
	for _, b := range summary {
		rows = append(rows, []string{
			strconv.Itoa(b.Level),
			strconv.Itoa(b.Runs),
			strconv.Itoa(b.Best),
			strconv.Itoa(b.Stars),
		})
	}
	fmt.Println(newTable("Level", "Runs", "Best", "Stars").Rows(rows...).Render())
}

func printTopRuns(store *storage.Store, level int) {
	runs, err := store.TopRuns(level, topRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Top runs - level %d", level)))
	if len(runs) == 0 {
		fmt.Println(mutedStyle.Render("No runs recorded yet."))
		fmt.Printf("Play 'rakesh play --level %d' to set the first score!\n", level)
		return
	}

	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Stars),
			playTime(r.Frames).String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(newTable("Rank", "Score", "Stars", "Time", "Date").Rows(rows...).Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// playTime converts a frame count at the fixed tick rate to wall time.
func playTime(frames int) time.Duration {
	return (time.Duration(frames) * time.Second / common.TPS).Round(10 * time.Millisecond)
}
