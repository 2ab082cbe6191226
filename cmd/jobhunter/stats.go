package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/store"
)

var statsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application counts by status",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "delete every stored job and application")
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := store.New(config.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if statsReset {
		if err := st.ClearAll(); err != nil {
			fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database cleared.")
		return nil
	}

	stats, err := st.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No applications tracked yet. Run `jobhunter run` first.")
		return nil
	}

	statuses := make([]string, 0, len(stats))
	for s := range stats {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	fmt.Printf("%-16s %s\n", "Status", "Count")
	fmt.Println(strings.Repeat("─", 22))
	total := 0
	for _, s := range statuses {
		fmt.Printf("%-16s %d\n", s, stats[s])
		total += stats[s]
	}
	fmt.Printf("\nTotal: %d applications\n", total)
	return nil
}
