package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/review"
	"github.com/amishk599/jobhunter/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Triage the pending queue in an interactive TUI",
	Long:  "Opens a split-pane view of the NEW queue: untailored applications on the left, tailored-and-ready on the right. Open postings in the browser, skip them, or flag them for manual handling.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	// No slog here: the TUI owns the terminal, so anything we have to say
	// goes to stderr before the alternate screen starts.
	st, err := store.New(config.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	apps, err := st.GetPendingApplications()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load applications: %v\n", err)
		os.Exit(1)
	}
	if len(apps) == 0 {
		fmt.Println("Nothing in the queue. Run `jobhunter run` first.")
		return nil
	}

	pending, ready := review.SplitQueue(apps)
	if err := review.RunReviewTUI(pending, ready, st); err != nil {
		fmt.Fprintf(os.Stderr, "review TUI failed: %v\n", err)
		os.Exit(1)
	}
	return nil
}
