package cmd

import (
	"fmt"
	"io"

	"github.com/infodancer/mailseed"
	"github.com/infodancer/mailseed/internal/config"
)

func printPlan(w io.Writer, users int, cfg *config.Config, workers int) {
	fmt.Fprintf(w, "Users: %d\n", users)
	fmt.Fprintf(w, "Messages per user: %d-%d\n", cfg.MinMessages, cfg.MaxMessages)
	fmt.Fprintf(w, "Workers: %d\n", workers)
}

func printSummary(w io.Writer, result mailseed.PopulationResult) {
	fmt.Fprintf(w, "\nTotal messages created: %d\n", result.MessagesCreated)
	if len(result.Failures) > 0 {
		fmt.Fprintf(w, "Failed recipients: %d\n", len(result.Failures))
	}
	fmt.Fprintf(w, "Total time: %.2f seconds\n", result.ElapsedSeconds())
	if rate, ok := result.Throughput(); ok {
		fmt.Fprintf(w, "Throughput: %.0f messages/sec\n", rate)
	}
}
