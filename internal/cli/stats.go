package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/client"
)

var statsServer string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show runtime statistics from a running instock-server",
	Long: `Query a running instock-server for its uptime and per-operation call
counts, failures and latencies.

The server address comes from --server, the INSTOCK_SERVER_URL environment
variable, or the default local address, in that order.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsServer, "server", "", "instock-server base URL")
}

func runStats(cmd *cobra.Command, args []string) error {
	c := client.New(statsServer)
	ctx := context.Background()

	if !c.Healthy(ctx) {
		return fmt.Errorf("server is not reachable; is instock-server running?")
	}

	snap, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	fmt.Printf("Uptime: %.0fs\n", snap.UptimeSeconds)
	if len(snap.Operations) == 0 {
		fmt.Println("No operations recorded yet.")
		return nil
	}

	names := make([]string, 0, len(snap.Operations))
	for name := range snap.Operations {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nOperations:")
	for _, name := range names {
		op := snap.Operations[name]
		fmt.Printf("- %-14s %d calls, %d failed, avg %.0fms (min %dms, max %dms)\n",
			name, op.Count, op.Failures, op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
	}
	return nil
}
