package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"status"},
		Short:   "Show dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			overview, err := apiClient.Dashboard().Overview(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(overview)
			}

			fmt.Println("KosBot Dashboard")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Occupancy:        %.0f%% (%d/%d rooms)\n", overview.OccupancyRate, overview.OccupiedRooms, overview.TotalRooms)
			fmt.Printf("  Monthly income:   %s\n", formatMoney(overview.MonthlyIncome))
			fmt.Printf("  Pending payments: %d\n", overview.PendingPayments)
			fmt.Printf("  Open tickets:     %d\n", overview.OpenTickets)

			// usage is best effort; the overview is already printed
			if limits, err := apiClient.Billing().Limits(ctx); err == nil {
				fmt.Printf("  Plan usage:       %s, %s\n", formatUsage(limits.Properties), formatUsage(limits.Rooms))
			}
			return nil
		},
	}
}
