package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosbot/kosbot-api/pkg/client"
)

func newPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Billing().Plans(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			t := NewTable("", "PLAN", "PRICE", "PROPERTIES", "ROOMS")
			for _, p := range plans {
				marker := ""
				if p.IsCurrent {
					marker = "*"
				}
				t.AddRow(marker, p.Name, formatPrice(p.Price, p.Currency, p.Interval),
					formatLimit(p.Limits.Properties), formatLimit(p.Limits.Rooms))
			}
			t.Render()
			return nil
		},
	}
}

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show usage against your plan limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			limits, err := apiClient.Billing().Limits(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get limits: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(limits)
			}

			fmt.Printf("Plan: %s (%s)\n\n", strings.ToUpper(limits.Plan), limits.Status)
			t := NewTable("RESOURCE", "USED", "LIMIT", "CAN ADD")
			for _, u := range []client.Usage{limits.Properties, limits.Rooms} {
				t.AddRow(u.Resource, strconv.Itoa(u.Used), formatLimit(u.Limit), strconv.FormatBool(u.CanAdd))
			}
			t.Render()
			if limits.SuggestedPlan != "" {
				fmt.Printf("\nUpgrade to %s for more room: kosbot billing checkout %s\n",
					strings.ToUpper(limits.SuggestedPlan), limits.SuggestedPlan)
			}
			return nil
		},
	}
}

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Open hosted checkout or billing portal pages",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "checkout <plan>",
		Short:     "Start a subscription checkout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"basic", "pro", "enterprise"},
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := apiClient.Billing().Checkout(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			fmt.Printf("Complete checkout at:\n  %s\n", url)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "portal",
		Short: "Open the billing portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := apiClient.Billing().Portal(context.Background())
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == 409 {
					return fmt.Errorf("no billing account yet. Run 'kosbot billing checkout <plan>' first")
				}
				return fmt.Errorf("portal failed: %w", err)
			}
			fmt.Printf("Manage billing at:\n  %s\n", url)
			return nil
		},
	})

	return cmd
}
