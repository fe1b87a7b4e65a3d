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

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"property", "props"},
		Short:   "Manage properties",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := apiClient.Properties().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(props)
			}

			if len(props) == 0 {
				fmt.Println("No properties yet")
				return nil
			}
			t := NewTable("ID", "NAME", "CITY", "ROOMS")
			for _, p := range props {
				t.AddRow(p.ID, truncate(p.Name, 30), p.City, strconv.Itoa(p.RoomsTotal))
			}
			t.Render()
			return nil
		},
	})

	var address, city string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Add a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := apiClient.Properties().Create(context.Background(), client.PropertyInput{
				Name:    args[0],
				Address: address,
				City:    city,
			})
			if err != nil {
				return createError(err)
			}
			fmt.Printf("Created property %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	create.Flags().StringVar(&address, "address", "", "street address")
	create.Flags().StringVar(&city, "city", "", "city")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a property with no rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Properties().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete property: %w", err)
			}
			fmt.Println("Property deleted")
			return nil
		},
	})

	return cmd
}

// createError turns plan-limit and validation refusals into readable errors
func createError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("failed to create property: %w", err)
	}
	switch {
	case apiErr.IsPlanLimit():
		if plan := apiErr.SuggestedPlan(); plan != "" {
			return fmt.Errorf("%s. Upgrade with 'kosbot billing checkout %s'", apiErr.Message, plan)
		}
		return errors.New(apiErr.Message)
	case apiErr.IsValidationError():
		msgs := []string{apiErr.Message}
		for _, fe := range apiErr.FieldErrors() {
			msgs = append(msgs, fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
		}
		return errors.New(strings.Join(msgs, "\n"))
	}
	return fmt.Errorf("failed to create property: %w", err)
}
