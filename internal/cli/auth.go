package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kosbot/kosbot-api/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func storeCredentials(resp *client.AuthResponse) error {
	viper.Set("auth.token", resp.AccessToken)
	viper.Set("auth.refresh_token", resp.RefreshToken)
	viper.Set("auth.email", resp.Profile.Email)
	if _, err := writeConfig(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := storeCredentials(resp); err != nil {
				return err
			}

			name := email
			if resp.Profile.Name != "" {
				name = resp.Profile.Name
			}
			fmt.Printf("Logged in as %s (%s plan, %s)\n", name, strings.ToUpper(resp.Profile.Plan), resp.Profile.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an owner account with a free trial",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if name == "" {
				name = promptInput("Name: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Register(context.Background(), client.RegisterRequest{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err := storeCredentials(resp); err != nil {
				return err
			}

			fmt.Printf("Account created. Trial ends in %d day(s)\n", resp.Profile.TrialDaysRemaining)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if _, err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Println("Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"me"},
		Short:   "Show the signed-in owner, plan and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := apiClient.Me(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(me)
			}

			p := me.Profile
			fmt.Printf("Email:    %s\n", p.Email)
			if p.Name != "" {
				fmt.Printf("Name:     %s\n", p.Name)
			}
			fmt.Printf("Plan:     %s\n", strings.ToUpper(p.Plan))
			fmt.Printf("Status:   %s\n", formatStatus(p.Status))
			if p.Status == "trial" {
				fmt.Printf("Trial:    %d day(s) left\n", p.TrialDaysRemaining)
			}
			if me.Usage != nil {
				fmt.Printf("Usage:    %s, %s\n", formatUsage(me.Usage.Properties), formatUsage(me.Usage.Rooms))
			}
			if me.Banner != "" {
				fmt.Printf("\n%s\n", me.Banner)
			}
			return nil
		},
	}
}

// newMeCmd is whoami at the top level
func newMeCmd() *cobra.Command {
	cmd := newAuthWhoamiCmd()
	cmd.Use = "me"
	cmd.Aliases = nil
	return cmd
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
