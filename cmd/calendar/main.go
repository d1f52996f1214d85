package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zombieland/internal/calendar"
	"zombieland/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	var apiURL, token string

	root := &cobra.Command{
		Use:   "zombieland-calendar",
		Short: "Book ZombieLand tickets from the terminal",
		Long:  `Browse the pricing calendar, pick a stay and get a live quote. With a token, press s to book.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := tui.NewClient(apiURL, token, nil)
			_, err := tea.NewProgram(tui.New(client, calendar.Today()), tea.WithAltScreen()).Run()
			return err
		},
	}
	root.Flags().StringVar(&apiURL, "api", envOr("ZOMBIELAND_API_URL", "http://localhost:8080/api/v1"), "API base URL")
	root.Flags().StringVar(&token, "token", os.Getenv("ZOMBIELAND_TOKEN"), "access token used to book")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zombieland-calendar %s (%s)\n", version, commit)
		},
	})
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
