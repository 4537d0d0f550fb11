package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/iksnae/bizspark-chat/internal"
	"github.com/spf13/cobra"
)

// sessionCmd represents the session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the tab's conversation session",
	Long: `Print the session identifier of the selected tab, creating one if the tab
has none yet. The same identifier is reused by every later command on that tab.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", metaStyle.Render("Tab:"), settings.Tab)
		fmt.Fprintf(out, "%s %s\n", metaStyle.Render("Session:"), app.SessionID())
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the tab's session so the next command starts a new one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		if err := app.Session.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared session for tab %s\n", settings.Tab)
		return nil
	},
}

var sessionHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversation the service holds for the tab's session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, client, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		hist, err := client.History(cmd.Context(), app.SessionID())
		if err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hist)
	},
}

var sessionTabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List tabs with a stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Ephemeral {
			return fmt.Errorf("no stored tabs with --ephemeral")
		}
		db, err := internal.OpenStateDatabase(settings.StateDB)
		if err != nil {
			return err
		}
		defer db.Close()

		tabs, err := internal.ListTabs(db)
		if err != nil {
			return fmt.Errorf("failed to list tabs: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(tabs) == 0 {
			fmt.Fprintln(out, "No tabs")
			return nil
		}
		for _, tab := range tabs {
			id, _, err := internal.NewSQLiteTabStorage(db, tab).Get(internal.SessionKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", tab, id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionClearCmd, sessionHistoryCmd, sessionTabsCmd)
}
