package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthVerbose bool

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the assistant service and local state are usable",
	Long: `Check the client setup by verifying:
  • The assistant service answers its health endpoint
  • The item catalog can be fetched
  • The state database can be opened

This command is useful for debugging connection issues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		failed := false

		fmt.Fprintln(out, sectionStyle.Render("🔍 BizSpark Health Check"))
		fmt.Fprintln(out)

		app, client, release, err := newApp()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ State database unavailable:"), err)
			return err
		}
		defer release()

		// Step 1: service health
		fmt.Fprintln(out, infoStyle.Render("Step 1: Contacting the assistant service..."))
		status, err := client.Health(ctx)
		if err != nil {
			failed = true
			fmt.Fprintln(out, errorStyle.Render("❌ Service unreachable:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Service is %s", status.Status)))
			if healthVerbose {
				fmt.Fprintf(out, "   Endpoint: %s\n", client.BaseURL())
				fmt.Fprintf(out, "   Message: %s\n", status.Message)
			}
		}
		fmt.Fprintln(out)

		// Step 2: catalog
		fmt.Fprintln(out, infoStyle.Render("Step 2: Fetching the item catalog..."))
		app.Catalog.Load(ctx)
		switch {
		case !app.Catalog.Loaded():
			failed = true
			fmt.Fprintln(out, errorStyle.Render("❌ Catalog could not be fetched"))
		case app.Catalog.Len() == 0:
			fmt.Fprintln(out, warningStyle.Render("⚠️  Catalog is empty"))
		default:
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d item(s)", app.Catalog.Len())))
		}
		fmt.Fprintln(out)

		// Step 3: local state
		fmt.Fprintln(out, infoStyle.Render("Step 3: Checking local state..."))
		if settings.Ephemeral {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Ephemeral mode, sessions are not stored"))
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ State database is usable"))
		}
		if healthVerbose {
			fmt.Fprintf(out, "   Tab: %s\n", settings.Tab)
			fmt.Fprintf(out, "   Session: %s\n", app.SessionID())
			if !settings.Ephemeral {
				fmt.Fprintf(out, "   Database: %s\n", settings.StateDB)
			}
		}
		fmt.Fprintln(out)

		if failed {
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed")
		}
		fmt.Fprintln(out, successStyle.Render("✅ All checks passed"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().BoolVar(&healthVerbose, "details", false, "Show detailed information")
}
