package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iksnae/bizspark-chat/internal"
	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask the assistant a single question",
	Long: `Send one question on the tab's session and print the answer, any
items it mentions and the suggested follow-ups.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			return errors.New("question is empty")
		}

		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		var outcome internal.Outcome
		_ = internal.ShowProgress(cmd.Context(), "Asking the assistant", func() error {
			outcome = app.Submit(cmd.Context(), query)
			if outcome != internal.OutcomeSucceeded {
				return errors.New(app.Store.Error())
			}
			return nil
		})
		if outcome != internal.OutcomeSucceeded {
			return errors.New(internal.ErrorBanner)
		}

		out := cmd.OutOrStdout()
		msgs := app.Store.Messages()
		fmt.Fprint(out, internal.PlainMessage(app.Normalizer, msgs[len(msgs)-1]))
		if suggestions := app.Suggestions.Current(); len(suggestions) > 0 {
			fmt.Fprintln(out, metaStyle.Render("Suggestions:"))
			for _, s := range suggestions {
				fmt.Fprintf(out, "  • %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
