package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/bizspark-chat/internal"
	"github.com/iksnae/bizspark-chat/internal/export"
	"github.com/iksnae/bizspark-chat/internal/tui"
	"github.com/spf13/cobra"
)

var (
	plain          bool
	transcriptPath string
	format         string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the assistant.

On a terminal this opens the full-screen client with Chat, Items and About
views. With --plain, or when stdin/stdout are not a terminal, a line-based
prompt is used instead: type a question and press enter, /N to pick
suggestion N, /items to list the catalog and /quit to leave.

Use --transcript to save the conversation when the session ends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transcriptPath != "" {
			if _, err := export.NewExporter(format); err != nil {
				return err
			}
		}

		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		ctx := cmd.Context()
		if plain || !internal.IsTerminal(os.Stdout) || !internal.IsTerminal(os.Stdin) {
			err = runPlain(ctx, app, cmd.InOrStdin(), cmd.OutOrStdout())
		} else {
			err = runTUI(ctx, app)
		}
		if err != nil {
			return err
		}

		if transcriptPath != "" {
			tr := internal.NewTranscript(app.SessionID(), settings.Tab, app.Store)
			if err := writeTranscript(tr, format, transcriptPath); err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Transcript saved to %s", transcriptPath))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&plain, "plain", false, "Use the line-based prompt instead of the full-screen client")
	chatCmd.Flags().StringVar(&transcriptPath, "transcript", "", "Write the conversation to this file on exit")
	chatCmd.Flags().StringVarP(&format, "format", "f", "md", "Transcript format (jsonl, md, yaml, json)")
}

func runTUI(ctx context.Context, app *internal.App) error {
	// the terminal belongs to the client until it exits
	if err := setupLogging(true); err != nil {
		return err
	}
	defer func() {
		if err := setupLogging(false); err != nil {
			internal.LogWarn("Failed to restore logging: %v", err)
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat client failed: %w", err)
	}
	return nil
}

// runPlain is the line-based conversation loop
func runPlain(ctx context.Context, app *internal.App, in io.Reader, out io.Writer) error {
	app.Mount(ctx)
	shown := printNew(out, app, 0)
	fmt.Fprintf(out, "Loaded %d catalog items. Type /quit to leave.\n", app.Catalog.Len())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/items":
			printItems(out, app.Catalog.Items())
			continue
		case strings.HasPrefix(line, "/"):
			n, err := strconv.Atoi(line[1:])
			suggestions := app.Suggestions.Current()
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Fprintf(out, "Unknown command %s\n", line)
				continue
			}
			line = suggestions[n-1]
		}

		switch app.Submit(ctx, line) {
		case internal.OutcomeFailed:
			fmt.Fprintf(out, "! %s\n", app.Store.Error())
		case internal.OutcomeBusy:
			fmt.Fprintln(out, "Still waiting for the previous answer")
		}
		shown = printNew(out, app, shown)

		if ctx.Err() != nil {
			return nil
		}
	}
}

// printNew prints timeline entries from index from onward and the current
// suggestions, returning the new timeline length
func printNew(out io.Writer, app *internal.App, from int) int {
	msgs := app.Store.Messages()
	for _, msg := range msgs[from:] {
		if msg.Origin == internal.OriginUser {
			continue
		}
		fmt.Fprint(out, internal.PlainMessage(app.Normalizer, msg))
	}
	for i, s := range app.Suggestions.Current() {
		fmt.Fprintf(out, "  [/%d] %s\n", i+1, s)
	}
	return len(msgs)
}

func printItems(out io.Writer, items []internal.ItemRecord) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items")
		return
	}
	for _, rec := range items {
		for i, line := range internal.ItemLines(rec, false) {
			prefix := "    "
			if i == 0 {
				prefix = "  - "
			}
			fmt.Fprintln(out, prefix+line)
		}
	}
}

// writeTranscript exports tr to path in the given format
func writeTranscript(tr *internal.Transcript, format, path string) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}

	if filepath.Ext(path) == "" {
		path += "." + exporter.Extension()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	defer f.Close()

	if err := exporter.Export(tr, f); err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	internal.LogInfo("Exported %d messages to %s", len(tr.Messages), path)
	return nil
}
