package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/bizspark-chat/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct {
	normalizer *internal.Normalizer
}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	if e.normalizer == nil {
		e.normalizer = internal.NewNormalizer()
	}

	_, _ = fmt.Fprintf(w, "# Conversation %s\n\n", transcript.SessionID)
	if transcript.Tab != "" {
		_, _ = fmt.Fprintf(w, "**Tab:** %s  \n", transcript.Tab)
	}
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", transcript.ExportedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(transcript.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range transcript.Messages {
		_, _ = fmt.Fprintf(w, "**%s:** (%s)\n\n%s\n\n", msg.Origin, msg.CreatedAt.Format(time.RFC3339), escapeMarkdown(msg.Text()))

		if msg.Origin == internal.OriginAssistant {
			e.writeItems(w, msg.Result)
			if msg.Result != nil && len(msg.Result.Suggestions) > 0 {
				_, _ = fmt.Fprintf(w, "_Suggestions:_ %s\n\n", strings.Join(msg.Result.Suggestions, " · "))
			}
		}

		if i < len(transcript.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func (e *MarkdownExporter) writeItems(w io.Writer, result *internal.ExchangeResult) {
	sel := e.normalizer.SelectItems(result)
	if sel.Kind == internal.ItemNone {
		return
	}
	_, _ = fmt.Fprintf(w, "#### %s\n\n", sel.Kind.Heading())
	for _, rec := range sel.Items {
		lines := internal.ItemLines(rec, sel.Kind == internal.ItemDetail)
		_, _ = fmt.Fprintf(w, "- **%s**", escapeMarkdown(lines[0]))
		for _, line := range lines[1:] {
			_, _ = fmt.Fprintf(w, "  \n  %s", escapeMarkdown(line))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}
	_, _ = fmt.Fprintf(w, "\n")
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
