package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/bizspark-chat/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	at := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		transcript *internal.Transcript
		want       []string
		notWant    []string
	}{
		{
			name:       "exchange with item detail",
			transcript: internal.CreateTestTranscript("m1"),
			want: []string{
				"# Conversation m1",
				"**Tab:** default",
				"**Messages:** 2",
				"## Messages",
				"**user:** (2024-01-01T09:30:00Z)",
				"Do you have desks?",
				"**assistant:**",
				"#### 🔍 Product Details:",
				"- **Standing Desk**",
				"$299.00 · 10% discount available",
				"Stock: 4 available (low-stock)",
				"SKU: D-100",
				"_Suggestions:_ Show me chairs",
			},
		},
		{
			name: "legacy recommended items",
			transcript: internal.CreateTestTranscriptWithMessages("m2", []internal.Message{
				{
					Seq:    1,
					Origin: internal.OriginAssistant,
					Result: &internal.ExchangeResult{
						Response: "Try these",
						RecommendedItems: []internal.RawItem{
							{"name": "Pen", "item_price": 1.5},
						},
					},
					CreatedAt: at,
				},
			}),
			want:    []string{"#### 💡 Recommended Items:", "- **Pen**", "$1.50"},
			notWant: []string{"SKU:"},
		},
		{
			name: "system notice",
			transcript: internal.CreateTestTranscriptWithMessages("m3", []internal.Message{
				{
					Seq:       1,
					Origin:    internal.OriginSystem,
					Notice:    &internal.SystemNotice{Text: "Failed", Severity: internal.SeverityError},
					CreatedAt: at,
				},
			}),
			want:    []string{"**system:** (2023-01-01T00:00:00Z)", "Failed"},
			notWant: []string{"####"},
		},
		{
			name:       "empty transcript",
			transcript: internal.CreateTestTranscriptWithMessages("m4", nil),
			want:       []string{"# Conversation m4", "**Messages:** 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			if err := exporter.Export(tt.transcript, &buf); err != nil {
				t.Fatalf("MarkdownExporter.Export() error = %v", err)
			}

			output := buf.String()
			for _, wantStr := range tt.want {
				if !strings.Contains(output, wantStr) {
					t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
				}
			}
			for _, notWantStr := range tt.notWant {
				if strings.Contains(output, notWantStr) {
					t.Errorf("Output should not contain %q, got:\n%s", notWantStr, output)
				}
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "basic text",
			input: "Hello world",
			want:  []string{"Hello world"},
		},
		{
			name:    "markdown bold",
			input:   "This is **bold** text",
			want:    []string{"\\*\\*bold\\*\\*"},
			notWant: []string{"**bold**"},
		},
		{
			name:    "markdown underline",
			input:   "This is __underlined__ text",
			want:    []string{"\\_\\_underlined\\_\\_"},
			notWant: []string{"__underlined__"},
		},
		{
			name:  "code block preserved",
			input: "```sh\ncurl -X POST /query\n```",
			want:  []string{"```sh", "curl -X POST /query", "```"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeMarkdown(tt.input)
			for _, wantStr := range tt.want {
				if !strings.Contains(got, wantStr) {
					t.Errorf("escapeMarkdown() should contain %q, got: %s", wantStr, got)
				}
			}
			for _, notWantStr := range tt.notWant {
				if strings.Contains(got, notWantStr) {
					t.Errorf("escapeMarkdown() should not contain %q, got: %s", notWantStr, got)
				}
			}
		})
	}
}
