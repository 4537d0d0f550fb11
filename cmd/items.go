package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/iksnae/bizspark-chat/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	searchQuery string
	minPrice    float64
	maxPrice    float64
	sortBy      string
	output      string
)

// itemsCmd represents the items command
var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List or search the item catalog",
	Long: `List the assistant's item catalog. With --search, --min-price, --max-price
or --sort the service's search endpoint is used instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutput(); err != nil {
			return err
		}

		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		var items []internal.ItemRecord
		if cmd.Flags().Changed("search") || cmd.Flags().Changed("min-price") ||
			cmd.Flags().Changed("max-price") || cmd.Flags().Changed("sort") {
			q := internal.ItemQuery{SearchQuery: searchQuery, SortBy: sortBy}
			if cmd.Flags().Changed("min-price") {
				q.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				q.MaxPrice = &maxPrice
			}
			items, err = app.Catalog.Search(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
		} else {
			app.Catalog.Load(cmd.Context())
			if !app.Catalog.Loaded() {
				return errors.New("failed to fetch items")
			}
			items = app.Catalog.Items()
		}

		return printRecords(cmd.OutOrStdout(), items, false)
	},
}

// itemsShowCmd represents the items show command
var itemsShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show a single item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutput(); err != nil {
			return err
		}

		app, _, release, err := newApp()
		if err != nil {
			return err
		}
		defer release()

		rec, err := app.Catalog.Get(cmd.Context(), args[0])
		if errors.Is(err, internal.ErrItemNotFound) {
			return fmt.Errorf("item %s not found", args[0])
		}
		if err != nil {
			return err
		}
		return printRecords(cmd.OutOrStdout(), []internal.ItemRecord{rec}, true)
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.AddCommand(itemsShowCmd)

	itemsCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Search text")
	itemsCmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	itemsCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price")
	itemsCmd.Flags().StringVar(&sortBy, "sort", "", "Sort order understood by the service (e.g. price_asc)")
	itemsCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
}

func checkOutput() error {
	switch output {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output: %s (supported: text, json, yaml)", output)
	}
}

func printRecords(out io.Writer, items []internal.ItemRecord, detailed bool) error {
	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No items found")
		return nil
	}
	for _, rec := range items {
		lines := internal.ItemLines(rec, detailed)
		fmt.Fprintln(out, itemNameStyle.Render(lines[0]))
		for _, line := range lines[1:] {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
	}
	if !detailed {
		fmt.Fprintln(out, metaStyle.Render(fmt.Sprintf("%d item(s)", len(items))))
	}
	return nil
}
