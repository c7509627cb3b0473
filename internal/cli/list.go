package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/recipe"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// RecipeSummary is one line of the list command.
type RecipeSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	PrepTime string `json:"prep_time,omitempty"`
	URL      string `json:"url"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recipe in the dataset",
		Long: `List every recipe with its app link, ordered by id.

Examples:
  applink list
  applink list --db ./recipes.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to recipe dataset")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeDB := openService(cmd, opts.RootOptions, opts.Database)
	defer closeDB()

	recipes, err := recipe.List(ctx, svc)
	if err != nil {
		return queryExitError(err)
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, RecipeSummary{
			ID:       r.ID,
			Title:    r.Title,
			PrepTime: r.PrepTime,
			URL:      r.URL(),
		})
	}

	out := opts.newFormatter(cmd)
	if out.IsJSON() {
		return out.Success(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recipes in dataset")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPREP TIME\tLINK")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.PrepTime, s.URL)
	}
	return tw.Flush()
}
