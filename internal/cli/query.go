package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/query"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
}

// QueryOutput is the JSON payload of the query command.
// NULL cells are encoded as null.
type QueryOutput struct {
	Path      string      `json:"path"`
	Kind      string      `json:"kind"`
	Type      string      `json:"type"`
	RequestID string      `json:"request_id"`
	Columns   []string    `json:"columns"`
	Rows      [][]*string `json:"rows"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <path>",
		Short: "Run a raw request path against the dataset",
		Long: `Run a request path and print the tabular result.

Recognized paths:
  recipe                          every recipe
  recipe/{id}                     one recipe's attributes
  recipe/ingredients/{id}         one recipe's ingredients
  recipe/instructions/{id}        one recipe's steps

Any other path fails with an unrecognized-request error (exit code 2).
An id that matches nothing prints zero rows.

Examples:
  applink query recipe/7
  applink query content://com.sopan.app_link/recipe/ingredients/7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to recipe dataset")

	return cmd
}

func runQuery(opts *QueryOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeDB := openService(cmd, opts.RootOptions, opts.Database)
	defer closeDB()

	res, err := svc.Query(ctx, path)
	if err != nil {
		return queryExitError(err)
	}

	out := opts.newFormatter(cmd)
	if out.IsJSON() {
		return out.Success(toQueryOutput(res))
	}
	return writeTable(cmd.OutOrStdout(), res.Columns, res.Rows)
}

func toQueryOutput(res *query.Result) QueryOutput {
	rows := make([][]*string, 0, res.Len())
	for _, row := range res.Rows {
		cells := make([]*string, len(row))
		for i, cell := range row {
			if cell.Valid {
				s := cell.String
				cells[i] = &s
			}
		}
		rows = append(rows, cells)
	}
	return QueryOutput{
		Path:      res.Request.Path,
		Kind:      res.Request.Kind.String(),
		Type:      res.Request.Type(),
		RequestID: res.RequestID,
		Columns:   res.Columns,
		Rows:      rows,
	}
}

// writeTable prints a header, aligned rows, and a row count. NULL prints as NULL.
func writeTable(w io.Writer, columns []string, rows [][]sql.NullString) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell.Valid {
				cells[i] = cell.String
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return err
}
