package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/deeplink"
	"github.com/roach88/applink/internal/query"
	"github.com/roach88/applink/internal/recipe"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <recipe-id | app-link>",
		Short: "Show a recipe",
		Long: `Show a recipe with its ingredients and steps.

The argument is either a bare recipe id or an app link; for links the last
path segment is used as the id. A recipe that is not in the dataset is
reported as a notice, not an error.

Examples:
  applink show 7
  applink show http://recipe-app.com/recipe/7
  applink show --db ./recipes.db 7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to recipe dataset")

	return cmd
}

func runShow(opts *ShowOptions, arg string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	id := deeplink.Normalize(arg)
	if deeplink.IsLink(arg) {
		var err error
		id, err = deeplink.Resolve(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid app link", err)
		}
	}

	svc, closeDB := openService(cmd, opts.RootOptions, opts.Database)
	defer closeDB()

	out := opts.newFormatter(cmd)
	out.VerboseLog("Showing recipe %q from %s", id, opts.Database)

	r, err := recipe.Load(ctx, svc, id)
	if errors.Is(err, recipe.ErrNotFound) {
		uri := query.NewRequest(query.KindRecipe, id).ContentURI()
		slog.Info("recipe not found", "recipe_id", id)
		return out.Notice(ErrCodeNotFound, fmt.Sprintf("No match for deep link %s", uri),
			map[string]string{"recipe_id": id})
	}
	if err != nil {
		return queryExitError(err)
	}

	if out.IsJSON() {
		return out.Success(r)
	}
	renderRecipe(cmd.OutOrStdout(), r)
	return nil
}
