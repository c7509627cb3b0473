package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/dataset"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Fixture string
	Sample  bool
	Output  string
}

// BuildResult is the payload of the build command.
type BuildResult struct {
	Output       string `json:"output"`
	Recipes      int    `json:"recipes"`
	Ingredients  int    `json:"ingredients"`
	Instructions int    `json:"instructions"`
}

// String implements fmt.Stringer for text output.
func (r BuildResult) String() string {
	return fmt.Sprintf("Built %s: %d recipes, %d ingredients, %d steps",
		r.Output, r.Recipes, r.Ingredients, r.Instructions)
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Package a recipe fixture into a dataset",
		Long: `Validate a YAML recipe fixture and package it into a new SQLite dataset.

The output file must not exist. Exactly one of --fixture or --sample is required.

Examples:
  applink build --fixture ./recipes.yaml --out ./recipes.db
  applink build --sample --out ./recipes.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Fixture, "fixture", "f", "", "path to YAML recipe fixture")
	cmd.Flags().BoolVar(&opts.Sample, "sample", false, "package the bundled sample fixture")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", DefaultDatabase, "path of the dataset to create")
	cmd.MarkFlagsMutuallyExclusive("fixture", "sample")
	cmd.MarkFlagsOneRequired("fixture", "sample")

	return cmd
}

func runBuild(opts *BuildOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var fixture *dataset.Fixture
	if opts.Sample {
		fixture = dataset.Sample()
	} else {
		var err error
		fixture, err = dataset.LoadFixture(opts.Fixture)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load fixture", err)
		}
	}

	slog.Info("building dataset", "output", opts.Output, "recipes", len(fixture.Recipes))
	if err := dataset.Build(ctx, fixture, opts.Output); err != nil {
		if errors.Is(err, dataset.ErrExists) || errors.Is(err, dataset.ErrInvalidFixture) {
			return WrapExitError(ExitCommandError, "failed to build dataset", err)
		}
		return WrapExitError(ExitFailure, "failed to build dataset", err)
	}

	result := BuildResult{Output: opts.Output, Recipes: len(fixture.Recipes)}
	for _, r := range fixture.Recipes {
		result.Ingredients += len(r.Ingredients)
		result.Instructions += len(r.Instructions)
	}

	return opts.newFormatter(cmd).Success(result)
}
