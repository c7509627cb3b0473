package cli

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/query"
	"github.com/roach88/applink/internal/store"
)

// openService wires a lazily opened dataset to a query service.
// The returned close func logs rather than returns its error. With --metrics
// it also writes the request counters to stderr in Prometheus text format.
func openService(cmd *cobra.Command, rootOpts *RootOptions, database string) (*query.Service, func()) {
	db := store.NewLazy(database)
	reg := prometheus.NewRegistry()
	svc := query.New(db,
		query.WithLogger(slog.Default()),
		query.WithIDGenerator(rootOpts.idGenerator()),
		query.WithMetrics(query.NewMetrics(reg)),
	)
	return svc, func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
		if rootOpts.Metrics {
			if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
				slog.Error("error writing metrics", "error", err)
			}
		}
	}
}

// writeMetrics dumps every metric family gathered from g as text exposition.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
