package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ductnet/reach"
	"github.com/katalvlaran/ductnet/request"
	"github.com/katalvlaran/ductnet/sweep"
)

type routeOpts struct {
	config     string
	output     string
	workers    int
	timeBudget time.Duration
	metrics    string
	aspect     float64
}

func newRouteCmd() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Route and size the cheapest duct network for a request",
		Long: `Route loads a TOML or YAML request, sweeps the heuristic weight grid and
writes the minimum-surface network as JSON.

Flags override DUCTNET_* variables, which override the request file.`,
		Example: `  ductnet route -c office.toml -o network.json
  ductnet route -c tower.yaml --workers 8 --time-budget 30s --metrics sweep.prom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "request file (.toml, .yaml, .yml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the network JSON here instead of stdout")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent evaluations (default: request or CPU count)")
	cmd.Flags().DurationVar(&opts.timeBudget, "time-budget", 0, "stop starting new combinations after this long")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "write sweep metrics in Prometheus text format to this file")
	cmd.Flags().Float64Var(&opts.aspect, "aspect", 2, "width:height ratio of the rectangular duct equivalents")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runRoute(cmd *cobra.Command, opts routeOpts) error {
	ctx := cmd.Context()
	runID := uuid.NewString()
	logger := loggerFromContext(ctx).With("run", runID[:8])

	req, err := request.Load(opts.config)
	if err != nil {
		return err
	}
	g, err := req.Graph()
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	source, terminals, err := req.Resolve(g)
	if err != nil {
		return err
	}
	logger.Debug("request loaded", "name", req.Name, "nodes", g.Len(), "edges", g.EdgeCount(), "terminals", len(terminals))
	if missing, err := reach.Unreachable(g, source, terminals); err == nil && len(missing) > 0 {
		logger.Warn("terminals unreachable from the source; every combination will fail", "terminals", missing)
	}

	sweepOpts, err := req.SweepOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		sweepOpts = append(sweepOpts, sweep.WithWorkers(opts.workers))
	}
	if cmd.Flags().Changed("time-budget") {
		sweepOpts = append(sweepOpts, sweep.WithTimeBudget(opts.timeBudget))
	}

	observers := sweep.Observers{newProgressObserver(logger)}
	var reg *prometheus.Registry
	if opts.metrics != "" {
		reg = prometheus.NewRegistry()
		observers = append(observers, sweep.NewPrometheusObserver(reg))
	}
	sweepOpts = append(sweepOpts, sweep.WithObserver(observers), sweep.WithLogger(logger))

	opt, err := sweep.New(g, source, terminals, req.Bounds(), sweepOpts...)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	res, err := opt.Run(ctx)
	if reg != nil && res != nil {
		if werr := prometheus.WriteToTextfile(opts.metrics, reg); werr != nil {
			logger.Warn("write metrics", "path", opts.metrics, "err", werr)
		}
	}
	if err != nil {
		if errors.Is(err, sweep.ErrNoViableCombination) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	prog.done(fmt.Sprintf("Swept %d of %d combinations", len(res.Evaluations), res.Total))

	rep := newReport(runID, req.Name, g, source, terminals, res, opts.aspect)
	if err := writeReport(cmd.OutOrStdout(), opts.output, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	w := cmd.ErrOrStderr()
	if res.Stopped {
		printWarning(w, "sweep stopped early: %d of %d combinations evaluated", len(res.Evaluations), res.Total)
	}
	printSuccess(w, "%s %s", StyleTitle.Render("network"), StyleDim.Render("("+res.Best.Weights.String()+")"))
	printKeyValue(w, "segments", len(res.Network.Segments))
	printKeyValue(w, "surface area", fmt.Sprintf("%.2f ft²", res.Best.Cost))
	printKeyValue(w, "viable", fmt.Sprintf("%d/%d", len(res.Viable()), len(res.Evaluations)))
	if opts.output != "" {
		printInfo(w, "wrote %s", opts.output)
	}

	return nil
}
