package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/matzehuels/corblivar/pkg/observability"
)

// perturbCommand creates the perturb command for operator walks.
func (c *CLI) perturbCommand() *cobra.Command {
	var (
		flags      runFlags
		checkpoint string
		steps      int
		guided     float64
		metrics    bool
	)

	cmd := &cobra.Command{
		Use:   "perturb [benchmark.yaml]",
		Short: "Improve a floorplan with a seeded operator walk",
		Long: `Improve a floorplan with a seeded operator walk.

Each step applies one random neighborhood operator (swap blocks, move tuple,
switch insertion direction, switch tuple junctions, rotate or reshape a
block) and decodes the result. Steps that enlarge the outline or leave more
alignment requests unfulfilled are reverted. The best solution seen is
written at the end.

During the first --guided fraction of the steps, swaps towards the first
unfulfilled alignment request take precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("steps") {
				opts.Settings.Perturb.Steps = steps
			}
			if cmd.Flags().Changed("guided") {
				opts.Settings.Perturb.GuidedFraction = guided
			}
			if err := opts.Settings.Validate(); err != nil {
				return err
			}
			opts.Perturb = true
			opts.Checkpoint = checkpoint

			runID := uuid.NewString()[:8]
			logger := loggerFromContext(cmd.Context()).With("run", runID)
			logger.Info("starting walk",
				"steps", opts.Settings.Perturb.Steps,
				"guided", opts.Settings.Perturb.GuidedFraction,
				"seed", opts.Settings.Seed)

			var reg *prometheus.Registry
			if metrics {
				reg = prometheus.NewRegistry()
				prom := observability.NewPromHooks(reg)
				tee := teeHooks{a: logHooks{logger: logger}, b: prom}
				observability.SetLayoutHooks(tee)
				observability.SetOperatorHooks(tee)
			}

			ctx := withLogger(cmd.Context(), logger)
			if err := c.runPipeline(ctx, "Perturb", opts, flags); err != nil {
				return err
			}
			if reg != nil {
				return printOperatorMetrics(reg)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "start from a CBL checkpoint instead of a random layout")
	cmd.Flags().IntVarP(&steps, "steps", "n", 0, "operator steps (default from config)")
	cmd.Flags().Float64Var(&guided, "guided", 0, "fraction of steps in the alignment-guided phase (default from config)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print operator statistics after the walk")
	return cmd
}

// printOperatorMetrics summarizes the operator counters gathered in reg.
func printOperatorMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	printNewline()
	for _, mf := range families {
		switch mf.GetName() {
		case "corblivar_operations_total", "corblivar_reverts_total":
		default:
			continue
		}
		rows := make(map[string]float64)
		for _, m := range mf.GetMetric() {
			rows[metricLabel(m)] += m.GetCounter().GetValue()
		}
		keys := make([]string, 0, len(rows))
		for k := range rows {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		printInfo("%s", strings.TrimPrefix(mf.GetName(), "corblivar_"))
		for _, k := range keys {
			printKeyValue("  "+k, fmt.Sprintf("%.0f", rows[k]))
		}
	}
	return nil
}

// metricLabel joins the op label with the applied outcome, if present.
func metricLabel(m *dto.Metric) string {
	var op, applied string
	for _, lp := range m.GetLabel() {
		switch lp.GetName() {
		case "op":
			op = lp.GetValue()
		case "applied":
			if lp.GetValue() == "true" {
				applied = "applied"
			} else {
				applied = "rejected"
			}
		}
	}
	if applied == "" {
		return op
	}
	return op + " " + applied
}
