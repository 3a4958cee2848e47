package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corblivar/pkg/pipeline"
)

// layoutCommand creates the layout command for random initial floorplans.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "layout [benchmark.yaml]",
		Short: "Build and decode a random initial floorplan",
		Long: `Build and decode a random initial floorplan.

Every block of the benchmark receives one CBL tuple with a random direction
on a random die (or on dies ordered by power density with --power-aware).
The dies are decoded, compacted, and written in the requested formats.

Use -f cbl to save the solution as a checkpoint for 'decode' and 'perturb'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			if err := c.runPipeline(cmd.Context(), "Layout", opts, flags); err != nil {
				return err
			}
			if slices.Contains(opts.Formats, pipeline.FormatCBL) {
				base := basePath(flags.output, args[0])
				printNewline()
				printNextStep("Improve it", fmt.Sprintf("%s perturb %s --checkpoint %s.cbl", appName, args[0], base))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// runPipeline executes opts, writes the artifacts, and prints a summary.
// stage names the run in status output.
func (c *CLI) runPipeline(ctx context.Context, stage string, opts pipeline.Options, flags runFlags) error {
	logger := loggerFromContext(ctx)
	runner, err := newRunner(flags.noCache, logger)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger
	prog := newProgress(logger, strings.ToLower(stage))

	spinner := newSpinnerWithContext(ctx, stage+" running...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(stage + " failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("%s complete", stage)
	paths, err := writeArtifacts(basePath(flags.output, opts.Benchmark), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done("run finished", "blocks", result.Stats.Blocks, "files", len(paths), "cached", result.CacheInfo.SolutionHit)
	printStats(result.Stats.Blocks, result.Stats.Layers, result.Stats.Outline, result.Stats.Unfulfilled,
		result.CacheInfo.SolutionHit)
	if n := result.Stats.Unfulfilled; n > 0 {
		printWarning("%d of %d alignment requests unfulfilled", n, len(result.Layout.Alignments))
	}
	return nil
}
