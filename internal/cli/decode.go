package cli

import (
	"github.com/spf13/cobra"
)

// decodeCommand creates the decode command for CBL checkpoints.
func (c *CLI) decodeCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "decode [benchmark.yaml] [solution.cbl]",
		Short: "Decode a CBL checkpoint against its benchmark",
		Long: `Decode a CBL checkpoint against its benchmark.

The checkpoint lists one "die <n>" header per die followed by one
"<id> <H|V> <juncts> <width> <height>" line per tuple, as written by
'-f cbl'. Widths and heights from the checkpoint override the benchmark,
so reshaped soft blocks and rotated hard blocks are restored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Checkpoint = args[1]
			return c.runPipeline(cmd.Context(), "Decode", opts, flags)
		},
	}
	flags.register(cmd)
	return cmd
}
