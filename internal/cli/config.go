package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/corblivar/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect run settings",
	}

	var file string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print effective settings as TOML",
		Long: `Print effective settings as TOML.

Without --config the defaults are printed; redirect the output to a file to
start a new settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Default()
			if file != "" {
				var err error
				if s, err = config.Load(file); err != nil {
					return err
				}
			}
			var buf bytes.Buffer
			if err := s.Encode(&buf); err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, err := stdout.Write(buf.Bytes())
			return err
		},
	}
	show.Flags().StringVarP(&file, "config", "c", "", "TOML settings file")
	cmd.AddCommand(show)

	return cmd
}
