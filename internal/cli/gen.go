package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/typedsql/internal/codegen"
)

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "gen <schema.yaml>",
		Short: "Generate typed table definitions",
		Long: `Generate a Go file declaring one struct per table, with a typed
query.Column field per column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening schema: %w", err)
			}
			defer f.Close()

			schema, err := codegen.LoadSchema(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			src, err := codegen.Generate(schema)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(output, src, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			rootOpts.logger().Info("generated tables", "package", schema.Package, "tables", len(schema.Tables), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
