package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/typedsql/internal/model"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	var withSchema bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the sample statements over the sample schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if withSchema {
				for _, stmt := range model.SchemaSQL {
					fmt.Fprintf(w, "%s;\n", strings.TrimSpace(stmt))
				}
				fmt.Fprintln(w)
			}

			samples := model.Samples(time.Now().UTC())
			for _, s := range samples {
				fmt.Fprintf(w, "-- %s\n%s;\n\n", s.Title, s.Builder.SQL())
			}
			rootOpts.logger().Debug("printed samples", "count", len(samples))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSchema, "schema", false, "print the sample schema DDL first")

	return cmd
}
