package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/typedsql/internal/rowsource"
	"github.com/cdtdelta/typedsql/query"
)

type insertOptions struct {
	table   string
	format  string
	replace bool
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &insertOptions{}

	cmd := &cobra.Command{
		Use:   "insert --table <name> <file>",
		Short: "Turn CSV or JSONL rows into INSERT statements",
		Long: `Read a CSV file (header row first) or a JSON Lines file and print one
INSERT statement per row. Rows wider than the header are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "target table (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: csv or jsonl (default: from extension)")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "emit INSERT OR REPLACE")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runInsert(rootOpts *RootOptions, opts *insertOptions, path string, cmd *cobra.Command) error {
	cfg := rootOpts.config().QueryConfig()
	log := rootOpts.logger()

	res, err := rowsource.Read(path, opts.format, func(count int) {
		log.Debug("reading rows", "path", path, "count", count)
	})
	if err != nil {
		return err
	}
	if res.Excluded > 0 {
		log.Warn("skipped malformed rows", "path", path, "excluded", res.Excluded)
	}

	w := cmd.OutOrStdout()
	for i, rec := range res.Records {
		stmt, err := insertStatement(cfg, opts, rec)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "%s;\n", stmt)
	}
	log.Info("generated inserts", "table", opts.table, "rows", res.Count)
	return nil
}

func insertStatement(cfg query.Config, opts *insertOptions, rec rowsource.Record) (stmt string, err error) {
	defer recoverBuildError(&err)

	b := query.NewWithConfig(cfg)
	if opts.replace {
		b.InsertOrReplace(opts.table)
	} else {
		b.Insert(opts.table)
	}
	return rec.Apply(b).Build()
}
