package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/typedsql/internal/database"
	"github.com/cdtdelta/typedsql/query"
)

var errNoDSN = errors.New("database.dsn is not set")

type execOptions struct {
	args []string
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &execOptions{}

	cmd := &cobra.Command{
		Use:   "exec <doc.yaml>",
		Short: "Run statement documents against the configured database",
		Long: `Build every document in the file and run it against database.driver /
database.dsn. SELECT results are printed as a table; other statements print
the number of affected rows.

--arg binds placeholder values: name=value binds :name, a bare value binds
the next positional parameter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.args, "arg", nil, "placeholder value (name=value or value), repeatable")

	return cmd
}

func runExec(rootOpts *RootOptions, opts *execOptions, path string, cmd *cobra.Command) error {
	cfg := rootOpts.config()
	log := rootOpts.logger()

	docs, err := readDocuments(path)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return errNoDSN
	}

	store, err := database.Open(cfg.Database.Driver, cfg.Database.DSN,
		database.WithLogger(log),
		database.WithSlowThreshold(cfg.Database.SlowThreshold),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	args := bindArgs(opts.args)
	w := cmd.OutOrStdout()
	ctx := cmd.Context()

	for i := range docs {
		label := docLabel(path, i, &docs[i])
		_, b, err := buildDocument(&docs[i], cfg.QueryConfig())
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}

		if b.Kind() == query.SelectStatement {
			rows, err := store.Query(ctx, b, args...)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			writeRows(w, rows)
			continue
		}

		n, err := store.Exec(ctx, b, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		fmt.Fprintf(w, "%s: %d row(s) affected\n", label, n)
	}
	return nil
}

func bindArgs(raw []string) []any {
	args := make([]any, 0, len(raw))
	for _, a := range raw {
		if name, value, ok := strings.Cut(a, "="); ok && name != "" {
			args = append(args, sql.Named(name, value))
			continue
		}
		args = append(args, a)
	}
	return args
}

func writeRows(w io.Writer, rows []database.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rows[0].Columns(), "\t"))
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, f := range r {
			if f.Value == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = fmt.Sprint(f.Value)
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}
