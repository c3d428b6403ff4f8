package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type rendered struct {
	label string
	sql   string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <doc.yaml>...",
		Short: "Render statement documents to SQL",
		Long: `Render every statement document in the given YAML files to SQL.

Documents are built concurrently, one builder each, and printed in input
order separated by semicolons.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runRender(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	cfg := opts.config().QueryConfig()
	log := opts.logger()

	var jobs []func() (rendered, error)
	for _, path := range paths {
		docs, err := readDocuments(path)
		if err != nil {
			return err
		}
		for i := range docs {
			doc := &docs[i]
			label := docLabel(path, i, doc)
			jobs = append(jobs, func() (rendered, error) {
				stmt, _, err := buildDocument(doc, cfg)
				if err != nil {
					return rendered{}, fmt.Errorf("%s: %w", label, err)
				}
				log.Debug("rendered document", "document", label, "where_columns", doc.Columns())
				return rendered{label: label, sql: stmt}, nil
			})
		}
	}

	out := make([]rendered, len(jobs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			r, err := job()
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug("rendered documents", "count", len(out))

	w := cmd.OutOrStdout()
	for _, r := range out {
		fmt.Fprintf(w, "-- %s\n%s;\n", r.label, r.sql)
	}
	return nil
}
