// Package cli implements the sqlqb command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdtdelta/typedsql/internal/querydoc"
	"github.com/cdtdelta/typedsql/query"
)

// RootOptions holds global flags and the loaded configuration.
type RootOptions struct {
	ConfigPath   string
	Verbose      bool
	RaiseOnError bool

	Config *Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for sqlqb.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sqlqb",
		Short: "Typed SQL query builder",
		Long: `Render, execute and generate code for SQL statements built with
the typedsql query builder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: sqlqb.yaml found by walking up from cwd)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&opts.RaiseOnError, "raise-on-error", false, "abort on the first builder error")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewGenCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}

func (o *RootOptions) load(stderr io.Writer) error {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, path, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.RaiseOnError {
		cfg.Limits.RaiseOnError = true
	}
	o.Config = cfg
	if path != "" {
		o.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

func (o *RootOptions) config() *Config {
	if o.Config == nil {
		o.Config = DefaultConfig()
	}
	return o.Config
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// buildDocument renders one document. In raise mode builder errors arrive
// as panics and are returned here.
func buildDocument(doc *querydoc.Document, cfg query.Config) (stmt string, b *query.Builder, err error) {
	defer recoverBuildError(&err)

	b, err = doc.Builder(cfg)
	if err != nil {
		return "", nil, err
	}
	stmt, err = b.Build()
	if err != nil {
		return "", nil, err
	}
	return stmt, b, nil
}

// recoverBuildError turns a raised *query.Error into *err. Other panics
// propagate.
func recoverBuildError(err *error) {
	if r := recover(); r != nil {
		qe, ok := r.(*query.Error)
		if !ok {
			panic(r)
		}
		*err = qe
	}
}

func readDocuments(path string) ([]querydoc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	docs, err := querydoc.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoDocuments)
	}
	return docs, nil
}

var errNoDocuments = errors.New("no documents")

func docLabel(path string, i int, doc *querydoc.Document) string {
	if doc.Name != "" {
		return doc.Name
	}
	return fmt.Sprintf("%s#%d", path, i+1)
}
