// Command sqlqb renders, executes and generates code for typed SQL
// statements.
//
// Usage:
//
//	sqlqb [flags] <command>
//
// Commands:
//   - render: print the SQL for YAML statement documents
//   - insert: turn CSV or JSON Lines rows into INSERT statements
//   - exec: run statement documents against database.dsn
//   - gen: generate typed table definitions from a YAML schema
//   - demo: print the sample statements
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cdtdelta/typedsql/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
