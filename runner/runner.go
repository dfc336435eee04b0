package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ridoystarlord/tablegen/database"
	"github.com/ridoystarlord/tablegen/generator"
	"github.com/ridoystarlord/tablegen/schema"
)

// ExecutionError reports a failed DDL execution. Err carries the backend's
// message unchanged.
type ExecutionError struct {
	Location string
	Table    string
	Err      error
}

func (e *ExecutionError) Error() string {
	switch {
	case e.Table != "" && e.Location != "":
		return fmt.Sprintf("creating table %s in %s: %v", e.Table, e.Location, e.Err)
	case e.Table != "":
		return fmt.Sprintf("creating table %s: %v", e.Table, e.Err)
	case e.Location != "":
		return fmt.Sprintf("executing DDL in %s: %v", e.Location, e.Err)
	default:
		return fmt.Sprintf("executing DDL: %v", e.Err)
	}
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Result is the outcome of creating one record's table.
type Result struct {
	Record string
	Table  string
	SQL    string
	Err    error
}

// Runner generates DDL for record shapes and executes it.
type Runner struct {
	exec     database.Executor
	out      io.Writer
	location string
}

// New returns a Runner that executes through exec and reports progress to
// out. A nil out discards progress output.
func New(exec database.Executor, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{exec: exec, out: out}
}

// WithLocation sets the storage location reported in execution errors.
func (r *Runner) WithLocation(location string) *Runner {
	r.location = location
	return r
}

// CreateTable builds and renders the shape's DDL, prints it and executes it.
// Re-running against a database that already has the table is a no-op.
func (r *Runner) CreateTable(ctx context.Context, shape schema.RecordShape) (Result, error) {
	st := generator.Generate(shape)
	res := Result{Record: st.Record, Table: st.Table, SQL: st.SQL}

	cyan := color.New(color.FgCyan)
	cyan.Fprintln(r.out, "--- Generated SQL ---")
	fmt.Fprintln(r.out, st.SQL)
	cyan.Fprintln(r.out, "---------------------")

	if _, err := r.exec.ExecContext(ctx, st.SQL); err != nil {
		res.Err = &ExecutionError{Location: r.location, Table: st.Table, Err: err}
		return res, res.Err
	}

	fmt.Fprintf(r.out, "Successfully created table '%s'.\n", st.Table)
	return res, nil
}

// CreateTables creates every shape's table in order. A failure does not stop
// the remaining records; each Result carries its own error.
func (r *Runner) CreateTables(ctx context.Context, shapes []schema.RecordShape) []Result {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	results := make([]Result, 0, len(shapes))
	for _, shape := range shapes {
		if err := ctx.Err(); err != nil {
			st := generator.Generate(shape)
			results = append(results, Result{Record: st.Record, Table: st.Table, SQL: st.SQL, Err: err})
			continue
		}

		res, err := r.CreateTable(ctx, shape)
		if err != nil {
			red.Fprintf(r.out, "❌ Error creating %s table: %v\n\n", strings.ToLower(shape.Name), err)
		} else {
			green.Fprintf(r.out, "✅ %s table creation successful.\n\n", shape.Name)
		}
		results = append(results, res)
	}
	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Apply opens the database at location, executes ddl and closes it.
func Apply(ctx context.Context, location, ddl string) error {
	db, err := database.Open(ctx, location)
	if err != nil {
		return &ExecutionError{Location: location, Err: err}
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return &ExecutionError{Location: location, Err: err}
	}
	return nil
}
