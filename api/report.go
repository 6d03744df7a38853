package api

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/oung/core"
)

// Report summarizes one run of a program.
type Report struct {
	Statements  int
	Rejected    int
	Dropped     int
	Diagnostics []core.Diagnostic
	Leaked      []core.Variable
	Time        sim.VTimeInSec
}

// OK reports whether every statement was accepted and every variable was
// consumed.
func (r *Report) OK() bool {
	return r.Rejected == 0 && r.Dropped == 0 && len(r.Leaked) == 0
}

// WriteReport writes a formatted report to a writer.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "OUNG RUN REPORT")
	fmt.Fprintln(w, separator)

	summary := table.NewWriter()
	summary.SetTitle("Summary")
	summary.AppendRows([]table.Row{
		{"Statements", r.Statements},
		{"Rejected", r.Rejected},
		{"Dropped opcodes", r.Dropped},
		{"Leaked variables", len(r.Leaked)},
		{"Virtual time", r.Time},
	})
	fmt.Fprintln(w, summary.Render())

	if len(r.Diagnostics) > 0 {
		fmt.Fprintln(w, r.diagnosticTable().Render())
	}

	if len(r.Leaked) > 0 {
		fmt.Fprintln(w, r.leakTable().Render())
	}

	if r.OK() {
		fmt.Fprintln(w, "✓ Every statement ran and every variable was consumed")
	} else {
		fmt.Fprintln(w, "⚠ Program finished with issues")
	}

	fmt.Fprintln(w)
}

func (r *Report) diagnosticTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("Rejected statements")
	t.AppendHeader(table.Row{"Line", "Kind", "Message"})

	for _, d := range r.Diagnostics {
		t.AppendRow(table.Row{d.Line, kindOf(d.Err), d.Err.Error()})
	}

	return t
}

func (r *Report) leakTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("Unconsumed variables")
	t.AppendHeader(table.Row{"Identifier", "Value"})

	for _, v := range r.Leaked {
		t.AppendRow(table.Row{fmt.Sprintf("%q", v.Name()), v.Value})
	}

	return t
}

var kinds = []struct {
	err  error
	name string
}{
	{core.ErrDecode, "DecodeError"},
	{core.ErrDuplicateIdentifier, "DuplicateIdentifier"},
	{core.ErrUnknownIdentifier, "UnknownIdentifier"},
	{core.ErrDivisionByZero, "DivisionByZero"},
	{core.ErrInvalidCommand, "InvalidCommand"},
	{core.ErrStatementOverflow, "StatementOverflow"},
	{core.ErrInputExhausted, "InputExhausted"},
}

func kindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}

	return "Other"
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}
