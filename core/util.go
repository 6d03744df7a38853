package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState renders the variable store, walked in both directions.
func PrintState(w io.Writer, state *coreState) {
	fmt.Fprintln(w, StoreTable(state.Store, "Variables (oldest first)", false).Render())
	fmt.Fprintln(w, StoreTable(state.Store, "Variables (newest first)", true).Render())
	fmt.Fprintln(w)
}

// StoreTable builds a table of the variables in the store.
func StoreTable(store *VariableStore, title string, backward bool) table.Writer {
	vars := store.Forward()
	if backward {
		vars = store.Backward()
	}

	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Identifier", "Value", "Char"})

	for i, v := range vars {
		t.AppendRow(table.Row{i, strconv.Quote(v.Name()), v.Value, charOf(v.Value)})
	}

	t.AppendFooter(table.Row{"", "Total", len(vars), ""})

	return t
}

func charOf(v int8) string {
	return strconv.QuoteRuneToASCII(rune(uint8(v)))
}

func LogState(state *coreState) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	slog.Debug("StateCheckpoint",
		"Vars", state.Store.Len(),
		"Store", state.Store.Forward(),
	)
}
