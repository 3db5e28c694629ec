package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/phrazzld/todo-api/internal/client"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldStyle(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderBoard lays tasks out in a Pending and a Completed column, each in
// creation order.
func renderBoard(tasks []client.Task, styled bool) string {
	var pending, completed []string
	for _, task := range tasks {
		if task.Status == client.StatusCompleted {
			completed = append(completed, taskCell(task))
		} else {
			pending = append(pending, taskCell(task))
		}
	}

	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleRounded)
	}
	tw.Style().Options.SeparateRows = true

	tw.AppendHeader(table.Row{"Pending", "Completed"})

	rows := max(len(pending), len(completed))
	for i := 0; i < rows; i++ {
		tw.AppendRow(table.Row{cellAt(pending, i), cellAt(completed, i)})
	}
	if rows == 0 {
		tw.AppendRow(table.Row{"(no tasks)", ""})
	}

	return tw.Render()
}

func taskCell(task client.Task) string {
	lines := []string{task.Title}
	if task.Description != nil && *task.Description != "" {
		lines = append(lines, *task.Description)
	}
	lines = append(lines, task.ID)
	return strings.Join(lines, "\n")
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
