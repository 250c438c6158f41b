package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/mattn/go-isatty"

	"sortd/internal/planner"
)

// renderPlanTree shows the planned layout as a folder tree rooted at the
// source directory.
func renderPlanTree(plan *planner.Plan) string {
	byFolder := make(map[string][]string)
	for _, move := range plan.Moves {
		byFolder[move.Folder] = append(byFolder[move.Folder], move.File.Name)
	}
	folders := make([]string, 0, len(byFolder))
	for folder := range byFolder {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	lw.AppendItem(plan.SourceDir)
	lw.Indent()
	for _, folder := range folders {
		names := byFolder[folder]
		sort.Strings(names)
		lw.AppendItem(folder + "/")
		lw.Indent()
		for _, name := range names {
			lw.AppendItem(name)
		}
		lw.UnIndent()
	}
	lw.UnIndent()
	return lw.Render()
}

func renderSkipTable(skips []planner.Skip) string {
	rows := make([][]string, 0, len(skips))
	for _, skip := range skips {
		rows = append(rows, []string{skip.Name, string(skip.Reason), skip.Detail})
	}
	return renderTable(
		[]string{"File", "Reason", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// summaryLine prints a one-line outcome, colorized when stdout is a terminal.
func summaryLine(out io.Writer, ok bool, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if shouldColorize(out) {
		color := ansiGreen
		if !ok {
			color = ansiRed
		}
		line = color + line + ansiReset
	}
	fmt.Fprintln(out, line)
}
