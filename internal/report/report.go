// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"strings"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0C0C0")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// Writer renders reports to an output, usually stdout.
type Writer struct {
	out io.Writer
	p   *message.Printer
	err error
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, p: message.NewPrinter(language.English)}
}

// Err is the first error found writing to the output.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) println(s string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.out, s)
}

func (w *Writer) title(format string, a ...interface{}) {
	w.println(titleStyle.Render(fmt.Sprintf(format, a...)))
}

// table renders headers and rows. An empty rows slice is rendered as the headers only.
func (w *Writer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	w.println(t.String())
}

// keyValues renders a two column property table.
func (w *Writer) keyValues(pairs ...string) {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i], pairs[i+1]})
	}

	w.table([]string{"Property", "Value"}, rows)
}

func (w *Writer) count(n int) string {
	return w.p.Sprintf("%d", n)
}

func (w *Writer) float(f float64) string {
	return w.p.Sprintf("%.4f", f)
}

func percent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// visible escapes characters that would break the table layout.
func visible(s string) string {
	switch s {
	case " ":
		return "<space>"
	case "\t":
		return "<tab>"
	}

	return strings.ToValidUTF8(s, "?")
}
