// =============================
// File: internal/cli/printer.go
// =============================
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer пишет пользовательский диалог в заданный writer. Стили
// применяются только там, где терминал их поддерживает.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	warn    lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (p *Printer) Infof(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Failf(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.failure.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf(format, args...)))
}

// Promptf печатает приглашение без перевода строки.
func (p *Printer) Promptf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}
