package main

import (
	"fmt"
	"io"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// Printer writes status lines, optionally colorized
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) line(color, prefix, format string, a ...any) {
	msg := prefix + fmt.Sprintf(format, a...)
	if p.color && color != "" {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) Plain(format string, a ...any)   { p.line("", "", format, a...) }
func (p *Printer) Info(format string, a ...any)    { p.line(colorBlue, "ℹ ", format, a...) }
func (p *Printer) Success(format string, a ...any) { p.line(colorGreen, "✓ ", format, a...) }
func (p *Printer) Warning(format string, a ...any) { p.line(colorYellow, "⚠ ", format, a...) }
func (p *Printer) Error(format string, a ...any)   { p.line(colorRed, "✗ ", format, a...) }

func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w)
	p.line(colorYellow, "", "=== %s ===", title)
}
