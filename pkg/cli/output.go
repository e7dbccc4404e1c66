package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/funvibe/funamb/internal/backend"
	"github.com/funvibe/funamb/internal/config"
	"github.com/funvibe/funamb/internal/diagnostics"
	"github.com/funvibe/funamb/internal/evaluator"
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

// printer writes values, notices and errors, in color when enabled.
type printer struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

func newPrinter(out, errOut io.Writer, color bool) *printer {
	return &printer{out: out, errOut: errOut, color: color}
}

func (p *printer) paint(s string, fn func(string) string) string {
	if p.color {
		return fn(s)
	}
	return s
}

// value prints a value of a program run.
func (p *printer) value(v evaluator.Object) {
	fmt.Fprintln(p.out, p.paint(evaluator.Stringify(v), blue))
}

// result prints a value in the driver loop.
func (p *printer) result(v evaluator.Object) {
	fmt.Fprintln(p.out, config.OutputPrefix+p.paint(evaluator.Stringify(v), blue))
}

func (p *printer) notice(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), green))
}

func (p *printer) exhausted(problem string) {
	p.notice("There are no more values of: %s", problem)
}

// error prints a failure. Syntax diagnostics keep their code; runtime
// errors are printed as "error: position: message".
func (p *printer) error(err error) {
	var diags backend.Diagnostics
	if !errors.As(err, &diags) {
		p.errorLine("error: " + err.Error())
		return
	}
	for _, d := range diags {
		if d.Code == diagnostics.ErrR001 {
			p.errorLine("error: " + d.Location() + d.Message)
		} else {
			p.errorLine(d.Error())
		}
	}
}

func (p *printer) errorLine(s string) {
	fmt.Fprintln(p.errOut, p.paint(s, red))
}
