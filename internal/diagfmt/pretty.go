package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fen/internal/diag"
	"fen/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид. Идёт по bag.Items()
// (ожидается bag.Sort() заранее). Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку-контекст с подчёркиванием ^~~~ по спану, затем Notes в том же
// формате с отступом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	head := fmt.Sprintf("%s %s", d.Severity, d.Code.ID())
	if p.opts.Color {
		c := color.New(color.FgRed, color.Bold)
		if d.Severity == diag.SevWarning {
			c = color.New(color.FgYellow, color.Bold)
		}
		head = c.Sprint(head)
	}
	fmt.Fprintf(p.w, "%s: %s: %s\n", p.location(d.Primary), head, d.Message)
	p.context(d.Primary)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(p.w, "  %s: note: %s\n", p.location(note.Span), note.Msg)
			p.context(note.Span)
		}
	}
}

func (p *prettyPrinter) location(sp source.Span) string {
	if int(sp.File) >= p.fs.Len() {
		return "<unknown>"
	}
	f := p.fs.Get(sp.File)
	start, _ := p.fs.Resolve(sp)

	var path string
	switch p.opts.PathMode {
	case PathModeAbsolute:
		path = f.Path
	case PathModeBasename:
		path = filepath.Base(f.Path)
	default:
		path = f.RelPath(p.fs.BaseDir())
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// context печатает строку исходника и каретку под спаном. Спан, выходящий за
// строку, обрезается по её концу.
func (p *prettyPrinter) context(sp source.Span) {
	if sp.End <= sp.Start || int(sp.File) >= p.fs.Len() {
		return
	}
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	prefix := line[:min(int(start.Col)-1, len(line))]
	marked := line[len(prefix):]
	if end.Line == start.Line {
		marked = line[len(prefix):min(int(end.Col)-1, len(line))]
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	width := runewidth.StringWidth(marked)
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)
	if p.opts.Color {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}

	fmt.Fprintf(p.w, "  | %s\n", line)
	fmt.Fprintf(p.w, "  | %s%s\n", pad, caret)
}
