package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"verdant/internal/diag"
	"verdant/internal/source"
)

// Unit pairs a file with its diagnostics. File is nil when the file could
// not be read; Path is then printed without a position.
type Unit struct {
	Path string
	File *source.File
	Bag  *diag.Bag
}

type palette struct {
	path, note, gutter, caret *color.Color
	sev                       map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		note:   color.New(color.FgWhite),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
	}
	all := []*color.Color{p.path, p.note, p.gutter, p.caret}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по u.Bag.Items() (ожидается Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста и подчёркивание ^~~~ под диапазоном.
func Pretty(w io.Writer, u Unit, opts PrettyOpts) error {
	if u.Bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	path := formatPath(u.Path, opts.PathMode, opts.BaseDir)
	for _, d := range u.Bag.Items() {
		if err := prettyOne(w, p, path, u.File, d, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, path string, file *source.File, d diag.Diagnostic, opts PrettyOpts) error {
	sev := p.sev[d.Severity]
	if sev == nil {
		sev = p.note
	}
	if file == nil {
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n", p.path.Sprint(path), sev.Sprint(d.Severity), d.Code.ID(), d.Message)
		return err
	}

	start, end := clampRange(file, d.Offset, d.End())
	pos := file.LineCol(start)
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, pos.Line, pos.Col), sev.Sprint(d.Severity), d.Code.ID(), d.Message); err != nil {
		return err
	}

	first := pos.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	gutter := len(strconv.FormatUint(uint64(pos.Line), 10))

	var b strings.Builder
	for line := first; line <= pos.Line; line++ {
		text := clipLine(file.GetLine(line), opts.Width)
		fmt.Fprintf(&b, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, line), text)
	}

	lineText := file.GetLine(pos.Line)
	col := int(pos.Col) - 1
	col = min(col, len(lineText))
	// подчёркивание не выходит за конец строки
	spanEnd := min(col+int(end-start), len(lineText))
	marker := "^" + strings.Repeat("~", max(runewidth.StringWidth(lineText[col:spanEnd])-1, 0))
	fmt.Fprintf(&b, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutter, ""), indentFor(lineText[:col]), p.caret.Sprint(marker))

	_, err := io.WriteString(w, b.String())
	return err
}

// clampRange keeps a diagnostic range inside the file.
func clampRange(file *source.File, offset, end int) (uint32, uint32) {
	n := len(file.Content)
	offset = min(max(offset, 0), n)
	end = min(max(end, offset), n)
	return uint32(offset), uint32(end) // #nosec G115 -- bounded by the file size
}

// indentFor returns blank space as wide as prefix, keeping its tabs so the
// caret lines up under tab-indented code.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func clipLine(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
