package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"verdant/internal/red"
	"verdant/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treePainter struct {
	node, token, trivia, missing, span *color.Color
	file                               *source.File
	opts                               TreeOpts
}

func newTreePainter(file *source.File, opts TreeOpts) *treePainter {
	p := &treePainter{
		node:    color.New(color.FgCyan, color.Bold),
		token:   color.New(color.FgGreen),
		trivia:  color.New(color.FgHiBlack),
		missing: color.New(color.FgRed),
		span:    color.New(color.FgWhite),
		file:    file,
		opts:    opts,
	}
	for _, c := range []*color.Color{p.node, p.token, p.trivia, p.missing, p.span} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	if p.opts.Structure {
		p.opts.Trivia = true
	}
	if p.opts.Width <= 0 {
		p.opts.Width = 32
	}
	return p
}

// FormatTree prints the tree as an indented outline, one node or token per
// line with its span. Lists are shown as their own entries.
func FormatTree(w io.Writer, tree *red.Tree, file *source.File, opts TreeOpts) error {
	p := newTreePainter(file, opts)
	root := p.buildNode(tree.Root())
	var b strings.Builder
	b.WriteString(root.label)
	b.WriteByte('\n')
	renderChildren(&b, root.children, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func renderChildren(b *strings.Builder, children []*treeNode, prefix string) {
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(c.label)
		b.WriteByte('\n')
		renderChildren(b, c.children, prefix+next)
	}
}

func (p *treePainter) formatSpan(span source.Span) string {
	if p.file != nil {
		start, end := p.file.LineCol(span.Start), p.file.LineCol(span.End)
		return p.span.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return p.span.Sprintf("[%d..%d)", span.Start, span.End)
}

func (p *treePainter) quote(text string) string {
	q := strconv.Quote(text)
	if runewidth.StringWidth(q) > p.opts.Width {
		q = runewidth.Truncate(q, p.opts.Width, `…"`)
	}
	return q
}

func (p *treePainter) buildNode(n *red.Node) *treeNode {
	label := p.node.Sprint(n.Kind().String())
	if n.IsSeparatedList() {
		label += " (separated)"
	}
	if n.IsMissing() {
		label += " " + p.missing.Sprint("missing")
	}
	tn := &treeNode{label: label + " " + p.formatSpan(n.FullSpan())}
	for i := range n.SlotCount() {
		c := n.Child(i)
		switch {
		case c.IsZero():
		case c.IsToken():
			tn.children = append(tn.children, p.buildToken(c.Token))
		default:
			tn.children = append(tn.children, p.buildNode(c.Node))
		}
	}
	return tn
}

func (p *treePainter) buildToken(t red.Token) *treeNode {
	label := p.token.Sprint(t.Kind().String())
	if ck := t.ContextualKind(); ck != t.Kind() {
		label += fmt.Sprintf(" [%s]", ck)
	}
	if t.Text() != "" {
		label += " " + p.quote(t.Text())
	}
	if t.IsMissing() {
		label += " " + p.missing.Sprint("missing")
	}
	tn := &treeNode{label: label + " " + p.formatSpan(t.Span())}
	if !p.opts.Trivia {
		return tn
	}
	for _, tr := range t.LeadingTrivia() {
		tn.children = append(tn.children, p.buildTrivia("leading", tr))
	}
	for _, tr := range t.TrailingTrivia() {
		tn.children = append(tn.children, p.buildTrivia("trailing", tr))
	}
	return tn
}

func (p *treePainter) buildTrivia(side string, tr red.Trivia) *treeNode {
	label := p.trivia.Sprintf("%s %s", side, tr.Kind()) + " " + p.quote(tr.Text()) + " " + p.formatSpan(tr.Span())
	tn := &treeNode{label: label}
	if p.opts.Structure && tr.HasStructure() {
		tn.children = append(tn.children, p.buildNode(tr.Structure()))
	}
	return tn
}
