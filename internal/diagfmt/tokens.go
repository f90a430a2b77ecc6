package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"verdant/internal/green"
	"verdant/internal/kind"
	"verdant/internal/source"
)

// TokenOutput is one token of the JSON listing. Span excludes trivia.
type TokenOutput struct {
	Kind       string   `json:"kind"`
	Contextual string   `json:"contextual,omitempty"`
	Text       string   `json:"text,omitempty"`
	Value      string   `json:"value,omitempty"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Missing    bool     `json:"missing,omitempty"`
	Leading    []string `json:"leading,omitempty"`
	Trailing   []string `json:"trailing,omitempty"`
}

func triviaKinds(n green.Node) []string {
	var out []string
	for _, piece := range green.Children(n) {
		out = append(out, piece.Kind().String())
	}
	return out
}

func tokenOutputs(tokens []green.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	pos := 0
	for _, tok := range tokens {
		start := pos + green.LeadingTriviaWidth(tok)
		t := TokenOutput{
			Kind:     tok.Kind().String(),
			Text:     tok.Text(),
			Start:    start,
			End:      start + len(tok.Text()),
			Missing:  tok.IsMissing(),
			Leading:  triviaKinds(tok.LeadingTrivia()),
			Trailing: triviaKinds(tok.TrailingTrivia()),
		}
		if ck := tok.ContextualKind(); ck != tok.Kind() {
			t.Contextual = ck.String()
		}
		if v := tok.ValueText(); v != tok.Text() {
			t.Value = v
		}
		out = append(out, t)
		pos += tok.FullWidth()
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []green.Token, file *source.File) error {
	for i, tok := range tokenOutputs(tokens) {
		fmt.Fprintf(w, "%3d: %-24s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Contextual != "" {
			fmt.Fprintf(w, " [%s]", tok.Contextual)
		}
		if file != nil {
			start := file.LineCol(uint32(tok.Start)) // #nosec G115 -- offsets come from the file
			end := file.LineCol(uint32(tok.End))     // #nosec G115
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at %d-%d", tok.Start, tok.End)
		}
		if len(tok.Leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(tok.Leading, ", "))
		}
		if len(tok.Trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", strings.Join(tok.Trailing, ", "))
		}
		if tok.Missing {
			fmt.Fprint(w, " missing")
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == kind.EndOfFileToken.String() {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []green.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}
