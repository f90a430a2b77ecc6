package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"verdant/internal/lexer"
	"verdant/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.vd", []byte("a + b")))
	tokens := lexer.Tokenize(file, lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, tokens, file); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(pretty.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got:\n%s", pretty.String())
	}
	if !strings.Contains(lines[1], "PlusToken") || !strings.Contains(lines[1], `"+" at 1:3-1:4`) {
		t.Fatalf("unexpected line %q", lines[1])
	}
	if !strings.Contains(lines[3], "EndOfFileToken") {
		t.Fatalf("last line should be end of file: %q", lines[3])
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, tokens); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	wantStarts := []int{0, 2, 4, 5}
	for i, tok := range out {
		if tok.Start != wantStarts[i] {
			t.Fatalf("token %d starts at %d, want %d", i, tok.Start, wantStarts[i])
		}
	}
	if out[2].Text != "b" || out[2].End != 5 {
		t.Fatalf("unexpected third token %+v", out[2])
	}
}
