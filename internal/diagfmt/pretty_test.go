package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"verdant/internal/diag"
	"verdant/internal/source"
)

func unitFor(t *testing.T, path, content string, ds ...diag.Diagnostic) Unit {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(path, []byte(content)))
	bag := diag.NewBag(0)
	bag.AddAll(ds)
	bag.Sort()
	return Unit{Path: file.Path, File: file, Bag: bag}
}

func TestPrettyWithContext(t *testing.T) {
	u := unitFor(t, "src/a.vd", "let x = 1;\n\tfoo(a;\n",
		diag.NewError(diag.SynUnclosedDelimiter, 15, 1, "unclosed ( : expected )"))

	var buf bytes.Buffer
	if err := Pretty(&buf, u, PrettyOpts{Context: 1, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "a.vd:2:5: ERROR SYN2002: unclosed ( : expected )\n" +
		"1 | let x = 1;\n" +
		"2 | \tfoo(a;\n" +
		"  | \t   ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	u := unitFor(t, "a.vd", "x = \"open\n",
		diag.NewError(diag.LexUnterminatedString, 4, 5, "unterminated string"))
	var buf bytes.Buffer
	if err := Pretty(&buf, u, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "  |     ^~~~~\n") {
		t.Fatalf("bad underline:\n%s", buf.String())
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	u := unitFor(t, "a.vd", "名前(x;",
		diag.NewError(diag.SynUnclosedDelimiter, 6, 1, "unclosed ("))
	var buf bytes.Buffer
	if err := Pretty(&buf, u, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got := lines[len(lines)-1]; got != "  |     ^" {
		t.Fatalf("caret should sit under two double-width runes: %q", got)
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, 0, 0, "failed to load file"))
	var buf bytes.Buffer
	if err := Pretty(&buf, Unit{Path: "dir/gone.vd", Bag: bag}, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if buf.String() != "gone.vd: ERROR IO3001: failed to load file\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	u := unitFor(t, "a.vd", "(", diag.NewError(diag.SynUnclosedDelimiter, 0, 1, "unclosed ("))
	var plain, colored bytes.Buffer
	_ = Pretty(&plain, u, PrettyOpts{})
	_ = Pretty(&colored, u, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}

func TestPathModes(t *testing.T) {
	tests := []struct {
		name string
		mode PathMode
		base string
		want string
	}{
		{"basename", PathModeBasename, "", "test.vd"},
		{"relative", PathModeRelative, "/home/user/project", "src/test.vd"},
		{"absolute", PathModeAbsolute, "", "/home/user/project/src/test.vd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath("/home/user/project/src/test.vd", tt.mode, tt.base); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClipLine(t *testing.T) {
	if got := clipLine("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("clipLine = %q", got)
	}
	if got := clipLine("abc", 0); got != "abc" {
		t.Fatalf("zero width must not clip: %q", got)
	}
}
