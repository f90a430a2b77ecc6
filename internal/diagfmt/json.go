package diagfmt

import (
	"encoding/json"
	"io"

	"verdant/internal/diag"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(u Unit, d diag.Diagnostic, opts JSONOpts) LocationJSON {
	loc := LocationJSON{File: formatPath(u.Path, opts.PathMode, opts.BaseDir)}
	if u.File == nil {
		return loc
	}
	loc.StartByte, loc.EndByte = clampRange(u.File, d.Offset, d.End())
	if opts.IncludePositions {
		start, end := u.File.LineCol(loc.StartByte), u.File.LineCol(loc.EndByte)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Units are walked in order; opts.Max caps the total.
func BuildDiagnosticsOutput(units []Unit, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0)
	for _, u := range units {
		if u.Bag == nil {
			continue
		}
		for _, d := range u.Bag.Items() {
			if opts.Max > 0 && len(diagnostics) >= opts.Max {
				break
			}
			diagnostics = append(diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Title:    d.Code.Title(),
				Message:  d.Message,
				Location: makeLocation(u, d, opts),
			})
		}
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, units []Unit, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(units, opts))
}
