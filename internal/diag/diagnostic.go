package diag

import "fmt"

// Diagnostic is a finding attached to a syntax node. Offset is relative to the
// start of the carrying node's full span, so the same diagnostic stays valid when
// the node is shared between trees at different positions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Offset   int
	Width    int
}

func New(sev Severity, code Code, offset, width int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Offset:   offset,
		Width:    width,
	}
}

func NewError(code Code, offset, width int, msg string) Diagnostic {
	return New(SevError, code, offset, width, msg)
}

func NewWarning(code Code, offset, width int, msg string) Diagnostic {
	return New(SevWarning, code, offset, width, msg)
}

// Shift returns a copy of d with Offset moved by delta.
func (d Diagnostic) Shift(delta int) Diagnostic {
	d.Offset += delta
	return d
}

// End is the exclusive end offset.
func (d Diagnostic) End() int { return d.Offset + d.Width }

// SameModuloPosition reports whether a and b describe the same finding,
// ignoring where it is.
func (d Diagnostic) SameModuloPosition(other Diagnostic) bool {
	return d.Severity == other.Severity && d.Code == other.Code && d.Message == other.Message && d.Width == other.Width
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %d+%d: %s", d.Severity, d.Code.ID(), d.Offset, d.Width, d.Message)
}

// EqualModuloPosition compares two diagnostic slices element-wise with
// SameModuloPosition. nil and empty are equal.
func EqualModuloPosition(a, b []Diagnostic) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameModuloPosition(b[i]) {
			return false
		}
	}
	return true
}
