package diag

import (
	"cmp"
	"slices"
)

const maxBagItems = 0xFFFF

// Bag collects diagnostics with absolute offsets for one file.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag holding at most limit items; 0 means the upper bound.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > maxBagItems {
		limit = maxBagItems
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll adds diagnostics until the limit is reached and returns how many fit.
func (b *Bag) AddAll(ds []Diagnostic) int {
	n := min(len(ds), b.limit-len(b.items))
	if n <= 0 {
		return 0
	}
	b.items = append(b.items, ds[:n]...)
	return n
}

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }
func (b *Bag) Len() int          { return len(b.items) }

// Items returns the read-only backing slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by offset, end, severity (errors first), code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Offset, y.Offset),
			cmp.Compare(x.End(), y.End()),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeats of the same code over the same range, keeping the
// first.
func (b *Bag) Dedup() {
	type key struct {
		code          Code
		offset, width int
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Offset, d.Width}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
