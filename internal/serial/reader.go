package serial

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"verdant/internal/diag"
	"verdant/internal/green"
	"verdant/internal/kind"
)

type reader struct {
	dec *msgpack.Decoder
	f   green.Factory
	err error
	// annotations maps written identities to the ones handed out by this
	// reader.
	annotations map[uint64]green.Annotation
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrBadTag}, args...)...)
	}
}

func (r *reader) uint() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeUint64()
	r.err = err
	return v
}

func (r *reader) int() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeInt64()
	r.err = err
	return v
}

func (r *reader) bool() bool {
	if r.err != nil {
		return false
	}
	v, err := r.dec.DecodeBool()
	r.err = err
	return v
}

func (r *reader) float() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeFloat64()
	r.err = err
	return v
}

func (r *reader) str() string {
	if r.err != nil {
		return ""
	}
	v, err := r.dec.DecodeString()
	r.err = err
	return v
}

func (r *reader) kind() kind.Kind {
	v := r.uint()
	u, err := safecast.Conv[uint16](v)
	k := kind.Kind(u)
	if err != nil || (r.err == nil && !k.Valid()) {
		r.fail("kind %d", v)
		return kind.None
	}
	return k
}

func (r *reader) context() green.Context {
	b := r.uint()
	return green.Context{
		IsInAsync:               b&1 != 0,
		IsInQuery:               b&2 != 0,
		IsInFieldKeywordContext: b&4 != 0,
	}
}

func (r *reader) node() green.Node {
	t := tag(r.uint())
	if r.err != nil {
		return nil
	}
	var n green.Node
	switch t {
	case tagNil:
		return nil
	case tagTrivia:
		return r.trivia()
	case tagToken:
		n = r.token()
	case tagList, tagSeparatedList:
		ctx := r.context()
		slots := r.slots()
		for _, s := range slots {
			if s == nil {
				r.fail("nil list element")
			}
		}
		if r.err != nil {
			return nil
		}
		if len(slots) < 2 {
			r.fail("list of %d elements", len(slots))
			return nil
		}
		f := r.f.WithContext(ctx)
		if t == tagList {
			n = f.List(slots...)
			break
		}
		elems := make([]green.Node, 0, (len(slots)+1)/2)
		seps := make([]green.Node, 0, len(slots)/2)
		for i, s := range slots {
			if i%2 == 0 {
				elems = append(elems, s)
			} else {
				seps = append(seps, s)
			}
		}
		n = f.SeparatedList(elems, seps)
	case tagBranch:
		k := r.kind()
		ctx := r.context()
		slots := r.slots()
		if r.err != nil {
			return nil
		}
		if (!k.IsNode() && !k.IsStructuredTrivia()) || k == kind.List || len(slots) > green.MaxBranchSlots {
			r.fail("branch %v with %d slots", k, len(slots))
			return nil
		}
		n = r.f.WithContext(ctx).Node(k, slots...)
	case tagDirective:
		k := r.kind()
		ctx := r.context()
		state := r.uint()
		slots := r.slots()
		if r.err != nil {
			return nil
		}
		if !k.IsDirective() || len(slots) > green.MaxBranchSlots {
			r.fail("directive %v", k)
			return nil
		}
		n = r.f.WithContext(ctx).Directive(k, green.DirectiveState(state), slots...)
	default:
		r.fail("tag %d", t)
		return nil
	}
	ds, as := r.payload()
	if r.err != nil || n == nil {
		return nil
	}
	return attach(n, ds, as)
}

func attach(n green.Node, ds []diag.Diagnostic, as []green.Annotation) green.Node {
	if len(ds) > 0 {
		n = n.WithDiagnostics(ds)
	}
	if len(as) > 0 {
		n = n.WithAnnotations(as)
	}
	return n
}

func (r *reader) slots() []green.Node {
	count := r.uint()
	if r.err != nil {
		return nil
	}
	if count > 1<<24 {
		r.fail("%d slots", count)
		return nil
	}
	out := make([]green.Node, 0, count)
	for range count {
		out = append(out, r.node())
		if r.err != nil {
			return nil
		}
	}
	return out
}

// trivia restores the canonical values where the shape matches one.
func (r *reader) trivia() green.Node {
	k := r.kind()
	text := r.str()
	ds, as := r.payload()
	if r.err != nil {
		return nil
	}
	if !k.IsTrivia() || k.IsStructuredTrivia() {
		r.fail("trivia kind %v", k)
		return nil
	}
	if len(ds) == 0 && len(as) == 1 && as[0] == green.ElasticAnnotation && k == kind.WhitespaceTrivia {
		switch text {
		case "":
			return green.ElasticZeroSpace
		case " ":
			return green.ElasticSpace
		}
	}
	var t *green.Trivia
	switch k {
	case kind.WhitespaceTrivia:
		t = green.Whitespace(text)
	case kind.EndOfLineTrivia:
		t = green.EndOfLine(text)
	default:
		t = green.NewTrivia(k, text)
	}
	return attach(t, ds, as)
}

func (r *reader) token() green.Node {
	k := r.kind()
	leading := r.node()
	trailing := r.node()
	shape := uint8(r.uint())
	if r.err != nil {
		return nil
	}
	if !k.IsToken() {
		r.fail("token kind %v", k)
		return nil
	}
	switch shape {
	case shapeMissing:
		return green.MissingToken(leading, k, trailing)
	case shapeWellKnown:
		if !k.IsWellKnownText() {
			r.fail("%v has no fixed text", k)
			return nil
		}
		return green.TokenWithTrivia(leading, k, trailing)
	case shapeIdentifier:
		ck := r.kind()
		text := r.str()
		valueText := r.str()
		return green.ContextualIdentifier(ck, leading, text, valueText, trailing)
	case shapeBad:
		return green.BadToken(leading, r.str(), trailing)
	case shapeLiteral:
		text := r.str()
		return r.literal(leading, k, text, trailing)
	}
	r.fail("token shape %d", shape)
	return nil
}

func (r *reader) literal(leading green.Node, k kind.Kind, text string, trailing green.Node) green.Node {
	switch vt := uint8(r.uint()); vt {
	case valNil:
		return green.Literal[any](leading, k, text, nil, trailing)
	case valBool:
		return green.Literal(leading, k, text, r.bool(), trailing)
	case valInt:
		return green.Literal(leading, k, text, int(r.int()), trailing)
	case valInt64:
		return green.Literal(leading, k, text, r.int(), trailing)
	case valUint64:
		return green.Literal(leading, k, text, r.uint(), trailing)
	case valFloat64:
		return green.Literal(leading, k, text, r.float(), trailing)
	case valString:
		return green.Literal(leading, k, text, r.str(), trailing)
	case valRune:
		return green.Literal(leading, k, text, rune(r.int()), trailing)
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: tag %d", ErrValueType, vt)
		}
		return nil
	}
}

func (r *reader) payload() ([]diag.Diagnostic, []green.Annotation) {
	var ds []diag.Diagnostic
	for range r.uint() {
		d := diag.Diagnostic{
			Severity: diag.Severity(r.uint()),
			Code:     diag.Code(r.uint()),
			Offset:   int(r.int()),
			Width:    int(r.int()),
			Message:  r.str(),
		}
		if r.err != nil {
			return nil, nil
		}
		ds = append(ds, d)
	}
	var as []green.Annotation
	for range r.uint() {
		elastic := r.bool()
		id := r.uint()
		k, data := r.str(), r.str()
		if r.err != nil {
			return nil, nil
		}
		if elastic {
			as = append(as, green.ElasticAnnotation)
			continue
		}
		a, ok := r.annotations[id]
		if !ok {
			a = green.NewAnnotation(k, data)
			r.annotations[id] = a
		}
		as = append(as, a)
	}
	return ds, as
}
