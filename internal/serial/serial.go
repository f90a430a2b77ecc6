// Package serial reads and writes green trees as msgpack.
//
// Every node category has a writer and a matching reader. Reading goes back
// through a green.Factory, so canonical trivia, token singletons and cached
// nodes are shared with trees built in memory.
package serial

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"verdant/internal/green"
)

const magic = "VRDT"

// Version of the stream layout. Readers reject other versions.
const Version uint16 = 2

var (
	ErrBadTag    = errors.New("serial: malformed node")
	ErrVersion   = errors.New("serial: unsupported stream version")
	ErrValueType = errors.New("serial: unsupported literal value type")
)

type tag uint8

const (
	tagNil tag = iota
	tagTrivia
	tagToken
	tagList
	tagBranch
	tagDirective
	tagSeparatedList
)

// Token shapes.
const (
	shapeWellKnown uint8 = iota
	shapeMissing
	shapeIdentifier
	shapeBad
	shapeLiteral
)

// Literal value types.
const (
	valNil uint8 = iota
	valBool
	valInt
	valInt64
	valUint64
	valFloat64
	valString
	valRune
)

// Write encodes n to w.
func Write(w io.Writer, n green.Node) error {
	return Encode(msgpack.NewEncoder(w), n)
}

// Read decodes one tree from r, building it with f.
func Read(r io.Reader, f green.Factory) (green.Node, error) {
	return Decode(msgpack.NewDecoder(r), f)
}

func Marshal(n green.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte, f green.Factory) (green.Node, error) {
	return Read(bytes.NewReader(data), f)
}

// Encode writes n to enc as one msgpack array: magic, version, root.
func Encode(enc *msgpack.Encoder, n green.Node) error {
	w := &writer{enc: enc}
	if err := enc.EncodeArrayLen(3); err != nil {
		return fmt.Errorf("serial: encode: %w", err)
	}
	w.str(magic)
	w.uint(uint64(Version))
	w.node(n)
	if w.err != nil {
		return fmt.Errorf("serial: encode: %w", w.err)
	}
	return nil
}

// Decode reads a stream written by Encode.
func Decode(dec *msgpack.Decoder, f green.Factory) (green.Node, error) {
	if f.Cache() == nil {
		f = green.Default
	}
	r := &reader{dec: dec, f: f, annotations: make(map[uint64]green.Annotation)}
	fields, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("serial: decode: %w", err)
	}
	if fields != 3 {
		return nil, fmt.Errorf("%w: header of %d fields", ErrBadTag, fields)
	}
	if m := r.str(); r.err == nil && m != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadTag, m)
	}
	if v := r.uint(); r.err == nil && v != uint64(Version) {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	n := r.node()
	if r.err != nil {
		return nil, fmt.Errorf("serial: decode: %w", r.err)
	}
	return n, nil
}

// Tree lets a green tree sit inside a struct encoded with msgpack.
type Tree struct {
	Root green.Node
	// Factory used when decoding; the zero value means green.Default.
	Factory green.Factory `msgpack:"-"`
}

func (t Tree) EncodeMsgpack(enc *msgpack.Encoder) error {
	return Encode(enc, t.Root)
}

func (t *Tree) DecodeMsgpack(dec *msgpack.Decoder) error {
	root, err := Decode(dec, t.Factory)
	if err != nil {
		return err
	}
	t.Root = root
	return nil
}
