package green

import "sync/atomic"

var annotationSeq atomic.Uint64

// Annotation is an opaque marker a tool attaches to a node to find it again
// after rewrites. Two annotations are equal only if they come from the same
// NewAnnotation call, even when Kind and Data match.
type Annotation struct {
	Kind string
	Data string
	id   uint64
}

// NewAnnotation returns a fresh annotation with a process-unique identity.
func NewAnnotation(kind, data string) Annotation {
	return Annotation{Kind: kind, Data: data, id: annotationSeq.Add(1)}
}

// ID is the identity of a. It is unique within the process only.
func (a Annotation) ID() uint64 { return a.id }

// ElasticAnnotation marks trivia that a formatter may replace freely.
var ElasticAnnotation = NewAnnotation("elastic", "")

func hasAnnotation(as []Annotation, a Annotation) bool {
	for _, x := range as {
		if x == a {
			return true
		}
	}
	return false
}

func hasAnnotationKind(as []Annotation, kind string) bool {
	for _, x := range as {
		if x.Kind == kind {
			return true
		}
	}
	return false
}
