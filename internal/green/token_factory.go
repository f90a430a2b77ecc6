package green

import (
	"fmt"

	"verdant/internal/kind"
)

// Per-kind singletons for well-known-text tokens, one table per common trivia
// shape. Built once in init and read-only afterwards.
var (
	tokensNoTrivia      [kind.Count]Token
	tokensElastic       [kind.Count]Token
	tokensTrailingSpace [kind.Count]Token
	tokensTrailingCRLF  [kind.Count]Token
)

func init() {
	for k := kind.FirstWellKnownText; k <= kind.LastWellKnownText; k++ {
		tokensNoTrivia[k] = newWellKnown(k)
		tokensElastic[k] = newWellKnownWithTrivia(k, ElasticZeroSpace, ElasticZeroSpace, nil, nil)
		tokensTrailingSpace[k] = newWellKnownWithTrivia(k, nil, Space, nil, nil)
		tokensTrailingCRLF[k] = newWellKnownWithTrivia(k, nil, CarriageReturnLineFeed, nil, nil)
	}
}

func checkTokenKind(k kind.Kind) {
	if !k.IsToken() {
		panic(fmt.Sprintf("green: this factory only creates tokens (got %v)", k))
	}
}

// NewToken returns the token of kind k with no trivia. For kinds whose
// spelling is not fixed it returns a missing token, since the text cannot be
// made up.
func NewToken(k kind.Kind) Token {
	return TokenWithTrivia(nil, k, nil)
}

// TokenWithTrivia returns a shared singleton when the trivia matches one of
// the canonical shapes (none, elastic, one trailing space, one trailing CRLF)
// and a fresh token otherwise.
func TokenWithTrivia(leading Node, k kind.Kind, trailing Node) Token {
	checkTokenKind(k)
	if !k.IsWellKnownText() {
		return newMissing(k, leading, trailing, nil, nil)
	}
	switch {
	case leading == nil && trailing == nil:
		return tokensNoTrivia[k]
	case leading == nil && trailing == Node(Space):
		return tokensTrailingSpace[k]
	case leading == nil && trailing == Node(CarriageReturnLineFeed):
		return tokensTrailingCRLF[k]
	case leading == Node(ElasticZeroSpace) && trailing == Node(ElasticZeroSpace):
		return tokensElastic[k]
	}
	return newWellKnownWithTrivia(k, leading, trailing, nil, nil)
}

// MissingToken synthesizes a zero-width placeholder for a required token.
func MissingToken(leading Node, k kind.Kind, trailing Node) Token {
	checkTokenKind(k)
	return newMissing(k, leading, trailing, nil, nil)
}

func Identifier(text string) Token {
	return newIdentifier(kind.IdentifierToken, text, nil, nil)
}

// IdentifierWithTrivia picks the plain, trailing-only or full trivia variant.
func IdentifierWithTrivia(leading Node, text string, trailing Node) Token {
	switch {
	case leading == nil && trailing == nil:
		return newIdentifier(kind.IdentifierToken, text, nil, nil)
	case leading == nil:
		return newIdentifierWithTrailing(kind.IdentifierToken, text, trailing, nil, nil)
	}
	return newIdentifierWithTrivia(kind.IdentifierToken, text, leading, trailing, nil, nil)
}

// ContextualIdentifier builds an identifier with a contextual kind and a value
// text. When neither differs from a plain identifier the plain path is used.
func ContextualIdentifier(ck kind.Kind, leading Node, text, valueText string, trailing Node) Token {
	if ck == kind.IdentifierToken && valueText == text {
		return IdentifierWithTrivia(leading, text, trailing)
	}
	if leading == nil && trailing == nil {
		return newContextual(ck, text, valueText, nil, nil)
	}
	return newContextualWithTrivia(ck, text, valueText, leading, trailing, nil, nil)
}

// Literal builds a token carrying a typed value distinct from its text.
func Literal[T any](leading Node, k kind.Kind, text string, value T, trailing Node) Token {
	checkTokenKind(k)
	if leading == nil && trailing == nil {
		return newValueToken(k, text, value, nil, nil)
	}
	return newValueTokenWithTrivia(k, text, value, leading, trailing, nil, nil)
}

// BadToken wraps text the lexer could not classify.
func BadToken(leading Node, text string, trailing Node) Token {
	if leading == nil && trailing == nil {
		return newIdentifier(kind.BadToken, text, nil, nil)
	}
	return newIdentifierWithTrivia(kind.BadToken, text, leading, trailing, nil, nil)
}

// TypedValue returns the value of a literal token built by Literal[T].
func TypedValue[T any](t Token) (T, bool) {
	switch v := t.(type) {
	case *valueToken[T]:
		return v.value, true
	case *valueTokenWithTrivia[T]:
		return v.value, true
	}
	var zero T
	return zero, false
}
