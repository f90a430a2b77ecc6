package kind

// Kind identifies the syntactic category of a green node, token or trivia.
//
// The ordering of the constants matters: range checks (IsToken, IsTrivia,
// IsWellKnownText, ...) are implemented as comparisons against the first/last
// member of each group.
type Kind uint16

const (
	// None is the zero kind; no node ever carries it.
	None Kind = iota
	// List is the kind of every list node regardless of arity.
	List

	// Trivia.

	WhitespaceTrivia
	EndOfLineTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia
	DocCommentTrivia
	DisabledTextTrivia
	PreprocessingMessageTrivia
	ConflictMarkerTrivia

	// Structured trivia: trivia that owns a syntax subtree.

	SkippedTokensTrivia
	DefineDirectiveTrivia
	UndefDirectiveTrivia
	IfDirectiveTrivia
	ElifDirectiveTrivia
	ElseDirectiveTrivia
	EndIfDirectiveTrivia
	RegionDirectiveTrivia
	EndRegionDirectiveTrivia
	BadDirectiveTrivia

	// Tokens with well-known text: punctuation.

	PlusToken              // +
	MinusToken             // -
	AsteriskToken          // *
	SlashToken             // /
	PercentToken           // %
	EqualsToken            // =
	EqualsEqualsToken      // ==
	ExclamationToken       // !
	ExclamationEqualsToken // !=
	LessThanToken          // <
	LessThanEqualsToken    // <=
	GreaterThanToken       // >
	GreaterThanEqualsToken // >=
	AmpersandToken         // &
	AmpersandAmpersandToken
	BarToken    // |
	BarBarToken // ||
	CaretToken  // ^
	TildeToken  // ~
	QuestionToken
	QuestionQuestionToken // ??
	ColonToken            // :
	ColonColonToken       // ::
	SemicolonToken        // ;
	CommaToken            // ,
	DotToken              // .
	DotDotToken           // ..
	MinusGreaterThanToken // ->
	EqualsGreaterThanToken
	PlusPlusToken     // ++
	MinusMinusToken   // --
	PlusEqualsToken   // +=
	MinusEqualsToken  // -=
	OpenParenToken    // (
	CloseParenToken   // )
	OpenBraceToken    // {
	CloseBraceToken   // }
	OpenBracketToken  // [
	CloseBracketToken // ]
	AtToken           // @
	HashToken         // #

	// Tokens with well-known text: reserved keywords.

	TrueKeyword
	FalseKeyword
	NullKeyword
	IfKeyword
	ElseKeyword
	ForKeyword
	WhileKeyword
	ReturnKeyword
	BreakKeyword
	ContinueKeyword
	LetKeyword
	FnKeyword
	TypeKeyword
	ImportKeyword
	NewKeyword

	// Tokens with well-known text: preprocessor-only keywords.

	DefineKeyword
	UndefKeyword
	ElifKeyword
	EndIfKeyword
	RegionKeyword
	EndRegionKeyword

	// Tokens with well-known text: contextual keywords. The lexer produces
	// identifiers carrying these as their contextual kind.

	AsyncKeyword
	AwaitKeyword
	FieldKeyword
	FromKeyword
	WhereKeyword
	SelectKeyword
	GetKeyword
	SetKeyword
	InitKeyword

	// Tokens with well-known (empty) text.

	EndOfDirectiveToken
	EndOfFileToken

	// Tokens whose text comes from the source.

	IdentifierToken
	NumericLiteralToken
	StringLiteralToken
	CharacterLiteralToken
	BadToken

	// Structural nodes. The core does not define a grammar; these are the
	// shapes produced by the delimiter parser and used by tests.

	CompilationUnit
	Block
	ParenthesizedGroup
	BracketedGroup
	Statement
	Sequence
	IdentifierName
	LiteralExpression
	BinaryExpression
	PrefixUnaryExpression
	ArgumentList
	InvocationExpression

	count
)

const (
	firstTrivia           = WhitespaceTrivia
	lastTrivia            = BadDirectiveTrivia
	firstStructured       = SkippedTokensTrivia
	lastStructured        = BadDirectiveTrivia
	firstDirective        = DefineDirectiveTrivia
	lastDirective         = BadDirectiveTrivia
	firstToken            = PlusToken
	lastToken             = BadToken
	firstWellKnownText    = PlusToken
	lastWellKnownText     = EndOfFileToken
	firstPunctuation      = PlusToken
	lastPunctuation       = HashToken
	firstReservedKeyword  = TrueKeyword
	lastReservedKeyword   = NewKeyword
	firstPreprocessorWord = DefineKeyword
	lastPreprocessorWord  = EndRegionKeyword
	firstContextual       = AsyncKeyword
	lastContextual        = InitKeyword
)

// Count is the number of defined kinds; it sizes per-kind lookup tables.
const Count = int(count)

// FirstWellKnownText and LastWellKnownText bound the kinds whose spelling is
// fixed and derivable from the kind alone.
const (
	FirstWellKnownText = firstWellKnownText
	LastWellKnownText  = lastWellKnownText
)

// IsToken reports whether k is a token kind.
func (k Kind) IsToken() bool { return k >= firstToken && k <= lastToken }

// IsTrivia reports whether k is a trivia kind (structured or not).
func (k Kind) IsTrivia() bool { return k >= firstTrivia && k <= lastTrivia }

func (k Kind) IsComment() bool {
	return k == SingleLineCommentTrivia || k == MultiLineCommentTrivia || k == DocCommentTrivia
}

// IsStructuredTrivia reports whether trivia of kind k owns a syntax subtree.
func (k Kind) IsStructuredTrivia() bool { return k >= firstStructured && k <= lastStructured }

// IsDirective reports whether k is a preprocessor directive trivia kind.
func (k Kind) IsDirective() bool { return k >= firstDirective && k <= lastDirective }

// IsWellKnownText reports whether tokens of kind k have a fixed spelling.
func (k Kind) IsWellKnownText() bool { return k >= firstWellKnownText && k <= lastWellKnownText }

// IsPunctuation reports whether k is a punctuation token.
func (k Kind) IsPunctuation() bool { return k >= firstPunctuation && k <= lastPunctuation }

// IsReservedKeyword reports whether k is a reserved keyword.
func (k Kind) IsReservedKeyword() bool {
	return k >= firstReservedKeyword && k <= lastReservedKeyword
}

// IsPreprocessorKeyword reports whether k is only a keyword inside a directive.
// 'if' and 'else' are shared with the reserved set.
func (k Kind) IsPreprocessorKeyword() bool {
	return (k >= firstPreprocessorWord && k <= lastPreprocessorWord) || k == IfKeyword || k == ElseKeyword
}

// IsContextualKeyword reports whether k is a contextual keyword.
func (k Kind) IsContextualKeyword() bool { return k >= firstContextual && k <= lastContextual }

// IsKeyword reports whether k is any keyword.
func (k Kind) IsKeyword() bool {
	return k.IsReservedKeyword() || k.IsPreprocessorKeyword() || k.IsContextualKeyword()
}

// IsLiteralKeyword reports whether k is one of true/false/null.
func (k Kind) IsLiteralKeyword() bool {
	return k == TrueKeyword || k == FalseKeyword || k == NullKeyword
}

// IsLiteralToken reports whether k carries a source-spelled value.
func (k Kind) IsLiteralToken() bool {
	switch k {
	case NumericLiteralToken, StringLiteralToken, CharacterLiteralToken:
		return true
	default:
		return false
	}
}

// IsNode reports whether k is a structural (non-terminal) node kind.
func (k Kind) IsNode() bool { return k == List || k >= CompilationUnit && k < count }

// Valid reports whether k is a defined kind other than None.
func (k Kind) Valid() bool { return k > None && k < count }
