package kind

import "strconv"

type info struct {
	name string
	text string
}

var infos = [count]info{
	None: {"None", ""},
	List: {"List", ""},

	WhitespaceTrivia:           {"WhitespaceTrivia", ""},
	EndOfLineTrivia:            {"EndOfLineTrivia", ""},
	SingleLineCommentTrivia:    {"SingleLineCommentTrivia", ""},
	MultiLineCommentTrivia:     {"MultiLineCommentTrivia", ""},
	DocCommentTrivia:           {"DocCommentTrivia", ""},
	DisabledTextTrivia:         {"DisabledTextTrivia", ""},
	PreprocessingMessageTrivia: {"PreprocessingMessageTrivia", ""},
	ConflictMarkerTrivia:       {"ConflictMarkerTrivia", ""},

	SkippedTokensTrivia:      {"SkippedTokensTrivia", ""},
	DefineDirectiveTrivia:    {"DefineDirectiveTrivia", ""},
	UndefDirectiveTrivia:     {"UndefDirectiveTrivia", ""},
	IfDirectiveTrivia:        {"IfDirectiveTrivia", ""},
	ElifDirectiveTrivia:      {"ElifDirectiveTrivia", ""},
	ElseDirectiveTrivia:      {"ElseDirectiveTrivia", ""},
	EndIfDirectiveTrivia:     {"EndIfDirectiveTrivia", ""},
	RegionDirectiveTrivia:    {"RegionDirectiveTrivia", ""},
	EndRegionDirectiveTrivia: {"EndRegionDirectiveTrivia", ""},
	BadDirectiveTrivia:       {"BadDirectiveTrivia", ""},

	PlusToken:               {"PlusToken", "+"},
	MinusToken:              {"MinusToken", "-"},
	AsteriskToken:           {"AsteriskToken", "*"},
	SlashToken:              {"SlashToken", "/"},
	PercentToken:            {"PercentToken", "%"},
	EqualsToken:             {"EqualsToken", "="},
	EqualsEqualsToken:       {"EqualsEqualsToken", "=="},
	ExclamationToken:        {"ExclamationToken", "!"},
	ExclamationEqualsToken:  {"ExclamationEqualsToken", "!="},
	LessThanToken:           {"LessThanToken", "<"},
	LessThanEqualsToken:     {"LessThanEqualsToken", "<="},
	GreaterThanToken:        {"GreaterThanToken", ">"},
	GreaterThanEqualsToken:  {"GreaterThanEqualsToken", ">="},
	AmpersandToken:          {"AmpersandToken", "&"},
	AmpersandAmpersandToken: {"AmpersandAmpersandToken", "&&"},
	BarToken:                {"BarToken", "|"},
	BarBarToken:             {"BarBarToken", "||"},
	CaretToken:              {"CaretToken", "^"},
	TildeToken:              {"TildeToken", "~"},
	QuestionToken:           {"QuestionToken", "?"},
	QuestionQuestionToken:   {"QuestionQuestionToken", "??"},
	ColonToken:              {"ColonToken", ":"},
	ColonColonToken:         {"ColonColonToken", "::"},
	SemicolonToken:          {"SemicolonToken", ";"},
	CommaToken:              {"CommaToken", ","},
	DotToken:                {"DotToken", "."},
	DotDotToken:             {"DotDotToken", ".."},
	MinusGreaterThanToken:   {"MinusGreaterThanToken", "->"},
	EqualsGreaterThanToken:  {"EqualsGreaterThanToken", "=>"},
	PlusPlusToken:           {"PlusPlusToken", "++"},
	MinusMinusToken:         {"MinusMinusToken", "--"},
	PlusEqualsToken:         {"PlusEqualsToken", "+="},
	MinusEqualsToken:        {"MinusEqualsToken", "-="},
	OpenParenToken:          {"OpenParenToken", "("},
	CloseParenToken:         {"CloseParenToken", ")"},
	OpenBraceToken:          {"OpenBraceToken", "{"},
	CloseBraceToken:         {"CloseBraceToken", "}"},
	OpenBracketToken:        {"OpenBracketToken", "["},
	CloseBracketToken:       {"CloseBracketToken", "]"},
	AtToken:                 {"AtToken", "@"},
	HashToken:               {"HashToken", "#"},

	TrueKeyword:     {"TrueKeyword", "true"},
	FalseKeyword:    {"FalseKeyword", "false"},
	NullKeyword:     {"NullKeyword", "null"},
	IfKeyword:       {"IfKeyword", "if"},
	ElseKeyword:     {"ElseKeyword", "else"},
	ForKeyword:      {"ForKeyword", "for"},
	WhileKeyword:    {"WhileKeyword", "while"},
	ReturnKeyword:   {"ReturnKeyword", "return"},
	BreakKeyword:    {"BreakKeyword", "break"},
	ContinueKeyword: {"ContinueKeyword", "continue"},
	LetKeyword:      {"LetKeyword", "let"},
	FnKeyword:       {"FnKeyword", "fn"},
	TypeKeyword:     {"TypeKeyword", "type"},
	ImportKeyword:   {"ImportKeyword", "import"},
	NewKeyword:      {"NewKeyword", "new"},

	DefineKeyword:    {"DefineKeyword", "define"},
	UndefKeyword:     {"UndefKeyword", "undef"},
	ElifKeyword:      {"ElifKeyword", "elif"},
	EndIfKeyword:     {"EndIfKeyword", "endif"},
	RegionKeyword:    {"RegionKeyword", "region"},
	EndRegionKeyword: {"EndRegionKeyword", "endregion"},

	AsyncKeyword:  {"AsyncKeyword", "async"},
	AwaitKeyword:  {"AwaitKeyword", "await"},
	FieldKeyword:  {"FieldKeyword", "field"},
	FromKeyword:   {"FromKeyword", "from"},
	WhereKeyword:  {"WhereKeyword", "where"},
	SelectKeyword: {"SelectKeyword", "select"},
	GetKeyword:    {"GetKeyword", "get"},
	SetKeyword:    {"SetKeyword", "set"},
	InitKeyword:   {"InitKeyword", "init"},

	EndOfDirectiveToken: {"EndOfDirectiveToken", ""},
	EndOfFileToken:      {"EndOfFileToken", ""},

	IdentifierToken:       {"IdentifierToken", ""},
	NumericLiteralToken:   {"NumericLiteralToken", ""},
	StringLiteralToken:    {"StringLiteralToken", ""},
	CharacterLiteralToken: {"CharacterLiteralToken", ""},
	BadToken:              {"BadToken", ""},

	CompilationUnit:       {"CompilationUnit", ""},
	Block:                 {"Block", ""},
	ParenthesizedGroup:    {"ParenthesizedGroup", ""},
	BracketedGroup:        {"BracketedGroup", ""},
	Statement:             {"Statement", ""},
	Sequence:              {"Sequence", ""},
	IdentifierName:        {"IdentifierName", ""},
	LiteralExpression:     {"LiteralExpression", ""},
	BinaryExpression:      {"BinaryExpression", ""},
	PrefixUnaryExpression: {"PrefixUnaryExpression", ""},
	ArgumentList:          {"ArgumentList", ""},
	InvocationExpression:  {"InvocationExpression", ""},
}

// String returns the kind name, e.g. "CommaToken".
func (k Kind) String() string {
	if k < count {
		return infos[k].name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Text returns the fixed spelling of a well-known-text token kind and "" for
// every other kind.
func (k Kind) Text() string {
	if k < count {
		return infos[k].text
	}
	return ""
}

var (
	reserved     map[string]Kind
	contextual   map[string]Kind
	preprocessor map[string]Kind
	byName       map[string]Kind
)

func init() {
	reserved = make(map[string]Kind, int(lastReservedKeyword-firstReservedKeyword)+1)
	for k := firstReservedKeyword; k <= lastReservedKeyword; k++ {
		reserved[k.Text()] = k
	}
	contextual = make(map[string]Kind, int(lastContextual-firstContextual)+1)
	for k := firstContextual; k <= lastContextual; k++ {
		contextual[k.Text()] = k
	}
	preprocessor = map[string]Kind{
		"if":   IfKeyword,
		"else": ElseKeyword,
	}
	for k := firstPreprocessorWord; k <= lastPreprocessorWord; k++ {
		preprocessor[k.Text()] = k
	}
	byName = make(map[string]Kind, Count)
	for k := None; k < count; k++ {
		byName[infos[k].name] = k
	}
}

// LookupKeyword returns the reserved keyword spelled by ident.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := reserved[ident]
	return k, ok
}

// LookupContextual returns the contextual keyword spelled by ident.
func LookupContextual(ident string) (Kind, bool) {
	k, ok := contextual[ident]
	return k, ok
}

// LookupPreprocessor returns the directive keyword spelled by word.
func LookupPreprocessor(word string) (Kind, bool) {
	k, ok := preprocessor[word]
	return k, ok
}

// Parse maps a kind name back to its Kind.
func Parse(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}
