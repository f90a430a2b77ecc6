package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexEmptyChar                Code = 1007
	LexConflictMarker           Code = 1008

	// Препроцессор
	PPInfo                Code = 1500
	PPUnknownDirective    Code = 1501
	PPUnexpectedDirective Code = 1502
	PPMissingEndIf        Code = 1503
	PPExpectedName        Code = 1504
	PPEndOfDirective      Code = 1505
	PPMissingEndRegion    Code = 1506
	PPInvalidExpression   Code = 1507

	// Структура (скобки, разделители)
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnexpectedCloser  Code = 2003

	// Ввод-вывод
	IOInfo          Code = 3000
	IOLoadFileError Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadEscape:                "Invalid escape sequence",
	LexEmptyChar:                "Empty character literal",
	LexConflictMarker:           "Merge conflict marker encountered",
	PPInfo:                      "Preprocessor information",
	PPUnknownDirective:          "Unknown preprocessor directive",
	PPUnexpectedDirective:       "Unexpected preprocessor directive",
	PPMissingEndIf:              "#endif directive expected",
	PPExpectedName:              "Identifier expected in directive",
	PPEndOfDirective:            "Single-line comment or end-of-line expected",
	PPMissingEndRegion:          "#endregion directive expected",
	PPInvalidExpression:         "Invalid preprocessor expression",
	SynInfo:                     "Structure information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedCloser:         "Unexpected closing delimiter",
	IOInfo:                      "I/O information",
	IOLoadFileError:             "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 1500:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 1500 && ic < 2000:
		return fmt.Sprintf("PP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 3500:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
