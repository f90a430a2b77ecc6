package parser

import (
	"verdant/internal/kind"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= =>
	precCoalesce       = 2  // ??
	precLogicalOr      = 3  // ||
	precLogicalAnd     = 4  // &&
	precBitwiseOr      = 5  // |
	precBitwiseXor     = 6  // ^
	precBitwiseAnd     = 7  // &
	precEquality       = 8  // == !=
	precComparison     = 9  // < <= > >=
	precRange          = 10 // ..
	precAdditive       = 11 // + -
	precMultiplicative = 12 // * / %
)

// binaryPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный); -1: не бинарный оператор
func binaryPrec(k kind.Kind) (int, bool) {
	switch k {
	// Присваивание и лямбды (правоассоциативно)
	case kind.EqualsToken, kind.PlusEqualsToken, kind.MinusEqualsToken, kind.EqualsGreaterThanToken:
		return precAssignment, true
	case kind.QuestionQuestionToken:
		return precCoalesce, true

	// Логические операторы
	case kind.BarBarToken:
		return precLogicalOr, false
	case kind.AmpersandAmpersandToken:
		return precLogicalAnd, false

	// Битовые операторы
	case kind.BarToken:
		return precBitwiseOr, false
	case kind.CaretToken:
		return precBitwiseXor, false
	case kind.AmpersandToken:
		return precBitwiseAnd, false

	// Операторы равенства и сравнения
	case kind.EqualsEqualsToken, kind.ExclamationEqualsToken:
		return precEquality, false
	case kind.LessThanToken, kind.LessThanEqualsToken, kind.GreaterThanToken, kind.GreaterThanEqualsToken:
		return precComparison, false

	case kind.DotDotToken:
		return precRange, false

	// Арифметические операторы
	case kind.PlusToken, kind.MinusToken:
		return precAdditive, false
	case kind.AsteriskToken, kind.SlashToken, kind.PercentToken:
		return precMultiplicative, false

	default:
		return -1, false
	}
}

// isPrefixOperator: токены, которые могут начинать унарное выражение.
func isPrefixOperator(k kind.Kind) bool {
	switch k {
	case kind.ExclamationToken, kind.MinusToken, kind.PlusToken, kind.TildeToken:
		return true
	default:
		return false
	}
}

// isMemberAccess: постфиксные операторы доступа к члену.
func isMemberAccess(k kind.Kind) bool {
	return k == kind.DotToken || k == kind.ColonColonToken || k == kind.MinusGreaterThanToken
}
