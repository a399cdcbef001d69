package rpn

import (
	"errors"
	"strconv"
	"strings"
)

type TokenKind int8

const (
	TokenUnknown TokenKind = iota
	TokenOperand
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenOperand:
		return "operand"
	case TokenOperator:
		return "operator"
	}
	return "unknown"
}

// Token is one space-delimited unit of an expression after classification.
type Token struct {
	Text  string
	Kind  TokenKind
	Value float64  // valid for TokenOperand
	Op    Operator // valid for TokenOperator
}

// Tokenize splits expr on runs of the space character. Only ' ' separates
// tokens; tabs and newlines stay inside the token they appear in.
func Tokenize(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool { return r == ' ' })
}

// Normalize returns expr with every run of spaces collapsed to one and
// leading and trailing spaces removed.
func Normalize(expr string) string {
	return strings.Join(Tokenize(expr), " ")
}

// Classify decides whether text is a numeric operand, an operator symbol
// or neither. A numeric parse takes precedence over operator lookup.
func Classify(text string) Token {
	if v, ok := ParseOperand(text); ok {
		return Token{Text: text, Kind: TokenOperand, Value: v}
	}
	if op, ok := LookupOperator(text); ok {
		return Token{Text: text, Kind: TokenOperator, Op: op}
	}
	return Token{Text: text, Kind: TokenUnknown}
}

// ParseOperand parses text as a floating-point literal, requiring the whole
// token to be consumed. It follows the C strtod contract: leading
// whitespace is skipped, inf/nan spellings and hexadecimal mantissas without
// a binary exponent are accepted, and out-of-range values saturate instead
// of failing. Digit separators are not accepted.
func ParseOperand(text string) (float64, bool) {
	s := strings.TrimLeft(text, " \t\n\v\f\r")
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}
	if isHexMantissa(s) && !strings.ContainsAny(s, "pP") {
		s += "p0"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func isHexMantissa(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
