package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	DivisionByZero
	InvalidLogInput
	NegativeSquareRoot
	MalformedExpression
	OutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "DivisionByZero"
	case InvalidLogInput:
		return "InvalidLogInput"
	case NegativeSquareRoot:
		return "NegativeSquareRoot"
	case MalformedExpression:
		return "MalformedExpression"
	case OutOfRange:
		return "OutOfRange"
	}
	return "None"
}

// EvalError represents an evaluation error.
type EvalError struct {
	Kind ErrorKind
	Msg  string
}

func (e *EvalError) Error() string {
	return e.Msg
}

// Is matches any *EvalError of the same kind, so errors.Is works against the
// Err* values below.
func (e *EvalError) Is(target error) bool {
	var t *EvalError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrDivisionByZero      = &EvalError{Kind: DivisionByZero, Msg: "cannot divide by zero"}
	ErrInvalidLogInput     = &EvalError{Kind: InvalidLogInput, Msg: "logarithm of a non-positive number"}
	ErrNegativeSquareRoot  = &EvalError{Kind: NegativeSquareRoot, Msg: "square root of a negative number"}
	ErrMalformedExpression = &EvalError{Kind: MalformedExpression, Msg: "malformed expression"}
	ErrOutOfRange          = &EvalError{Kind: OutOfRange, Msg: "result out of range"}
)

// KindOf returns the kind of an *EvalError, or KindNone.
func KindOf(err error) ErrorKind {
	var e *EvalError
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

func malformed(msg string) *EvalError {
	return &EvalError{Kind: MalformedExpression, Msg: msg}
}

// literal is a parsed number token.
type literal struct {
	value   float64
	percent bool
}

// parseLiteral converts a number literal. Grouping commas and a trailing
// decimal point are accepted; magnitudes beyond float64 come back infinite
// rather than as an error.
func parseLiteral(lit string) (literal, error) {
	s := strings.ReplaceAll(lit, ",", "")
	var l literal
	if strings.HasSuffix(s, "%") {
		l.percent = true
		s = strings.TrimSuffix(s, "%")
	}
	if s == "" || s == "-" || s == "." {
		return l, malformed("incomplete number: " + lit)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l, malformed("invalid number: " + lit)
	}
	l.value = v
	return l, nil
}

// scalar returns the literal's value with a percent marker applied.
func (l literal) scalar() float64 {
	if l.percent {
		return l.value / 100
	}
	return l.value
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// formatLiteral renders a reduced value as a token literal that parses back
// to exactly the same float64.
func formatLiteral(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// groupLiteral inserts grouping separators into the integer part of a
// literal for display. Scientific literals are left alone.
func groupLiteral(lit string) string {
	if strings.ContainsAny(lit, "eE") || strings.Contains(lit, "Inf") || lit == "NaN" {
		return lit
	}
	sign := ""
	if strings.HasPrefix(lit, "-") {
		sign, lit = "-", lit[1:]
	}
	intPart, rest := lit, ""
	if i := strings.IndexAny(lit, ".%"); i >= 0 {
		intPart, rest = lit[:i], lit[i:]
	}
	return sign + groupDigits(intPart) + rest
}
