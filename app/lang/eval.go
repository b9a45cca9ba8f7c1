package lang

import (
	"log"
)

// percentExponentOffset shifts the exponent of the power-of-ten operator when
// it carries a percent marker: mE(e%) is read as m × 10^(e-2).
const percentExponentOffset = -2

// Evaluator reduces a token buffer to a single value.
type Evaluator struct {
	Format *Formatter
	Logger *log.Logger // optional step trace
}

var defaultEvaluator = &Evaluator{Format: defaultFormatter}

// Evaluate reduces tokens using the default formatter budgets.
func Evaluate(tokens []Token, q *Queue) (float64, error) {
	return defaultEvaluator.Evaluate(tokens, q)
}

// EvaluateString lexes text, validates it as a committed expression and
// evaluates it.
func EvaluateString(text string) (float64, error) {
	tokens := Lex(text)
	if v := Validate(tokens, true); v.Status != Valid {
		return 0, v.Err
	}
	return Evaluate(tokens, QueueFromTokens(tokens))
}

// Evaluate reduces tokens to a single value. q lists the pending operations
// of tokens; it is only read. Neither argument is modified.
func (ev *Evaluator) Evaluate(tokens []Token, q *Queue) (float64, error) {
	buf := autoClose(tokens)

	if q.Len() == 0 {
		return ev.single(normalize(buf))
	}

	for _, entry := range q.Sorted() {
		buf = normalize(buf)
		// unwrapping a group can expose a zero divisor or a bad function argument
		if v := Validate(buf, true); v.Status != Valid {
			return 0, v.Err
		}

		i := locate(buf, entry)
		if i < 0 {
			return 0, malformed("no operand for " + entry.Symbol)
		}
		d, _ := Lookup(buf[i].Op)

		start, end := i, i+1
		if d.Arity == Binary {
			start = i - 1
		}
		if end >= len(buf) || buf[end].Type != TOKEN_NUMBER ||
			(d.Arity == Binary && (start < 0 || buf[start].Type != TOKEN_NUMBER)) {
			return 0, malformed("missing operand for " + d.Symbol)
		}

		var operands []Token
		if d.Arity == Binary {
			operands = []Token{buf[start], buf[end]}
		} else {
			operands = []Token{buf[end]}
		}
		values, err := operandValues(d, operands)
		if err != nil {
			return 0, err
		}
		result := ev.formatter().Round(d.Apply(values))

		reduced := numberToken(formatLiteral(result), buf[start].Depth)
		next := make([]Token, 0, len(buf)-(end-start))
		next = append(next, buf[:start]...)
		next = append(next, reduced)
		next = append(next, buf[end+1:]...)
		buf = normalize(next)

		ev.tracef("%s %v = %s -> %s", d.Name, values, reduced.Literal, Render(buf))

		if v := Validate(buf, true); v.Status != Valid {
			return 0, v.Err
		}
	}

	return ev.single(buf)
}

// single returns the value of a buffer reduced to one literal.
func (ev *Evaluator) single(buf []Token) (float64, error) {
	if len(buf) != 1 || buf[0].Type != TOKEN_NUMBER {
		return 0, malformed("expression did not reduce to a number")
	}
	l, err := parseLiteral(buf[0].Literal)
	if err != nil {
		return 0, err
	}
	v := l.scalar()
	if !finite(v) {
		return 0, ErrOutOfRange
	}
	return v, nil
}

func (ev *Evaluator) formatter() *Formatter {
	if ev.Format == nil {
		return defaultFormatter
	}
	return ev.Format
}

func (ev *Evaluator) tracef(format string, args ...any) {
	if ev.Logger != nil {
		ev.Logger.Printf(format, args...)
	}
}

// normalize repeatedly strips parentheses around a lone literal and
// parentheses that directly wrap another group.
func normalize(buf []Token) []Token {
	for {
		changed := false
		for i := 0; i+2 < len(buf); i++ {
			if buf[i].Type == TOKEN_LPAREN && buf[i+1].Type == TOKEN_NUMBER && buf[i+2].Type == TOKEN_RPAREN {
				buf = append(buf[:i:i], append([]Token{buf[i+1]}, buf[i+3:]...)...)
				changed = true
			}
		}
		for i := 0; i+1 < len(buf); i++ {
			if buf[i].Type != TOKEN_LPAREN || buf[i+1].Type != TOKEN_LPAREN {
				continue
			}
			outer, inner := matchParen(buf, i), matchParen(buf, i+1)
			if outer < 0 || inner != outer-1 {
				continue
			}
			// drop the inner pair; the outer one may belong to a function
			next := make([]Token, 0, len(buf)-2)
			next = append(next, buf[:i+1]...)
			next = append(next, buf[i+2:inner]...)
			next = append(next, buf[outer:]...)
			buf = next
			changed = true
			break
		}
		if !changed {
			return buf
		}
	}
}

// matchParen returns the index of the ')' closing the '(' at i, or -1.
func matchParen(buf []Token, i int) int {
	depth := 0
	for j := i; j < len(buf); j++ {
		switch buf[j].Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// locate finds the token an entry refers to: the leftmost occurrence of its
// operator whose effective rank matches, which is the innermost group the
// operator still appears in. If none matches exactly, the most deeply nested
// occurrence wins.
func locate(buf []Token, e Entry) int {
	best := -1
	for i, t := range buf {
		if !t.IsOp() || t.Op != e.Op {
			continue
		}
		if t.Rank() == e.Rank {
			return i
		}
		if best < 0 || t.Depth > buf[best].Depth {
			best = i
		}
	}
	return best
}

// operandValues converts operand literals with percent handling: a percent
// on the first operand is value/100; on the second operand of + or − it is
// that share of the first operand; on the exponent of E it shifts the
// exponent; anywhere else it is value/100.
func operandValues(d OperatorDescriptor, operands []Token) ([]float64, error) {
	values := make([]float64, len(operands))
	for i, t := range operands {
		l, err := parseLiteral(t.Literal)
		if err != nil {
			return nil, err
		}
		switch {
		case !l.percent:
			values[i] = l.value
		case i == 0:
			values[i] = l.scalar()
		case d.ID == OpAdd || d.ID == OpSubtract:
			values[i] = l.scalar() * values[0]
		case d.ID == OpPow10:
			values[i] = l.value + percentExponentOffset
		default:
			values[i] = l.scalar()
		}
	}
	return values, nil
}
