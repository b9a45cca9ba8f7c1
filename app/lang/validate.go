package lang

// Status is the Validator's classification of a buffer.
type Status int

const (
	Valid Status = iota
	Incomplete
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "Valid"
	case Incomplete:
		return "Incomplete"
	}
	return "Invalid"
}

// Verdict is the result of validating a buffer. Err is set only when Status
// is Invalid.
type Verdict struct {
	Status Status
	Err    *EvalError
}

func validVerdict() Verdict { return Verdict{Status: Valid} }

func invalid(err *EvalError) Verdict { return Verdict{Status: Invalid, Err: err} }

// Validate classifies tokens. While the buffer is still growing (final is
// false) dangling input is Incomplete; on commit it is MalformedExpression.
// Checks run in priority order: division by zero, logarithm domain, square
// root domain, structure, magnitude.
func Validate(tokens []Token, final bool) Verdict {
	growing := false

	for i, t := range tokens {
		if t.Type != TOKEN_OPERATOR || t.Op != OpDivide || i+1 >= len(tokens) {
			continue
		}
		next := tokens[i+1]
		if next.Type != TOKEN_NUMBER {
			continue
		}
		l, err := parseLiteral(next.Literal)
		if err != nil || l.value != 0 {
			continue
		}
		if !final && isGrowingZero(tokens, i+1) {
			growing = true
			continue
		}
		return invalid(ErrDivisionByZero)
	}

	for _, check := range []struct {
		op  OpID
		bad func(float64) bool
		err *EvalError
	}{
		{OpLog, nonPositive, ErrInvalidLogInput},
		{OpLn, nonPositive, ErrInvalidLogInput},
		{OpSqrt, negative, ErrNegativeSquareRoot},
	} {
		for i, t := range tokens {
			if t.Type != TOKEN_FUNCTION || t.Op != check.op {
				continue
			}
			j, ok := functionArgument(tokens, i)
			if !ok {
				continue
			}
			l, err := parseLiteral(tokens[j].Literal)
			if err != nil || !check.bad(l.scalar()) {
				continue
			}
			if !final && isGrowingZero(tokens, j) {
				growing = true
				continue
			}
			return invalid(check.err)
		}
	}

	if err, dangling := checkStructure(tokens); err != nil {
		return invalid(err)
	} else if dangling || growing {
		if final {
			return invalid(malformed("incomplete expression"))
		}
		return Verdict{Status: Incomplete}
	}

	for _, t := range tokens {
		if t.Type != TOKEN_NUMBER {
			continue
		}
		if l, err := parseLiteral(t.Literal); err == nil && !finite(l.value) {
			return invalid(ErrOutOfRange)
		}
	}
	return validVerdict()
}

func nonPositive(v float64) bool { return v <= 0 }

func negative(v float64) bool { return v < 0 }

// isGrowingZero reports whether the zero at tokens[i] is the operand still
// being typed and may yet gain a non-zero fractional digit.
func isGrowingZero(tokens []Token, i int) bool {
	if i != len(tokens)-1 {
		return false
	}
	lit := tokens[i].Literal
	for j := 0; j < len(lit); j++ {
		if lit[j] == '.' {
			return true
		}
		if lit[j] == '%' || lit[j] == 'e' {
			return false
		}
	}
	return false
}

// functionArgument returns the index of the lone literal a function at i is
// applied to: either the next token, or the only token of the group that
// follows (closed or still open at the end of the buffer).
func functionArgument(tokens []Token, i int) (int, bool) {
	if i+1 >= len(tokens) {
		return 0, false
	}
	if tokens[i+1].Type == TOKEN_NUMBER {
		return i + 1, true
	}
	if tokens[i+1].Type != TOKEN_LPAREN || i+2 >= len(tokens) || tokens[i+2].Type != TOKEN_NUMBER {
		return 0, false
	}
	if i+3 == len(tokens) || tokens[i+3].Type == TOKEN_RPAREN {
		return i + 2, true
	}
	return 0, false
}

// checkStructure walks the tokens alternating between expecting an operand
// and expecting an operator. It returns an error for input that can never
// become valid, and dangling=true for input that is merely unfinished.
func checkStructure(tokens []Token) (err *EvalError, dangling bool) {
	if len(tokens) == 0 {
		return nil, true
	}
	expectOperand := true
	depth := 0
	for i, t := range tokens {
		switch t.Type {
		case TOKEN_ILLEGAL:
			return malformed("unknown symbol: " + t.Literal), false
		case TOKEN_NUMBER:
			if !expectOperand {
				return malformed("missing operator before " + t.Literal), false
			}
			if _, perr := parseLiteral(t.Literal); perr != nil {
				if i == len(tokens)-1 {
					return nil, true
				}
				return perr.(*EvalError), false
			}
			expectOperand = false
		case TOKEN_FUNCTION:
			if !expectOperand {
				return malformed("missing operator before " + t.Literal), false
			}
		case TOKEN_LPAREN:
			if !expectOperand {
				return malformed("missing operator before ("), false
			}
			depth++
		case TOKEN_RPAREN:
			depth--
			if depth < 0 {
				return malformed("unmatched )"), false
			}
			if expectOperand {
				// "()" or "(2+)": the group is empty or ends in an operator
				return nil, true
			}
		case TOKEN_OPERATOR:
			if expectOperand {
				return malformed("missing operand before " + t.Literal), false
			}
			expectOperand = true
		}
	}
	return nil, expectOperand
}
