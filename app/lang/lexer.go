package lang

import "unicode/utf8"

// Lex tokenizes buffer text. It accepts what Render produces (grouped digits,
// '−', '×', '÷', '√') as well as ASCII spellings ('-', '*', '/', "sqrt").
// ASCII '-' is a sign when an operand is expected and a subtraction
// otherwise. Whitespace is skipped; unknown input becomes TOKEN_ILLEGAL.
func Lex(input string) []Token {
	var tokens []Token
	depth := 0
	i := 0

	expectOperand := func() bool {
		if len(tokens) == 0 {
			return true
		}
		switch tokens[len(tokens)-1].Type {
		case TOKEN_OPERATOR, TOKEN_FUNCTION, TOKEN_LPAREN:
			return true
		}
		return false
	}

	for i < len(input) {
		ch := input[i]

		// Skip whitespace
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		switch {
		case ch == '(':
			tokens = append(tokens, Token{Type: TOKEN_LPAREN, Literal: "(", Depth: depth, Pos: i, End: i + 1})
			depth++
			i++
		case ch == ')':
			depth--
			tokens = append(tokens, Token{Type: TOKEN_RPAREN, Literal: ")", Depth: depth, Pos: i, End: i + 1})
			i++
		case isDigit(ch) || ch == '.' || (ch == '-' && expectOperand() && i+1 < len(input) && (isDigit(input[i+1]) || input[i+1] == '.')):
			end, lit := lexNumber(input, i)
			tokens = append(tokens, Token{Type: TOKEN_NUMBER, Literal: lit, Depth: depth, Pos: i, End: end})
			i = end
		case ch == '-':
			d, _ := Lookup(OpSubtract)
			tokens = append(tokens, Token{Type: TOKEN_OPERATOR, Literal: d.Symbol, Op: d.ID, Depth: depth, Pos: i, End: i + 1})
			i++
		case isWordStart(ch):
			start := i
			for i < len(input) && isWordStart(input[i]) {
				i++
			}
			tokens = append(tokens, lexSymbol(input[start:i], depth, start, i))
		default:
			_, size := utf8.DecodeRuneInString(input[i:])
			tokens = append(tokens, lexSymbol(input[i:i+size], depth, i, i+size))
			i += size
		}
	}
	return tokens
}

// lexSymbol resolves an operator or function spelling.
func lexSymbol(sym string, depth, pos, end int) Token {
	d, ok := LookupSymbol(sym)
	if !ok {
		return Token{Type: TOKEN_ILLEGAL, Literal: sym, Depth: depth, Pos: pos, End: end}
	}
	t := opToken(d, depth)
	t.Pos, t.End = pos, end
	return t
}

// lexNumber scans a numeral starting at pos: optional '-', digits with
// grouping commas, an optional fraction, an optional lowercase exponent and
// an optional '%'. The returned literal has the commas removed.
func lexNumber(input string, pos int) (int, string) {
	var lit []byte
	i := pos
	if input[i] == '-' {
		lit = append(lit, '-')
		i++
	}
	for i < len(input) && (isDigit(input[i]) || (input[i] == ',' && i+1 < len(input) && isDigit(input[i+1]))) {
		if input[i] != ',' {
			lit = append(lit, input[i])
		}
		i++
	}
	if i < len(input) && input[i] == '.' {
		lit = append(lit, '.')
		i++
		for i < len(input) && isDigit(input[i]) {
			lit = append(lit, input[i])
			i++
		}
	}
	// Exponent: 'e' followed by an optionally signed digit run
	if i < len(input) && input[i] == 'e' {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			lit = append(lit, input[i:j]...)
			i = j
		}
	}
	if i < len(input) && input[i] == '%' {
		lit = append(lit, '%')
		i++
	}
	return i, string(lit)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
