package lang

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a buffer token.
type TokenType int

const (
	TOKEN_NUMBER TokenType = iota
	TOKEN_OPERATOR
	TOKEN_FUNCTION
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_ILLEGAL
)

// Token represents a single token of the expression buffer.
type Token struct {
	Type    TokenType
	Literal string // numbers are stored without grouping separators
	Op      OpID   // operators and functions only
	Depth   int    // unmatched '(' before the token
	Pos     int    // byte offset in the lexed input; zero for session tokens
	End     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q, depth %d)", t.Type, t.Literal, t.Depth)
}

// IsOp reports whether the token is an operator or a function.
func (t Token) IsOp() bool {
	return t.Type == TOKEN_OPERATOR || t.Type == TOKEN_FUNCTION
}

// Rank returns the effective rank of an operator or function token.
func (t Token) Rank() int {
	d, ok := Lookup(t.Op)
	if !ok {
		return 0
	}
	return EffectiveRank(d.BaseRank, t.Depth)
}

func numberToken(lit string, depth int) Token {
	return Token{Type: TOKEN_NUMBER, Literal: lit, Depth: depth}
}

func opToken(d OperatorDescriptor, depth int) Token {
	typ := TOKEN_OPERATOR
	if d.Arity == Unary {
		typ = TOKEN_FUNCTION
	}
	return Token{Type: typ, Literal: d.Symbol, Op: d.ID, Depth: depth}
}

// Render formats tokens as buffer text: binary operators padded with spaces,
// functions glued to their opening parenthesis, integer digits grouped.
func Render(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Type {
		case TOKEN_OPERATOR:
			b.WriteString(" " + t.Literal + " ")
		case TOKEN_NUMBER:
			b.WriteString(groupLiteral(t.Literal))
		default:
			b.WriteString(t.Literal)
		}
	}
	return b.String()
}

// autoClose returns a copy of tokens with one ')' appended per unmatched '('.
func autoClose(tokens []Token) []Token {
	out := make([]Token, len(tokens), len(tokens)+4)
	copy(out, tokens)
	depth := 0
	for _, t := range tokens {
		switch t.Type {
		case TOKEN_LPAREN:
			depth++
		case TOKEN_RPAREN:
			depth--
		}
	}
	for ; depth > 0; depth-- {
		out = append(out, Token{Type: TOKEN_RPAREN, Literal: ")", Depth: depth - 1})
	}
	return out
}

// QueueFromTokens builds the pending-operations queue for a token list, one
// entry per operator or function in textual order.
func QueueFromTokens(tokens []Token) *Queue {
	q := &Queue{}
	for _, t := range tokens {
		if !t.IsOp() {
			continue
		}
		if d, ok := Lookup(t.Op); ok {
			q.Enqueue(Entry{Op: d.ID, Symbol: d.Symbol, Rank: EffectiveRank(d.BaseRank, t.Depth)})
		}
	}
	return q
}
