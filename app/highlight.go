package main

import (
	"image/color"

	"github.com/Logyle12/odin-calculator/app/lang"
)

// TokenKind represents the category of a highlighted span.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenNumber
	TokenPercent
	TokenOperator
	TokenFunction
	TokenParen
	TokenIllegal
)

// Token is a span of text with a highlight category.
type Token struct {
	Text string
	Kind TokenKind
}

// tokenColors maps token kinds to colors. Dark-theme oriented.
var tokenColors = map[TokenKind]color.NRGBA{
	TokenPlain:    {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenNumber:   {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // green
	TokenPercent:  {R: 0xCE, G: 0x91, B: 0x78, A: 0xFF}, // orange
	TokenOperator: {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenFunction: {R: 0x56, G: 0x9C, B: 0xD6, A: 0xFF}, // blue
	TokenParen:    {R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // yellow
	TokenIllegal:  {R: 0xF4, G: 0x47, B: 0x47, A: 0xFF}, // red
}

// TokenColor returns the color for a token kind.
func TokenColor(kind TokenKind) color.NRGBA {
	if c, ok := tokenColors[kind]; ok {
		return c
	}
	return tokenColors[TokenPlain]
}

// highlightKind maps a lexed token to a highlight TokenKind.
func highlightKind(t lang.Token) TokenKind {
	switch t.Type {
	case lang.TOKEN_NUMBER:
		if len(t.Literal) > 0 && t.Literal[len(t.Literal)-1] == '%' {
			return TokenPercent
		}
		return TokenNumber
	case lang.TOKEN_OPERATOR:
		return TokenOperator
	case lang.TOKEN_FUNCTION:
		return TokenFunction
	case lang.TOKEN_LPAREN, lang.TOKEN_RPAREN:
		return TokenParen
	case lang.TOKEN_ILLEGAL:
		return TokenIllegal
	default:
		return TokenPlain
	}
}

// Tokenize splits buffer text into highlighted spans using the lang lexer.
// Spans cover the text exactly, grouping separators and spaces included.
func Tokenize(line string) []Token {
	if line == "" {
		return nil
	}

	var result []Token
	lastEnd := 0

	for _, lt := range lang.Lex(line) {
		// Add any whitespace/gap before this token
		if lt.Pos > lastEnd {
			result = append(result, Token{
				Text: line[lastEnd:lt.Pos],
				Kind: TokenPlain,
			})
		}

		result = append(result, Token{
			Text: line[lt.Pos:lt.End],
			Kind: highlightKind(lt),
		})

		lastEnd = lt.End
	}

	// Any trailing text
	if lastEnd < len(line) {
		result = append(result, Token{
			Text: line[lastEnd:],
			Kind: TokenPlain,
		})
	}

	return result
}
