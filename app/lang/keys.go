package lang

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUnknownKey is returned by Press for a key with no binding.
var ErrUnknownKey = errors.New("unknown key")

// Key names accepted by Press besides digits and operator symbols.
const (
	KeyEquals    = "="
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyDelete    = "DEL"
	KeyClear     = "AC"
	KeyEscape    = "Escape"
	KeyPoint     = "."
	KeyPercent   = "%"
	KeyOpen      = "("
	KeyClose     = ")"
	KeyGroup     = "()"
	KeyMinus     = "-"
)

// Press applies one keypad or keyboard key and returns the buffer text. The
// commit keys return the commit error, if any; the buffer is then unchanged.
func (s *Session) Press(key string) (string, error) {
	if len(key) == 1 && isDigit(key[0]) {
		return s.AppendDigit(key[0]), nil
	}
	switch key {
	case KeyEquals, KeyEnter:
		if _, err := s.Commit(); err != nil {
			return s.Buffer(), err
		}
		return s.Buffer(), nil
	case KeyBackspace, KeyDelete, "Delete":
		return s.DeleteLastToken(), nil
	case KeyClear, KeyEscape, "C":
		return s.Clear(), nil
	case KeyPoint, ",":
		return s.AppendDecimalPoint(), nil
	case KeyPercent:
		return s.AppendPercent(), nil
	case KeyOpen:
		return s.OpenGroup(), nil
	case KeyClose:
		return s.CloseGroup(), nil
	case KeyGroup:
		return s.ToggleGroup(), nil
	case KeyMinus:
		return s.AppendOperator(OpSubtract), nil
	}
	d, ok := LookupSymbol(key)
	if !ok {
		return s.Buffer(), fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if d.Arity == Unary {
		return s.AppendFunction(d.ID), nil
	}
	return s.AppendOperator(d.ID), nil
}

// Type presses every key spelled out in keys, e.g. "log(100)+2=". Letter runs
// are read as one key. A '(' directly after a function name is skipped since
// the function already opened its group. Spaces are ignored.
func (s *Session) Type(keys string) error {
	afterFunction := false
	for i := 0; i < len(keys); {
		var key string
		switch ch := keys[i]; {
		case ch == ' ':
			i++
			continue
		case isWordStart(ch):
			start := i
			for i < len(keys) && isWordStart(keys[i]) {
				i++
			}
			key = keys[start:i]
			if key == "C" || key == KeyClear || key == KeyDelete {
				break
			}
			if _, ok := LookupSymbol(key); !ok {
				return fmt.Errorf("%w: %q", ErrUnknownKey, key)
			}
		default:
			_, size := utf8.DecodeRuneInString(keys[i:])
			key = keys[i : i+size]
			i += size
		}

		if key == KeyOpen && afterFunction {
			afterFunction = false
			continue
		}
		d, ok := LookupSymbol(key)
		afterFunction = ok && d.Arity == Unary

		if _, err := s.Press(key); err != nil {
			return err
		}
	}
	return nil
}
