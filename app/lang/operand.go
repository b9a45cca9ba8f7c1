package lang

import "strings"

// Operand is the numeral currently being typed: optional sign, digits, at
// most one decimal point, then an optional exponent suffix and percent.
type Operand struct {
	text string
}

// String returns the raw operand text.
func (o Operand) String() string { return o.text }

// Empty reports whether nothing has been typed.
func (o Operand) Empty() bool { return o.text == "" }

// HasPoint reports whether the operand contains a decimal point.
func (o Operand) HasPoint() bool { return strings.Contains(o.text, ".") }

// HasPercent reports whether the operand carries a percent marker.
func (o Operand) HasPercent() bool { return strings.HasSuffix(o.text, "%") }

// HasExponent reports whether the operand carries a scientific exponent,
// which only happens when a formatted result was re-entered.
func (o Operand) HasExponent() bool { return strings.ContainsAny(o.text, "eE") }

// Complete reports whether the operand parses as a number.
func (o Operand) Complete() bool {
	_, err := parseLiteral(o.text)
	return err == nil
}

// Digits counts integer and fractional digits.
func (o Operand) Digits() (integer, fraction int) {
	s := strings.TrimSuffix(strings.TrimPrefix(o.text, "-"), "%")
	intPart, frac, _ := strings.Cut(s, ".")
	return len(intPart), len(frac)
}

// AppendDigit adds d subject to the digit limits and reports whether it was
// accepted. A lone zero is replaced rather than extended.
func (o *Operand) AppendDigit(d byte, maxInteger, maxFraction int) bool {
	if d < '0' || d > '9' || o.HasPercent() || o.HasExponent() {
		return false
	}
	switch o.text {
	case "0":
		o.text = string(d)
		return true
	case "-0":
		o.text = "-" + string(d)
		return true
	}
	integer, fraction := o.Digits()
	if o.HasPoint() {
		if fraction >= maxFraction {
			return false
		}
	} else if integer >= maxInteger {
		return false
	}
	o.text += string(d)
	return true
}

// AppendPoint adds a decimal point, prefixing a zero when no digit precedes.
func (o *Operand) AppendPoint() bool {
	if o.HasPoint() || o.HasPercent() || o.HasExponent() {
		return false
	}
	if o.text == "" || o.text == "-" {
		o.text += "0"
	}
	o.text += "."
	return true
}

// AppendPercent adds the percent marker once, after at least one digit.
func (o *Operand) AppendPercent() bool {
	if o.HasPercent() || !o.Complete() {
		return false
	}
	o.text += "%"
	return true
}

// StartNegative begins a negative operand.
func (o *Operand) StartNegative() bool {
	if o.text != "" {
		return false
	}
	o.text = "-"
	return true
}

// Backspace removes the last typed element. An exponent suffix goes as a
// whole, as does "0." when it was synthesized from a bare point.
func (o *Operand) Backspace() {
	switch {
	case o.text == "":
	case o.HasPercent():
		o.text = strings.TrimSuffix(o.text, "%")
	case o.HasExponent():
		o.text = o.text[:strings.IndexAny(o.text, "eE")]
	case o.text == "0." || o.text == "-0.":
		o.text = strings.TrimSuffix(o.text, "0.")
	default:
		o.text = o.text[:len(o.text)-1]
	}
}

// Set replaces the operand, dropping grouping separators.
func (o *Operand) Set(text string) {
	o.text = strings.ReplaceAll(text, ",", "")
}

// Reset clears the operand.
func (o *Operand) Reset() {
	o.text = ""
}
