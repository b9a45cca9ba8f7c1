package lang

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		input  string
		final  bool
		status Status
		kind   ErrorKind
	}{
		{"2 + 3", false, Valid, KindNone},
		{"2 + 3", true, Valid, KindNone},
		{"", false, Incomplete, KindNone},
		{"", true, Invalid, MalformedExpression},
		{"2 +", false, Incomplete, KindNone},
		{"2 +", true, Invalid, MalformedExpression},
		{"(", false, Incomplete, KindNone},
		{"()", false, Incomplete, KindNone},
		{"(2 +)", false, Incomplete, KindNone},
		{"(2 + 3", true, Valid, KindNone},
		{"log(", false, Incomplete, KindNone},
		{"log(", true, Invalid, MalformedExpression},
		{"2)", false, Invalid, MalformedExpression},
		{"2 3", false, Invalid, MalformedExpression},
		{"× 3", false, Invalid, MalformedExpression},
		{"2 (3)", false, Invalid, MalformedExpression},
		{"2 # 3", false, Invalid, MalformedExpression},

		{"5 ÷ 0", false, Invalid, DivisionByZero},
		{"5 ÷ 0.", false, Incomplete, KindNone},
		{"5 ÷ 0.0", false, Incomplete, KindNone},
		{"5 ÷ 0.", true, Invalid, DivisionByZero},
		{"5 ÷ 0.5", false, Valid, KindNone},
		{"5 ÷ 0%", false, Invalid, DivisionByZero},
		{"5 ÷ 0 + 1", false, Invalid, DivisionByZero},
		{"5 ÷ (0)", false, Valid, KindNone},

		{"log(0)", false, Invalid, InvalidLogInput},
		{"log(-2)", false, Invalid, InvalidLogInput},
		{"ln(0", false, Invalid, InvalidLogInput},
		{"ln 0", false, Invalid, InvalidLogInput},
		{"log(0.", false, Incomplete, KindNone},
		{"log(0.5)", false, Valid, KindNone},
		{"√(-4)", false, Invalid, NegativeSquareRoot},
		{"√(0)", false, Valid, KindNone},
		{"√(-4 + 8)", false, Valid, KindNone},

		{"1e400", false, Invalid, OutOfRange},
		{"1e400 +", false, Incomplete, KindNone},

		// priority order
		{"log(0) ÷ 0", false, Invalid, DivisionByZero},
		{"√(-4) + log(0)", false, Invalid, InvalidLogInput},
		{"√(-4) +", false, Invalid, NegativeSquareRoot},
	}

	for _, tt := range tests {
		v := Validate(Lex(tt.input), tt.final)
		if v.Status != tt.status {
			t.Errorf("Validate(%q, %v) = %s, want %s (%v)", tt.input, tt.final, v.Status, tt.status, v.Err)
			continue
		}
		if tt.status != Invalid {
			if v.Err != nil {
				t.Errorf("Validate(%q, %v): unexpected error %v", tt.input, tt.final, v.Err)
			}
			continue
		}
		if v.Err == nil || v.Err.Kind != tt.kind {
			t.Errorf("Validate(%q, %v) error = %v, want %s", tt.input, tt.final, v.Err, tt.kind)
		}
	}
}
