package lang

import (
	"fmt"
	"math"
)

// OpID identifies an operator or function in the catalog.
type OpID int

const (
	OpNone OpID = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpPow10
	OpLn
	OpLog
	OpSqrt
)

// Arity is the number of operands an operator consumes.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// OperatorDescriptor is the static metadata for one operator or function.
type OperatorDescriptor struct {
	ID       OpID
	Name     string // key name, e.g. "add"
	Symbol   string // as shown in the buffer, e.g. "×"
	BaseRank int
	Arity    Arity
	Apply    func(operands []float64) float64
}

// RankStep is the boost applied to an operator's base rank for every level
// of parenthesis nesting. It must exceed the spread of catalog base ranks so
// that any operator at depth d outranks every operator at depth d-1.
const RankStep = 5

var catalog = map[OpID]OperatorDescriptor{
	OpAdd:      {ID: OpAdd, Name: "add", Symbol: "+", BaseRank: 1, Arity: Binary, Apply: add},
	OpSubtract: {ID: OpSubtract, Name: "subtract", Symbol: "−", BaseRank: 1, Arity: Binary, Apply: subtract},
	OpMultiply: {ID: OpMultiply, Name: "multiply", Symbol: "×", BaseRank: 2, Arity: Binary, Apply: multiply},
	OpDivide:   {ID: OpDivide, Name: "divide", Symbol: "÷", BaseRank: 2, Arity: Binary, Apply: divide},
	OpPower:    {ID: OpPower, Name: "power", Symbol: "^", BaseRank: 3, Arity: Binary, Apply: power},
	OpPow10:    {ID: OpPow10, Name: "exp10", Symbol: "E", BaseRank: 4, Arity: Binary, Apply: pow10},
	OpLn:       {ID: OpLn, Name: "ln", Symbol: "ln", BaseRank: 5, Arity: Unary, Apply: unary(math.Log)},
	OpLog:      {ID: OpLog, Name: "log", Symbol: "log", BaseRank: 5, Arity: Unary, Apply: unary(math.Log10)},
	OpSqrt:     {ID: OpSqrt, Name: "sqrt", Symbol: "√", BaseRank: 5, Arity: Unary, Apply: unary(math.Sqrt)},
}

// symbolAliases maps alternative spellings accepted by the lexer and the key
// dispatcher to catalog entries. ASCII '-' is resolved by context in Lex.
var symbolAliases = map[string]OpID{
	"+":    OpAdd,
	"−":    OpSubtract,
	"×":    OpMultiply,
	"*":    OpMultiply,
	"x":    OpMultiply,
	"÷":    OpDivide,
	"/":    OpDivide,
	"^":    OpPower,
	"E":    OpPow10,
	"EE":   OpPow10,
	"ln":   OpLn,
	"log":  OpLog,
	"√":    OpSqrt,
	"sqrt": OpSqrt,
}

func init() {
	if err := checkRankStep(RankStep, catalog); err != nil {
		panic(err)
	}
}

// checkRankStep reports whether step is large enough for the base ranks in
// descs.
func checkRankStep(step int, descs map[OpID]OperatorDescriptor) error {
	lo, hi := math.MaxInt, math.MinInt
	for _, d := range descs {
		lo = min(lo, d.BaseRank)
		hi = max(hi, d.BaseRank)
	}
	if len(descs) > 0 && step <= hi-lo {
		return fmt.Errorf("rank step %d does not exceed base rank spread %d", step, hi-lo)
	}
	return nil
}

// Lookup returns the descriptor for id.
func Lookup(id OpID) (OperatorDescriptor, bool) {
	d, ok := catalog[id]
	return d, ok
}

// LookupSymbol returns the descriptor for a displayed symbol or alias.
func LookupSymbol(sym string) (OperatorDescriptor, bool) {
	id, ok := symbolAliases[sym]
	if !ok {
		return OperatorDescriptor{}, false
	}
	return Lookup(id)
}

// EffectiveRank is the precedence of an operator with the given base rank at
// the given nesting depth.
func EffectiveRank(base, depth int) int {
	return base + RankStep*depth
}

func (id OpID) String() string {
	if d, ok := catalog[id]; ok {
		return d.Name
	}
	return fmt.Sprintf("OpID(%d)", int(id))
}

// Math functions. Binary operations fold left over all operands.

func add(operands []float64) float64 {
	sum := operands[0]
	for _, n := range operands[1:] {
		sum += n
	}
	return sum
}

func subtract(operands []float64) float64 {
	diff := operands[0]
	for _, n := range operands[1:] {
		diff -= n
	}
	return diff
}

func multiply(operands []float64) float64 {
	product := operands[0]
	for _, n := range operands[1:] {
		product *= n
	}
	return product
}

func divide(operands []float64) float64 {
	quotient := operands[0]
	for _, n := range operands[1:] {
		quotient /= n
	}
	return quotient
}

func power(operands []float64) float64 {
	result := operands[0]
	for _, n := range operands[1:] {
		result = math.Pow(result, n)
	}
	return result
}

// pow10 computes mantissa × 10^exponent.
func pow10(operands []float64) float64 {
	return operands[0] * math.Pow(10, operands[1])
}

func unary(fn func(float64) float64) func([]float64) float64 {
	return func(operands []float64) float64 {
		return fn(operands[0])
	}
}
