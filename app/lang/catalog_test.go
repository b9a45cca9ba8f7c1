package lang

import (
	"math"
	"strings"
	"testing"
)

func TestRankStepExceedsSpread(t *testing.T) {
	if err := checkRankStep(RankStep, catalog); err != nil {
		t.Fatal(err)
	}
	if err := checkRankStep(4, catalog); err == nil {
		t.Error("step 4 equals the base rank spread and should be rejected")
	}
	if err := checkRankStep(1, nil); err != nil {
		t.Errorf("empty catalog: %v", err)
	}
}

func TestDeeperAlwaysOutranks(t *testing.T) {
	for _, inner := range catalog {
		for _, outer := range catalog {
			for depth := 0; depth < 4; depth++ {
				if EffectiveRank(inner.BaseRank, depth+1) <= EffectiveRank(outer.BaseRank, depth) {
					t.Errorf("%s at depth %d does not outrank %s at depth %d", inner.Symbol, depth+1, outer.Symbol, depth)
				}
			}
		}
	}
}

func TestLookupSymbol(t *testing.T) {
	tests := []struct {
		sym  string
		want OpID
	}{
		{"+", OpAdd},
		{"−", OpSubtract},
		{"×", OpMultiply},
		{"*", OpMultiply},
		{"x", OpMultiply},
		{"÷", OpDivide},
		{"/", OpDivide},
		{"^", OpPower},
		{"E", OpPow10},
		{"EE", OpPow10},
		{"ln", OpLn},
		{"log", OpLog},
		{"√", OpSqrt},
		{"sqrt", OpSqrt},
	}

	for _, tt := range tests {
		d, ok := LookupSymbol(tt.sym)
		if !ok || d.ID != tt.want {
			t.Errorf("LookupSymbol(%q) = %v, %v; want %v", tt.sym, d.ID, ok, tt.want)
		}
	}
	if _, ok := LookupSymbol("%"); ok {
		t.Error("percent is an operand marker, not an operator")
	}
}

func TestCatalogApply(t *testing.T) {
	tests := []struct {
		op       OpID
		operands []float64
		want     float64
	}{
		{OpAdd, []float64{2, 3}, 5},
		{OpSubtract, []float64{2, 3}, -1},
		{OpMultiply, []float64{2, 3}, 6},
		{OpDivide, []float64{3, 2}, 1.5},
		{OpPower, []float64{2, 10}, 1024},
		{OpPow10, []float64{2.5, 3}, 2500},
		{OpLog, []float64{1000}, 3},
		{OpSqrt, []float64{81}, 9},
		{OpLn, []float64{1}, 0},
	}

	for _, tt := range tests {
		d, _ := Lookup(tt.op)
		if got := d.Apply(tt.operands); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s%v = %v, want %v", d.Name, tt.operands, got, tt.want)
		}
		if len(tt.operands) != int(d.Arity) {
			t.Errorf("%s: arity %d, test gives %d operands", d.Name, d.Arity, len(tt.operands))
		}
	}
}

func TestDepthTracker(t *testing.T) {
	var d DepthTracker
	if d.CanClose() {
		t.Fatal("nothing to close")
	}

	d.Open()
	d.Open()
	if d.Opening != 2 || d.Highest != 2 || d.Rank(1) != 11 {
		t.Fatalf("after two opens: %+v", d)
	}
	d.Close()
	if d.Opening != 1 || d.Closing != 1 || !d.CanClose() {
		t.Fatalf("after one close: %+v", d)
	}

	// Re-opening at depth 1 gives back the closing slot
	d.Open()
	if d.Opening != 2 || d.Closing != 0 || d.Highest != 2 {
		t.Fatalf("after reopen: %+v", d)
	}
	d.Close()
	d.Close()
	if d != (DepthTracker{}) {
		t.Errorf("closing every group should reset, got %+v", d)
	}

	d.Open()
	d.Close()
	d.UndoClose()
	if d.Opening != 1 || !d.CanClose() {
		t.Errorf("UndoClose: %+v", d)
	}
	d.UndoOpen()
	if d != (DepthTracker{}) {
		t.Errorf("UndoOpen of the last group should reset, got %+v", d)
	}
}

func TestQueue(t *testing.T) {
	var q Queue
	add, _ := Lookup(OpAdd)
	mul, _ := Lookup(OpMultiply)

	q.Enqueue(Entry{Op: OpAdd, Symbol: "+", Rank: 1})
	q.Enqueue(Entry{Op: OpMultiply, Symbol: "×", Rank: 2})
	q.Enqueue(Entry{Op: OpAdd, Symbol: "+", Rank: 6})
	q.Enqueue(Entry{Op: OpAdd, Symbol: "+", Rank: 1})

	sorted := q.Sorted()
	wantRanks := []int{6, 2, 1, 1}
	for i, e := range sorted {
		if e.Rank != wantRanks[i] {
			t.Fatalf("Sorted ranks wrong:\n%s", spewConf.Sdump(sorted))
		}
	}
	if q.Entries()[0].Rank != 1 {
		t.Error("Sorted must not reorder the queue")
	}

	if i := q.FindMatching("+", 1); i != 3 {
		t.Errorf("FindMatching(+, 1) = %d, want the most recent (3)", i)
	}
	if i := q.FindMatching("+", 6); i != 2 {
		t.Errorf("FindMatching(+, 6) = %d, want 2", i)
	}
	if i := q.FindMatching("÷", 2); i != -1 {
		t.Errorf("FindMatching(÷, 2) = %d, want -1", i)
	}

	q.Replace(1, add, EffectiveRank(add.BaseRank, 0))
	if e := q.Entries()[1]; e.Op != OpAdd || e.Rank != 1 {
		t.Errorf("Replace: %+v", e)
	}
	q.Replace(9, mul, 2)

	q.Remove(2)
	q.Remove(-1)
	if q.Len() != 3 || q.FindMatching("+", 6) != -1 {
		t.Errorf("Remove:\n%s", q.Dump())
	}
	if !strings.Contains(q.Dump(), "Symbol") {
		t.Errorf("Dump should show entry fields:\n%s", q.Dump())
	}

	q.Reset()
	if q.Len() != 0 {
		t.Error("Reset left entries")
	}
}
