package lang

import (
	"io"
	"log"
)

// Recorder receives every committed expression and its formatted result.
type Recorder interface {
	Record(expression, result string)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger traces queue and depth changes and evaluation steps to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithRecorder sets the collaborator notified on every successful commit.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithFormat sets the digit budgets used for entry limits, rounding and
// display.
func WithFormat(cfg FormatConfig) Option {
	return func(s *Session) {
		s.format = NewFormatter(cfg)
	}
}

// Session is one expression under construction: the buffer, the operand
// being typed, the pending operations and the depth tracker. Every method
// runs to completion before returning; a Session is not safe for concurrent
// use.
type Session struct {
	tokens  []Token // buffer, excluding the operand being typed
	operand Operand
	queue   Queue
	depth   DepthTracker

	// fresh is set after a commit seeded the operand with the result
	fresh bool

	format   *Formatter
	logger   *log.Logger
	recorder Recorder
	cache    previewCache
}

// Result is a committed expression.
type Result struct {
	Expression string
	Text       string
	Value      float64
}

// Preview is the live result for the current buffer. OK is false when no
// preview is possible; Verdict then says why.
type Preview struct {
	Text    string
	Value   float64
	OK      bool
	Verdict Verdict
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{format: defaultFormatter}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s
}

// Buffer returns the expression text. An empty buffer reads "0".
func (s *Session) Buffer() string {
	toks := s.bufferTokens()
	if len(toks) == 0 {
		return "0"
	}
	return Render(toks)
}

// Tokens returns a copy of the buffer tokens, the operand being typed
// included.
func (s *Session) Tokens() []Token {
	return s.bufferTokens()
}

// Operand returns the numeral being typed.
func (s *Session) Operand() Operand { return s.operand }

// Depth returns the depth tracker state.
func (s *Session) Depth() DepthTracker { return s.depth }

// Pending returns the pending operations in insertion order.
func (s *Session) Pending() []Entry { return s.queue.Entries() }

func (s *Session) bufferTokens() []Token {
	out := make([]Token, len(s.tokens), len(s.tokens)+1)
	copy(out, s.tokens)
	if !s.operand.Empty() {
		out = append(out, numberToken(s.operand.String(), s.depth.Opening))
	}
	return out
}

// last returns the type of the final buffer token, operand included.
func (s *Session) last() (TokenType, bool) {
	if !s.operand.Empty() {
		return TOKEN_NUMBER, true
	}
	if len(s.tokens) == 0 {
		return 0, false
	}
	return s.tokens[len(s.tokens)-1].Type, true
}

// endsComplete reports whether the buffer ends in something an operator or
// ')' may follow: a complete operand or a closed group.
func (s *Session) endsComplete() bool {
	if !s.operand.Empty() {
		return s.operand.Complete()
	}
	typ, ok := s.last()
	return ok && typ == TOKEN_RPAREN
}

// startFresh discards a committed result when new input begins a new
// expression instead of continuing from it.
func (s *Session) startFresh() {
	if s.fresh {
		s.Clear()
	}
}

// AppendDigit appends a decimal digit, inserting a multiplication after a
// closed group.
func (s *Session) AppendDigit(d byte) string {
	if d < '0' || d > '9' {
		return s.Buffer()
	}
	s.startFresh()
	if typ, ok := s.last(); ok && typ == TOKEN_RPAREN {
		s.implicitMultiply()
	}
	cfg := s.format.Config()
	s.operand.AppendDigit(d, cfg.IntegerDigits, cfg.FractionDigits)
	return s.Buffer()
}

// AppendDecimalPoint starts the fractional part of the operand.
func (s *Session) AppendDecimalPoint() string {
	s.startFresh()
	if typ, ok := s.last(); ok && typ == TOKEN_RPAREN {
		s.implicitMultiply()
	}
	s.operand.AppendPoint()
	return s.Buffer()
}

// AppendPercent marks the operand as a percentage.
func (s *Session) AppendPercent() string {
	s.fresh = false
	s.operand.AppendPercent()
	return s.Buffer()
}

// AppendOperator appends a binary operator. Typed over a trailing operator it
// replaces it, except that '−' after ×, ÷, ^ or E starts a negative operand.
// On an empty buffer the operator applies to zero.
func (s *Session) AppendOperator(op OpID) string {
	d, ok := Lookup(op)
	if !ok || d.Arity != Binary {
		return s.Buffer()
	}
	s.fresh = false

	typ, ok := s.last()
	switch {
	case !ok:
		s.operand.Set("0")
	case typ == TOKEN_OPERATOR:
		prev := s.tokens[len(s.tokens)-1]
		if op == OpSubtract && prev.Op != OpAdd && prev.Op != OpSubtract {
			s.operand.StartNegative()
		} else {
			s.replaceOperator(d)
		}
		return s.Buffer()
	case typ == TOKEN_LPAREN:
		if op == OpSubtract {
			s.operand.StartNegative()
		}
		return s.Buffer()
	case !s.endsComplete():
		return s.Buffer()
	}

	s.push(opToken(d, s.depth.Opening))
	return s.Buffer()
}

// replaceOperator overtypes the trailing operator with d.
func (s *Session) replaceOperator(d OperatorDescriptor) {
	last := len(s.tokens) - 1
	prev := s.tokens[last]
	pd, _ := Lookup(prev.Op)
	if i := s.queue.FindMatching(pd.Symbol, s.depth.Rank(pd.BaseRank)); i >= 0 {
		s.queue.Replace(i, d, s.depth.Rank(d.BaseRank))
	}
	s.tokens[last] = opToken(d, s.depth.Opening)
	s.logger.Printf("replace %s with %s\n%s", pd.Symbol, d.Symbol, s.queue.Dump())
}

// AppendFunction appends a unary function and opens its argument group.
func (s *Session) AppendFunction(fn OpID) string {
	d, ok := Lookup(fn)
	if !ok || d.Arity != Unary {
		return s.Buffer()
	}
	s.startFresh()
	if s.endsComplete() {
		s.implicitMultiply()
	} else if !s.operand.Empty() {
		return s.Buffer()
	}
	s.push(opToken(d, s.depth.Opening))
	return s.OpenGroup()
}

// OpenGroup appends '(', inserting a multiplication after an operand or a
// closed group.
func (s *Session) OpenGroup() string {
	s.startFresh()
	if s.endsComplete() {
		s.implicitMultiply()
	} else if !s.operand.Empty() {
		return s.Buffer()
	}
	s.tokens = append(s.tokens, Token{Type: TOKEN_LPAREN, Literal: "(", Depth: s.depth.Opening})
	s.depth.Open()
	s.logf("open")
	return s.Buffer()
}

// CloseGroup appends ')' when a group is open and the buffer ends in a
// complete operand or group.
func (s *Session) CloseGroup() string {
	if !s.depth.CanClose() || !s.endsComplete() {
		return s.Buffer()
	}
	s.fresh = false
	s.flushOperand()
	s.depth.Close()
	s.tokens = append(s.tokens, Token{Type: TOKEN_RPAREN, Literal: ")", Depth: s.depth.Opening})
	s.logf("close")
	return s.Buffer()
}

// ToggleGroup is the single parentheses key: it opens a group where an
// operand is expected, closes one where that is allowed, and otherwise
// multiplies by a new group.
func (s *Session) ToggleGroup() string {
	if s.fresh || !s.endsComplete() {
		return s.OpenGroup()
	}
	if s.depth.CanClose() {
		return s.CloseGroup()
	}
	return s.OpenGroup()
}

// DeleteLastToken removes the last character of the operand, or else the
// last token. Deleting an operator dequeues the entry with its symbol at the
// current depth; deleting a function's '(' removes the function as well.
func (s *Session) DeleteLastToken() string {
	s.fresh = false
	if !s.operand.Empty() {
		s.operand.Backspace()
		return s.Buffer()
	}
	if len(s.tokens) == 0 {
		return s.Buffer()
	}

	last := s.tokens[len(s.tokens)-1]
	s.tokens = s.tokens[:len(s.tokens)-1]
	switch last.Type {
	case TOKEN_OPERATOR, TOKEN_FUNCTION:
		s.dequeue(last)
	case TOKEN_RPAREN:
		s.depth.UndoClose()
		s.logf("reopen")
	case TOKEN_LPAREN:
		s.depth.UndoOpen()
		s.logf("unopen")
		if n := len(s.tokens); n > 0 && s.tokens[n-1].Type == TOKEN_FUNCTION {
			s.dequeue(s.tokens[n-1])
			s.tokens = s.tokens[:n-1]
		}
	}

	// The operand before the deleted token becomes editable again
	if n := len(s.tokens); n > 0 && s.tokens[n-1].Type == TOKEN_NUMBER {
		s.operand.Set(s.tokens[n-1].Literal)
		s.tokens = s.tokens[:n-1]
	}
	return s.Buffer()
}

func (s *Session) dequeue(t Token) {
	d, ok := Lookup(t.Op)
	if !ok {
		return
	}
	if i := s.queue.FindMatching(d.Symbol, s.depth.Rank(d.BaseRank)); i >= 0 {
		s.queue.Remove(i)
	}
	s.logger.Printf("dequeue %s\n%s", d.Symbol, s.queue.Dump())
}

// Clear resets the session to an empty buffer.
func (s *Session) Clear() string {
	s.tokens = nil
	s.operand.Reset()
	s.queue.Reset()
	s.depth.Reset()
	s.fresh = false
	return s.Buffer()
}

// Preview evaluates the buffer as it stands. Incomplete or erroneous input
// yields OK == false with the Validator's verdict.
func (s *Session) Preview() Preview {
	toks := s.bufferTokens()
	key := Render(toks)
	if p, ok := s.cache.get(key); ok {
		return p
	}
	p := s.preview(toks)
	s.cache.put(key, p)
	return p
}

func (s *Session) preview(toks []Token) Preview {
	v := Validate(toks, false)
	if v.Status != Valid {
		return Preview{Verdict: v}
	}
	val, err := s.evaluator().Evaluate(toks, &s.queue)
	if err != nil {
		if k := KindOf(err); (k == DivisionByZero || k == InvalidLogInput) && isGrowingZero(toks, len(toks)-1) {
			return Preview{Verdict: Verdict{Status: Incomplete}}
		}
		return Preview{Verdict: invalid(asEvalError(err))}
	}
	return Preview{Text: s.format.Format(val), Value: val, OK: true, Verdict: v}
}

// Commit validates and evaluates the buffer. On success the queue, depth
// tracker and operand are reset, the recorder is notified and the result
// seeds the next expression. On error the session is left untouched.
func (s *Session) Commit() (Result, error) {
	toks := s.bufferTokens()
	if v := Validate(toks, true); v.Status != Valid {
		return Result{}, v.Err
	}
	val, err := s.evaluator().Evaluate(toks, &s.queue)
	if err != nil {
		return Result{}, err
	}

	res := Result{Expression: Render(autoClose(toks)), Text: s.format.Format(val), Value: val}
	// '=' again on a shown result is not a new calculation
	repeat := s.fresh && len(s.tokens) == 0
	if s.recorder != nil && !repeat {
		s.recorder.Record(res.Expression, res.Text)
	}
	s.logger.Printf("commit %s = %s", res.Expression, res.Text)

	s.Clear()
	s.operand.Set(res.Text)
	s.fresh = true
	return res, nil
}

// Recall seeds the session with a previously committed result. The next key
// continues from it or starts afresh, as after Commit.
func (s *Session) Recall(text string) error {
	if _, err := ParseOperand(text); err != nil {
		return err
	}
	s.Clear()
	s.operand.Set(text)
	s.fresh = true
	return nil
}

func (s *Session) evaluator() *Evaluator {
	return &Evaluator{Format: s.format, Logger: s.logger}
}

// implicitMultiply inserts '×' as if the key had been pressed.
func (s *Session) implicitMultiply() {
	s.AppendOperator(OpMultiply)
}

// push flushes the operand and appends an operator or function token,
// enqueuing it at the current depth.
func (s *Session) push(t Token) {
	s.flushOperand()
	s.tokens = append(s.tokens, t)
	d, _ := Lookup(t.Op)
	s.queue.Enqueue(Entry{Op: d.ID, Symbol: d.Symbol, Rank: s.depth.Rank(d.BaseRank)})
	s.logger.Printf("enqueue %s\n%s", d.Symbol, s.queue.Dump())
}

func (s *Session) flushOperand() {
	if s.operand.Empty() {
		return
	}
	s.tokens = append(s.tokens, numberToken(s.operand.String(), s.depth.Opening))
	s.operand.Reset()
}

func (s *Session) logf(event string) {
	s.logger.Printf("%s: opening=%d closing=%d highest=%d", event, s.depth.Opening, s.depth.Closing, s.depth.Highest)
}

func asEvalError(err error) *EvalError {
	if e, ok := err.(*EvalError); ok {
		return e
	}
	return malformed(err.Error())
}
