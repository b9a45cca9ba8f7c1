package lang

// EvalResult is the result of evaluating a single line.
type EvalResult struct {
	Text  string // formatted result or error message
	IsErr bool
	Kind  ErrorKind
}

// CachedLine holds the cached state for a single line.
type CachedLine struct {
	Text    string
	Result  EvalResult
	IsEmpty bool // line was blank or incomplete
}

// EvalState holds the incremental evaluation cache for a list of independent
// expressions, one per line.
type EvalState struct {
	Lines  []CachedLine
	Format *Formatter
}

// EvalAllIncremental evaluates lines, reusing the cached result of every line
// whose text did not change.
func (es *EvalState) EvalAllIncremental(lines []string) []EvalResult {
	results := make([]EvalResult, len(lines))

	// Full reset when line count changes
	if len(lines) != len(es.Lines) {
		es.Lines = make([]CachedLine, len(lines))
		for i := range es.Lines {
			es.Lines[i].Text = "\x00" // force dirty
		}
	}

	for i, line := range lines {
		cached := &es.Lines[i]
		if cached.Text == line {
			results[i] = cached.Result
			continue
		}

		cached.Text = line
		cached.Result = es.evalLine(line)
		cached.IsEmpty = cached.Result == EvalResult{}
		results[i] = cached.Result
	}

	return results
}

func (es *EvalState) evalLine(line string) EvalResult {
	tokens := Lex(line)
	if len(tokens) == 0 {
		return EvalResult{}
	}
	v := Validate(tokens, false)
	switch v.Status {
	case Incomplete:
		return EvalResult{}
	case Invalid:
		return EvalResult{Text: v.Err.Error(), IsErr: true, Kind: v.Err.Kind}
	}

	f := es.Format
	if f == nil {
		f = defaultFormatter
	}
	ev := &Evaluator{Format: f}
	val, err := ev.Evaluate(tokens, QueueFromTokens(tokens))
	if err != nil {
		return EvalResult{Text: err.Error(), IsErr: true, Kind: KindOf(err)}
	}
	return EvalResult{Text: f.Format(val)}
}

// previewCacheSize bounds the previews a session remembers.
const previewCacheSize = 64

// previewCache memoizes previews by buffer text so that deleting back to an
// earlier state does not evaluate it again.
type previewCache struct {
	entries map[string]Preview
}

func (c *previewCache) get(key string) (Preview, bool) {
	p, ok := c.entries[key]
	return p, ok
}

func (c *previewCache) put(key string, p Preview) {
	if c.entries == nil || len(c.entries) >= previewCacheSize {
		c.entries = make(map[string]Preview, previewCacheSize)
	}
	c.entries[key] = p
}
