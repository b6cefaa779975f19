package syntax

import (
	"golf/report"
	"unicode/utf8"
)

// Tokenizer is a character cursor over a source text.  It tracks the position
// of the cursor and supports a stack of checkpoints so that matchers can
// speculatively consume input and undo it when they fail.
type Tokenizer struct {
	// The source text as a random-access sequence of runes.
	src []rune

	// The index of the next unconsumed rune.
	index int

	// The line of the cursor (1-indexed) and the number of runes consumed on
	// that line.
	line, col int

	// The stack of saved cursor states.
	checkpoints []checkpoint
}

// checkpoint is a saved cursor state.
type checkpoint struct {
	index, line, col int
}

// NewTokenizer creates a new tokenizer at the start of the given source text.
// Invalid UTF-8 bytes are decoded as the replacement character.
func NewTokenizer(src string) *Tokenizer {
	runes := make([]rune, 0, utf8.RuneCountInString(src))
	for _, r := range src {
		runes = append(runes, r)
	}

	return &Tokenizer{src: runes, line: 1}
}

// Peek returns the rune n places past the cursor (Peek(0) is the next rune)
// without consuming anything.  It returns false past the end of the input.
func (t *Tokenizer) Peek(n int) (rune, bool) {
	if t.EndAt(n) {
		return 0, false
	}

	return t.src[t.index+n], true
}

// Advance consumes n runes, updating the position.  Consuming past the end of
// the input is a no-op.
func (t *Tokenizer) Advance(n int) {
	for i := 0; i < n && !t.End(); i++ {
		if t.src[t.index] == '\n' {
			t.line++
			t.col = 0
		} else {
			t.col++
		}

		t.index++
	}
}

// Read consumes and returns the next rune.
func (t *Tokenizer) Read() (rune, bool) {
	r, ok := t.Peek(0)
	if ok {
		t.Advance(1)
	}

	return r, ok
}

// End reports whether the whole input has been consumed.
func (t *Tokenizer) End() bool {
	return t.index >= len(t.src)
}

// EndAt reports whether the rune n places past the cursor is past the end of
// the input.
func (t *Tokenizer) EndAt(n int) bool {
	return t.index+n >= len(t.src)
}

// HasPrefix reports whether the unconsumed input begins with s.
func (t *Tokenizer) HasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if c, ok := t.Peek(i); !ok || c != r {
			return false
		}

		i++
	}

	return true
}

// Position returns the position of the next unconsumed rune.
func (t *Tokenizer) Position() report.TextPosition {
	return report.TextPosition{Line: t.line, Col: t.col + 1}
}

// AtLineStart reports whether nothing has been consumed on the current line.
func (t *Tokenizer) AtLineStart() bool {
	return t.col == 0
}

// PrevSignificant returns the closest consumed rune that is not a space or a
// tab.  It returns false if there is no such rune on the current line.
func (t *Tokenizer) PrevSignificant() (rune, bool) {
	for i := t.index - 1; i >= 0; i-- {
		switch r := t.src[i]; r {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return 0, false
		default:
			return r, true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// TakeCheckpoint saves the current cursor state onto the checkpoint stack.
func (t *Tokenizer) TakeCheckpoint() {
	t.checkpoints = append(t.checkpoints, checkpoint{index: t.index, line: t.line, col: t.col})
}

// Commit discards the most recent checkpoint, keeping the current state.
func (t *Tokenizer) Commit() {
	if len(t.checkpoints) > 0 {
		t.checkpoints = t.checkpoints[:len(t.checkpoints)-1]
	}
}

// Rollback restores the most recent checkpoint and discards it.
func (t *Tokenizer) Rollback() {
	if len(t.checkpoints) == 0 {
		return
	}

	cp := t.checkpoints[len(t.checkpoints)-1]
	t.checkpoints = t.checkpoints[:len(t.checkpoints)-1]

	t.index, t.line, t.col = cp.index, cp.line, cp.col
}

// CheckpointPosition returns the position saved by the most recent checkpoint:
// the start of the token currently being matched.
func (t *Tokenizer) CheckpointPosition() report.TextPosition {
	if len(t.checkpoints) == 0 {
		return t.Position()
	}

	cp := t.checkpoints[len(t.checkpoints)-1]
	return report.TextPosition{Line: cp.line, Col: cp.col + 1}
}

// TryMatch runs a matcher inside a checkpoint.  A successful match is
// committed; a failed or erroneous match is rolled back so the tokenizer is
// left exactly as it was.
func (t *Tokenizer) TryMatch(m Matcher) (*Token, error) {
	t.TakeCheckpoint()

	tok, err := m.Match(t)
	if err != nil || tok == nil {
		t.Rollback()
		return nil, err
	}

	t.Commit()
	return tok, nil
}
