package parser

import "github.com/rill-lang/rill/internal/lexer"

// Stream is the token stream adapter: it wraps the external lexer and
// exposes one-token lookahead through a speculative cursor kept separate
// from the consuming cursor. Tokens are pulled from the lexer lazily, one
// at a time, and cached so re-examining the same lookahead window never
// re-lexes.
type Stream struct {
	scanner *lexer.Scanner
	buf     []lexer.Token
	pos     int // index into buf of the next token to be consumed
	ahead   int // offset of the speculative cursor from pos
}

// NewStream returns a stream pulling tokens from src.
func NewStream(src *lexer.Source) *Stream {
	return &Stream{scanner: lexer.NewScanner(src)}
}

func (s *Stream) ensure(idx int) {
	for len(s.buf) <= idx {
		s.buf = append(s.buf, s.scanner.Next())
	}
}

// tokenAt returns the token idx positions past the consuming cursor
// without moving either cursor.
func (s *Stream) tokenAt(idx int) lexer.Token {
	s.ensure(s.pos + idx)
	return s.buf[s.pos+idx]
}

// Current returns the token under the consuming cursor (the one Take
// would consume next), independent of any outstanding speculative peek.
func (s *Stream) Current() lexer.Token {
	return s.tokenAt(0)
}

// Lookahead returns the token the speculative cursor is currently
// resting on.
func (s *Stream) Lookahead() lexer.Token {
	return s.tokenAt(s.ahead)
}

// Peek advances the speculative cursor past the current lookahead token
// if it matches kind (and, when text is non-empty, exact text). Peek
// never consumes: on success the speculative cursor moves past the
// matched token; on failure it does not move.
func (s *Stream) Peek(kind lexer.Kind, text string) bool {
	if s.Lookahead().Is(kind, text) {
		s.ahead++
		return true
	}
	return false
}

// Next advances the speculative cursor past the current lookahead token
// unconditionally, without matching anything.
func (s *Stream) Next() {
	s.ahead++
}

// Rewind resets the speculative cursor back to the consuming cursor,
// discarding any lookahead progress.
func (s *Stream) Rewind() {
	s.ahead = 0
}

// Take consumes exactly one token and returns it. The speculative cursor
// must be at 0 (no outstanding lookahead) when Take is called; this is an
// internal contract (a parser bug, not a recoverable condition), so a
// violation panics rather than corrupting the token window.
func (s *Stream) Take() lexer.Token {
	if s.ahead != 0 {
		panic("parser: Take called with a non-zero speculative cursor")
	}
	tok := s.tokenAt(0)
	s.pos++
	return tok
}

// Has matches the current lookahead against kind/text like Peek, but
// unconditionally rewinds first and, on a successful match, commits the
// speculative advance into the consuming cursor (i.e. consumes the
// matched token) instead of leaving it pending.
func (s *Stream) Has(kind lexer.Kind, text string) bool {
	s.Rewind()
	if !s.Peek(kind, text) {
		return false
	}
	s.pos += s.ahead
	s.ahead = 0
	return true
}

func isOpenDelim(k lexer.Kind) bool {
	return k == lexer.LParen || k == lexer.LBracket || k == lexer.LBrace
}

func matchingClose(open lexer.Kind) lexer.Kind {
	switch open {
	case lexer.LParen:
		return lexer.RParen
	case lexer.LBracket:
		return lexer.RBracket
	case lexer.LBrace:
		return lexer.RBrace
	default:
		return lexer.End
	}
}

func isCloseDelim(k lexer.Kind) bool {
	return k == lexer.RParen || k == lexer.RBracket || k == lexer.RBrace
}

// PeekDelimited speculatively scans forward for a token matching
// target/targetText, treating (), [], {} as balanced groups that are
// skipped as atomic units (their interiors are never inspected for
// target or terminator). It returns false if terminator or End is
// reached at the top level before target is found. The speculative
// cursor is left wherever the scan stopped; callers almost always
// Rewind() afterward, since this is a disambiguation probe, not a
// commitment to consume anything.
func (s *Stream) PeekDelimited(target lexer.Kind, targetText string, terminator lexer.Kind) bool {
	for {
		tok := s.Lookahead()
		if tok.Kind == target && (targetText == "" || tok.Text == targetText) {
			s.Next()
			return true
		}
		if tok.Kind == terminator || tok.Kind == lexer.End {
			return false
		}
		if isOpenDelim(tok.Kind) {
			if !s.skipBalancedGroup() {
				return false
			}
			continue
		}
		s.Next()
	}
}

// consumeBalancedGroup assumes the consuming cursor sits on an opening
// delimiter and consumes tokens (via Take, not speculatively) through its
// matching close, handling nested groups. Used by panic-mode recovery,
// which must actually discard tokens rather than merely look past them.
// Requires the speculative cursor to be at 0.
func (s *Stream) consumeBalancedGroup() bool {
	var stack []lexer.Kind
	stack = append(stack, s.Current().Kind)
	s.Take()

	for len(stack) > 0 {
		tok := s.Current()
		switch {
		case tok.Kind == lexer.End:
			return false
		case isOpenDelim(tok.Kind):
			stack = append(stack, tok.Kind)
			s.Take()
		case isCloseDelim(tok.Kind):
			if tok.Kind == matchingClose(stack[len(stack)-1]) {
				stack = stack[:len(stack)-1]
			}
			s.Take()
		default:
			s.Take()
		}
	}
	return true
}

// skipBalancedGroup assumes the lookahead token is an opening delimiter
// and advances the speculative cursor past its matching close, handling
// arbitrarily nested (), [], {} groups. Returns false if End is reached
// first.
func (s *Stream) skipBalancedGroup() bool {
	var stack []lexer.Kind
	open := s.Lookahead().Kind
	stack = append(stack, open)
	s.Next()

	for len(stack) > 0 {
		tok := s.Lookahead()
		switch {
		case tok.Kind == lexer.End:
			return false
		case isOpenDelim(tok.Kind):
			stack = append(stack, tok.Kind)
			s.Next()
		case isCloseDelim(tok.Kind):
			if tok.Kind == matchingClose(stack[len(stack)-1]) {
				stack = stack[:len(stack)-1]
			}
			s.Next()
		default:
			s.Next()
		}
	}
	return true
}
