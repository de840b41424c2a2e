package lexer

// Scanner is a thin, stateful convenience wrapper around the pure Lex step
// function so callers (chiefly the parser's token stream adapter) don't
// have to thread a position themselves.
type Scanner struct {
	src *Source
	pos int
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src *Source) *Scanner {
	return &Scanner{src: src}
}

// Next returns the next token and advances the scanner past it.
func (s *Scanner) Next() Token {
	tok, next := Lex(s.src, s.pos)
	s.pos = next
	return tok
}
