package parser

import "github.com/rill-lang/rill/internal/lexer"

// restartBefore implements panic-mode resynchronisation: it consumes
// tokens, skipping balanced (), [], {} groups as atomic units, until the
// current token's kind is one of kinds or the stream is exhausted. It
// never consumes the matching token itself.
func (p *Parser) restartBefore(kinds ...lexer.Kind) {
	from := p.stream.Current().Loc
	p.stream.Rewind()
	for {
		cur := p.stream.Current()
		if cur.Kind == lexer.End || containsKind(kinds, cur.Kind) {
			p.logger.Trace("resynchronised", "from_line", from.Line, "to", cur.Text)
			return
		}
		if isOpenDelim(cur.Kind) {
			if !p.stream.consumeBalancedGroup() {
				return
			}
			continue
		}
		p.stream.Take()
	}
}

// restartAfter is restartBefore but also consumes the token it stopped
// on, when one was found.
func (p *Parser) restartAfter(kinds ...lexer.Kind) {
	p.restartBefore(kinds...)
	if p.stream.Current().Kind != lexer.End {
		p.stream.Take()
	}
}

func containsKind(kinds []lexer.Kind, k lexer.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
