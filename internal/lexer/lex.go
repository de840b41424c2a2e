package lexer

import "unicode/utf8"

// Lex is the pure step function the grammar engine drives: given a source
// and a byte offset into it, produce the next token and the offset just
// past it. Lex never mutates src; callers own position tracking.
//
// This scanner is a reference implementation of the external tokeniser
// named out of scope by the parser's specification (comments, whitespace,
// and escape decoding are intentionally not part of the parser's job) but
// it has to exist for the module to run end to end.
func Lex(src *Source, pos int) (Token, int) {
	text := src.Text
	pos = skipTrivia(text, pos)

	if pos >= len(text) {
		return Token{Kind: End, Loc: locAt(src, pos, pos)}, pos
	}

	start := pos
	r, w := utf8.DecodeRuneInString(text[pos:])

	switch {
	case isIdentStart(r):
		end := pos + w
		for end < len(text) {
			nr, nw := utf8.DecodeRuneInString(text[end:])
			if !isIdentPart(nr) {
				break
			}
			end += nw
		}
		word := text[start:end]
		kind := LookupIdent(word)
		return Token{Kind: kind, Text: word, Loc: locAt(src, start, end)}, end

	case isDigit(r):
		end, kind := scanNumber(text, pos)
		return Token{Kind: kind, Text: text[start:end], Loc: locAt(src, start, end)}, end

	case r == '"':
		end := scanEscapedString(text, pos)
		return Token{Kind: EscapedString, Text: text[start:end], Loc: locAt(src, start, end)}, end

	case r == '`':
		end := scanUnescapedString(text, pos)
		return Token{Kind: UnescapedString, Text: text[start:end], Loc: locAt(src, start, end)}, end

	case r == '\'':
		end := scanCharacter(text, pos)
		return Token{Kind: Character, Text: text[start:end], Loc: locAt(src, start, end)}, end
	}

	end, kind := scanOperator(text, pos)
	return Token{Kind: kind, Text: text[start:end], Loc: locAt(src, start, end)}, end
}

func locAt(src *Source, start, end int) Location {
	line, col := 1, 1
	for i := 0; i < start && i < len(src.Text); i++ {
		if src.Text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Location{Source: src, Start: start, End: end, Line: line, Column: col}
}

func skipTrivia(text string, pos int) int {
	for pos < len(text) {
		switch {
		case text[pos] == ' ' || text[pos] == '\t' || text[pos] == '\n' || text[pos] == '\r':
			pos++
		case pos+1 < len(text) && text[pos] == '/' && text[pos+1] == '/':
			for pos < len(text) && text[pos] != '\n' {
				pos++
			}
		case pos+1 < len(text) && text[pos] == '/' && text[pos+1] == '*':
			pos += 2
			for pos+1 < len(text) && !(text[pos] == '*' && text[pos+1] == '/') {
				pos++
			}
			if pos+1 < len(text) {
				pos += 2
			} else {
				pos = len(text)
			}
		default:
			return pos
		}
	}
	return pos
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func scanNumber(text string, pos int) (int, Kind) {
	start := pos
	if pos+1 < len(text) && text[pos] == '0' && (text[pos+1] == 'x' || text[pos+1] == 'X') {
		pos += 2
		for pos < len(text) && isHexDigit(text[pos]) {
			pos++
		}
		return pos, Hex
	}
	if pos+1 < len(text) && text[pos] == '0' && (text[pos+1] == 'b' || text[pos+1] == 'B') {
		pos += 2
		for pos < len(text) && (text[pos] == '0' || text[pos] == '1') {
			pos++
		}
		return pos, Binary
	}

	for pos < len(text) && isDigit(rune(text[pos])) {
		pos++
	}
	isFloat := false
	if pos+1 < len(text) && text[pos] == '.' && isDigit(rune(text[pos+1])) {
		isFloat = true
		pos++
		for pos < len(text) && isDigit(rune(text[pos])) {
			pos++
		}
	}
	if pos < len(text) && (text[pos] == 'e' || text[pos] == 'E') {
		save := pos
		pos++
		if pos < len(text) && (text[pos] == '+' || text[pos] == '-') {
			pos++
		}
		if pos < len(text) && isDigit(rune(text[pos])) {
			isFloat = true
			for pos < len(text) && isDigit(rune(text[pos])) {
				pos++
			}
		} else {
			pos = save
		}
	}
	_ = start
	if isFloat {
		return pos, Float
	}
	return pos, Int
}

func isHexDigit(b byte) bool {
	return isDigit(rune(b)) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func scanEscapedString(text string, pos int) int {
	pos++ // opening quote
	for pos < len(text) {
		if text[pos] == '\\' && pos+1 < len(text) {
			pos += 2
			continue
		}
		if text[pos] == '"' {
			return pos + 1
		}
		pos++
	}
	return pos
}

func scanUnescapedString(text string, pos int) int {
	pos++ // opening backtick
	for pos < len(text) && text[pos] != '`' {
		pos++
	}
	if pos < len(text) {
		pos++
	}
	return pos
}

func scanCharacter(text string, pos int) int {
	pos++ // opening quote
	if pos < len(text) && text[pos] == '\\' {
		pos += 2
	} else if pos < len(text) {
		_, w := utf8.DecodeRuneInString(text[pos:])
		pos += w
	}
	if pos < len(text) && text[pos] == '\'' {
		pos++
	}
	return pos
}

// operators orders multi-character punctuation before their single-char
// prefixes so the longest match wins.
var operators = []struct {
	text string
	kind Kind
}{
	{"...", Ellipsis},
	{"::", DoubleColon},
	{"=>", FatArrow},
	{"~>", TildeArrow},
	{"<~", LTilde},
	{"->", Arrow},
	{"(", LParen}, {")", RParen},
	{"[", LBracket}, {"]", RBracket},
	{"{", LBrace}, {"}", RBrace},
	{",", Comma}, {";", Semi}, {":", Colon},
	{"=", Assign}, {".", Dot}, {"~", Tilde},
	{"&", Amp}, {"|", Pipe}, {"@", At},
}

func scanOperator(text string, pos int) (int, Kind) {
	for _, op := range operators {
		if pos+len(op.text) <= len(text) && text[pos:pos+len(op.text)] == op.text {
			return pos + len(op.text), op.kind
		}
	}
	// Unknown byte: consume one rune so the parser can resynchronise.
	_, w := utf8.DecodeRuneInString(text[pos:])
	if w == 0 {
		w = 1
	}
	return pos + w, End
}
