package lexer

// Source is the content of one file together with its origin directory,
// shared (by reference) between the lexer, diagnostics, and every AST node
// whose Location borrows into it.
type Source struct {
	Path   string // canonical file path
	Origin string // directory the file was loaded from
	Text   string
}

// Location is a byte range within a Source, used both for diagnostics and
// as part of an identifier's value: two locations with the same textual
// view denote the same name.
type Location struct {
	Source *Source
	Start  int // byte offset, inclusive
	End    int // byte offset, exclusive
	Line   int // 1-based line of Start
	Column int // 1-based column of Start
}

// IsEmpty reports whether the location spans no text.
func (l Location) IsEmpty() bool {
	return l.Start >= l.End
}

// Text returns the source text covered by the location.
func (l Location) Text() string {
	if l.Source == nil || l.Start < 0 || l.End > len(l.Source.Text) || l.Start > l.End {
		return ""
	}
	return l.Source.Text[l.Start:l.End]
}

// Extend returns a location spanning from l.Start to max(l.End, other.End).
func (l Location) Extend(other Location) Location {
	out := l
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Range returns a location spanning from l's start to other's end. Unlike
// Extend, it does not guard against other ending before l: callers only
// ever merge spans left-to-right, where other always follows l.
func (l Location) Range(other Location) Location {
	out := l
	out.End = other.End
	return out
}

// Path returns the filesystem path this location belongs to, or "" if the
// location carries no source (e.g. a purely synthetic node).
func (l Location) Path() string {
	if l.Source == nil {
		return ""
	}
	return l.Source.Path
}
