package ast

// Table is a scope's symbol table: a mapping from name to the declaration
// node it refers to in this scope, plus a non-owning back-reference to the
// enclosing scope's table. A scope exclusively owns its Table and the
// entries within it; Parent is the only upward pointer in the tree and is
// never used to reach ownership, only to resolve names lexically.
type Table struct {
	Parent  *Table
	Entries map[string]*Node
}

// NewTable allocates an empty table linked to parent (nil for the program
// root).
func NewTable(parent *Table) *Table {
	return &Table{Parent: parent, Entries: make(map[string]*Node)}
}

// Get looks up name in this scope only.
func (t *Table) Get(name string) (*Node, bool) {
	n, ok := t.Entries[name]
	return n, ok
}

// GetScope walks upward through the weak parent chain until name is
// found or the chain is exhausted.
func (t *Table) GetScope(name string) (*Node, bool) {
	for scope := t; scope != nil; scope = scope.Parent {
		if n, ok := scope.Entries[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// Insert adds name -> decl if absent. If name is already present, Insert
// leaves the existing entry untouched and returns it with inserted=false;
// the caller (the symbol-table stack) is responsible for turning that into
// a diagnostic.
func (t *Table) Insert(name string, decl *Node) (previous *Node, inserted bool) {
	if existing, ok := t.Entries[name]; ok {
		return existing, false
	}
	t.Entries[name] = decl
	return nil, true
}
