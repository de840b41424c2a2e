// Package intern holds the parser's fixed reserved names: the "apply"
// selector used by application sugar, the "create" constructor
// synthesized for a class whose fields are all initialised, and the
// "$module-<n>" names assigned to imported modules. These are plain
// string constants (and one naming function) rather than node handles,
// since every call site stores the name directly on a Name field -
// application sugar and synthetic create never go through a standalone
// Ident node.
package intern

import "strconv"

const (
	Apply  = "apply"
	Create = "create"
)

// ModuleName synthesizes the "$module-<index>" handle assigned to the
// i-th entry of the module loader's import list.
func ModuleName(index int) string {
	return "$module-" + strconv.Itoa(index)
}
