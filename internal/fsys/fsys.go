// Package fsys is the filesystem adapter the module loader is specified
// against: directory listing, canonical-path resolution, and file reading,
// kept behind an interface so the loader never touches os/path/filepath
// directly.
package fsys

// FS is the filesystem surface the module loader needs.
type FS interface {
	// Canonical resolves path to a canonical absolute form, or returns ""
	// if it cannot be resolved.
	Canonical(path string) string
	// IsDirectory reports whether path names a directory.
	IsDirectory(path string) bool
	// Files lists the base names of path's directory entries.
	Files(path string) ([]string, error)
	// ReadFile returns the full contents of path.
	ReadFile(path string) (string, error)
	// Extension returns name's file extension, including the leading dot.
	Extension(name string) string
	// Join joins a and b into a single path.
	Join(a, b string) string
	// ToDirectory returns the directory containing path.
	ToDirectory(path string) string
}
