package fsys

import (
	"os"
	"path/filepath"
)

// OS is the default, os-backed FS implementation.
type OS struct{}

// NewOS returns the default filesystem adapter.
func NewOS() OS {
	return OS{}
}

func (OS) Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A path that does not exist (e.g. a probe during resolution)
		// yields ""; an existing path whose symlinks cannot be resolved
		// falls back to its absolute, non-symlink-resolved form.
		if _, statErr := os.Stat(abs); statErr != nil {
			return ""
		}
		return abs
	}
	return resolved
}

func (OS) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OS) Files(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OS) Extension(name string) string {
	return filepath.Ext(name)
}

func (OS) Join(a, b string) string {
	return filepath.Join(a, b)
}

func (OS) ToDirectory(path string) string {
	if path == "" {
		return path
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
