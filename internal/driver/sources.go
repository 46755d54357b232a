package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"esfront/internal/dialect"
)

// skipDir lists directories ListSources never descends into.
func skipDir(name string) bool {
	if name == "node_modules" || name == "vendor" {
		return true
	}
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// ListSources returns every source file below dir, sorted so runs are
// deterministic.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if dialect.IsSourcePath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// ExpandPaths resolves command-line arguments: directories are listed with
// ListSources, files are taken as given whatever their extension.
// Duplicates are dropped and the first occurrence wins.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := ListSources(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}
