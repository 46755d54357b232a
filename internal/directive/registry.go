package directive

import (
	"sync"
)

// Registry collects directives from many files parsed concurrently.
type Registry struct {
	mu     sync.Mutex
	byPath map[string][]Directive
	byKind map[Kind]int
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string][]Directive),
		byKind: make(map[Kind]int),
	}
}

// Add records the directives of one file, replacing earlier ones for path.
func (r *Registry) Add(path string, dirs []Directive) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.byPath[path] {
		r.byKind[d.Kind]--
	}
	if len(dirs) == 0 {
		delete(r.byPath, path)
		return
	}
	r.byPath[path] = append([]Directive(nil), dirs...)
	for _, d := range dirs {
		r.byKind[d.Kind]++
	}
}

// For returns the directives recorded for path.
func (r *Registry) For(path string) []Directive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Directive(nil), r.byPath[path]...)
}

// FilterByKind returns every directive of the given kinds, grouped by
// path. No kinds means all of them.
func (r *Registry) FilterByKind(kinds ...Kind) map[string][]Directive {
	r.mu.Lock()
	defer r.mu.Unlock()

	allowed := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	result := make(map[string][]Directive)
	for path, dirs := range r.byPath {
		for _, d := range dirs {
			if len(kinds) == 0 || allowed[d.Kind] {
				result[path] = append(result[path], d)
			}
		}
	}
	return result
}

// Count returns how many directives of kind are recorded.
func (r *Registry) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byKind[kind]
}

// Len returns the total number of directives.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, dirs := range r.byPath {
		n += len(dirs)
	}
	return n
}
