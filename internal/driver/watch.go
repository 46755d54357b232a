package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"esfront/internal/dialect"
)

// DefaultWatchDebounce groups the bursts of events editors produce when
// saving a file.
const DefaultWatchDebounce = 100 * time.Millisecond

type WatchOptions struct {
	BatchOptions
	Debounce time.Duration
}

// WatchBatch is one round of results. The first batch covers every file;
// later ones only the files that changed.
type WatchBatch struct {
	Initial bool
	Results []*FileResult
	// Removed lists files that disappeared since the last batch.
	Removed []string
}

// Watch checks roots like ExpandPaths, then rechecks source files as they
// change until ctx is cancelled. handle runs on the calling goroutine. Files
// whose content is unchanged are served from opts.Memo, which Watch creates
// when nil.
func Watch(ctx context.Context, roots []string, opts WatchOptions, handle func(WatchBatch)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}
	files, err := ExpandPaths(roots)
	if err != nil {
		return err
	}
	if opts.Memo == nil {
		opts.Memo = NewResultCache(len(files))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	scope := newWatchScope(roots)
	for _, dir := range scope.dirs {
		if err := addRecursive(w, dir); err != nil {
			return err
		}
	}
	for _, dir := range scope.fileDirs() {
		if err := w.Add(dir); err != nil {
			return err
		}
	}

	results, err := ParseFiles(ctx, files, opts.BatchOptions)
	if err != nil {
		return ignoreCancel(ctx, err)
	}
	handle(WatchBatch{Initial: true, Results: results})

	log := opts.logger()
	pending := make(map[string]bool)
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) && scope.coversDir(ev.Name) {
				if err := addRecursive(w, ev.Name); err != nil {
					log.WithField("path", ev.Name).WithError(err).Warn("failed to watch directory")
				}
				// Files written before the watch was added produce no event.
				if created, err := ListSources(ev.Name); err == nil {
					for _, p := range created {
						pending[p] = true
					}
				}
				timer.Reset(opts.Debounce)
				continue
			}
			if !scope.covers(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			timer.Reset(opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		case <-timer.C:
			batch, err := recheck(ctx, pending, opts.BatchOptions)
			clear(pending)
			if err != nil {
				return ignoreCancel(ctx, err)
			}
			if len(batch.Results) > 0 || len(batch.Removed) > 0 {
				handle(batch)
			}
		}
	}
}

func recheck(ctx context.Context, pending map[string]bool, opts BatchOptions) (WatchBatch, error) {
	var batch WatchBatch
	var changed []string
	for path := range pending {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			opts.Memo.Forget(path)
			batch.Removed = append(batch.Removed, path)
			continue
		}
		changed = append(changed, path)
	}
	slices.Sort(changed)
	slices.Sort(batch.Removed)
	results, err := ParseFiles(ctx, changed, opts)
	batch.Results = results
	return batch, err
}

func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// watchScope decides which paths belong to a watch: source files below a
// directory root, or one of the files named explicitly.
type watchScope struct {
	dirs  []string
	files map[string]bool
}

func newWatchScope(roots []string) watchScope {
	s := watchScope{files: make(map[string]bool)}
	for _, r := range roots {
		clean := filepath.Clean(r)
		if isDir(clean) {
			s.dirs = append(s.dirs, clean)
		} else {
			s.files[clean] = true
		}
	}
	return s
}

// fileDirs are the parents of explicit files. Editors often replace a file
// by renaming over it, which only the directory sees.
func (s watchScope) fileDirs() []string {
	var dirs []string
	for f := range s.files {
		dir := filepath.Dir(f)
		if !slices.Contains(dirs, dir) && !s.coversDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

func (s watchScope) covers(path string) bool {
	path = filepath.Clean(path)
	if s.files[path] {
		return true
	}
	return dialect.IsSourcePath(path) && s.coversDir(filepath.Dir(path))
}

func (s watchScope) coversDir(dir string) bool {
	dir = filepath.Clean(dir)
	for _, root := range s.dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rel == "." {
			return true
		}
		skipped := false
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			if skipDir(part) {
				skipped = true
				break
			}
		}
		if !skipped {
			return true
		}
	}
	return false
}
