package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/version"
)

// Bump when cachedResult changes shape.
const diskCacheSchemaVersion uint16 = 1

var cacheSalt = "esfront/" + version.Version

// DiskCache stores the diagnostics of clean parses by content hash so
// unchanged files are not reparsed. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedResult is what survives between runs. Spans are stored without a
// FileID and rebound to the new file on load. Lazy fixes are materialised
// before storing; a fix whose builder fails is dropped.
type cachedResult struct {
	Schema      uint16             `msgpack:"schema"`
	Path        string             `msgpack:"path"`
	Corrupt     bool               `msgpack:"corrupt"`
	Dropped     int                `msgpack:"dropped,omitempty"`
	Diagnostics []cachedDiagnostic `msgpack:"diags"`
}

type cachedDiagnostic struct {
	Severity uint8        `msgpack:"sev"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Start    uint32       `msgpack:"s"`
	End      uint32       `msgpack:"e"`
	Notes    []cachedNote `msgpack:"notes,omitempty"`
	Fixes    []cachedFix  `msgpack:"fixes,omitempty"`
}

type cachedNote struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"msg"`
}

type cachedFix struct {
	ID            string       `msgpack:"id,omitempty"`
	Title         string       `msgpack:"title"`
	Kind          uint8        `msgpack:"kind"`
	Applicability uint8        `msgpack:"app"`
	IsPreferred   bool         `msgpack:"pref,omitempty"`
	RequiresAll   bool         `msgpack:"all,omitempty"`
	Edits         []cachedEdit `msgpack:"edits"`
}

type cachedEdit struct {
	Start   uint32 `msgpack:"s"`
	End     uint32 `msgpack:"e"`
	NewText string `msgpack:"new"`
	OldText string `msgpack:"old,omitempty"`
}

// OpenDiskCache opens dir, or $XDG_CACHE_HOME/<app> (falling back to
// ~/.cache/<app>) when dir is empty.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir is the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "parse", hexKey[:2], hexKey+".mp")
}

// Put serializes a result under key via a temp file and rename, so readers
// never see a partial entry.
func (c *DiskCache) Put(key Digest, res *FileResult) (err error) {
	if c == nil || res == nil {
		return nil
	}
	payload := toCached(res)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the diagnostics stored under key and rebinds them to file. The
// returned result has no Parse; ok is false on a miss or a stale schema.
func (c *DiskCache) Get(key Digest, fs *source.FileSet, file *source.File) (res *FileResult, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var payload cachedResult
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return fromCached(&payload, fs, file), true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "parse"))
}

func toCached(res *FileResult) *cachedResult {
	out := &cachedResult{
		Schema:  diskCacheSchemaVersion,
		Path:    res.Path,
		Corrupt: res.Corrupt,
		Dropped: res.Diagnostics.Dropped(),
	}
	ctx := diag.FixBuildContext{FileSet: res.FileSet}
	for _, d := range res.Diagnostics.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			resolved, err := f.Resolve(ctx)
			if err != nil {
				continue
			}
			cf := cachedFix{
				ID:            resolved.ID,
				Title:         resolved.Title,
				Kind:          uint8(resolved.Kind),
				Applicability: uint8(resolved.Applicability),
				IsPreferred:   resolved.IsPreferred,
				RequiresAll:   resolved.RequiresAll,
			}
			for _, e := range resolved.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		out.Diagnostics = append(out.Diagnostics, cd)
	}
	return out
}

func fromCached(payload *cachedResult, fs *source.FileSet, file *source.File) *FileResult {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	bag := diag.NewBag(0)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
				RequiresAll:   cf.RequiresAll,
			}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText})
			}
			d = d.WithFixSuggestion(f)
		}
		bag.Add(d)
	}
	bag.AddDropped(payload.Dropped)
	return &FileResult{
		Path:        file.Path,
		FileSet:     fs,
		File:        file,
		Diagnostics: bag,
		Corrupt:     payload.Corrupt,
		Cached:      true,
	}
}
