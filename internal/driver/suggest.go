package driver

import "esfront/internal/dialect"

// DefaultSuggestThreshold is the evidence score at which SuggestDialect
// proposes enabling an extension.
const DefaultSuggestThreshold = 3

// DialectSuggestion proposes a configuration that would accept syntax the
// file's dialect rejected.
type DialectSuggestion struct {
	Path    string
	Current dialect.Config
	Suggest dialect.Config
	Enable  []dialect.Kind
	// Clean reports whether a reparse with Suggest has no errors.
	Clean bool
}

// SuggestDialect scores the extension hints the parser collected for res.
// Files without errors, cached results and weak evidence yield nil. When a
// suggestion is made the buffer is reparsed with it to see whether the
// errors go away.
func SuggestDialect(res *FileResult, threshold int, opts Options) *DialectSuggestion {
	if res == nil || res.Parse == nil || !res.HasErrors() {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultSuggestThreshold
	}
	classification := (dialect.Classifier{}).Classify(res.Parse.Evidence)
	cfg, added := classification.Suggest(res.Dialect, threshold)
	if len(added) == 0 {
		return nil
	}
	opts.Dialect = &cfg
	opts.Timings = false
	opts.Timer = nil
	retry := parseLoaded(res.FileSet, res.File, opts)
	return &DialectSuggestion{
		Path:    res.Path,
		Current: res.Dialect,
		Suggest: cfg,
		Enable:  added,
		Clean:   !retry.HasErrors(),
	}
}
