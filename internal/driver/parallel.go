package driver

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"esfront/internal/diag"
	"esfront/internal/source"
	"esfront/internal/trace"
)

// BatchOptions control ParseFiles.
type BatchOptions struct {
	Options
	// Jobs bounds the worker pool; zero uses the config, then GOMAXPROCS.
	Jobs int
	Sink ProgressSink
	// Cache, when set, serves unchanged files from disk.
	Cache *DiskCache
	// Memo, when set, serves unchanged files from memory (watch mode).
	Memo *ResultCache
}

func (o BatchOptions) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 && o.Config != nil {
		jobs = o.Config.Parse.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// ringer is implemented by tracers that keep recent events in memory.
type ringer interface {
	Ring() *trace.RingTracer
}

// ParseFiles parses paths on a bounded worker pool. Every task owns its
// FileSet and produces one immutable result; results come back in input
// order. A file that cannot be read yields a result with an io/load-file
// diagnostic rather than an error. The error is non-nil only when ctx is
// cancelled or a worker panics.
func ParseFiles(ctx context.Context, paths []string, opts BatchOptions) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
		opts.Tracer = tracer
	}
	batch := trace.Begin(tracer, trace.ScopeDriver, "parse-files", 0).WithExtra("files", strconv.Itoa(len(paths)))
	defer batch.End("")

	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}
	emit(opts.Sink, Event{Stage: StageParse, Status: StatusWorking})
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(paths)))
	for i, path := range paths {
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					err = workerPanic(path, r, tracer, opts.logger())
					emit(opts.Sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
				}
			}()
			span := trace.Begin(tracer, trace.ScopeFile, "file", batch.ID()).WithExtra("path", path)
			results[i] = parseOne(path, opts)
			span.End(strconv.Itoa(results[i].Diagnostics.Len()) + " diagnostics")
			return nil
		})
	}
	err := g.Wait()

	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(opts.Sink, Event{Stage: StageParse, Status: status, Err: err, Elapsed: time.Since(started)})
	opts.logger().WithFields(logrus.Fields{
		"files":   len(paths),
		"elapsed": time.Since(started),
	}).Debug("batch finished")
	return results, err
}

func parseOne(path string, opts BatchOptions) *FileResult {
	started := time.Now()
	emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		res := loadFailure(fs, path, err)
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Diagnostics: 1})
		opts.logger().WithField("path", path).WithError(err).Warn("failed to load file")
		return res
	}
	file := fs.Get(id)

	// Timings describe this run, so they never come from a cache.
	useCache := !opts.Timings && (opts.Cache != nil || opts.Memo != nil)
	var key Digest
	if useCache {
		key = cacheKey(Digest(file.Hash), opts.dialectFor(path), opts.maxDiagnostics(), opts.suppress())
		if res, ok := opts.Memo.Get(file.Path, key); ok {
			emit(opts.Sink, Event{File: path, Stage: StageCache, Status: StatusDone, Diagnostics: res.Diagnostics.Len()})
			return res
		}
		res, ok, err := opts.Cache.Get(key, fs, file)
		if err != nil {
			opts.logger().WithField("path", path).WithError(err).Warn("ignoring cache entry")
		}
		if ok {
			res.Elapsed = time.Since(started)
			opts.Memo.Put(key, res)
			emit(opts.Sink, Event{File: path, Stage: StageCache, Status: StatusDone, Elapsed: res.Elapsed, Diagnostics: res.Diagnostics.Len()})
			return res
		}
	}

	emit(opts.Sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
	res := parseLoaded(fs, file, opts.Options)
	if useCache {
		opts.Memo.Put(key, res)
		if err := opts.Cache.Put(key, res); err != nil {
			opts.logger().WithField("path", path).WithError(err).Warn("failed to store cache entry")
		}
	}
	emit(opts.Sink, Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: res.Elapsed, Diagnostics: res.Diagnostics.Len()})
	return res
}

// loadFailure stores an empty buffer under path so the diagnostic still
// prints with a file name.
func loadFailure(fs *source.FileSet, path string, err error) *FileResult {
	id := fs.AddVirtual(path, nil)
	file := fs.Get(id)
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return &FileResult{
		Path:        path,
		FileSet:     fs,
		File:        file,
		Diagnostics: bag,
	}
}

func workerPanic(path string, r any, tracer trace.Tracer, log logrus.FieldLogger) error {
	entry := log.WithField("path", path).WithField("stack", string(debug.Stack()))
	if rt, ok := tracer.(ringer); ok && rt.Ring() != nil {
		var buf bytes.Buffer
		if err := rt.Ring().Dump(&buf, trace.FormatText); err == nil {
			entry = entry.WithField("trace", buf.String())
		}
	}
	entry.Error("parser panicked")
	return fmt.Errorf("internal error while parsing %s: %v", path, r)
}
