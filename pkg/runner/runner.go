package runner

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inclex/pkg/fsutil"
	"github.com/yaklabco/inclex/pkg/lang"
	"github.com/yaklabco/inclex/pkg/langdetect"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
)

const hashPrefixLen = 12

// Runner lexes files with the languages of a registry.
type Runner struct {
	Registry *lang.Registry
	Logger   *log.Logger
}

// New creates a Runner. A nil registry means lang.Default(); a nil logger
// discards.
func New(registry *lang.Registry, logger *log.Logger) *Runner {
	if registry == nil {
		registry = lang.Default()
	}
	return &Runner{Registry: registry, Logger: logger}
}

// Run discovers files and lexes them with a pool of workers. Outcomes are
// returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	detector := r.detector(opts)
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}
		outcome := r.lexFile(ctx, path, opts, detector)
		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) detector(opts Options) *langdetect.Detector {
	cfg := opts.config()
	return langdetect.New(cfg.Languages, cfg.DefaultLanguage)
}

// LexFile lexes a single file outside of a run.
func (r *Runner) LexFile(ctx context.Context, path string, opts Options) FileOutcome {
	return r.lexFile(ctx, path, opts, r.detector(opts))
}

func (r *Runner) lexFile(ctx context.Context, path string, opts Options, detector *langdetect.Detector) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Bytes = len(content)
	outcome.Hash = hex.EncodeToString(info.Hash[:])[:hashPrefixLen]

	if langdetect.Skippable(path, content) {
		outcome.Skipped = true
		return outcome
	}

	name := opts.Language
	if name == "" {
		name = detector.Detect(path, content)
	}
	language, err := r.Registry.Lookup(name)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.Language = language.Name()

	text := lexer.BytesText(content)
	h := inc.NewTokenHierarchy(text, language, inc.Options{
		Logger:               r.Logger,
		MaxFlySequenceLength: opts.config().MaxFlySequence,
	})
	snap, err := h.Snapshot()
	if err != nil {
		outcome.Error = fmt.Errorf("lex %s: %w", path, err)
		return outcome
	}

	outcome.TokensByLanguage = make(map[string]int)
	count(&outcome, snap, opts.Embedded)
	if opts.Dump {
		depth := 0
		if opts.Embedded {
			depth = -1
		}
		outcome.Lines = inc.DumpDepth(snap, text, depth)
	}

	if r.Logger != nil {
		r.Logger.Debug("lexed file", "path", path, "language", outcome.Language, "tokens", outcome.Tokens)
	}
	return outcome
}

func count(outcome *FileOutcome, list lexer.TokenList, embedded bool) {
	name := list.LanguagePath().Inner().Name()
	for i := range list.TokenCount() {
		outcome.Tokens++
		outcome.TokensByLanguage[name]++
		if !embedded {
			continue
		}
		if child := list.TokenOrEmbedding(i).EmbeddedTokenList(); child != nil {
			outcome.EmbeddedLists++
			count(outcome, child, embedded)
		}
	}
}
