// Package analyzer orchestrates a batch run: discover files, parse
// them on a worker pool, score and trim the extracted symbols.
package analyzer

import (
	"context"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/symscope/symscope/internal/config"
	"github.com/symscope/symscope/internal/model"
	"github.com/symscope/symscope/internal/parsers"
	"github.com/symscope/symscope/internal/scoring"
	"github.com/symscope/symscope/internal/selection"
)

// ResultCache stores parse results keyed by path and content hash.
type ResultCache interface {
	Get(path, contentHash string) (*model.ParseResult, bool)
	Put(path, contentHash string, result *model.ParseResult) error
}

// Analyzer runs the full parse, score, and select pipeline over a batch
// of files.
type Analyzer interface {
	// AnalyzeFiles parses the given files concurrently and returns one
	// trimmed ParseResult per file, in input order.
	AnalyzeFiles(ctx context.Context, files []string) ([]*model.ParseResult, *Stats, error)
}

type analyzer struct {
	cfg      *config.Config
	scorer   scoring.Scorer
	selector selection.Selector
	cache    ResultCache
	progress ProgressReporter
}

// New creates an Analyzer. cache may be nil to disable caching;
// progress may be nil to disable reporting.
func New(cfg *config.Config, cache ResultCache, progress ProgressReporter) Analyzer {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &analyzer{
		cfg:      cfg,
		scorer:   scoring.NewScorer(weightsFrom(cfg)),
		selector: selection.NewSelector(cfg.Selection.Thresholds, cfg.Selection.Ceilings),
		cache:    cache,
		progress: progress,
	}
}

// weightsFrom applies configured keyword overrides to the defaults.
func weightsFrom(cfg *config.Config) scoring.Weights {
	weights := scoring.DefaultWeights()
	if len(cfg.Scoring.CriticalKeywords) > 0 {
		weights.CriticalKeywords = cfg.Scoring.CriticalKeywords
	}
	if len(cfg.Scoring.SecondaryKeywords) > 0 {
		weights.SecondaryKeywords = cfg.Scoring.SecondaryKeywords
	}
	return weights
}

// extractorsFrom returns the language backends enabled by configuration.
func extractorsFrom(cfg *config.Config) []parsers.Extractor {
	var extractors []parsers.Extractor
	if cfg.Languages.Python {
		extractors = append(extractors, parsers.NewPythonExtractor())
	}
	if cfg.Languages.Php {
		extractors = append(extractors, parsers.NewPhpExtractor())
	}
	if cfg.Languages.Java {
		extractors = append(extractors, parsers.NewJavaExtractor())
	}
	return extractors
}

func (a *analyzer) AnalyzeFiles(ctx context.Context, files []string) ([]*model.ParseResult, *Stats, error) {
	startTime := time.Now()
	stats := NewStats()
	stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return []*model.ParseResult{}, stats, nil
	}

	a.progress.OnAnalysisStart(len(files))

	workers := a.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	type job struct {
		idx  int
		path string
	}

	jobs := make(chan job)
	results := make([]*model.ParseResult, len(files))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Grammar parsers carry mutable state, so each worker owns
			// its own engine for the lifetime of the pool.
			engine := parsers.NewEngine(extractorsFrom(a.cfg)...)
			defer engine.Close()

			for j := range jobs {
				result := a.analyzeOne(ctx, engine, j.path, stats, &mu)
				results[j.idx] = result
				a.progress.OnFileAnalyzed(j.path)
			}
		}()
	}

	for i, path := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, nil, ctx.Err()
		case jobs <- job{idx: i, path: path}:
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	for _, result := range results {
		if result.Failed() {
			stats.FilesFailed++
			log.Printf("Warning: %s: %s\n", result.FilePath, result.Error)
		} else {
			stats.FilesAnalyzed++
		}
		stats.SymbolsRetained += len(result.Symbols)
	}
	stats.Duration = time.Since(startTime)
	mu.Unlock()

	a.progress.OnAnalysisComplete(stats)
	return results, stats, nil
}

// analyzeOne parses, scores, and trims a single file, consulting the
// cache when one is configured.
func (a *analyzer) analyzeOne(ctx context.Context, engine *parsers.Engine, path string, stats *Stats, mu *sync.Mutex) *model.ParseResult {
	var contentHash string
	if a.cache != nil {
		contentHash = hashFile(path)
		if contentHash != "" {
			if cached, ok := a.cache.Get(path, contentHash); ok {
				mu.Lock()
				stats.CacheHits++
				mu.Unlock()
				return cached
			}
		}
	}

	result := engine.Parse(ctx, path)

	mu.Lock()
	stats.SymbolsExtracted += len(result.Symbols)
	mu.Unlock()

	scoreCtx := scoring.Context{
		Language:     result.Language,
		Framework:    DetectFramework(result),
		FileRole:     DetectFileRole(path),
		TotalSymbols: len(result.Symbols),
	}
	result = a.scoreAndSelect(result, scoreCtx)

	if a.cache != nil && contentHash != "" {
		if err := a.cache.Put(path, contentHash, result); err != nil {
			log.Printf("Warning: failed to cache %s: %v\n", path, err)
		}
	}
	return result
}

// scoreAndSelect attaches importance scores and trims the symbol list
// to the file's size-tier ceiling. Calling it again on its own output
// changes nothing.
func (a *analyzer) scoreAndSelect(result *model.ParseResult, ctx scoring.Context) *model.ParseResult {
	for i := range result.Symbols {
		score := a.scorer.Score(result.Symbols[i], ctx)
		result.Symbols[i].Score = &score
	}
	result.Symbols = a.selector.Select(result.Symbols, result.LineCount)
	return result
}

// ScoreAndSelect scores and trims an already-parsed result using the
// given configuration. Idempotent: re-invoking on an already-trimmed
// result is a no-op.
func ScoreAndSelect(result *model.ParseResult, ctx scoring.Context, cfg *config.Config) *model.ParseResult {
	a := &analyzer{
		scorer:   scoring.NewScorer(weightsFrom(cfg)),
		selector: selection.NewSelector(cfg.Selection.Thresholds, cfg.Selection.Ceilings),
	}
	return a.scoreAndSelect(result, ctx)
}
