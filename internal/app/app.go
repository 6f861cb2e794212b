// Package app wires the adapters to the search core and runs the scan
// pipeline. The core stays single-threaded per document; the optional
// worker pool here parallelizes across documents only.
package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/corey/conceptscan/internal/adapters/ahocorasick"
	"github.com/corey/conceptscan/internal/adapters/bbolt"
	appconfig "github.com/corey/conceptscan/internal/adapters/config"
	"github.com/corey/conceptscan/internal/adapters/docstore"
	"github.com/corey/conceptscan/internal/domain/pattern"
	"github.com/corey/conceptscan/internal/domain/result"
	"github.com/corey/conceptscan/internal/domain/search"
	"github.com/corey/conceptscan/internal/domain/summary"
	"github.com/corey/conceptscan/internal/render"
	"github.com/corey/conceptscan/internal/ports"
)

// Options configures one App instance. Zero values fall back to the
// package defaults where noted.
type Options struct {
	ConfigPath string
	Dirs       []string
	Include    []string
	Exclude    []string
	Recursive  bool

	SectionSep int // default result.DefaultSectionSep
	SectionMax int // 0 disables the cap

	Format         string // "text" or "html"
	UppercaseMatch bool
	Output         io.Writer

	Summary  bool // append per-concept term counts after each document
	FoldCase bool // merge case variants in the summary

	Workers   int    // >1 scans documents on a worker pool
	CachePath string // bbolt path; "" disables caching
}

// App holds the assembled pipeline for one configuration.
type App struct {
	opts     Options
	searcher *search.Searcher
	source   *docstore.LocalSource
	store    ports.Storage
}

// New loads the configuration, builds the registry and pre-filter, and
// assembles the document source and cache.
func New(opts Options) (*App, error) {
	if opts.SectionSep == 0 {
		opts.SectionSep = result.DefaultSectionSep
	}

	cfg, err := appconfig.NewLoader().Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	registry, err := pattern.Build(cfg)
	if err != nil {
		return nil, err
	}
	if registry.Len() == 0 {
		log.Warn().Str("config", opts.ConfigPath).Msg("no search patterns configured")
	}

	prefilter, err := buildPrefilter(registry)
	if err != nil {
		return nil, err
	}

	source := docstore.NewLocalSource()
	for _, dir := range opts.Dirs {
		source.AddDir(docstore.Dir{
			Path:      dir,
			Include:   opts.Include,
			Exclude:   opts.Exclude,
			Recursive: opts.Recursive,
		})
	}

	a := &App{
		opts:     opts,
		searcher: search.New(registry, prefilter),
		source:   source,
	}
	if opts.CachePath != "" {
		store, err := bbolt.NewStore(opts.CachePath)
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	return a, nil
}

// buildPrefilter picks the cheapest sound fast-reject test: an
// Aho-Corasick automaton when the whole configuration is literal terms,
// otherwise the regex super pattern.
func buildPrefilter(registry *pattern.Registry) (ports.Prefilter, error) {
	if !registry.HasWildcards() && !registry.HasExplicitPatterns() {
		if ac := ahocorasick.New(registry.LiteralTerms()); ac != nil {
			log.Debug().Int("terms", ac.TermCount()).Msg("using aho-corasick prefilter")
			return ac, nil
		}
		return nil, nil
	}
	pf, err := search.NewRegexPrefilter(registry)
	if err != nil {
		return nil, err
	}
	if pf == nil {
		return nil, nil
	}
	return pf, nil
}

// Close releases the cache store, if any.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Searcher exposes the assembled searcher.
func (a *App) Searcher() *search.Searcher { return a.searcher }

// Store exposes the cache store, nil when caching is disabled.
func (a *App) Store() ports.Storage { return a.store }

// Concepts returns the configured concept names in registration order.
func (a *App) Concepts() []string {
	return a.searcher.Registry().Concepts()
}

// Scan searches every document and renders results to the output writer.
// With Workers > 1 the per-document searches run on a worker pool;
// rendering stays in document order either way.
func (a *App) Scan() error {
	writer, err := a.writer()
	if err != nil {
		return err
	}
	if a.opts.Workers > 1 {
		return a.scanParallel(writer)
	}
	docs := a.source.Documents()
	for doc, ok := docs.Next(); ok; doc, ok = docs.Next() {
		dr := a.searchOrLoad(doc)
		if dr == nil {
			continue
		}
		if err := a.emit(writer, dr); err != nil {
			return err
		}
	}
	return nil
}

// searchOrLoad returns the cached result for the document's content hash
// when present, otherwise runs the search.
func (a *App) searchOrLoad(doc *ports.Document) *result.DocResult {
	if a.store != nil {
		data, err := a.store.LoadResult(doc.ContentHash())
		if err != nil {
			log.Warn().Str("doc", doc.Name).Err(err).Msg("cache lookup failed")
		} else if data != nil {
			dr, err := result.UnmarshalResult(data, a.store)
			if err == nil {
				log.Debug().Str("doc", doc.Name).Msg("cache hit")
				return dr
			}
			log.Warn().Str("doc", doc.Name).Err(err).Msg("cached result unusable, rescanning")
		}
	}
	return a.searcher.SearchDocument(doc)
}

func (a *App) scanParallel(writer render.Writer) error {
	pool, err := ants.NewPool(a.opts.Workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		ordered []indexedResult
	)
	docs := a.source.Documents()
	for i := 0; ; i++ {
		doc, ok := docs.Next()
		if !ok {
			break
		}
		i, doc := i, doc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if dr := a.searchOrLoad(doc); dr != nil {
				mu.Lock()
				ordered = append(ordered, indexedResult{i, dr})
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	sort.Slice(ordered, func(x, y int) bool { return ordered[x].index < ordered[y].index })
	for _, r := range ordered {
		if err := a.emit(writer, r.dr); err != nil {
			return err
		}
	}
	return nil
}

type indexedResult struct {
	index int
	dr    *result.DocResult
}

// ScanDocument searches a single file, used by watch mode.
func (a *App) ScanDocument(path string) error {
	writer, err := a.writer()
	if err != nil {
		return err
	}
	doc := a.source.ReadDocument(path)
	if doc == nil {
		return nil
	}
	dr := a.searchOrLoad(doc)
	if dr == nil {
		return nil
	}
	return a.emit(writer, dr)
}

// emit sections the result, persists it to the cache, and renders it.
func (a *App) emit(writer render.Writer, dr *result.DocResult) error {
	dr.SectionResults(a.opts.SectionSep, a.opts.SectionMax)
	if a.store != nil {
		a.cache(dr)
	}
	if err := writer.WriteDocResult(dr); err != nil {
		return err
	}
	if a.opts.Summary {
		return a.writeSummary(dr)
	}
	return nil
}

// writeSummary appends the per-concept term counts for one document.
func (a *App) writeSummary(dr *result.DocResult) error {
	counters := summary.Summarize(dr, summary.Options{ByConcept: true, FoldCase: a.opts.FoldCase})
	for _, concept := range a.Concepts() {
		counter, ok := counters[concept]
		if !ok {
			continue
		}
		parts := make([]string, len(counter))
		for i, tc := range counter {
			parts[i] = fmt.Sprintf("%s (%d)", tc.Term, tc.Count)
		}
		if _, err := fmt.Fprintf(a.opts.Output, "%s: %s\n", concept, strings.Join(parts, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// cache saves the document text and the compact serialized result, so a
// later run can rehydrate without re-reading the file.
func (a *App) cache(dr *result.DocResult) {
	hash := dr.Doc.ContentHash()
	if err := a.store.SaveText(hash, dr.Doc.Text); err != nil {
		log.Warn().Str("doc", dr.Doc.Name).Err(err).Msg("cache text save failed")
		return
	}
	data, err := result.MarshalResult(dr, true)
	if err != nil {
		log.Warn().Str("doc", dr.Doc.Name).Err(err).Msg("result serialization failed")
		return
	}
	if err := a.store.SaveResult(hash, data); err != nil {
		log.Warn().Str("doc", dr.Doc.Name).Err(err).Msg("cache result save failed")
	}
}

func (a *App) writer() (render.Writer, error) {
	scheme := render.DefaultScheme()
	scheme.UppercaseMatch = a.opts.UppercaseMatch
	switch a.opts.Format {
	case "", "text", "txt":
		return render.NewTextWriter(a.opts.Output, scheme), nil
	case "html":
		return render.NewHTMLWriter(a.opts.Output, scheme), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", a.opts.Format)
	}
}
