package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"thaijobscraper/internal/textmatch"
	"thaijobscraper/logger"
	"thaijobscraper/pkg/errors"
	"thaijobscraper/services/cache"
)

// Orchestrator runs the crawl for every configured source and keyword.
// Failures are contained: a broken keyword loses only its own rows, and a
// blocked source keeps whatever it had already collected and is skipped for
// the block TTL.
type Orchestrator struct {
	sources  []Source
	keywords []string
	matcher  *textmatch.KeywordMatcher
	limiter  *rate.Limiter
	cache    cache.CacheService
	blockTTL time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewOrchestrator creates the crawl orchestrator. requestDelay spaces out
// every outbound page fetch across all sources.
func NewOrchestrator(
	sources []Source,
	keywords []string,
	matcher *textmatch.KeywordMatcher,
	requestDelay time.Duration,
	cacheSvc cache.CacheService,
	blockTTL time.Duration,
) *Orchestrator {
	if requestDelay <= 0 {
		requestDelay = time.Millisecond
	}
	return &Orchestrator{
		sources:  sources,
		keywords: keywords,
		matcher:  matcher,
		limiter:  rate.NewLimiter(rate.Every(requestDelay), 1),
		cache:    cacheSvc,
		blockTTL: blockTTL,
		log:      logger.ForWorker(),
		now:      time.Now,
	}
}

func blockKey(sourceName string) string {
	return "scraper:blocked:" + sourceName
}

// Run crawls every source for every keyword and returns one assembled table
// per source. The error slice-free signature is deliberate: per-source and
// per-keyword failures are logged and contained, never fatal to the run.
func (o *Orchestrator) Run(ctx context.Context) []SourceTable {
	o.log.Info().
		Int("sources", len(o.sources)).
		Int("keywords", len(o.keywords)).
		Msg("Starting crawl")

	tables := make([]SourceTable, 0, len(o.sources))

	for _, source := range o.sources {
		if ctx.Err() != nil {
			break
		}
		tables = append(tables, o.runSource(ctx, source))
	}

	return tables
}

func (o *Orchestrator) runSource(ctx context.Context, source Source) SourceTable {
	name := source.Name()
	log := logger.ForSource(name)
	table := SourceTable{Source: name}

	if o.cache != nil && o.cache.Exists(blockKey(name)) {
		log.Warn().Msg("Source is marked blocked, skipping this run")
		return table
	}

	for _, keyword := range o.keywords {
		if ctx.Err() != nil {
			break
		}

		rows, err := o.crawlKeyword(ctx, source, keyword, log)
		table.Rows = append(table.Rows, rows...)

		if err == nil {
			continue
		}

		if errors.IsBlocked(err) {
			log.Error().Err(err).Msg("Source blocked the crawler, keeping partial results")
			o.markBlocked(name, log)
			break
		}
		log.Error().Err(err).Str("keyword", keyword).Msg("Keyword crawl failed, continuing with next keyword")
	}

	table.Rows = dedupRows(table.Rows)
	log.Info().Int("rows", len(table.Rows)).Msg("Source crawl finished")
	return table
}

// crawlKeyword paginates the search results for one keyword, keeps the cards
// whose titles match, then enriches and cleans the surviving rows.
func (o *Orchestrator) crawlKeyword(ctx context.Context, source Source, keyword string, log *logger.Logger) ([]JobPosting, error) {
	groups := o.matcher.Groups(keyword)
	mode := source.MatchMode()
	seen := make(map[string]bool)
	var rows []JobPosting

	for page := 1; page <= source.MaxPages(); page++ {
		if err := o.limiter.Wait(ctx); err != nil {
			return rows, nil
		}

		doc, finalURL, err := source.Fetch(source.SearchURL(keyword, page))
		if err != nil {
			if errors.IsBlocked(err) {
				// Rows collected before the block still go through their
				// cleaners; enrichment stays blank.
				for i := range rows {
					source.CleanRow(&rows[i], o.now())
				}
				return rows, err
			}
			log.Warn().Err(err).Str("keyword", keyword).Int("page", page).Msg("Page fetch failed, stopping pagination")
			break
		}

		if source.NoResults(doc, finalURL) {
			log.Debug().Str("keyword", keyword).Int("page", page).Msg("No-results signal, stopping pagination")
			break
		}

		cards := source.ParseCards(doc, page, keyword)
		matched := 0
		for _, card := range cards {
			if card.Title == "" || card.URL == "" || seen[card.URL] {
				continue
			}
			if !o.matcher.Match(card.Title, groups, mode) {
				continue
			}
			seen[card.URL] = true
			card.Domain = source.Name()
			rows = append(rows, card)
			matched++
		}

		log.Debug().
			Str("keyword", keyword).
			Int("page", page).
			Int("cards", len(cards)).
			Int("matched", matched).
			Msg("Parsed results page")

		// A page with zero surviving cards ends the keyword: deeper pages
		// only get less relevant.
		if matched == 0 {
			break
		}
	}

	for i := range rows {
		if ctx.Err() != nil {
			break
		}
		if err := o.limiter.Wait(ctx); err != nil {
			break
		}
		source.Enrich(&rows[i])
		source.CleanRow(&rows[i], o.now())
	}

	return rows, nil
}

func (o *Orchestrator) markBlocked(sourceName string, log *logger.Logger) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Set(blockKey(sourceName), []byte("1"), o.blockTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set block key")
	}
}

// dedupRows removes duplicate job URLs, keeping the first occurrence.
func dedupRows(rows []JobPosting) []JobPosting {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		if row.URL != "" && seen[row.URL] {
			continue
		}
		seen[row.URL] = true
		out = append(out, row)
	}
	return out
}
