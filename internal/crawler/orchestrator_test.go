package crawler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thaijobscraper/internal/textmatch"
	"thaijobscraper/pkg/errors"
	"thaijobscraper/services/cache"
)

// stubSource is an in-memory Source: pages[i] holds the cards for page i+1.
type stubSource struct {
	name        string
	pages       [][]JobPosting
	fetchErr    error
	errKeyword  string
	blockSuffix string
	enriched    int
	cleaned     int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("https://stub.test/%s/%d", keyword, page)
}

func (s *stubSource) Fetch(url string) (*goquery.Document, string, error) {
	if s.fetchErr != nil {
		return nil, "", s.fetchErr
	}
	if s.errKeyword != "" && strings.Contains(url, s.errKeyword) {
		return nil, "", errors.NewNetwork(s.name, "stub fetch failure", nil)
	}
	if s.blockSuffix != "" && strings.HasSuffix(url, s.blockSuffix) {
		return nil, "", errors.NewBlocked(s.name, "repeated 403", nil)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	return doc, url, err
}

func (s *stubSource) NoResults(doc *goquery.Document, finalURL string) bool { return false }

func (s *stubSource) ParseCards(doc *goquery.Document, page int, keyword string) []JobPosting {
	if page > len(s.pages) {
		return nil
	}
	rows := make([]JobPosting, len(s.pages[page-1]))
	copy(rows, s.pages[page-1])
	for i := range rows {
		rows[i].Keyword = keyword
		rows[i].Page = page
	}
	return rows
}

func (s *stubSource) Enrich(p *JobPosting) { s.enriched++ }

func (s *stubSource) CleanRow(p *JobPosting, now time.Time) { s.cleaned++ }

func (s *stubSource) MatchMode() textmatch.MatchMode { return textmatch.ModeContains }

func (s *stubSource) MaxPages() int { return 5 }

func newTestOrchestrator(sources []Source, keywords []string, cacheSvc cache.CacheService) *Orchestrator {
	matcher := textmatch.NewKeywordMatcher(textmatch.DefaultKeyVariants)
	return NewOrchestrator(sources, keywords, matcher, time.Millisecond, cacheSvc, time.Minute)
}

func TestOrchestratorFiltersAndDedupes(t *testing.T) {
	src := &stubSource{
		name: "Stub",
		pages: [][]JobPosting{
			{
				{Title: "Senior Data Scientist", URL: "https://stub.test/job/1"},
				{Title: "Accountant", URL: "https://stub.test/job/2"},
				{Title: "Data Scientist", URL: "https://stub.test/job/1"},
				{Title: "Untitled", URL: ""},
			},
			{
				{Title: "Data Science Manager", URL: "https://stub.test/job/3"},
			},
		},
	}

	o := newTestOrchestrator([]Source{src}, []string{"Data Scientist"}, cache.NewMemoryService())
	tables := o.Run(context.Background())

	require.Len(t, tables, 1)
	table := tables[0]
	assert.Equal(t, "Stub", table.Source)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Senior Data Scientist", table.Rows[0].Title)
	assert.Equal(t, "Data Science Manager", table.Rows[1].Title)
	for _, row := range table.Rows {
		assert.Equal(t, "Stub", row.Domain)
		assert.Equal(t, "Data Scientist", row.Keyword)
	}

	// Only surviving rows get enriched and cleaned
	assert.Equal(t, 2, src.enriched)
	assert.Equal(t, 2, src.cleaned)
}

func TestOrchestratorStopsOnZeroMatches(t *testing.T) {
	src := &stubSource{
		name: "Stub",
		pages: [][]JobPosting{
			{{Title: "Data Scientist", URL: "https://stub.test/job/1"}},
			{{Title: "Warehouse Staff", URL: "https://stub.test/job/2"}},
			{{Title: "Data Scientist II", URL: "https://stub.test/job/3"}},
		},
	}

	o := newTestOrchestrator([]Source{src}, []string{"Data Scientist"}, cache.NewMemoryService())
	tables := o.Run(context.Background())

	// Page 2 has no matching cards, so page 3 is never reached.
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "Data Scientist", tables[0].Rows[0].Title)
}

func TestOrchestratorBlockedSourceKeepsPartialResults(t *testing.T) {
	blocked := &stubSource{
		name:     "Blocked",
		fetchErr: errors.NewBlocked("Blocked", "repeated 403", nil),
	}
	healthy := &stubSource{
		name: "Healthy",
		pages: [][]JobPosting{
			{{Title: "Data Scientist", URL: "https://stub.test/job/1"}},
		},
	}

	cacheSvc := cache.NewMemoryService()
	o := newTestOrchestrator([]Source{blocked, healthy}, []string{"Data Scientist", "Data Analyst"}, cacheSvc)
	tables := o.Run(context.Background())

	require.Len(t, tables, 2)
	assert.Empty(t, tables[0].Rows)
	assert.Len(t, tables[1].Rows, 1)

	// The blocked source is marked and skipped on the next run
	assert.True(t, cacheSvc.Exists("scraper:blocked:Blocked"))
	tables = o.Run(context.Background())
	require.Len(t, tables, 2)
	assert.Empty(t, tables[0].Rows)
}

func TestOrchestratorCleansRowsCollectedBeforeBlock(t *testing.T) {
	src := &stubSource{
		name:        "Stub",
		blockSuffix: "/2",
		pages: [][]JobPosting{
			{{Title: "Data Scientist", URL: "https://stub.test/job/1"}},
			{{Title: "Data Scientist II", URL: "https://stub.test/job/2"}},
		},
	}

	cacheSvc := cache.NewMemoryService()
	o := newTestOrchestrator([]Source{src}, []string{"Data Scientist"}, cacheSvc)
	tables := o.Run(context.Background())

	// The page-1 row survives the block and still gets its cleaner pass.
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "Data Scientist", tables[0].Rows[0].Title)
	assert.Equal(t, 1, src.cleaned)
	assert.Equal(t, 0, src.enriched)
	assert.True(t, cacheSvc.Exists("scraper:blocked:Stub"))
}

func TestOrchestratorKeywordFailureIsContained(t *testing.T) {
	src := &stubSource{
		name:       "Stub",
		errKeyword: "Data Scientist",
		pages: [][]JobPosting{
			{
				{Title: "Data Scientist", URL: "https://stub.test/job/1"},
				{Title: "Data Analyst", URL: "https://stub.test/job/2"},
			},
		},
	}

	o := newTestOrchestrator([]Source{src}, []string{"Data Scientist", "Data Analyst"}, cache.NewMemoryService())
	tables := o.Run(context.Background())

	// The failing keyword loses its rows; the other keyword still crawls.
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "Data Analyst", tables[0].Rows[0].Title)
}

func TestOrchestratorRespectsContextCancel(t *testing.T) {
	src := &stubSource{
		name: "Stub",
		pages: [][]JobPosting{
			{{Title: "Data Scientist", URL: "https://stub.test/job/1"}},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newTestOrchestrator([]Source{src}, []string{"Data Scientist"}, cache.NewMemoryService())
	tables := o.Run(ctx)
	assert.Empty(t, tables)
}

func TestDedupRows(t *testing.T) {
	rows := []JobPosting{
		{Title: "first", URL: "u1"},
		{Title: "second", URL: "u2"},
		{Title: "duplicate", URL: "u1"},
	}

	deduped := dedupRows(rows)
	require.Len(t, deduped, 2)
	assert.Equal(t, "first", deduped[0].Title)
	assert.Equal(t, "second", deduped[1].Title)
}
