package crawler

import (
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"thaijobscraper/internal/textmatch"
)

// JobPosting represents one canonical job-posting row. It is created with the
// search-page fields, enriched in place from the detail page, then cleaned.
type JobPosting struct {
	Domain       string
	Keyword      string
	Page         int
	Title        string
	Company      string
	Location     string
	ProvinceCode string
	ProvinceName string
	Salary       string
	MinSalary    string
	MaxSalary    string
	PostedDate   string
	URL          string
	RawText      string

	// Detail-page enrichment
	DetailText        string
	QualificationText string
	MatchedSkills     []string
	SkillFlags        []int
}

// Source is one job board adapter. The orchestrator is generic over this
// interface; each source's quirks (selectors, regex sets, date idiom, fetch
// policy) stay adapter-local.
type Source interface {
	// Name returns the domain label used in the canonical dataset
	Name() string

	// SearchURL builds the search-results URL for a keyword and page number
	SearchURL(keyword string, page int) string

	// Fetch retrieves a URL and returns the parsed document plus the final
	// URL after redirects
	Fetch(url string) (*goquery.Document, string, error)

	// NoResults reports an explicit "no results" signal for a fetched page
	NoResults(doc *goquery.Document, finalURL string) bool

	// ParseCards extracts one raw row per listing card on a results page
	ParseCards(doc *goquery.Document, page int, keyword string) []JobPosting

	// Enrich fetches the posting's detail page and merges in extended
	// fields. It never fails: on any error the enrichment fields stay
	// blank/zero and the row survives with its search-page fields.
	Enrich(p *JobPosting)

	// CleanRow converts raw salary/date/location strings into canonical
	// form. Cleaners are total: malformed input degrades to blank.
	CleanRow(p *JobPosting, now time.Time)

	// MatchMode returns the keyword-match policy for this source
	MatchMode() textmatch.MatchMode

	// MaxPages caps pagination for one keyword
	MaxPages() int
}

// SourceTable holds the assembled rows for one source across all keywords,
// deduplicated by job URL.
type SourceTable struct {
	Source string
	Rows   []JobPosting
}

// fetchFunc abstracts the page fetch so tests can stub transports
type fetchFunc func(url string) (io.Reader, string, error)
