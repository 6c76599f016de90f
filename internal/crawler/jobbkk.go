package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"thaijobscraper/internal/textmatch"
)

const jobbkkBaseURL = "https://jobbkk.com"

var (
	jobbkkSalaryRangeRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*)\s*[-–]\s*(\d{1,3}(?:,\d{3})*)\s*บาท?`)

	// JobBKK exposes the update time as a title attribute: "02/01/2006 15:04".
	jobbkkDateLayout = "02/01/2006 15:04"
)

// JobBKK crawls jobbkk.com. The board serves Thai-language listing pages
// with timestamped updates; titles are matched in unordered containment mode.
type JobBKK struct {
	baseSource
}

// NewJobBKK creates the JobBKK source adapter
func NewJobBKK(extractor *textmatch.SkillExtractor, maxPages int, fetch fetchFunc) *JobBKK {
	return &JobBKK{
		baseSource: baseSource{
			baseURL:   jobbkkBaseURL,
			maxPages:  maxPages,
			extractor: extractor,
			fetch:     fetch,
		},
	}
}

func (s *JobBKK) Name() string {
	return "JobBKK"
}

func (s *JobBKK) MatchMode() textmatch.MatchMode {
	return textmatch.ModeContains
}

// SearchURL builds the Thai listing path. The page number is a path segment,
// not a query parameter.
func (s *JobBKK) SearchURL(keyword string, page int) string {
	escaped := url.PathEscape(keyword)
	return fmt.Sprintf("%s/jobs/lists/%d/หางาน,%s,ทุกจังหวัด,ทั้งหมด.html?keyword_type=3&sort=4", jobbkkBaseURL, page, escaped)
}

func (s *JobBKK) Fetch(pageURL string) (*goquery.Document, string, error) {
	return s.document(pageURL)
}

// NoResults relies on an empty card list
func (s *JobBKK) NoResults(doc *goquery.Document, finalURL string) bool {
	return doc.Find("div.joblist-pos.jobbkk-list-company").Length() == 0
}

func (s *JobBKK) ParseCards(doc *goquery.Document, page int, keyword string) []JobPosting {
	var rows []JobPosting
	doc.Find("div.joblist-pos.jobbkk-list-company").Each(func(_ int, card *goquery.Selection) {
		rows = append(rows, s.parseCard(card, page, keyword))
	})
	return rows
}

func (s *JobBKK) parseCard(card *goquery.Selection, page int, keyword string) JobPosting {
	titleLink := card.Find(`.joblist-name-urgent a[href*='/jobs/detail']`).First()
	if titleLink.Length() == 0 {
		// Urgent cards carry a plain anchor with no detail href
		titleLink = card.Find(".joblist-name-urgent a").First()
	}
	title := nodeText(titleLink)

	var jobURL string
	if href, ok := titleLink.Attr("href"); ok {
		jobURL = s.resolveURL(href)
	}
	if jobURL == "" {
		// Urgent-listing cards omit the detail link but carry the IDs.
		comID, okCom := card.Attr("data-com-id")
		jobID, okJob := card.Attr("data-job-id")
		if okCom && okJob && comID != "" && jobID != "" {
			jobURL = fmt.Sprintf("%s/jobs/detailurgent/%s/%s", jobbkkBaseURL, comID, jobID)
		}
	}

	company := nodeText(card.Find(".joblist-company-name a").First())
	location := nodeText(card.Find(".position-location span").Last())
	salary := nodeText(card.Find(".position-salary span").Last())

	updateLink := card.Find(".joblist-updatetime-md-upper a").First()
	postedDate, _ := updateLink.Attr("title")
	postedDate = textmatch.CleanText(postedDate)
	if postedDate == "" {
		postedDate = nodeText(updateLink)
	}

	rawText := textmatch.CleanText(strings.Join(nodeLines(card), " "))

	if salary == "" {
		salary = extractFirst(rawText, salaryFallbackPatterns)
	}

	return JobPosting{
		Keyword:      keyword,
		Page:         page,
		Title:        title,
		Company:      company,
		Location:     location,
		ProvinceName: thaiProvinceIn(location),
		Salary:       salary,
		PostedDate:   postedDate,
		URL:          jobURL,
		RawText:      rawText,
	}
}

// Enrich pulls the detail article and scans it for skills. Failure leaves
// the enrichment blank.
func (s *JobBKK) Enrich(p *JobPosting) {
	s.blankEnrichment(p)

	doc, _, err := s.document(p.URL)
	if err != nil {
		return
	}

	detail := nodeText(doc.Find("article.row").First())
	if detail == "" {
		detail = nodeText(doc.Selection)
	}
	p.DetailText = detail

	applySkills(p, s.extractor.Extract(detail))
}

// CleanRow splits the baht salary range and reformats the update timestamp
// from DD/MM/YYYY HH:MM to MM/DD/YYYY.
func (s *JobBKK) CleanRow(p *JobPosting, now time.Time) {
	if m := jobbkkSalaryRangeRe.FindStringSubmatch(p.Salary); m != nil {
		p.MinSalary = stripCommas(m[1])
		p.MaxSalary = stripCommas(m[2])
	}

	if parsed, err := time.Parse(jobbkkDateLayout, strings.TrimSpace(p.PostedDate)); err == nil {
		p.PostedDate = parsed.Format("01/02/2006")
	} else {
		p.PostedDate = ""
	}
}
