package crawler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"thaijobscraper/internal/textmatch"
)

const jobsdbBaseURL = "https://th.jobsdb.com"

var (
	jobsdbSalaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)THB\s*[\d,]+\s*[-–]\s*THB\s*[\d,]+`),
		regexp.MustCompile(`(?i)THB\s*[\d,]+`),
		regexp.MustCompile(`[\d,]+\s*[-–]\s*[\d,]+\s*บาท`),
		regexp.MustCompile(`[\d,]+\s*บาท`),
		regexp.MustCompile(`(?i)Negotiable|ไม่ระบุเงินเดือน|ตามตกลง|ตามประสบการณ์`),
	}

	// Accepts baht-suffixed, THB-prefixed and ฿-prefixed ranges.
	jobsdbSalaryRangeRe = regexp.MustCompile(`(?i)(?:THB|฿)?\s*([\d,]+)\s*[-–]\s*(?:THB|฿)?\s*([\d,]+)`)
	jobsdbSalaryDashRe  = regexp.MustCompile(`\d\s*[-–]`)

	// Relative-duration posted dates, e.g. "3 วันที่ผ่านมา".
	thaiRelativeDateRe = regexp.MustCompile(`(\d+)\s*(นาที|ชั่วโมง|วัน|สัปดาห์|เดือน)(?:ที่ผ่านมา)?`)

	jobsdbSalaryHints = []string{"thb", "บาท", "salary", "negotiable", "ตามตกลง", "ตามประสบการณ์"}
)

// JobsDB crawls th.jobsdb.com. The board sits behind aggressive bot
// protection, so fetches go through a retrying client with warm-up and
// optional proxy; a 403 that survives retries marks the whole source blocked.
type JobsDB struct {
	baseSource
}

// NewJobsDB creates the JobsDB source adapter
func NewJobsDB(extractor *textmatch.SkillExtractor, maxPages int, fetch fetchFunc) *JobsDB {
	return &JobsDB{
		baseSource: baseSource{
			baseURL:   jobsdbBaseURL,
			maxPages:  maxPages,
			extractor: extractor,
			fetch:     fetch,
		},
	}
}

func (s *JobsDB) Name() string {
	return "JobsDB"
}

func (s *JobsDB) MatchMode() textmatch.MatchMode {
	return textmatch.ModeContains
}

// SearchURL uses the SEO-style keyword path: spaces become dashes and the
// keyword is lowercased, e.g. "Data Scientist" -> /th/data-scientist-jobs.
func (s *JobsDB) SearchURL(keyword string, page int) string {
	slug := strings.ToLower(strings.Join(strings.Fields(keyword), "-"))
	base := fmt.Sprintf("%s/th/%s-jobs", jobsdbBaseURL, slug)
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s?page=%d", base, page)
}

func (s *JobsDB) Fetch(pageURL string) (*goquery.Document, string, error) {
	return s.document(pageURL)
}

// NoResults relies on the card selector coming up empty; JobsDB has no
// stable zero-results marker across its markup revisions.
func (s *JobsDB) NoResults(doc *goquery.Document, finalURL string) bool {
	return doc.Find(`article[data-testid='job-card'], article[data-automation='normalJob']`).Length() == 0
}

func (s *JobsDB) ParseCards(doc *goquery.Document, page int, keyword string) []JobPosting {
	var rows []JobPosting
	doc.Find(`article[data-testid='job-card'], article[data-automation='normalJob']`).Each(func(_ int, card *goquery.Selection) {
		rows = append(rows, s.parseCard(card, page, keyword))
	})
	return rows
}

func (s *JobsDB) parseCard(card *goquery.Selection, page int, keyword string) JobPosting {
	title := pickText(card, []string{
		`[data-automation='jobTitle']`,
		"h3 a",
	})
	company := pickText(card, []string{
		`[data-automation='jobCompany']`,
	})
	location := pickText(card, []string{
		`[data-automation='jobLocation']`,
		`[data-automation='jobCardLocation']`,
	})
	postedDate := pickText(card, []string{
		`[data-automation='jobListingDate']`,
	})
	salary := pickText(card, []string{
		`[data-automation='jobSalary']`,
	})
	if !probableSalary(salary) {
		salary = ""
	}

	var jobURL string
	overlay := card.Find(`a[data-automation='job-list-item-link-overlay'][href]`).First()
	if href, ok := overlay.Attr("href"); ok {
		jobURL = s.resolveURL(href)
	} else if href, ok := card.Find("a[href]").First().Attr("href"); ok {
		jobURL = s.resolveURL(href)
	}

	rawLines := nodeLines(card)
	rawText := textmatch.CleanText(strings.Join(rawLines, " "))

	if salary == "" {
		salary = extractFirst(rawText, jobsdbSalaryPatterns)
	}
	if location == "" {
		location = guessLocation(rawLines, title, company, salary)
	}

	return JobPosting{
		Keyword:      keyword,
		Page:         page,
		Title:        title,
		Company:      company,
		Location:     location,
		ProvinceName: guessProvince(location),
		Salary:       salary,
		PostedDate:   postedDate,
		URL:          jobURL,
		RawText:      rawText,
	}
}

// probableSalary rejects selector hits that are clearly not a salary string;
// JobsDB reuses its salary slot for unrelated badges on some revisions.
func probableSalary(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, hint := range jobsdbSalaryHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return jobsdbSalaryDashRe.MatchString(text)
}

// Enrich pulls the job ad body and scans it for skills. Failure leaves the
// enrichment blank.
func (s *JobsDB) Enrich(p *JobPosting) {
	s.blankEnrichment(p)

	doc, _, err := s.document(p.URL)
	if err != nil {
		return
	}

	detail := nodeText(doc.Find(`[data-automation='jobAdDetails']`))
	if detail == "" {
		detail = nodeText(doc.Find("section").First())
	}
	p.DetailText = detail

	applySkills(p, s.extractor.Extract(detail))
}

// CleanRow splits the baht salary range and resolves the relative Thai
// posted date against the pipeline clock.
func (s *JobsDB) CleanRow(p *JobPosting, now time.Time) {
	if m := jobsdbSalaryRangeRe.FindStringSubmatch(p.Salary); m != nil {
		p.MinSalary = stripCommas(m[1])
		p.MaxSalary = stripCommas(m[2])
	}

	p.PostedDate = parseRelativeThaiDate(p.PostedDate, now)
}

// parseRelativeThaiDate resolves "N unit ที่ผ่านมา" durations to an absolute
// MM/DD/YYYY date by subtracting the duration from the fetch time. Months
// count as 30 days and weeks as 7. Unparseable input yields blank.
func parseRelativeThaiDate(value string, now time.Time) string {
	text := textmatch.CleanText(value)
	if text == "" {
		return ""
	}

	m := thaiRelativeDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	amount, err := strconv.Atoi(m[1])
	if err != nil || amount < 0 {
		return ""
	}

	var dur time.Duration
	switch m[2] {
	case "นาที":
		dur = time.Duration(amount) * time.Minute
	case "ชั่วโมง":
		dur = time.Duration(amount) * time.Hour
	case "วัน":
		dur = time.Duration(amount) * 24 * time.Hour
	case "สัปดาห์":
		dur = time.Duration(amount) * 7 * 24 * time.Hour
	case "เดือน":
		dur = time.Duration(amount) * 30 * 24 * time.Hour
	default:
		return ""
	}

	return now.Add(-dur).Format("01/02/2006")
}
