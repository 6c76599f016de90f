package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"thaijobscraper/internal/textmatch"
)

const jobthaiBaseURL = "https://www.jobthai.com"

// thaiMonths maps Thai month abbreviations to month numbers
var thaiMonths = map[string]time.Month{
	"ม.ค.":  time.January,
	"ก.พ.":  time.February,
	"มี.ค.": time.March,
	"เม.ย.": time.April,
	"พ.ค.":  time.May,
	"มิ.ย.": time.June,
	"ก.ค.":  time.July,
	"ส.ค.":  time.August,
	"ก.ย.":  time.September,
	"ต.ค.":  time.October,
	"พ.ย.":  time.November,
	"ธ.ค.":  time.December,
}

var (
	jobthaiPostedDateRe  = regexp.MustCompile(`\b\d{1,2}\s+[ก-๙A-Za-z.]+\s+\d{2}\b`)
	jobthaiSalaryRangeRe = regexp.MustCompile(`^\s*(\d{1,3}(?:,\d{3})*)\s*-\s*(\d{1,3}(?:,\d{3})*)(?:\s*บาท)?\s*$`)
	thaiShortDateRe      = regexp.MustCompile(`^(\d{1,2})\s+([ก-๙.]+)\s+(\d{2})$`)
)

// JobThai crawls jobthai.com. Titles are matched in ordered mode; postings
// carry absolute Buddhist-Era short dates and baht-suffixed salaries.
type JobThai struct {
	baseSource
}

// NewJobThai creates the JobThai source adapter
func NewJobThai(extractor *textmatch.SkillExtractor, maxPages int, fetch fetchFunc) *JobThai {
	return &JobThai{
		baseSource: baseSource{
			baseURL:   jobthaiBaseURL,
			maxPages:  maxPages,
			extractor: extractor,
			fetch:     fetch,
		},
	}
}

func (s *JobThai) Name() string {
	return "JobThai"
}

func (s *JobThai) MatchMode() textmatch.MatchMode {
	return textmatch.ModeOrdered
}

func (s *JobThai) SearchURL(keyword string, page int) string {
	escaped := strings.ReplaceAll(url.QueryEscape(keyword), "+", "%20")
	return fmt.Sprintf("%s/th/jobs?keyword=%s&page=%d&orderBy=RELEVANCE_SEARCH", jobthaiBaseURL, escaped, page)
}

func (s *JobThai) Fetch(pageURL string) (*goquery.Document, string, error) {
	return s.document(pageURL)
}

// NoResults: JobThai redirects empty searches to a nodata URL
func (s *JobThai) NoResults(doc *goquery.Document, finalURL string) bool {
	return strings.Contains(strings.ToLower(finalURL), "nodata=true")
}

func (s *JobThai) ParseCards(doc *goquery.Document, page int, keyword string) []JobPosting {
	var rows []JobPosting
	doc.Find(`h2[id^="job-card-item-"]`).Each(func(_ int, titleSel *goquery.Selection) {
		rows = append(rows, s.parseCard(titleSel, page, keyword))
	})
	return rows
}

// parseCard extracts a raw row from one listing card, starting from the
// title node and walking up to the enclosing anchor.
func (s *JobThai) parseCard(titleSel *goquery.Selection, page int, keyword string) JobPosting {
	title := nodeText(titleSel)

	card := titleSel
	var jobURL string
	anchor := titleSel.Closest("a[href]")
	if anchor.Length() > 0 {
		card = anchor
		if href, ok := anchor.Attr("href"); ok {
			jobURL = canonicalJobThaiURL(s.resolveURL(href))
		}
	}

	company := pickText(card, []string{
		`span[id^="job-list-company-name-"]`,
		"h2.ohgq7e-0.enAWkF",
	})
	location := pickText(card, []string{
		"h3#location-text",
		"h3.location-text",
	})
	salary := pickText(card, []string{
		"span.salary-text",
		"div.msklqa-20",
		"div.msklqa-17",
	})
	postedDate := pickText(card, []string{
		"span.msklqa-9",
	})

	rawLines := nodeLines(card)
	rawText := textmatch.CleanText(strings.Join(rawLines, " "))

	if salary == "" {
		salary = extractFirst(rawText, salaryFallbackPatterns)
	}
	if postedDate == "" {
		postedDate = textmatch.CleanText(jobthaiPostedDateRe.FindString(rawText))
	}
	if location == "" {
		location = guessLocation(rawLines, title, company, salary)
	}

	return JobPosting{
		Keyword:    keyword,
		Page:       page,
		Title:      title,
		Company:    company,
		Location:   location,
		Salary:     salary,
		PostedDate: postedDate,
		URL:        jobURL,
		RawText:    rawText,
	}
}

// canonicalJobThaiURL rewrites the company-scoped detail path to the
// canonical job-scoped path and strips query and fragment, so alternate
// paths to the same posting collapse to one identity.
func canonicalJobThaiURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Path = strings.Replace(u.Path, "/th/company/job/", "/th/job/", 1)
	u.Path = strings.Replace(u.Path, "/company/job/", "/job/", 1)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Enrich fetches the detail page and merges in province, description,
// qualifications and skills. Any failure leaves the enrichment blank.
func (s *JobThai) Enrich(p *JobPosting) {
	s.blankEnrichment(p)

	doc, _, err := s.document(p.URL)
	if err != nil {
		return
	}

	code, name := parseJobThaiProvince(doc)
	p.ProvinceCode = code
	p.ProvinceName = name
	if p.ProvinceName == "" {
		// Postings without a valid numeric province tag fall back to a
		// text guess over the card's location line.
		p.ProvinceName = guessProvince(p.Location)
	}

	p.DetailText = nodeText(doc.Find("span#job-detail"))
	p.QualificationText = nodeText(doc.Find("#job-properties-wrapper"))

	combined := strings.TrimSpace(p.DetailText + " " + p.QualificationText)
	applySkills(p, s.extractor.Extract(combined))
}

// parseJobThaiProvince finds the tag link whose province query parameter is
// a positive integer and returns the zero-padded code plus the tag text.
// Non-numeric or non-positive codes are rejected.
func parseJobThaiProvince(doc *goquery.Document) (code, name string) {
	doc.Find(`a[href*="province="]`).EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		tag := anchor.Find(`h3[id^="job-detail-tag-"]`)
		if tag.Length() == 0 {
			return true
		}

		href, _ := anchor.Attr("href")
		tagName := nodeText(tag)
		if href == "" || tagName == "" {
			return true
		}

		parsed, err := url.Parse(href)
		if err != nil {
			return true
		}
		value := parsed.Query().Get("province")
		number, err := strconv.Atoi(value)
		if err != nil || number <= 0 {
			return true
		}

		code = fmt.Sprintf("%02d", number)
		name = tagName
		return false
	})
	return code, name
}

// CleanRow normalizes the province prefix, splits the salary range and
// converts the Buddhist-Era short date.
func (s *JobThai) CleanRow(p *JobPosting, now time.Time) {
	p.ProvinceName = stripProvincePrefix(p.ProvinceName)

	if m := jobthaiSalaryRangeRe.FindStringSubmatch(p.Salary); m != nil {
		p.MinSalary = stripCommas(m[1])
		p.MaxSalary = stripCommas(m[2])
	}

	p.PostedDate = parseThaiShortDate(p.PostedDate)
}

// parseThaiShortDate converts "D MonthAbbrev YY" (Buddhist-Era two-digit
// year) to MM/DD/YYYY Gregorian. Anything malformed yields blank.
func parseThaiShortDate(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}

	m := thaiShortDateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	day, _ := strconv.Atoi(m[1])
	month, ok := thaiMonths[m[2]]
	if !ok {
		return ""
	}
	yyBE, _ := strconv.Atoi(m[3])

	// Two-digit year is Buddhist Era: 67 -> 2567 B.E. -> 2024 A.D.
	year := (2500 + yyBE) - 543

	if day < 1 {
		return ""
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return ""
	}
	return date.Format("01/02/2006")
}
