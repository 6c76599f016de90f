package crawler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"thaijobscraper/internal/textmatch"
)

// baseSource provides the extraction helpers shared by all source adapters.
type baseSource struct {
	baseURL   string
	maxPages  int
	extractor *textmatch.SkillExtractor
	fetch     fetchFunc
}

func (b *baseSource) MaxPages() int {
	return b.maxPages
}

// document fetches a URL and parses it into a goquery document
func (b *baseSource) document(url string) (*goquery.Document, string, error) {
	body, finalURL, err := b.fetch(url)
	if err != nil {
		return nil, finalURL, err
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, finalURL, fmt.Errorf("HTML parse error: %w", err)
	}
	return doc, finalURL, nil
}

// resolveURL makes a relative href absolute against the source's base URL
func (b *baseSource) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return b.baseURL + href
	default:
		return href
	}
}

// pickText tries an ordered list of selectors and returns the first
// non-empty text, so markup revisions degrade gracefully.
func pickText(s *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := nodeText(s.Find(selector).First()); text != "" {
			return text
		}
	}
	return ""
}

// nodeLines collects the trimmed non-empty text nodes under a selection,
// one line per text node, skipping script and style subtrees.
func nodeLines(s *goquery.Selection) []string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := textmatch.CleanText(n.Data); text != "" {
				lines = append(lines, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return lines
}

// nodeText returns the selection's visible text with whitespace collapsed
func nodeText(s *goquery.Selection) string {
	return textmatch.CleanText(strings.Join(nodeLines(s), " "))
}

// extractFirst applies an ordered list of extraction patterns over free text
// and returns the first match. The explicit strategy list is deliberate; the
// patterns stay independently testable.
func extractFirst(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if match := re.FindString(text); match != "" {
			return textmatch.CleanText(match)
		}
	}
	return ""
}

// salaryFallbackPatterns recover a salary from a card's raw text when the
// structural selector comes up empty, most specific first: baht range,
// single baht figure, negotiable literals.
var salaryFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d[\d,\s]*\s*-\s*\d[\d,\s]*\s*บาท`),
	regexp.MustCompile(`\d[\d,\s]*\s*บาท`),
	regexp.MustCompile(`ตามโครงสร้างบริษัทฯ`),
	regexp.MustCompile(`ตามประสบการณ์`),
	regexp.MustCompile(`ตามตกลง`),
}

var (
	locationPriorityKeywords = []string{"เขต", "กรุงเทพ", "จังหวัด", "อำเภอ", "อ.", "ต."}
	locationTransitKeywords  = []string{"BTS", "MRT", "SRT", "BRT", "Airport Rail Link"}
)

// guessLocation picks a location line out of a card's raw lines: first a
// line holding an administrative-district keyword, then a public-transit
// keyword, then the line right above the salary line. Lines equal to the
// already-extracted title/company/salary never qualify.
func guessLocation(lines []string, title, company, salary string) string {
	taken := func(line string) bool {
		return line == title || line == company || line == salary
	}

	for _, line := range lines {
		if taken(line) {
			continue
		}
		for _, kw := range locationPriorityKeywords {
			if strings.Contains(line, kw) {
				return line
			}
		}
	}

	for _, line := range lines {
		if taken(line) {
			continue
		}
		for _, kw := range locationTransitKeywords {
			if strings.Contains(line, kw) {
				return line
			}
		}
	}

	if salary != "" {
		salaryIdx := -1
		for i, line := range lines {
			if line == salary {
				salaryIdx = i
				break
			}
		}
		for i := salaryIdx - 1; i >= 0; i-- {
			if lines[i] != title && lines[i] != company {
				return lines[i]
			}
		}
	}

	return ""
}

// blankEnrichment resets every enrichment field to its typed default so a
// failed detail fetch still leaves a usable search-page row.
func (b *baseSource) blankEnrichment(p *JobPosting) {
	p.ProvinceCode = ""
	p.DetailText = ""
	p.QualificationText = ""
	p.MatchedSkills = nil
	p.SkillFlags = b.extractor.Empty().Flags
}

// applySkills stores a skill scan result on the row
func applySkills(p *JobPosting, result textmatch.SkillResult) {
	p.MatchedSkills = result.Matched
	p.SkillFlags = result.Flags
}

// stripCommas removes thousands separators from a numeric capture
func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
