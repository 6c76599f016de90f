package crawler

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thaijobscraper/internal/textmatch"
)

const jobbkkCardHTML = `
<html><body>
<div class="joblist-pos jobbkk-list-company">
  <div class="joblist-name-urgent"><a href="https://jobbkk.com/jobs/detail/1/111/data-analyst.html">Data Analyst</a></div>
  <div class="joblist-company-name"><a href="/company/1">บริษัท สมมติ จำกัด</a></div>
  <div class="position-location"><span>สถานที่ปฏิบัติงาน</span><span>เขตบางรัก กรุงเทพมหานคร</span></div>
  <div class="position-salary"><span>เงินเดือน</span><span>20,000 - 30,000 บาท</span></div>
  <div class="joblist-updatetime-md-upper"><a title="14/03/2024 09:30">อัพเดท</a></div>
</div>
<div class="joblist-pos jobbkk-list-company" data-com-id="55" data-job-id="777">
  <div class="joblist-name-urgent"><a>Data Engineer (Urgent)</a></div>
  <div class="joblist-company-name"><a href="/company/2">Another Co.</a></div>
  <div class="position-location"><span>สถานที่ปฏิบัติงาน</span><span>ชลบุรี</span></div>
  <div class="position-salary"><span>เงินเดือน</span><span>ตามตกลง</span></div>
  <div class="joblist-updatetime-md-upper"><a>14/03/2024 10:00</a></div>
</div>
</body></html>`

func newTestJobBKK() *JobBKK {
	return NewJobBKK(textmatch.NewSkillExtractor(textmatch.DefaultSkills), 50, nil)
}

func TestJobBKKParseCards(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(jobbkkCardHTML))
	require.NoError(t, err)

	s := newTestJobBKK()
	rows := s.ParseCards(doc, 1, "Data Analyst")
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Data Analyst", first.Title)
	assert.Equal(t, "บริษัท สมมติ จำกัด", first.Company)
	assert.Equal(t, "เขตบางรัก กรุงเทพมหานคร", first.Location)
	assert.Equal(t, "กรุงเทพมหานคร", first.ProvinceName)
	assert.Equal(t, "20,000 - 30,000 บาท", first.Salary)
	assert.Equal(t, "14/03/2024 09:30", first.PostedDate)
	assert.Equal(t, "https://jobbkk.com/jobs/detail/1/111/data-analyst.html", first.URL)

	second := rows[1]
	assert.Equal(t, "Data Engineer (Urgent)", second.Title)
	assert.Equal(t, "ชลบุรี", second.ProvinceName)
	// No detail link: the URL is rebuilt from the card's data attributes
	assert.Equal(t, "https://jobbkk.com/jobs/detailurgent/55/777", second.URL)
	assert.Equal(t, "14/03/2024 10:00", second.PostedDate)
}

func TestJobBKKSalaryFallbackFromRawText(t *testing.T) {
	html := `
<div class="joblist-pos jobbkk-list-company">
  <div class="joblist-name-urgent"><a href="/jobs/detail/3/333/data-officer.html">Data Officer</a></div>
  <div class="joblist-company-name"><a href="/company/3">Fallback Co.</a></div>
  <div>รายได้ 18,000 - 22,000 บาท ต่อเดือน</div>
</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	s := newTestJobBKK()
	rows := s.ParseCards(doc, 1, "Data Officer")
	require.Len(t, rows, 1)

	assert.Equal(t, "18,000 - 22,000 บาท", rows[0].Salary)
}

func TestJobBKKSalaryFallbackNegotiable(t *testing.T) {
	html := `
<div class="joblist-pos jobbkk-list-company">
  <div class="joblist-name-urgent"><a href="/jobs/detail/4/444/data-clerk.html">Data Clerk</a></div>
  <div>เงินเดือน ตามตกลง</div>
</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	s := newTestJobBKK()
	rows := s.ParseCards(doc, 1, "Data Clerk")
	require.Len(t, rows, 1)

	assert.Equal(t, "ตามตกลง", rows[0].Salary)
}

func TestJobBKKSearchURL(t *testing.T) {
	s := newTestJobBKK()
	u := s.SearchURL("Data Analyst", 2)
	assert.Contains(t, u, "https://jobbkk.com/jobs/lists/2/")
	assert.Contains(t, u, "keyword_type=3")
	assert.Contains(t, u, "sort=4")
	assert.NotContains(t, u, " ")
}

func TestJobBKKNoResults(t *testing.T) {
	s := newTestJobBKK()

	empty, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.True(t, s.NoResults(empty, ""))

	withCards, err := goquery.NewDocumentFromReader(strings.NewReader(jobbkkCardHTML))
	require.NoError(t, err)
	assert.False(t, s.NoResults(withCards, ""))
}

func TestJobBKKCleanRow(t *testing.T) {
	s := newTestJobBKK()

	p := &JobPosting{
		Salary:     "20,000 - 30,000 บาท",
		PostedDate: "14/03/2024 09:30",
	}
	s.CleanRow(p, time.Now())

	assert.Equal(t, "20000", p.MinSalary)
	assert.Equal(t, "30000", p.MaxSalary)
	assert.Equal(t, "03/14/2024", p.PostedDate)
}

func TestJobBKKCleanRowMalformed(t *testing.T) {
	s := newTestJobBKK()

	p := &JobPosting{Salary: "ตามตกลง", PostedDate: "อัพเดทล่าสุด"}
	s.CleanRow(p, time.Now())

	assert.Empty(t, p.MinSalary)
	assert.Empty(t, p.MaxSalary)
	assert.Empty(t, p.PostedDate)
}
