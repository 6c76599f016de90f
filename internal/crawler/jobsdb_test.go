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

const jobsdbCardHTML = `
<html><body>
<article data-testid="job-card">
  <a data-automation="job-list-item-link-overlay" href="/th/job/data-scientist-80001234"></a>
  <h3><a data-automation="jobTitle">Data Scientist</a></h3>
  <span data-automation="jobCompany">Example (Thailand) Co., Ltd.</span>
  <span data-automation="jobLocation">Pathum Wan, Bangkok</span>
  <span data-automation="jobSalary">฿40,000 – ฿60,000 per month</span>
  <span data-automation="jobListingDate">3 วันที่ผ่านมา</span>
</article>
<article data-automation="normalJob">
  <h3><a data-automation="jobTitle">Data Engineer</a></h3>
  <span data-automation="jobCompany">Another Co.</span>
  <span data-automation="jobCardLocation">Chonburi</span>
  <span data-automation="jobSalary">Featured</span>
  <a href="https://th.jobsdb.com/th/job/data-engineer-80005678">View</a>
</article>
</body></html>`

func newTestJobsDB() *JobsDB {
	return NewJobsDB(textmatch.NewSkillExtractor(textmatch.DefaultSkills), 50, nil)
}

func TestJobsDBParseCards(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(jobsdbCardHTML))
	require.NoError(t, err)

	s := newTestJobsDB()
	rows := s.ParseCards(doc, 1, "Data Scientist")
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Data Scientist", first.Title)
	assert.Equal(t, "Example (Thailand) Co., Ltd.", first.Company)
	assert.Equal(t, "Pathum Wan, Bangkok", first.Location)
	assert.Equal(t, "กรุงเทพมหานคร", first.ProvinceName)
	assert.Equal(t, "฿40,000 – ฿60,000 per month", first.Salary)
	assert.Equal(t, "3 วันที่ผ่านมา", first.PostedDate)
	assert.Equal(t, "https://th.jobsdb.com/th/job/data-scientist-80001234", first.URL)

	second := rows[1]
	assert.Equal(t, "Data Engineer", second.Title)
	assert.Equal(t, "ชลบุรี", second.ProvinceName)
	// "Featured" in the salary slot is not a salary
	assert.Empty(t, second.Salary)
	assert.Equal(t, "https://th.jobsdb.com/th/job/data-engineer-80005678", second.URL)
}

func TestJobsDBSearchURL(t *testing.T) {
	s := newTestJobsDB()
	assert.Equal(t, "https://th.jobsdb.com/th/data-scientist-jobs", s.SearchURL("Data Scientist", 1))
	assert.Equal(t, "https://th.jobsdb.com/th/data-scientist-jobs?page=3", s.SearchURL("Data Scientist", 3))
}

func TestJobsDBNoResults(t *testing.T) {
	s := newTestJobsDB()

	empty, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>0 jobs found</p></body></html>"))
	require.NoError(t, err)
	assert.True(t, s.NoResults(empty, ""))

	withCards, err := goquery.NewDocumentFromReader(strings.NewReader(jobsdbCardHTML))
	require.NoError(t, err)
	assert.False(t, s.NoResults(withCards, ""))
}

func TestProbableSalary(t *testing.T) {
	assert.True(t, probableSalary("THB 40,000 - 60,000"))
	assert.True(t, probableSalary("30,000 - 45,000 บาท"))
	assert.True(t, probableSalary("Negotiable"))
	assert.True(t, probableSalary("ตามตกลง"))
	assert.False(t, probableSalary("Featured"))
	assert.False(t, probableSalary(""))
	assert.False(t, probableSalary("Urgent hiring"))
}

func TestParseRelativeThaiDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"days", "3 วันที่ผ่านมา", "03/12/2024"},
		{"weeks", "2 สัปดาห์ที่ผ่านมา", "03/01/2024"},
		{"months", "1 เดือนที่ผ่านมา", "02/14/2024"},
		{"hours same day", "5 ชั่วโมงที่ผ่านมา", "03/15/2024"},
		{"minutes same day", "30 นาทีที่ผ่านมา", "03/15/2024"},
		{"no suffix", "7 วัน", "03/08/2024"},
		{"garbage", "เมื่อวานนี้", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRelativeThaiDate(tt.in, now))
		})
	}
}

func TestParseRelativeThaiDateCrossesMidnight(t *testing.T) {
	// A posting fetched at 01:00 and listed 5 hours ago dates to yesterday.
	now := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "03/14/2024", parseRelativeThaiDate("5 ชั่วโมงที่ผ่านมา", now))
	assert.Equal(t, "03/14/2024", parseRelativeThaiDate("90 นาทีที่ผ่านมา", now))
	assert.Equal(t, "03/15/2024", parseRelativeThaiDate("30 นาทีที่ผ่านมา", now))
}

func TestJobsDBCleanRow(t *testing.T) {
	s := newTestJobsDB()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	p := &JobPosting{
		Salary:     "฿40,000 – ฿60,000 per month",
		PostedDate: "3 วันที่ผ่านมา",
	}
	s.CleanRow(p, now)

	assert.Equal(t, "40000", p.MinSalary)
	assert.Equal(t, "60000", p.MaxSalary)
	assert.Equal(t, "03/12/2024", p.PostedDate)
}

func TestJobsDBCleanRowTHBPrefixedSalary(t *testing.T) {
	s := newTestJobsDB()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		salary   string
		min, max string
	}{
		{"THB 25,000 - THB 35,000", "25000", "35000"},
		{"thb 25,000 - 35,000", "25000", "35000"},
		{"25,000 - 35,000 บาท", "25000", "35000"},
		{"Negotiable", "", ""},
	}

	for _, tt := range tests {
		p := &JobPosting{Salary: tt.salary}
		s.CleanRow(p, now)
		assert.Equal(t, tt.min, p.MinSalary, tt.salary)
		assert.Equal(t, tt.max, p.MaxSalary, tt.salary)
	}
}
