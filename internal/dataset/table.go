package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"thaijobscraper/internal/crawler"
	"thaijobscraper/internal/textmatch"
)

// baseColumns is the fixed front of the canonical dataset; skill flag
// columns follow in vocabulary order.
var baseColumns = []string{
	"domain",
	"keyword",
	"province_name",
	"job_title",
	"company",
	"location",
	"salary",
	"min_salary",
	"max_salary",
	"posted_date",
	"job_url",
	"matched_skills",
	"matched_skill_count",
}

// jobURLColumn is the index of job_url within baseColumns; merge dedup
// keys on it.
const jobURLColumn = 10

// Table is a materialized slice of the dataset: a header plus records, every
// record the same width as the header.
type Table struct {
	Columns []string
	Records [][]string
}

// Columns returns the canonical column list for a skill vocabulary.
func Columns(skillKeys []string) []string {
	cols := make([]string, 0, len(baseColumns)+len(skillKeys))
	cols = append(cols, baseColumns...)
	for _, key := range skillKeys {
		cols = append(cols, "skill_"+key)
	}
	return cols
}

// FromRows converts job postings into a table. Rows that were never scanned
// for skills get an all-zero flag vector so every record keeps the same width.
func FromRows(rows []crawler.JobPosting, skillKeys []string) Table {
	table := Table{
		Columns: Columns(skillKeys),
		Records: make([][]string, 0, len(rows)),
	}

	for _, row := range rows {
		skills := textmatch.SkillResult{Matched: row.MatchedSkills, Flags: row.SkillFlags}
		record := make([]string, 0, len(table.Columns))
		record = append(record,
			row.Domain,
			row.Keyword,
			row.ProvinceName,
			row.Title,
			row.Company,
			row.Location,
			row.Salary,
			row.MinSalary,
			row.MaxSalary,
			row.PostedDate,
			row.URL,
			skills.Joined(),
			strconv.Itoa(skills.Count()),
		)
		for i := range skillKeys {
			flag := 0
			if i < len(row.SkillFlags) {
				flag = row.SkillFlags[i]
			}
			record = append(record, strconv.Itoa(flag))
		}
		table.Records = append(table.Records, record)
	}

	return table
}

// WriteCSV writes the table to path as UTF-8 CSV with a BOM, creating parent
// directories as needed. The BOM keeps Thai text readable when the file is
// opened in Excel.
func (t Table) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range t.Records {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Close()
}
