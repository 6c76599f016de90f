package dataset

import (
	"path/filepath"
	"time"
)

// Merge combines per-source tables into one dataset, deduplicating by job
// URL with first occurrence winning. All inputs must share the same column
// layout; the first non-empty table supplies the header.
func Merge(tables []Table) Table {
	merged := Table{}
	seen := make(map[string]bool)

	for _, t := range tables {
		if merged.Columns == nil && t.Columns != nil {
			merged.Columns = t.Columns
		}
		for _, record := range t.Records {
			if len(record) <= jobURLColumn {
				continue
			}
			url := record[jobURLColumn]
			if url != "" && seen[url] {
				continue
			}
			seen[url] = true
			merged.Records = append(merged.Records, record)
		}
	}

	return merged
}

// WriteSnapshots writes the merged dataset twice under dir: a stable
// jobs_all_scraped.csv that downstream consumers can point at, and a
// timestamped copy that preserves run history.
func WriteSnapshots(dir string, t Table, now time.Time) (stable, stamped string, err error) {
	stable = filepath.Join(dir, "jobs_all_scraped.csv")
	if err := t.WriteCSV(stable); err != nil {
		return "", "", err
	}

	stamped = filepath.Join(dir, "jobs_all_scraped_"+now.Format("20060102_150405")+".csv")
	if err := t.WriteCSV(stamped); err != nil {
		return "", "", err
	}

	return stable, stamped, nil
}
