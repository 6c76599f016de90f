package crawler

import (
	"io"

	"thaijobscraper/config"
	"thaijobscraper/helpers"
	"thaijobscraper/internal/textmatch"
)

// CreateSources builds the production source adapters. JobThai and JobBKK
// fetch through the plain browser-header client; JobsDB goes through the
// retrying client so 403 bursts are retried with warm-up and an optional
// proxy before the source is declared blocked.
func CreateSources(cfg *config.Config, extractor *textmatch.SkillExtractor) ([]Source, error) {
	jobsdbClient, err := helpers.NewRetryClient("JobsDB", jobsdbBaseURL+"/", cfg.JobsDBProxyURL)
	if err != nil {
		return nil, err
	}
	jobsdbFetch := func(url string) (io.Reader, string, error) {
		return jobsdbClient.Get(url, "")
	}

	return []Source{
		NewJobThai(extractor, cfg.MaxPages, helpers.Fetch),
		NewJobsDB(extractor, cfg.MaxPages, jobsdbFetch),
		NewJobBKK(extractor, cfg.MaxPages, helpers.Fetch),
	}, nil
}
