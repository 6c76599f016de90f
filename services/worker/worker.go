package worker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"thaijobscraper/internal/crawler"
	"thaijobscraper/internal/dataset"
	"thaijobscraper/logger"
	"thaijobscraper/services/publisher"
)

// Worker runs the scrape pipeline: crawl every source, write per-source
// CSVs, merge into the canonical dataset, write snapshots, and optionally
// feed postings to the publisher.
type Worker struct {
	orch      *crawler.Orchestrator
	skillKeys []string
	eachDir   string
	allDir    string
	pub       publisher.Publisher
	interval  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewWorker creates the pipeline worker. pub may be nil; interval zero means
// run once and stop.
func NewWorker(
	orch *crawler.Orchestrator,
	skillKeys []string,
	eachDir, allDir string,
	pub publisher.Publisher,
	interval time.Duration,
) *Worker {
	return &Worker{
		orch:      orch,
		skillKeys: skillKeys,
		eachDir:   eachDir,
		allDir:    allDir,
		pub:       pub,
		interval:  interval,
		log:       logger.ForWorker(),
		now:       time.Now,
	}
}

// Start runs the pipeline once, then keeps re-running on the configured
// interval until the context is cancelled. With no interval it returns after
// the first run.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.runOnce(ctx); err != nil {
		w.log.Error().Err(err).Msg("Pipeline run failed")
	}

	if w.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.Error().Err(err).Msg("Pipeline run failed")
			}
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) error {
	started := w.now()
	w.log.Info().Msg("Starting scrape pipeline")

	tables := w.orch.Run(ctx)

	perSource := make([]dataset.Table, 0, len(tables))
	for _, table := range tables {
		t := dataset.FromRows(table.Rows, w.skillKeys)
		perSource = append(perSource, t)

		path := filepath.Join(w.eachDir, strings.ToLower(table.Source)+"_jobs.csv")
		if err := t.WriteCSV(path); err != nil {
			return err
		}
		w.log.Info().Str("source", table.Source).Int("rows", len(t.Records)).Str("path", path).Msg("Wrote per-source dataset")
	}

	merged := dataset.Merge(perSource)
	stable, stamped, err := dataset.WriteSnapshots(w.allDir, merged, w.now())
	if err != nil {
		return err
	}
	w.log.Info().
		Int("rows", len(merged.Records)).
		Str("stable", stable).
		Str("snapshot", stamped).
		Msg("Wrote merged dataset")

	w.publish(tables)

	w.log.Info().Dur("elapsed", w.now().Sub(started)).Msg("Scrape pipeline finished")
	return nil
}

// publish feeds every posting to the stream publisher. Publish failures are
// logged and skipped; the CSV output is already durable at this point.
func (w *Worker) publish(tables []crawler.SourceTable) {
	if w.pub == nil {
		return
	}

	published := 0
	for _, table := range tables {
		for _, row := range table.Rows {
			payload, err := json.Marshal(row)
			if err != nil {
				w.log.Warn().Err(err).Str("url", row.URL).Msg("Failed to marshal posting")
				continue
			}
			if err := w.pub.Publish(table.Source, payload); err != nil {
				w.log.Warn().Err(err).Str("url", row.URL).Msg("Failed to publish posting")
				continue
			}
			published++
		}
	}

	if err := w.pub.TrimStreams(); err != nil {
		w.log.Warn().Err(err).Msg("Failed to trim streams")
	}
	w.log.Info().Int("published", published).Msg("Published postings")
}
