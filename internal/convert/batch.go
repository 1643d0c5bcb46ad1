package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hajduko/SaWinHETUtility/internal/inbox"
	"github.com/hajduko/SaWinHETUtility/internal/logging"
	"github.com/hajduko/SaWinHETUtility/internal/manifest"
	"github.com/hajduko/SaWinHETUtility/internal/store"
)

// Result is the outcome of one batch job.
type Result struct {
	Job        Job
	Conversion *store.Conversion
	Duration   time.Duration
	Err        error
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// RunBatch converts jobs with at most workers conversions in flight.
// A failing job does not stop the others; results keep the job order.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			start := time.Now()
			conv, err := r.Run(gctx, job)
			results[i] = Result{Job: job, Conversion: conv, Duration: time.Since(start), Err: err}
			if err != nil {
				r.logger().Error("conversion failed", slog.String("input", job.Key()), logging.Err(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	r.logger().Info("batch complete",
		slog.Int("jobs", len(jobs)),
		slog.Int("failed", Failed(results)),
		slog.Int("workers", workers),
	)
	return results
}

// InboxWork is what an inbox holds for a batch run.
type InboxWork struct {
	Jobs []Job
	// Pending records have no sibling manifest.
	Pending []inbox.Item
	// Invalid holds a failed result for every record whose manifest
	// could not be loaded.
	Invalid []Result
}

// InboxJobs builds a job for every inbox record that has a sibling
// manifest. A manifest that fails to load fails only its own record.
func InboxJobs(ctx context.Context, box *inbox.Dir) (*InboxWork, error) {
	items, err := box.List(ctx)
	if err != nil {
		return nil, err
	}
	work := &InboxWork{}
	for _, it := range items {
		recordPath, err := box.Path(it.Key)
		if err != nil {
			return nil, err
		}
		mpath, ok := manifest.Sibling(recordPath, fileExists)
		if !ok {
			work.Pending = append(work.Pending, it)
			continue
		}
		job := Job{Record: recordPath, InboxKey: it.Key}
		m, err := manifest.LoadSibling(mpath, recordPath)
		if err != nil {
			work.Invalid = append(work.Invalid, Result{Job: job, Err: fmt.Errorf("inbox job %s: %w", it.Key, err)})
			continue
		}
		job = FromManifest(m)
		job.InboxKey = it.Key
		work.Jobs = append(work.Jobs, job)
	}
	return work, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
