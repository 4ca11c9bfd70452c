package sim

import (
	"context"
	"sync"

	"github.com/san-kum/pendulums/internal/ensemble"
)

// Job is one independent headless run. Each job owns its ensemble, so jobs
// may run concurrently while every tick inside a job stays serial.
type Job struct {
	Ensemble ensemble.Config
	Run      Config
	Metrics  func() []Metric
}

// Batch runs jobs concurrently and returns results in job order.
type Batch struct {
	jobs []Job
}

func NewBatch(jobs []Job) *Batch {
	return &Batch{jobs: jobs}
}

func (b *Batch) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(b.jobs))
	errs := make([]error, len(b.jobs))

	var wg sync.WaitGroup
	for i := range b.jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := b.jobs[idx]
			ens, err := ensemble.New(job.Ensemble, job.Run.Viewport)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(ens)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, job.Run)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
