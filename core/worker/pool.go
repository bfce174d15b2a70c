package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Options configures a ProcessAll run.
type Options struct {
	// Workers bounds the number of concurrent tasks.
	Workers int

	// RateLimitRPS is a global limit across all workers. Set to <=0 to
	// disable. Remote services that rate-limit bulk clients make an
	// unbounded fan-out unacceptable.
	RateLimitRPS float64
}

// Result holds the output for one input item.
type Result[In any, Out any] struct {
	Input  In
	Output Out
	Err    error
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// ProcessAll runs the processor over all input items with a bounded worker
// pool and returns results in input order. Processor errors are captured
// per item, never aborting the pool; only context cancellation stops work
// early, in which case unprocessed items carry the context error.
func ProcessAll[In any, Out any](
	ctx context.Context,
	items []In,
	processor func(context.Context, In) (Out, error),
	opts Options,
) []Result[In, Out] {
	opts = opts.withDefaults()

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	out := make([]Result[In, Out], len(items))

	type job struct {
		idx int
		in  In
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := Result[In, Out]{Input: j.in}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						res.Err = err
					}
				}
				if res.Err == nil {
					res.Output, res.Err = processor(ctx, j.in)
				}
				out[j.idx] = res
			}
		}()
	}

	for i, item := range items {
		jobs <- job{idx: i, in: item}
	}
	close(jobs)
	wg.Wait()

	return out
}
