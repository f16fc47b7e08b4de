package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

type queued struct {
	seq int
	job Job
}

type indexed struct {
	seq    int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently.
// Wait returns results in submission order, whatever order jobs finish in.
type Pool struct {
	workers    int
	jobQueue   chan queued
	results    chan indexed
	collector  *ResultCollector
	collected  chan struct{}
	submitted  int
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers.
// Cancelling ctx stops the workers.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan queued, workers*2),
		results:    make(chan indexed, workers*2),
		collector:  NewResultCollector(),
		collected:  make(chan struct{}),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	go p.collect()
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case q, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := q.job.Execute(p.ctx)
			select {
			case p.results <- indexed{seq: q.seq, result: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// collect drains results as they arrive so workers never block on a full channel
func (p *Pool) collect() {
	defer close(p.collected)
	for r := range p.results {
		p.collector.Add(r.seq, r.result)
	}
}

// Submit submits a job to the pool for execution. It is not safe for
// concurrent use and must not be called after Wait.
func (p *Pool) Submit(job Job) {
	q := queued{seq: p.submitted, job: job}
	p.submitted++

	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- q:
	}
}

// Wait waits for all submitted jobs to complete and returns their results
// in submission order. A job dropped by cancellation leaves a nil entry.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.collected
	p.cancelFunc()

	return p.collector.Results(p.submitted)
}

// Shutdown shuts down the worker pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// ResultCollector gathers results keyed by submission sequence
type ResultCollector struct {
	results map[int]Result
	mu      sync.Mutex
}

// NewResultCollector creates a new result collector
func NewResultCollector() *ResultCollector {
	return &ResultCollector{
		results: make(map[int]Result),
	}
}

// Add records the result of job seq (thread-safe)
func (c *ResultCollector) Add(seq int, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[seq] = result
}

// Results returns the first n results in sequence order
func (c *ResultCollector) Results(n int) []Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Result, n)
	for seq, r := range c.results {
		if seq < n {
			out[seq] = r
		}
	}
	return out
}
