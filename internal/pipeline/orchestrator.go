package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator owns the job store and a pool of workers draining a bounded
// queue. With zero workers it degrades to synchronous processing, which
// also serves as the overflow path when the queue is full.
type Orchestrator struct {
	processor *Processor
	store     *JobStore
	queue     chan *Job

	workerCount int
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(processor *Processor, store *JobStore, workerCount, queueSize int, logger *slog.Logger) *Orchestrator {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		processor:   processor,
		store:       store,
		queue:       make(chan *Job, queueSize),
		workerCount: workerCount,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the worker pool and the job store janitor.
func (o *Orchestrator) Start() {
	for i := 0; i < o.workerCount; i++ {
		o.wg.Add(1)
		go o.worker(i)
	}
	o.wg.Add(1)
	go o.janitor()
	o.logger.Info("orchestrator started", "workers", o.workerCount, "queue_size", cap(o.queue))
}

// Stop cancels in-flight work and waits for workers to exit.
func (o *Orchestrator) Stop() {
	o.cancel()
	o.wg.Wait()
	o.logger.Info("orchestrator stopped")
}

// Submit registers the job and hands it to the worker pool. If no workers
// are configured, or the queue is saturated, the job is processed
// synchronously in the caller's goroutine.
func (o *Orchestrator) Submit(job *Job) {
	o.store.Put(job)

	if o.workerCount < 1 {
		o.processor.Process(o.ctx, job)
		return
	}

	select {
	case o.queue <- job:
	default:
		o.logger.Warn("queue full, processing synchronously", "job_id", job.ID)
		o.processor.Process(o.ctx, job)
	}
}

// GetJob looks up a job by ID; nil if unknown or expired.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.store.Get(id)
}

// QueueDepth reports the number of jobs waiting for a worker.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

func (o *Orchestrator) worker(id int) {
	defer o.wg.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case job := <-o.queue:
			o.logger.Debug("worker picked up job", "worker", id, "job_id", job.ID)
			o.processor.Process(o.ctx, job)
		}
	}
}

func (o *Orchestrator) janitor() {
	defer o.wg.Done()
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-o.ctx.Done():
			return
		case <-ticker.C:
			o.store.Cleanup()
		}
	}
}
