package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// WorkItem is an interface to work items used by the workers
type WorkItem interface {
	Run() error
	Name() string
}

// WorkerPool is a pool of workers.
type WorkerPool struct {
	ctx      context.Context
	stop     chan struct{}  // Close this channel to stop all workers
	submit   chan WorkItem  // Send work items to this channel, one of workers will run it
	workerg  sync.WaitGroup // To wait completion of all workers
	nbWorker int            // The number of concurrent workers
	debug    bool           // True to enable logs
}

// New creates a worker pool of the given size. The pool refuses new
// work once ctx is cancelled.
func New(ctx context.Context, size int, debug bool) *WorkerPool {
	w := &WorkerPool{
		ctx:      ctx,
		stop:     make(chan struct{}),
		submit:   make(chan WorkItem),
		nbWorker: size,
		debug:    debug,
	}
	for i := 0; i < w.nbWorker; i++ {
		w.workerg.Add(1)
		go w.newWorker(i)
	}
	return w
}

// Stop stops all running workers, waits for the running work to
// finish and then leaves the workerpool.
func (w *WorkerPool) Stop() {
	close(w.stop)
	w.workerg.Wait()
	if w.debug {
		logrus.Debug("Workerpool is ended")
	}
}

// Submit a work item to the worker pool. It reports whether the pool
// accepted the work: items submitted after the context was cancelled
// or the pool was stopped are dropped.
func (w *WorkerPool) Submit(wi WorkItem) bool {
	if w.ctx.Err() != nil {
		return false
	}
	if w.debug {
		logrus.WithField("work", wi.Name()).Debug("Submit work")
	}
	select {
	case w.submit <- wi:
		return true
	case <-w.ctx.Done():
		return false
	case <-w.stop:
		return false
	}
}

// newWorker initializes a worker
func (w *WorkerPool) newWorker(id int) {
	defer w.workerg.Done()
	if w.debug {
		logrus.WithField("worker", id).Debug("Initializing worker")
	}
	for {
		select {
		case <-w.stop:
			if w.debug {
				logrus.WithField("worker", id).Debug("Worker is ended")
			}
			return
		case <-w.ctx.Done():
			return
		case wi := <-w.submit:
			t := time.Now()
			err := wi.Run()
			log := logrus.WithFields(logrus.Fields{
				"work":     wi.Name(),
				"duration": time.Since(t).Round(time.Millisecond).String(),
			})
			if err != nil {
				log.WithError(err).Error("Work failed")
			} else if w.debug {
				log.Debug("Work done")
			}
		}
	}
}

// RunAction is an helper to submit a work to the worker pool
type RunAction struct {
	name string
	fn   func() error
}

// NewRunAction creates a work item out of a name and a function
func NewRunAction(n string, fn func() error) RunAction {
	return RunAction{name: n, fn: fn}
}

// Name returns the names of the work
func (r RunAction) Name() string {
	return r.name
}

// Run invoke the function
func (r RunAction) Run() error {
	return r.fn()
}
