package workers

import "context"

// Workers starts and stops a fixed set of workers.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts the workers in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
