// Package workers provides the background workers of the sync client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one unit.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block: implementations spawn their own goroutines, bound to
// ctx. Stop cancels them and blocks until they have returned.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Reachability reports whether the remote host can currently be reached.
type Reachability interface {
	IsNetworkAvailable() bool
}

// Task is an additional job run after every successful sync pass.
type Task func(ctx context.Context) error
