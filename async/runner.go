// Package async provides completion tracking for goroutines doing scoring
// work. A Runner spawns goroutines and delivers each one's result to a
// callback; callbacks always run on the caller's goroutine, so the caller
// can mutate its own bookkeeping (per-job results, failure lists) without
// locks.
package async

// ErrorHandler is invoked with the error returned by an async function.
type ErrorHandler func(error)

type message struct {
	err error
	cb  ErrorHandler
}

// Runner tracks in-flight goroutines. It is not safe for concurrent use;
// RunAsync and the drain methods must be called from a single goroutine.
type Runner struct {
	doneCh  chan message
	pending int
}

func NewRunner() *Runner {
	return &Runner{doneCh: make(chan message)}
}

func (r *Runner) NumRunning() int {
	return r.pending
}

// RunAsync runs f on a new goroutine. The callback cb is invoked with f's
// result from ProcessMessages or Wait.
func (r *Runner) RunAsync(f func() error, cb ErrorHandler) {
	r.pending++
	go func() {
		r.doneCh <- message{err: f(), cb: cb}
	}()
}

// ProcessMessages blocks until one completion arrives and invokes its
// callback. It is a no-op when nothing is in flight.
func (r *Runner) ProcessMessages() {
	if r.pending == 0 {
		return
	}
	msg := <-r.doneCh
	r.pending--
	msg.cb(msg.err)
}

// Wait drains all in-flight goroutines, invoking each callback as its
// result arrives.
func (r *Runner) Wait() {
	for r.pending > 0 {
		r.ProcessMessages()
	}
}
