package picker

import (
	"context"
	"sync"
)

// Loop is the UI-owning execution context: a FIFO of tasks drained by the
// single goroutine that calls Run. Session state is only touched by tasks
// running on the loop.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

// NewLoop creates a loop; tasks run once Run is called
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues task to run on the loop. It never blocks, and is safe to call
// from a task already running on the loop. Returns false if the loop has
// stopped and the task will never run.
func (l *Loop) Post(task func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes tasks in order until ctx is done. Tasks accepted by Post
// before the loop stopped are run before Run returns.
func (l *Loop) Run(ctx context.Context) {
	for {
		for _, task := range l.take(false) {
			task()
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			for _, task := range l.take(true) {
				task()
			}
			return
		}
	}
}

func (l *Loop) take(stop bool) []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if stop {
		l.stopped = true
	}
	tasks := l.queue
	l.queue = nil
	return tasks
}
