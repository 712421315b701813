package stackblur

import (
	"context"
	"sync"
)

// Task is a unit of work run on a Looper goroutine. The context it receives
// identifies that looper, see Looper.Instance.
type Task func(ctx context.Context)

type looperKey struct{}

// Looper is an owner goroutine with a task queue and one shared Engine.
// Only tasks running on the looper use the shared engine, which is what
// makes sharing it safe.
type Looper struct {
	engine *Engine
	tasks  chan Task

	quit      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewLooper creates a looper whose queue holds up to queue pending tasks.
// Run must be called to start processing.
func NewLooper(queue int) *Looper {
	if queue < 1 {
		queue = 1
	}
	return &Looper{
		engine: NewEngine(),
		tasks:  make(chan Task, queue),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run processes tasks on the calling goroutine until ctx is done or Close is
// called. After Close, tasks already queued still run before Run returns.
// The looper is closed when Run returns.
func (l *Looper) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.Close()
	ctx = context.WithValue(ctx, looperKey{}, l)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			for {
				select {
				case t := <-l.tasks:
					t(ctx)
				default:
					return nil
				}
			}
		case t := <-l.tasks:
			t(ctx)
		}
	}
}

// Close stops the looper. It is safe to call more than once.
func (l *Looper) Close() {
	l.closeOnce.Do(func() { close(l.quit) })
}

// Done is closed once Run has returned.
func (l *Looper) Done() <-chan struct{} {
	return l.done
}

// OnLooper reports whether ctx belongs to a task running on l.
func (l *Looper) OnLooper(ctx context.Context) bool {
	owner, _ := ctx.Value(looperKey{}).(*Looper)
	return owner == l
}

// Post queues t without waiting for it to run. It blocks while the queue is
// full and fails with ErrLooperClosed once the looper is closed.
func (l *Looper) Post(t Task) error {
	select {
	case <-l.quit:
		return ErrLooperClosed
	default:
	}
	select {
	case l.tasks <- t:
		return nil
	case <-l.quit:
		return ErrLooperClosed
	}
}

// Do runs t on the looper and waits for it to finish. Called from a task
// already on the looper, t runs inline.
func (l *Looper) Do(ctx context.Context, t Task) error {
	if l.OnLooper(ctx) {
		t(ctx)
		return nil
	}

	finished := make(chan struct{})
	err := l.Post(func(ctx context.Context) {
		defer close(finished)
		t(ctx)
	})
	if err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLooperClosed
		}
	}
}

// Instance returns the shared engine when ctx belongs to a task on l and a
// new private engine otherwise.
func (l *Looper) Instance(ctx context.Context) *Engine {
	if l.OnLooper(ctx) {
		return l.engine
	}
	return NewEngine()
}

// ReleaseShared drops the shared engine's buffers. On the looper this happens
// immediately; from anywhere else it is queued behind pending tasks so it
// never races with a blur in flight.
func (l *Looper) ReleaseShared(ctx context.Context) error {
	if l.OnLooper(ctx) {
		l.engine.ReleaseBuffers()
		return nil
	}
	return l.Post(func(context.Context) { l.engine.ReleaseBuffers() })
}
