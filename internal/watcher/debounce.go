package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// DebouncedWatcher delays each file's events until the file has been
// quiet for the debounce delay, then delivers one event whose Op is the
// union of the burst. A single goroutine owns the pending events.
type DebouncedWatcher struct {
	inner Watcher
	delay time.Duration

	events chan Event
	errors chan error

	flushReq chan chan struct{}
	countReq chan chan int

	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// burst is an event waiting for its file to settle.
type burst struct {
	event    Event
	deadline time.Time
}

// NewDebouncedWatcher wraps inner. A non-positive delay selects
// DefaultDebounce.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	dw := &DebouncedWatcher{
		inner:    inner,
		delay:    delay,
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		flushReq: make(chan chan struct{}),
		countReq: make(chan chan int),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go dw.run()
	return dw
}

func (dw *DebouncedWatcher) Watch(path string) error { return dw.inner.Watch(path) }
func (dw *DebouncedWatcher) Unwatch(path string) error { return dw.inner.Unwatch(path) }
func (dw *DebouncedWatcher) WatchedPaths() []string { return dw.inner.WatchedPaths() }
func (dw *DebouncedWatcher) Events() <-chan Event { return dw.events }
func (dw *DebouncedWatcher) Errors() <-chan error { return dw.errors }

// Close discards pending events, closes the output channels and closes
// the wrapped watcher.
func (dw *DebouncedWatcher) Close() error {
	var err error
	dw.closeOnce.Do(func() {
		close(dw.quit)
		<-dw.done
		err = dw.inner.Close()
	})
	return err
}

// Flush delivers every pending event now.
func (dw *DebouncedWatcher) Flush() {
	ack := make(chan struct{})
	select {
	case dw.flushReq <- ack:
		<-ack
	case <-dw.done:
	}
}

// PendingCount returns the number of files with an undelivered event.
func (dw *DebouncedWatcher) PendingCount() int {
	reply := make(chan int)
	select {
	case dw.countReq <- reply:
		return <-reply
	case <-dw.done:
		return 0
	}
}

func (dw *DebouncedWatcher) run() {
	defer close(dw.done)
	defer close(dw.errors)
	defer close(dw.events)

	pending := make(map[string]*burst)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	// rearm points the timer at the earliest deadline.
	rearm := func() {
		timer.Stop()
		var next time.Time
		for _, b := range pending {
			if next.IsZero() || b.deadline.Before(next) {
				next = b.deadline
			}
		}
		if !next.IsZero() {
			timer.Reset(time.Until(next))
		}
	}

	// deliver sends the bursts that are due, or all of them when force
	// is set.
	deliver := func(force bool) {
		now := time.Now()
		for path, b := range pending {
			if !force && b.deadline.After(now) {
				continue
			}
			delete(pending, path)
			select {
			case dw.events <- b.event:
			default:
				// Reader is not keeping up; drop.
			}
		}
		rearm()
	}

	innerEvents, innerErrors := dw.inner.Events(), dw.inner.Errors()
	for {
		select {
		case <-dw.quit:
			return

		case ev, ok := <-innerEvents:
			if !ok {
				return
			}
			if b, exists := pending[ev.Path]; exists {
				ev.Op |= b.event.Op
			}
			pending[ev.Path] = &burst{event: ev, deadline: time.Now().Add(dw.delay)}
			rearm()

		case err, ok := <-innerErrors:
			if !ok {
				return
			}
			select {
			case dw.errors <- err:
			default:
			}

		case <-timer.C:
			deliver(false)

		case ack := <-dw.flushReq:
			deliver(true)
			close(ack)

		case reply := <-dw.countReq:
			reply <- len(pending)
		}
	}
}

var _ Watcher = (*DebouncedWatcher)(nil)
