package pipeline

import "sync"

// Progress is delivered after each job.
type Progress struct {
	Processed int
	Total     int
	Outcome   JobOutcome
}

// Observer receives batch events synchronously from the worker, in job
// order. Implementations must not block indefinitely.
type Observer interface {
	OnProgress(Progress)
	OnComplete(Summary)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are no-ops.
type ObserverFuncs struct {
	Progress func(Progress)
	Complete func(Summary)
}

func (f ObserverFuncs) OnProgress(p Progress) {
	if f.Progress != nil {
		f.Progress(p)
	}
}

func (f ObserverFuncs) OnComplete(s Summary) {
	if f.Complete != nil {
		f.Complete(s)
	}
}

// Event is one immutable message on a ChannelObserver. Exactly one of
// Progress and Summary is set.
type Event struct {
	Progress *Progress
	Summary  *Summary
}

// ChannelObserver hands events to another goroutine over a channel. The
// worker owns it: call Close once the batch (or batches, in watch mode)
// are done so the consumer's range loop ends.
type ChannelObserver struct {
	ch   chan Event
	once sync.Once
}

// NewChannelObserver returns an observer with the given channel buffer.
func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{ch: make(chan Event, buffer)}
}

// Events returns the receive side for the consumer.
func (c *ChannelObserver) Events() <-chan Event { return c.ch }

func (c *ChannelObserver) OnProgress(p Progress) { c.ch <- Event{Progress: &p} }

func (c *ChannelObserver) OnComplete(s Summary) { c.ch <- Event{Summary: &s} }

// Close closes the event channel. It is safe to call more than once.
func (c *ChannelObserver) Close() {
	c.once.Do(func() { close(c.ch) })
}
