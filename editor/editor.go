// Package editor drives a Session from a single event loop: the
// HTTP handlers, the websocket hub and the document loads all post
// their work to it, so that the state is only ever touched by one
// goroutine.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/benoitkugler/svgstyler/logging"
	"github.com/benoitkugler/svgstyler/svgdoc"
)

// Editor serializes the access to a Session.
type Editor struct {
	s    *Session
	cmds chan func()
	done chan struct{}

	subs    map[int]chan Snapshot // only touched by the loop
	nextSub int
}

// New returns an editor with an empty session. Run must be called
// for the other methods to make progress.
func New(opts Options) *Editor {
	e := &Editor{
		s:    NewSession(opts),
		cmds: make(chan func()),
		done: make(chan struct{}),
		subs: make(map[int]chan Snapshot),
	}
	e.s.onChange = e.broadcast
	return e
}

// Run executes the submitted work until ctx is done.
// It must be called exactly once.
func (e *Editor) Run(ctx context.Context) error {
	defer func() {
		close(e.done)
		for id, ch := range e.subs {
			close(ch)
			delete(e.subs, id)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.cmds:
			cmd()
		}
	}
}

// Do runs fn on the event loop and returns its error.
// fn must not retain the Session.
func (e *Editor) Do(ctx context.Context, fn func(s *Session) error) error {
	errc := make(chan error, 1)
	cmd := func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Logger().Error("editor command panicked", slog.Any("panic", r))
				errc <- fmt.Errorf("editor: panic: %v", r)
			}
		}()
		errc <- fn(e.s)
	}
	select {
	case e.cmds <- cmd:
	case <-e.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// once accepted, the command runs to completion
	return <-errc
}

// Snapshot returns the current state.
func (e *Editor) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := e.Do(ctx, func(s *Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap, err
}

// StartLoad reads and parses a document from r in a new goroutine.
// The returned channel receives exactly one value, once the completion
// has been handled by the loop: nil if the document is displayed,
// the parsing error, or ErrStaleLoad.
func (e *Editor) StartLoad(ctx context.Context, r io.Reader) (<-chan error, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	var (
		seq  uint64
		opts svgdoc.Options
	)
	err := e.Do(ctx, func(s *Session) error {
		seq = s.beginLoad()
		opts = s.LoaderOptions()
		return nil
	})
	if err != nil {
		return nil, err
	}
	result := make(chan error, 1)
	go func() {
		doc, err := svgdoc.ReadDocumentStream(r, opts)
		if err != nil {
			logging.Logger().Warn("loading document failed", slog.Uint64("load", seq), slog.Any("error", err))
			result <- err
			return
		}
		// the completion is always delivered, even if ctx is done by now
		result <- e.Do(context.Background(), func(s *Session) error {
			return s.completeLoad(seq, doc)
		})
	}()
	return result, nil
}

// Load is StartLoad followed by waiting for the completion.
func (e *Editor) Load(ctx context.Context, r io.Reader) error {
	result, err := e.StartLoad(ctx, r)
	if err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel receiving the state after every change.
// Slow readers only see the latest state. The channel is closed by
// cancel or when the loop stops.
func (e *Editor) Subscribe(ctx context.Context) (updates <-chan Snapshot, cancel func(), err error) {
	ch := make(chan Snapshot, 1)
	var id int
	err = e.Do(ctx, func(*Session) error {
		id = e.nextSub
		e.nextSub++
		e.subs[id] = ch
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	cancel = func() {
		_ = e.Do(context.Background(), func(*Session) error {
			if ch, ok := e.subs[id]; ok {
				close(ch)
				delete(e.subs, id)
			}
			return nil
		})
	}
	return ch, cancel, nil
}

func (e *Editor) broadcast() {
	if len(e.subs) == 0 {
		return
	}
	snap := e.s.Snapshot()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale value
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
