package store

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Store runs the reduce/effect loop without a terminal. Effects run on their
// own goroutines and report back through the event channel; only Run
// touches the state.
type Store struct {
	actions *Actions
	events  chan tea.Msg
	done    chan struct{}

	mu    sync.RWMutex
	state State
	subs  []chan State
}

func New(initial State, actions *Actions) *Store {
	return &Store{
		actions: actions,
		events:  make(chan tea.Msg, 64),
		done:    make(chan struct{}),
		state:   initial,
	}
}

// Dispatch queues an event for the loop.
func (s *Store) Dispatch(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.done:
	}
}

// Exec runs an effect and dispatches its result.
func (s *Store) Exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		if msg := cmd(); msg != nil {
			s.Dispatch(msg)
		}
	}()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel receiving every new state. A slow reader only
// sees the latest snapshot. The channel is closed when Run returns.
func (s *Store) Subscribe() <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		close(ch)
	default:
		s.subs = append(s.subs, ch)
	}
	return ch
}

// Run processes events until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	defer s.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.events:
			s.handle(msg)
		}
	}
}

func (s *Store) handle(msg tea.Msg) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			s.Exec(cmd)
		}
		return
	}

	s.mu.Lock()
	s.state = Reduce(s.state, msg)
	next := s.state
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		publish(ch, next)
	}
	if s.actions != nil {
		s.Exec(s.actions.FollowUp(msg))
	}
}

func publish(ch chan State, st State) {
	for {
		select {
		case ch <- st:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (s *Store) shutdown() {
	close(s.done)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}
