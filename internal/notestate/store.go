package notestate

import "sync"

// Change describes one dispatched transition.
type Change struct {
	Action  Action
	Outcome Outcome
	Prev    AppState
	Next    AppState
}

// Listener observes transitions after they are committed. Listeners run on
// the dispatching goroutine while the store is locked and must not call
// Dispatch.
type Listener func(change Change)

// Store owns one AppState and serializes transitions over it.
type Store struct {
	mu        sync.Mutex
	reducer   Reducer
	state     AppState
	listeners []Listener
}

func NewStore(reducer Reducer, initial AppState) *Store {
	return &Store{
		reducer: reducer,
		state:   initial,
	}
}

func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch runs the reducer and notifies listeners. Rejected and ignored
// actions leave the state as it was and are not broadcast.
func (s *Store) Dispatch(action Action) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, outcome := s.reducer.Reduce(s.state, action)
	change := Change{
		Action:  action,
		Outcome: outcome,
		Prev:    s.state,
		Next:    next,
	}
	if outcome == Rejected || outcome == Ignored {
		return change
	}

	s.state = next
	for _, l := range s.listeners {
		l(change)
	}
	return change
}
