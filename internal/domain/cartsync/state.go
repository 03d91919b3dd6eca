package cartsync

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid sync state transition")

type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateMerging        State = "merging"
	StateSynced         State = "synced"
	StateSyncFailed     State = "sync_failed"
)

var transitions = map[State][]State{
	StateAnonymous:      {StateAuthenticating},
	StateAuthenticating: {StateMerging},
	StateMerging:        {StateSynced, StateSyncFailed},
	StateSynced:         {StateAnonymous},
	StateSyncFailed:     {StateMerging, StateAnonymous},
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates a move and returns the new state.
func (s State) Transition(next State) (State, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// UsesRemote reports whether cart operations target the remote store.
func (s State) UsesRemote() bool {
	switch s {
	case StateMerging, StateSynced, StateSyncFailed:
		return true
	}
	return false
}

func (s State) String() string {
	return string(s)
}
