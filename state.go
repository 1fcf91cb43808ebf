package actorfsm

import "sort"

// State defines a state in the table
type State struct {
	ID StateID

	// to restricts the states reachable from this one. Nil means any
	// registered state is a valid target.
	to map[StateID]struct{}

	OnEnter func(ctx *Context) error
}

// StateOption is a functional option for configuring a State
type StateOption func(*State)

// WithOnEnter sets the entry action for the state
func WithOnEnter(fn func(*Context) error) StateOption {
	return func(s *State) {
		s.OnEnter = fn
	}
}

// WithTransitionsTo restricts outgoing transitions to the given states.
// Repeated use accumulates targets.
func WithTransitionsTo(ids ...StateID) StateOption {
	return func(s *State) {
		if s.to == nil {
			s.to = make(map[StateID]struct{}, len(ids))
		}
		for _, id := range ids {
			s.to[id] = struct{}{}
		}
	}
}

// CanTransitionTo reports whether the state's constraint admits target
func (s *State) CanTransitionTo(target StateID) bool {
	if s.to == nil {
		return true
	}
	_, ok := s.to[target]
	return ok
}

// AllowedTargets returns the constrained targets in sorted order, or nil when
// the state is unconstrained
func (s *State) AllowedTargets() []StateID {
	if s.to == nil {
		return nil
	}
	ids := make([]StateID, 0, len(s.to))
	for id := range s.to {
		ids = append(ids, id)
	}
	sortStateIDs(ids)
	return ids
}

func (s *State) clone() *State {
	c := *s
	if s.to != nil {
		c.to = make(map[StateID]struct{}, len(s.to))
		for id := range s.to {
			c.to[id] = struct{}{}
		}
	}
	return &c
}

func sortStateIDs(ids []StateID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
