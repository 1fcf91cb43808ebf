package actorfsm

import (
	"errors"
	"fmt"
)

// Definition is the state table shared by every Machine built from it.
// It is assembled once and must not be modified after the first Machine is
// created.
type Definition struct {
	states       map[StateID]*State
	defaultState StateID
}

// NewDefinition creates an empty state table
func NewDefinition() *Definition {
	return &Definition{
		states: make(map[StateID]*State),
	}
}

// State registers a state. Declaring an existing name replaces it.
func (d *Definition) State(id StateID, opts ...StateOption) *Definition {
	s := &State{
		ID: id,
	}
	for _, opt := range opts {
		opt(s)
	}
	d.states[id] = s
	return d
}

// States registers several states sharing the same options
func (d *Definition) States(ids []StateID, opts ...StateOption) *Definition {
	for _, id := range ids {
		d.State(id, opts...)
	}
	return d
}

// Default overrides the default state
func (d *Definition) Default(id StateID) *Definition {
	d.defaultState = id
	return d
}

// DefaultState returns the configured default state, or DefaultState if none
// was set
func (d *Definition) DefaultState() StateID {
	if d.defaultState == "" {
		return DefaultState
	}
	return d.defaultState
}

// Lookup returns a copy of the registered state with the given ID.
// Changing the copy does not affect the table.
func (d *Definition) Lookup(id StateID) (*State, bool) {
	s, ok := d.states[id]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// lookup returns the shared table entry; callers must not modify it
func (d *Definition) lookup(id StateID) (*State, bool) {
	s, ok := d.states[id]
	return s, ok
}

// StateNames returns all registered state IDs in sorted order
func (d *Definition) StateNames() []StateID {
	ids := make([]StateID, 0, len(d.states))
	for id := range d.states {
		ids = append(ids, id)
	}
	sortStateIDs(ids)
	return ids
}

// Extend returns an independent copy of the table. States declared on the
// copy, or a new default, do not affect d.
func (d *Definition) Extend() *Definition {
	ext := &Definition{
		states:       make(map[StateID]*State, len(d.states)),
		defaultState: d.defaultState,
	}
	for id, s := range d.states {
		ext.states[id] = s.clone()
	}
	return ext
}

// Validate reports constraint targets that were never registered.
// Transitions do not depend on it: an unregistered target still fails with
// ErrInvalidState at transition time.
func (d *Definition) Validate() error {
	var errs []error
	for _, id := range d.StateNames() {
		for _, to := range d.states[id].AllowedTargets() {
			if _, ok := d.states[to]; !ok {
				errs = append(errs, fmt.Errorf("state %q allows transition to undefined state %q", id, to))
			}
		}
	}
	return errors.Join(errs...)
}
