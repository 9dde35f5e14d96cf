// Package optimistic models a mutating user action as an explicit two-phase
// state machine: the caller renders a local guess immediately, performs the
// best-effort remote write, then settles the action with whatever state the
// store authoritatively holds. There is no retry and no rollback; a failed
// write simply settles as Reverted with the re-fetched state.
package optimistic

import "errors"

var ErrSettled = errors.New("optimistic: action already settled")

type Phase int

const (
	// Pending carries the local guess; the remote write has not settled yet.
	Pending Phase = iota
	// Confirmed means the write succeeded and Result holds re-fetched state.
	Confirmed
	// Reverted means the write failed; Result holds the re-fetched state,
	// which may silently differ from the guess.
	Reverted
)

func (p Phase) String() string {
	switch p {
	case Confirmed:
		return "confirmed"
	case Reverted:
		return "reverted"
	default:
		return "pending"
	}
}

// Action tracks one mutating operation from guess to settlement.
type Action[T any] struct {
	phase  Phase
	guess  T
	result T
}

// Begin starts an action in the Pending phase with the optimistic local state.
func Begin[T any](guess T) *Action[T] {
	return &Action[T]{phase: Pending, guess: guess, result: guess}
}

// Confirm settles the action after a successful write.
func (a *Action[T]) Confirm(server T) error {
	return a.settle(Confirmed, server)
}

// Revert settles the action after a failed write.
func (a *Action[T]) Revert(server T) error {
	return a.settle(Reverted, server)
}

func (a *Action[T]) settle(phase Phase, server T) error {
	if a.phase != Pending {
		return ErrSettled
	}
	a.phase = phase
	a.result = server
	return nil
}

func (a *Action[T]) Phase() Phase { return a.phase }
func (a *Action[T]) Guess() T     { return a.guess }

// Result returns the settled server state, or the guess while still Pending.
func (a *Action[T]) Result() T { return a.result }
