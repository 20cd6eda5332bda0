package engine

import "math/rand"

// SeatPolicy selects a move for an automated seat from a non-empty legal
// set. Policies are pluggable; the engine core never hardcodes one.
type SeatPolicy interface {
	ChooseMove(seat Seat, moves []Position) Position
}

// RandomPolicy picks uniformly at random among the legal destinations.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a RandomPolicy. A nil rng falls back to the
// package-level source.
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

// ChooseMove implements SeatPolicy.
func (p *RandomPolicy) ChooseMove(seat Seat, moves []Position) Position {
	if p.rng != nil {
		return moves[p.rng.Intn(len(moves))]
	}
	return moves[rand.Intn(len(moves))]
}
