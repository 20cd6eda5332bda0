package engine

import (
	"fmt"
	"math/rand"
)

// Generate deals a fresh board and seats the players.
//
// Each seat starts on a reserved Ace of its own suit. Reserving the start
// cards before filling the board is deliberate: a naive "shuffle then find
// same-rank cells" placement can run out of Aces on unlucky deals, while
// reservation guarantees first-move legality independent of shuffle luck.
func Generate(cfg *GameConfig, rng *rand.Rand) (Board, []Seat, error) {
	if cfg.SeatCount > len(Suits) {
		return nil, nil, fmt.Errorf("%w: %d seats but only %d suits carry an ace",
			ErrInsufficientStartCards, cfg.SeatCount, len(Suits))
	}
	if RankValue(RankAce) > cfg.GridSize {
		// Aces always fit on any grid >= 1; this guards a misconfigured rank set.
		return nil, nil, fmt.Errorf("%w: ace rank not dealable on grid size %d",
			ErrInsufficientStartCards, cfg.GridSize)
	}

	size := cfg.GridSize
	total := size * size

	// Reserve one Ace per seat, one per distinct suit.
	reserved := make([]Card, cfg.SeatCount)
	for i := 0; i < cfg.SeatCount; i++ {
		reserved[i] = Card{Suit: Suits[i], Rank: RankAce, Value: RankValue(RankAce)}
	}

	pool := buildPool(size, total, rng)
	pool = removeReserved(pool, reserved)
	shuffleCards(pool, rng)

	// Randomize where the reserved Aces land: shuffle all positions and
	// give the first seatCount of them to the seats.
	positions := make([]Position, 0, total)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			positions = append(positions, Position{Row: r, Col: c})
		}
	}
	shufflePositions(positions, rng)

	board := make(Board, size)
	for r := range board {
		board[r] = make([]Cell, size)
	}

	seats := make([]Seat, cfg.SeatCount)
	for i := 0; i < cfg.SeatCount; i++ {
		pos := positions[i]
		kind := SeatAutomated
		if i < cfg.HumanSeats {
			kind = SeatHuman
		}
		seats[i] = Seat{ID: i, Kind: kind, Position: pos}
		board[pos.Row][pos.Col] = Cell{Card: reserved[i], OccupiedBy: i}
	}
	for i, pos := range positions[cfg.SeatCount:] {
		board[pos.Row][pos.Col] = Cell{Card: pool[i], OccupiedBy: NoSeat}
	}

	return board, seats, nil
}

// buildPool duplicates the canonical deck until it exactly fills the board.
// Whole decks keep the rank/suit distribution uniform; the final partial
// slice is drawn from a freshly shuffled deck so the remainder stays as
// close to uniform as duplication allows.
func buildPool(gridSize, total int, rng *rand.Rand) []Card {
	deck := NewDeck(gridSize)
	pool := make([]Card, 0, total+len(deck))
	for len(pool) < total {
		if total-len(pool) >= len(deck) {
			pool = append(pool, deck...)
			continue
		}
		partial := make([]Card, len(deck))
		copy(partial, deck)
		shuffleCards(partial, rng)
		pool = append(pool, partial[:total-len(pool)]...)
	}
	return pool
}

// removeReserved removes one instance of each reserved card from the pool.
// The pool always contains at least one full deck, so every reserved Ace
// has an instance to remove.
func removeReserved(pool []Card, reserved []Card) []Card {
	for _, r := range reserved {
		for i, c := range pool {
			if c.Suit == r.Suit && c.Rank == r.Rank {
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return pool
}
