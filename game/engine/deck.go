package engine

import "math/rand"

// RankValue maps a rank to its movement value: Ace is 1, digit ranks are
// their number.
func RankValue(rank Rank) int {
	switch rank {
	case RankAce:
		return 1
	case RankTwo:
		return 2
	case RankThree:
		return 3
	case RankFour:
		return 4
	case RankFive:
		return 5
	case RankSix:
		return 6
	case RankSeven:
		return 7
	case RankEight:
		return 8
	}
	return 0
}

// NewDeck builds the canonical single deck for a grid: one card per
// (suit, rank) pair whose value fits on the grid. A card's value is the
// exact number of steps a seat standing on it must take, so ranks larger
// than the grid size are never dealt.
func NewDeck(gridSize int) []Card {
	var deck []Card
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if v := RankValue(rank); v <= gridSize {
				deck = append(deck, Card{Suit: suit, Rank: rank, Value: v})
			}
		}
	}
	return deck
}

// shuffleCards shuffles in place with Fisher-Yates: for i from len-1 down
// to 1, swap i with a uniform j in [0,i].
func shuffleCards(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// shufflePositions is Fisher-Yates over board positions.
func shufflePositions(positions []Position, rng *rand.Rand) {
	for i := len(positions) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		positions[i], positions[j] = positions[j], positions[i]
	}
}
