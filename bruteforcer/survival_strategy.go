package main

import (
	"log"
	"math/rand"
)

// SurvivalStrategy picks moves with a one-ply lookahead: for each legal
// destination it simulates the burn locally and counts the onward legal
// moves from there, preferring destinations that keep the most options
// open. Ties break toward higher onward card values, then randomly.
type SurvivalStrategy struct {
	rng *rand.Rand
}

func NewSurvivalStrategy() *SurvivalStrategy {
	return &SurvivalStrategy{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// ChooseMove scores every legal destination and returns the best one.
func (s *SurvivalStrategy) ChooseMove(state *GameState, seatID int, moves []Position) Position {
	best := moves[0]
	bestScore := -1
	bestValue := -1

	from := state.Seats[seatID].Position

	for _, to := range moves {
		score := s.onwardMoves(state, seatID, from, to)
		value := state.Board[to.Row][to.Col].Card.Value

		better := score > bestScore ||
			(score == bestScore && value > bestValue) ||
			(score == bestScore && value == bestValue && s.rng.Intn(2) == 0)
		if better {
			best = to
			bestScore = score
			bestValue = value
		}
	}

	if bestScore == 0 {
		log.Printf("⚠️  Every destination is terminal, picking (%d,%d)", best.Row, best.Col)
	}
	return best
}

// onwardMoves simulates committing the move (burn the departed cell, stand
// on the destination) and counts the destinations reachable on the next
// turn under the movement rule: shortest lateral distance d over live
// unoccupied cells with 0 < d <= V and V-d even, where V is the value of
// the card under the destination.
func (s *SurvivalStrategy) onwardMoves(state *GameState, seatID int, from, to Position) int {
	n := state.GridSize
	value := state.Board[to.Row][to.Col].Card.Value

	blocked := func(p Position) bool {
		if p == from {
			return true // burned by this move
		}
		cell := state.Board[p.Row][p.Col]
		if cell.Invalid {
			return true
		}
		return cell.OccupiedBy != -1 && cell.OccupiedBy != seatID
	}

	// BFS from the destination over live cells.
	dist := make(map[Position]int, n*n)
	dist[to] = 0
	queue := []Position{to}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur]
		if d >= value {
			continue
		}

		for _, next := range s.neighbors(state, cur) {
			if blocked(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = d + 1
			queue = append(queue, next)
		}
	}

	count := 0
	for p, d := range dist {
		if d > 0 && d <= value && (value-d)%2 == 0 && p != to {
			count++
		}
	}
	return count
}

// neighbors returns the lateral neighbors of p under the board topology.
func (s *SurvivalStrategy) neighbors(state *GameState, p Position) []Position {
	n := state.GridSize
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	result := make([]Position, 0, 4)
	for _, d := range deltas {
		row, col := p.Row+d[0], p.Col+d[1]
		if state.Topology == "toroidal" {
			row = (row + n) % n
			col = (col + n) % n
		} else if row < 0 || row >= n || col < 0 || col >= n {
			continue
		}
		result = append(result, Position{Row: row, Col: col})
	}
	return result
}
