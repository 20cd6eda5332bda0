package engine

// directions are the four orthogonal unit steps, in a fixed order so BFS
// and DFS explore deterministically for a given board.
var directions = []struct{ dr, dc int }{
	{-1, 0}, // up
	{1, 0},  // down
	{0, -1}, // left
	{0, 1},  // right
}

// neighbors appends the orthogonal neighbors of pos under the state's
// topology to buf and returns it. Toroidal boards wrap modulo the grid
// size; bounded boards drop off-grid steps.
func (gs *GameState) neighbors(pos Position, buf []Position) []Position {
	size := gs.GridSize
	for _, d := range directions {
		r, c := pos.Row+d.dr, pos.Col+d.dc
		switch gs.Topology {
		case TopologyBounded:
			if r < 0 || r >= size || c < 0 || c >= size {
				continue
			}
		default: // toroidal
			r = (r + size) % size
			c = (c + size) % size
		}
		buf = append(buf, Position{Row: r, Col: c})
	}
	return buf
}

// traversable reports whether a cell can be stepped into during movement:
// not burned away and not currently occupied by any seat. The departure
// cell is conceptually vacated for the duration of the move; callers that
// may step back through it handle that case themselves.
func (gs *GameState) traversable(pos Position) bool {
	cell := gs.Board[pos.Row][pos.Col]
	return !cell.Invalid && cell.OccupiedBy == NoSeat
}

// LegalMoves computes every destination the seat can legally move to.
//
// The card under the seat dictates the exact number of unit steps V. A BFS
// from the seat's position assigns each reachable cell its shortest
// distance d; the cell is a legal destination iff 0 < d <= V and V-d is
// even. The parity rule models that excess steps beyond the shortest path
// are absorbed in back-and-forth pairs along open cells, so a cell 2 steps
// away is also reachable with a 4-card.
//
// A finished seat has no legal moves.
func (gs *GameState) LegalMoves(seatID int) []Position {
	if seatID < 0 || seatID >= len(gs.Seats) {
		return nil
	}
	seat := gs.Seats[seatID]
	if seat.Finished {
		return nil
	}

	value := gs.CardValueAt(seat.Position)

	dist := make([][]int, gs.GridSize)
	for r := range dist {
		dist[r] = make([]int, gs.GridSize)
		for c := range dist[r] {
			dist[r][c] = -1
		}
	}
	dist[seat.Position.Row][seat.Position.Col] = 0

	queue := []Position{seat.Position}
	var buf []Position
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		d := dist[pos.Row][pos.Col]
		if d >= value {
			continue
		}
		buf = gs.neighbors(pos, buf[:0])
		for _, nb := range buf {
			if dist[nb.Row][nb.Col] >= 0 || !gs.traversable(nb) {
				continue
			}
			dist[nb.Row][nb.Col] = d + 1
			queue = append(queue, nb)
		}
	}

	var moves []Position
	for r := 0; r < gs.GridSize; r++ {
		for c := 0; c < gs.GridSize; c++ {
			d := dist[r][c]
			if d > 0 && d <= value && (value-d)%2 == 0 {
				moves = append(moves, Position{Row: r, Col: c})
			}
		}
	}
	return moves
}
