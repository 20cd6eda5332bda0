package engine

import "fmt"

// applyMove commits a validated move. This is the single mutation point for
// board and seat state: validation happens against a fresh legal-move
// computation at call time, and nothing is written until it passes, so a
// failed apply leaves the session untouched.
func (gs *GameState) applyMove(cfg *GameConfig, seatID int, to Position) ([]GameEvent, error) {
	if gs.Status != StatusInProgress {
		return nil, fmt.Errorf("%w: session is finished", ErrGameFinished)
	}
	if seatID != gs.CurrentSeat {
		return nil, fmt.Errorf("%w: seat %d moved out of turn (current seat %d)",
			ErrIllegalMove, seatID, gs.CurrentSeat)
	}

	// Never trust a caller's legal-move set; it may be stale by the time
	// the move arrives.
	legal := false
	for _, m := range gs.LegalMoves(seatID) {
		if m == to {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: (%d,%d) is not a legal destination for seat %d",
			ErrIllegalMove, to.Row, to.Col, seatID)
	}

	seat := &gs.Seats[seatID]
	from := seat.Position
	card := gs.Board[from.Row][from.Col].Card

	// Departure burns away; destination is taken.
	gs.Board[from.Row][from.Col].OccupiedBy = NoSeat
	gs.Board[from.Row][from.Col].Invalid = true
	gs.Board[to.Row][to.Col].OccupiedBy = seatID
	seat.Position = to

	record := MoveRecord{
		Turn:   gs.Turn,
		SeatID: seatID,
		Card:   card,
		From:   from,
		To:     to,
	}
	gs.History = append(gs.History, record)
	gs.Turn++
	gs.Version++
	gs.CurrentSeat = gs.nextActiveSeat(seatID)

	events := []GameEvent{{
		Type:   EventMoveCommitted,
		SeatID: seatID,
		Record: &record,
	}}
	events = append(events, gs.evaluate(cfg)...)
	return events, nil
}
