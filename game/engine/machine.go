package engine

import "fmt"

// evaluate runs the turn/elimination state machine until the session either
// finishes or settles on an active seat awaiting a move. It is re-entrant
// and must be invoked after every mutation; nothing in the engine waits for
// an external poll to discover an elimination or the end of the game.
func (gs *GameState) evaluate(cfg *GameConfig) []GameEvent {
	var events []GameEvent

	for gs.Status == StatusInProgress {
		active := gs.ActiveSeats()

		// A multi-seat match ends when at most one seat can still move; the
		// solitaire variant ends when its only seat is done.
		over := len(active) == 0 || (len(gs.Seats) > 1 && len(active) <= 1)
		if over {
			gs.Status = StatusFinished
			ev := GameEvent{Type: EventGameEnded}
			if len(active) == 1 {
				winner := active[0].ID
				gs.Winner = &winner
				ev.Winner = &winner
				ev.Message = fmt.Sprintf(cfg.Messages.Victory, winner)
			} else {
				ev.Message = cfg.Messages.Draw
			}
			events = append(events, ev)
			return events
		}

		current := &gs.Seats[gs.CurrentSeat]

		// A just-eliminated seat can transiently still be current; skip it
		// without consuming a turn.
		if current.Finished {
			gs.CurrentSeat = gs.nextActiveSeat(gs.CurrentSeat)
			continue
		}

		if len(gs.LegalMoves(current.ID)) == 0 {
			current.Finished = true
			events = append(events, GameEvent{
				Type:    EventSeatEliminated,
				SeatID:  current.ID,
				Message: fmt.Sprintf(cfg.Messages.Eliminated, current.ID),
			})
			continue
		}

		// AwaitingMove: the current seat has legal moves.
		return events
	}

	return events
}

// nextActiveSeat returns the next unfinished seat after from in cyclic
// seat-ID order, recomputed fresh from the live Finished flags.
func (gs *GameState) nextActiveSeat(from int) int {
	n := len(gs.Seats)
	for i := 1; i <= n; i++ {
		id := (from + i) % n
		if !gs.Seats[id].Finished {
			return id
		}
	}
	return from
}
