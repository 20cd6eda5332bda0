package engine

// Suit is a playing card suit
type Suit string

// Rank is a playing card rank. Only A through 8 exist in this game; the
// rank set is bounded by the grid size at deal time.
type Rank string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"

	RankAce   Rank = "A"
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"

	// Validation constants
	MinGridSize = 4
	MaxGridSize = 10
	MinSeats    = 1
	MaxSeats    = 4

	// NoSeat marks a cell with no occupant.
	NoSeat = -1
)

// Suits in canonical order. Seat i starts on the Ace of Suits[i].
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// Ranks in ascending value order.
var Ranks = []Rank{RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight}

// Card is a dealt playing card. Immutable once placed on the board.
type Card struct {
	Suit  Suit `json:"suit"`
	Rank  Rank `json:"rank"`
	Value int  `json:"value"`
}

// Position is a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is a single board cell. Invalid is a one-way latch: once a seat
// departs a cell it is permanently removed from play.
type Cell struct {
	Card       Card `json:"card"`
	Invalid    bool `json:"is_invalid"`
	OccupiedBy int  `json:"occupied_by"` // seat ID, or NoSeat
}

// Board is an N x N grid of cells indexed [row][col]
type Board [][]Cell

// SeatKind distinguishes human-driven seats from policy-driven ones
type SeatKind string

const (
	SeatHuman     SeatKind = "human"
	SeatAutomated SeatKind = "automated"
)

// Seat is a player slot. A finished seat keeps its last position for
// display but is excluded from turn order and reachability.
type Seat struct {
	ID       int      `json:"id"`
	Kind     SeatKind `json:"kind"`
	Position Position `json:"position"`
	Finished bool     `json:"is_finished"`
}

// Topology selects the movement rules at the board edges
type Topology string

const (
	// TopologyToroidal wraps row/col indices modulo the grid size.
	TopologyToroidal Topology = "toroidal"
	// TopologyBounded treats moves off the grid as illegal.
	TopologyBounded Topology = "bounded"
)

// GameStatus is the session lifecycle state
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
)

// MoveRecord is one entry of the append-only move log
type MoveRecord struct {
	Turn   int      `json:"turn"`
	SeatID int      `json:"seat_id"`
	Card   Card     `json:"card"`
	From   Position `json:"from"`
	To     Position `json:"to"`
}

// GameState is the complete, serializable state of one game. It is a plain
// structural document: writing it wholesale and reading it back
// reconstructs an equivalent session.
type GameState struct {
	GridSize    int          `json:"grid_size"`
	Topology    Topology     `json:"topology"`
	Seed        int64        `json:"seed"`
	Board       Board        `json:"board"`
	Seats       []Seat       `json:"seats"`
	CurrentSeat int          `json:"current_seat"`
	Turn        int          `json:"turn"`
	Status      GameStatus   `json:"status"`
	Winner      *int         `json:"winner,omitempty"`
	History     []MoveRecord `json:"history"`
	ConfigName  string       `json:"config_name,omitempty"`

	// Version increments once per committed move. Callers synchronizing
	// through a shared store compare it to reject stale writes.
	Version int `json:"version"`
}

// EventType identifies a discrete engine event
type EventType string

const (
	EventMoveCommitted  EventType = "move_committed"
	EventSeatEliminated EventType = "seat_eliminated"
	EventGameEnded      EventType = "game_ended"
)

// GameEvent is a structured event emitted by the engine after a mutation.
// Surfacing it to humans is the caller's concern.
type GameEvent struct {
	Type    EventType   `json:"type"`
	SeatID  int         `json:"seat_id,omitempty"`
	Winner  *int        `json:"winner,omitempty"`
	Record  *MoveRecord `json:"record,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ActiveSeats returns the seats still in turn order, recomputed fresh from
// the live Finished flags.
func (gs *GameState) ActiveSeats() []Seat {
	var active []Seat
	for _, s := range gs.Seats {
		if !s.Finished {
			active = append(active, s)
		}
	}
	return active
}

// CellAt returns a pointer to the cell at pos. The caller must pass an
// in-range position.
func (gs *GameState) CellAt(pos Position) *Cell {
	return &gs.Board[pos.Row][pos.Col]
}

// InBounds reports whether pos lies on the board.
func (gs *GameState) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < gs.GridSize && pos.Col >= 0 && pos.Col < gs.GridSize
}

// CardValueAt returns the move value dictated by the card under pos.
func (gs *GameState) CardValueAt(pos Position) int {
	return gs.Board[pos.Row][pos.Col].Card.Value
}
