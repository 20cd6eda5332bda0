package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardfall/cardfall/game/engine"
	"github.com/cardfall/cardfall/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":     "ab12",
		"status": "in_progress",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api/sessions/ab12", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "ab12" {
		t.Errorf("Expected id ab12, got %v", response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")
	var response map[string]interface{}
	if err := client.apiCall("GET", "/api/sessions", nil, &response); err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "illegal move: not a reachable destination"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.apiCall("POST", "/api/sessions/ab12/move", map[string]int{"seat_id": 0}, nil)
	if err == nil {
		t.Fatal("Expected error for 409 response")
	}
	if !strings.Contains(err.Error(), "illegal move") {
		t.Errorf("Expected the API error message to surface, got %q", err.Error())
	}
}

// testState builds a small deterministic state for formatter tests.
func testState(t *testing.T) *engine.GameState {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 99
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng.GetState()
}

func TestFormatGameState(t *testing.T) {
	state := testState(t)

	out := formatGameState(state)

	if !strings.Contains(out, "Turn 1") {
		t.Errorf("Expected turn header, got:\n%s", out)
	}
	if !strings.Contains(out, "6x6 toroidal") {
		t.Errorf("Expected board line, got:\n%s", out)
	}
	// Both seats render as Sn tokens somewhere on the grid.
	if !strings.Contains(out, "S0") || !strings.Contains(out, "S1") {
		t.Errorf("Expected seat tokens on the board, got:\n%s", out)
	}
	// Seats start on aces.
	if !strings.Contains(out, "on A of") {
		t.Errorf("Expected seats listed on their aces, got:\n%s", out)
	}
	if strings.Contains(out, "GAME OVER") {
		t.Errorf("Fresh game must not be over, got:\n%s", out)
	}

	// Each board row renders GridSize two-char tokens.
	lines := strings.Split(out, "\n")
	var boardRows int
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == state.GridSize && len(fields[0]) == 2 {
			boardRows++
		}
	}
	if boardRows != state.GridSize {
		t.Errorf("Expected %d board rows, found %d in:\n%s", state.GridSize, boardRows, out)
	}
}

func TestFormatGameStateNil(t *testing.T) {
	if out := formatGameState(nil); !strings.Contains(out, "No game state") {
		t.Errorf("Expected placeholder for nil state, got %q", out)
	}
}

func TestFormatGameStateFinished(t *testing.T) {
	state := testState(t)
	state.Status = engine.StatusFinished
	winner := 1
	state.Winner = &winner

	out := formatGameState(state)
	if !strings.Contains(out, "seat 1 wins") {
		t.Errorf("Expected winner line, got:\n%s", out)
	}

	state.Winner = nil
	out = formatGameState(state)
	if !strings.Contains(out, "draw") {
		t.Errorf("Expected draw line, got:\n%s", out)
	}
}

func TestCellTokens(t *testing.T) {
	state := testState(t)

	seatPos := state.Seats[0].Position
	if tok := cellToken(state, seatPos.Row, seatPos.Col); tok != "S0" {
		t.Errorf("Expected S0 for seat cell, got %q", tok)
	}

	// Find a free cell and check the card token shape.
	var free *engine.Position
	for row := 0; row < state.GridSize && free == nil; row++ {
		for col := 0; col < state.GridSize; col++ {
			if state.Board[row][col].OccupiedBy == engine.NoSeat {
				free = &engine.Position{Row: row, Col: col}
				break
			}
		}
	}
	if free == nil {
		t.Fatal("No free cell on a fresh board")
	}
	tok := cellToken(state, free.Row, free.Col)
	if len(tok) != 2 {
		t.Errorf("Expected two-char card token, got %q", tok)
	}

	state.Board[free.Row][free.Col].Invalid = true
	if tok := cellToken(state, free.Row, free.Col); tok != ".." {
		t.Errorf("Expected .. for burned cell, got %q", tok)
	}

	state.Seats[0].Finished = true
	if tok := cellToken(state, seatPos.Row, seatPos.Col); tok != "X0" {
		t.Errorf("Expected X0 for eliminated seat, got %q", tok)
	}
}

func TestFormatMoveResult(t *testing.T) {
	state := testState(t)
	winner := 0
	result := &service.MoveResult{
		GameState: state,
		AutoMoves: 1,
		Events: []engine.GameEvent{
			{
				Type: engine.EventMoveCommitted,
				Record: &engine.MoveRecord{
					SeatID: 0,
					Card:   engine.Card{Rank: engine.RankAce, Suit: engine.Spades, Value: 1},
					From:   engine.Position{Row: 0, Col: 0},
					To:     engine.Position{Row: 0, Col: 1},
				},
			},
			{Type: engine.EventSeatEliminated, SeatID: 1},
			{Type: engine.EventGameEnded, Winner: &winner},
		},
	}

	out := formatMoveResult(result)
	if !strings.Contains(out, "Move committed") {
		t.Errorf("Expected commit line, got:\n%s", out)
	}
	if !strings.Contains(out, "Automated seats played 1") {
		t.Errorf("Expected auto-move line, got:\n%s", out)
	}
	if !strings.Contains(out, "seat 0 moved (0,0) -> (0,1)") {
		t.Errorf("Expected move event line, got:\n%s", out)
	}
	if !strings.Contains(out, "seat 1 eliminated") {
		t.Errorf("Expected elimination line, got:\n%s", out)
	}
	if !strings.Contains(out, "seat 0 wins") {
		t.Errorf("Expected game end line, got:\n%s", out)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []engine.MoveRecord{
			{
				Turn:   1,
				SeatID: 0,
				Card:   engine.Card{Rank: engine.RankThree, Suit: engine.Hearts, Value: 3},
				From:   engine.Position{Row: 2, Col: 2},
				To:     engine.Position{Row: 2, Col: 5},
			},
		},
		TotalMoves: 10,
		Page:       1,
		TotalPages: 2,
		HasNext:    true,
	}

	out := formatHistory(history)
	if !strings.Contains(out, "page 1/2") || !strings.Contains(out, "10 total") {
		t.Errorf("Expected pagination header, got:\n%s", out)
	}
	if !strings.Contains(out, "seat 0: (2,2) -> (2,5) on 3 of hearts") {
		t.Errorf("Expected move line, got:\n%s", out)
	}
	if !strings.Contains(out, "more pages") {
		t.Errorf("Expected next-page hint, got:\n%s", out)
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{
		"float":   float64(7),
		"int":     3,
		"missing": nil,
		"string":  "nope",
	}
	if got := intArg(args, "float"); got != 7 {
		t.Errorf("float64 arg: expected 7, got %d", got)
	}
	if got := intArg(args, "int"); got != 3 {
		t.Errorf("int arg: expected 3, got %d", got)
	}
	if got := intArg(args, "missing"); got != 0 {
		t.Errorf("missing arg: expected 0, got %d", got)
	}
	if got := intArg(args, "string"); got != 0 {
		t.Errorf("string arg: expected 0, got %d", got)
	}
}
