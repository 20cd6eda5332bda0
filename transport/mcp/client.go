package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cardfall/cardfall/game/engine"
	"github.com/cardfall/cardfall/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Cardfall",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Cardfall - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Outlast every other seat on a grid of playing cards. Each move travels
exactly as many orthogonal steps as the value of the card you stand on,
and the cell you leave burns away. The last seat able to move wins.

AVAILABLE TOOLS:
- create_session: Create new game session
- join_session: Bind yourself to a free human seat
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current board, seats and turn
- legal_moves: List the destinations a seat can reach this turn
- move: Commit a move to a destination cell - requires intent explanation
- path: Reconstruct one concrete step sequence to a destination
- move_history: View past moves
- list_configs: List available configurations
- describe_cell: Get detailed info about one board cell
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on the move tool serves as rubber duck
debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_session",
		Description: "Bind a player identity to the next free human seat in a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to join",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Player identity to bind (optional; one is generated when omitted)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleJoinSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state with a board rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List every destination a seat can legally reach this turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"seat_id": map[string]interface{}{
					"type":        "integer",
					"description": "Seat to compute moves for",
				},
			},
			Required: []string{"session_id", "seat_id"},
		},
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Commit a move for a seat to a destination cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"seat_id": map[string]interface{}{
					"type":        "integer",
					"description": "Seat making the move",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Destination row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Destination column (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"version": map[string]interface{}{
					"type":        "integer",
					"description": "State version the move was planned against (optional concurrency check)",
				},
			},
			Required: []string{"session_id", "seat_id", "row", "col"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "path",
		Description: "Reconstruct one concrete orthogonal step sequence from one cell to another using exactly the given number of steps",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from_row": map[string]interface{}{
					"type":        "integer",
					"description": "Start row (0-based)",
				},
				"from_col": map[string]interface{}{
					"type":        "integer",
					"description": "Start column (0-based)",
				},
				"to_row": map[string]interface{}{
					"type":        "integer",
					"description": "Destination row (0-based)",
				},
				"to_col": map[string]interface{}{
					"type":        "integer",
					"description": "Destination column (0-based)",
				},
				"steps": map[string]interface{}{
					"type":        "integer",
					"description": "Exact step count (optional; defaults to the card value under the start cell)",
				},
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handlePath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Deal a fresh board for the session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one board cell: its card, whether it is burned, and which seat occupies it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleJoinSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	playerID, _ := args["player_id"].(string)

	body := map[string]string{}
	if playerID != "" {
		body["player_id"] = playerID
	}

	var join service.JoinResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/join", sessionID), body, &join); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Joined session %s\nPlayer: %s\nSeat: %d\n",
		join.SessionID, join.PlayerID, join.SeatID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = string(s.GameState.Status)
		}
		result += fmt.Sprintf("- %s (Config: %s, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	seatID := intArg(args, "seat_id")

	var response struct {
		SeatID int               `json:"seat_id"`
		Moves  []engine.Position `json:"moves"`
		Count  int               `json:"count"`
	}
	path := fmt.Sprintf("/api/sessions/%s/legal-moves?seat=%d", sessionID, seatID)
	if err := c.apiCall("GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Seat %d has no legal moves.", seatID)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Legal destinations for seat %d (%d):\n", seatID, response.Count)
	for _, pos := range response.Moves {
		fmt.Fprintf(&b, "- (%d,%d)\n", pos.Row, pos.Col)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent serves as rubber duck debugging - nothing to process.
	_ = intent

	body := service.MoveRequest{
		SeatID:  intArg(args, "seat_id"),
		To:      engine.Position{Row: intArg(args, "row"), Col: intArg(args, "col")},
		Version: intArg(args, "version"),
	}

	var result service.MoveResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handlePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := service.PathRequest{
		From:  engine.Position{Row: intArg(args, "from_row"), Col: intArg(args, "from_col")},
		To:    engine.Position{Row: intArg(args, "to_row"), Col: intArg(args, "to_col")},
		Steps: intArg(args, "steps"),
	}

	var response struct {
		Path  []engine.Position `json:"path"`
		Steps int               `json:"steps"`
	}
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/path", sessionID), body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Path (%d steps):\n", response.Steps)
	for i, pos := range response.Path {
		if i == 0 {
			fmt.Fprintf(&b, "(%d,%d)", pos.Row, pos.Col)
		} else {
			fmt.Fprintf(&b, " -> (%d,%d)", pos.Row, pos.Col)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page := intArg(args, "page"); page > 0 {
		params += fmt.Sprintf("page=%d&", page)
	}
	if limit := intArg(args, "limit"); limit > 0 {
		params += fmt.Sprintf("limit=%d&", limit)
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("- %s (%s)\n  %s\n  Grid: %dx%d %s, Seats: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridSize, config.GridSize, config.Topology, config.SeatCount)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := intArg(args, "row")
	col := intArg(args, "col")

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if row < 0 || row >= state.GridSize || col < 0 || col >= state.GridSize {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Cell (%d,%d) is off the board. The grid is %dx%d (0-%d for both row and col)",
			row, col, state.GridSize, state.GridSize, state.GridSize-1)), nil
	}

	cell := state.Board[row][col]

	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d,%d):\n", row, col)
	fmt.Fprintf(&b, "Card: %s of %s (value %d)\n", cell.Card.Rank, cell.Card.Suit, cell.Card.Value)
	if cell.Invalid {
		b.WriteString("Burned: yes - this cell is permanently out of play\n")
	} else {
		b.WriteString("Burned: no\n")
	}
	if cell.OccupiedBy != engine.NoSeat {
		fmt.Fprintf(&b, "Occupied by: seat %d\n", cell.OccupiedBy)
	} else {
		b.WriteString("Occupied by: nobody\n")
	}
	if !cell.Invalid && cell.OccupiedBy == engine.NoSeat {
		fmt.Fprintf(&b, "A seat landing here would move exactly %d steps on its next turn.\n", cell.Card.Value)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Cardfall - Complete Instructions

GAME OBJECTIVE:
Be the last seat that can still move. Every other seat must be eliminated
by running out of legal destinations on their turn.

GAME MECHANICS:
- The board is an NxN grid of playing cards dealt face up.
- The value of the card UNDER your seat dictates your move: you must
  travel EXACTLY that many orthogonal steps (A=1, 2=2, ... 8=8).
- Paths may twist and backtrack but never revisit a cell within one move,
  never cross a burned cell, and never cross another seat.
- When you leave a cell it BURNS: it is out of play for everyone, forever.
- On a toroidal board, steps wrap around the edges; on a bounded board,
  the edges are walls.
- If it is your turn and no destination is reachable, you are eliminated
  where you stand. Your seat stays on the board as a blocker.

READING THE BOARD:
The game_state tool renders the grid with two-character tokens:
- "As", "3h", "7d", "2c" - rank + suit initial of the card on the cell
- "S0".."S3" - a seat currently standing on the cell
- "X0".."X3" - an eliminated seat frozen on its cell
- ".." - a burned cell, permanently out of play

STRATEGY NOTES FOR AI AGENTS:
1. Parity matters: a destination is reachable only when it is at most
   card-value steps away AND the leftover distance is even. Use the
   legal_moves tool rather than eyeballing the grid.
2. Low cards late: high-value cards are powerful early but can strand you
   on a burned-out board where no 8-step walk exists. Aces always move
   exactly one step and stay reliable.
3. Burn to block: every move destroys the cell you leave. Cutting the
   board in two and keeping the larger half for yourself wins endgames.
4. Watch the version field: game_state reports a version that increments
   with every committed move. Pass it with your move to detect races.
5. Use path to double-check that a destination you plan is actually
   reachable with the exact step count before committing.

TURN ORDER:
Seats act in ascending seat ID order, skipping eliminated seats. The
current_seat field of game_state names the seat to act. Moves by any
other seat are rejected.

VICTORY CONDITIONS:
- Multi-seat games: the last non-eliminated seat wins the moment every
  other seat is eliminated.
- Solitaire: the game ends when the single seat has no moves; there is
  no winner recorded, the score is how many turns you survived.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- Automated seats play immediately after your committed move, so one
  move call returns a board that is yours to act on again (or finished)

Good luck, and mind the parity!`

	return mcp.NewToolResultText(instructions), nil
}

// intArg reads an integer tool argument, tolerating the float64 JSON
// numbers the MCP layer delivers.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Formatters

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(session.SeatBindings) > 0 {
		b.WriteString("Players:\n")
		for seatID, playerID := range session.SeatBindings {
			fmt.Fprintf(&b, "- seat %d: %s\n", seatID, playerID)
		}
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(session.GameState))
	return b.String()
}

// cellToken renders one cell as a fixed-width two-character token.
func cellToken(state *engine.GameState, row, col int) string {
	cell := state.Board[row][col]
	if cell.OccupiedBy != engine.NoSeat {
		prefix := "S"
		if state.Seats[cell.OccupiedBy].Finished {
			prefix = "X"
		}
		return fmt.Sprintf("%s%d", prefix, cell.OccupiedBy)
	}
	if cell.Invalid {
		return ".."
	}
	return string(cell.Card.Rank) + string(cell.Card.Suit[0])
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Turn %d | Seat to move: %d | Status: %s | Version: %d\n",
		state.Turn, state.CurrentSeat, state.Status, state.Version)
	fmt.Fprintf(&b, "Board: %dx%d %s\n\n", state.GridSize, state.GridSize, state.Topology)

	for row := 0; row < state.GridSize; row++ {
		for col := 0; col < state.GridSize; col++ {
			if col > 0 {
				b.WriteString(" ")
			}
			b.WriteString(cellToken(state, row, col))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nSeats:\n")
	for _, seat := range state.Seats {
		status := "active"
		if seat.Finished {
			status = "eliminated"
		}
		card := state.Board[seat.Position.Row][seat.Position.Col].Card
		fmt.Fprintf(&b, "- seat %d (%s, %s) at (%d,%d) on %s of %s (moves %d)\n",
			seat.ID, seat.Kind, status, seat.Position.Row, seat.Position.Col,
			card.Rank, card.Suit, card.Value)
	}

	if state.Status == engine.StatusFinished {
		if state.Winner != nil {
			fmt.Fprintf(&b, "\nGAME OVER - seat %d wins!", *state.Winner)
		} else {
			b.WriteString("\nGAME OVER - no seats remain, draw.")
		}
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	b.WriteString("Move committed\n")
	if result.AutoMoves > 0 {
		fmt.Fprintf(&b, "Automated seats played %d move(s) after yours\n", result.AutoMoves)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			switch event.Type {
			case engine.EventMoveCommitted:
				if event.Record != nil {
					fmt.Fprintf(&b, "- seat %d moved (%d,%d) -> (%d,%d) on %s of %s\n",
						event.Record.SeatID,
						event.Record.From.Row, event.Record.From.Col,
						event.Record.To.Row, event.Record.To.Col,
						event.Record.Card.Rank, event.Record.Card.Suit)
				} else {
					fmt.Fprintf(&b, "- seat %d moved\n", event.SeatID)
				}
			case engine.EventSeatEliminated:
				fmt.Fprintf(&b, "- seat %d eliminated: no legal moves\n", event.SeatID)
			case engine.EventGameEnded:
				if event.Winner != nil {
					fmt.Fprintf(&b, "- game ended: seat %d wins\n", *event.Winner)
				} else {
					b.WriteString("- game ended: draw\n")
				}
			default:
				fmt.Fprintf(&b, "- %s\n", event.Type)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d/%d, %d total moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		fmt.Fprintf(&b, "%3d. seat %d: (%d,%d) -> (%d,%d) on %s of %s (value %d)\n",
			move.Turn, move.SeatID,
			move.From.Row, move.From.Col, move.To.Row, move.To.Col,
			move.Card.Rank, move.Card.Suit, move.Card.Value)
	}

	if history.HasNext {
		b.WriteString("\n(more pages available)")
	}
	return b.String()
}
