package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize          = 56
	headerHeight      = 80 // Taller header for multi-session stats
	screenWidth       = 800
	screenHeight      = 720
	baseURL           = "http://localhost:8080"
	animationDuration = 150 * time.Millisecond // Smooth seat slide duration
	rejectDuration    = 400 * time.Millisecond // Rejected-move flash duration
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenGame
)

// Seat colors, indexed by seat ID
var seatColors = []color.RGBA{
	{255, 100, 100, 255}, // Red
	{100, 100, 255, 255}, // Blue
	{100, 255, 100, 255}, // Green
	{255, 255, 100, 255}, // Yellow
}

// Card mirrors the card JSON from the Cardfall server
type Card struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

// Cell represents a board cell
type Cell struct {
	Card       Card `json:"card"`
	Invalid    bool `json:"is_invalid"`
	OccupiedBy int  `json:"occupied_by"`
}

// Seat represents a player slot on the board
type Seat struct {
	ID       int      `json:"id"`
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Finished bool     `json:"is_finished"`
}

// GameState represents the state from the Cardfall server
type GameState struct {
	GridSize    int      `json:"grid_size"`
	Topology    string   `json:"topology"`
	Board       [][]Cell `json:"board"`
	Seats       []Seat   `json:"seats"`
	CurrentSeat int      `json:"current_seat"`
	Turn        int      `json:"turn"`
	Status      string   `json:"status"`
	Winner      *int     `json:"winner,omitempty"`
	Version     int      `json:"version"`
	ConfigName  string   `json:"config_name"`
}

// Position represents a board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WSMessage represents WebSocket message wrapper
type WSMessage struct {
	SessionID string     `json:"session_id"`
	GameState *GameState `json:"game_state,omitempty"`
	Event     string     `json:"event,omitempty"`
}

// SessionData holds data for a single session
type SessionData struct {
	sessionID     string
	state         *GameState
	wsConn        *websocket.Conn
	lastUpdate    time.Time
	prevPos       []Position // Previous seat positions for interpolation
	targetPos     []Position // Target seat positions for interpolation
	moveStartTime time.Time  // When the move started
	animationTime float64    // Animation progress 0.0 to 1.0
	rejectTime    time.Time  // When a move was rejected
	isRejecting   bool       // Currently showing rejected-move flash
	cursor        Position   // Move entry cursor
	legalMoves    []Position // Highlighted legal destinations
}

// SessionListItem represents a session from the server
type SessionListItem struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	CreatedAt  string     `json:"created_at"`
	GameState  *GameState `json:"game_state"`
}

// ConfigListItem represents a game configuration
type ConfigListItem struct {
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	SeatCount   int    `json:"seat_count"`
}

// Game represents the desktop game client
type Game struct {
	sessions         []*SessionData
	activeSession    int // index of currently active session
	stateMutex       sync.RWMutex
	currentScreen    ScreenType
	welcomeScreen    *WelcomeScreen
	selectedSessions map[string]bool // session IDs selected to play
}

// WelcomeScreen manages the welcome screen state
type WelcomeScreen struct {
	availableSessions []SessionListItem
	availableConfigs  []ConfigListItem
	cursorPos         int
	loading           bool
	errorMsg          string
	newSessionConfig  string // selected config for new session
}

// NewGame creates a new game instance with initial sessions
func NewGame(sessionIDs []string) *Game {
	g := &Game{
		sessions:         make([]*SessionData, 0),
		activeSession:    0,
		currentScreen:    ScreenWelcome,
		selectedSessions: make(map[string]bool),
		welcomeScreen: &WelcomeScreen{
			availableSessions: make([]SessionListItem, 0),
			availableConfigs:  make([]ConfigListItem, 0),
			cursorPos:         0,
		},
	}

	// If session IDs provided, skip welcome screen and go straight to game
	if len(sessionIDs) > 0 {
		for _, sid := range sessionIDs {
			g.addSession(sid)
		}
		g.currentScreen = ScreenGame
	} else {
		g.loadWelcomeData()
	}

	return g
}

// addSession adds a new session to the game with optional config
func (g *Game) addSession(sessionID string) {
	session := &SessionData{
		sessionID:  sessionID,
		lastUpdate: time.Now(),
	}

	// If no session ID provided, create one with same config as first session
	if sessionID == "" {
		configID := ""
		if len(g.sessions) > 0 && g.sessions[0].state != nil {
			configID = g.sessions[0].state.ConfigName
		}
		if err := g.createSessionWithConfig(session, configID); err != nil {
			log.Printf("Failed to create session: %v", err)
			return
		}
	}

	g.sessions = append(g.sessions, session)

	// Connect to WebSocket
	if err := g.connectWebSocket(session); err != nil {
		log.Printf("Failed to connect WebSocket for %s: %v (falling back to polling)", session.sessionID, err)
	} else {
		go g.listenWebSocket(session)
	}

	// Initial state fetch
	g.fetchGameState(session)
}

// createSessionWithConfig creates a new game session with specific config
func (g *Game) createSessionWithConfig(session *SessionData, configID string) error {
	url := fmt.Sprintf("%s/api/sessions", baseURL)

	payload := "{}"
	if configID != "" {
		payload = fmt.Sprintf(`{"config_id":"%s"}`, configID)
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}

	session.sessionID = result.ID
	log.Printf("Created new session: %s (config: %s)", session.sessionID, configID)
	return nil
}

// connectWebSocket establishes WebSocket connection
func (g *Game) connectWebSocket(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", session.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	session.wsConn = conn
	log.Printf("WebSocket connected for session %s", session.sessionID)
	return nil
}

// listenWebSocket listens for WebSocket updates
func (g *Game) listenWebSocket(session *SessionData) {
	defer func() {
		if session.wsConn != nil {
			session.wsConn.Close()
		}
	}()

	for {
		_, message, err := session.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", session.sessionID, err)
			return
		}

		// WebSocket sends wrapped message
		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}

		if wsMsg.GameState == nil {
			continue
		}

		g.stateMutex.Lock()
		g.applyNewState(session, wsMsg.GameState)
		g.stateMutex.Unlock()
	}
}

// applyNewState swaps in a fresh state and starts the slide animation for
// any seat that moved. Caller holds stateMutex.
func (g *Game) applyNewState(session *SessionData, state *GameState) {
	if session.state != nil && len(session.state.Seats) == len(state.Seats) {
		moved := false
		prev := make([]Position, len(state.Seats))
		target := make([]Position, len(state.Seats))
		for i := range state.Seats {
			prev[i] = session.state.Seats[i].Position
			target[i] = state.Seats[i].Position
			if prev[i] != target[i] {
				moved = true
			}
		}
		if moved {
			session.prevPos = prev
			session.targetPos = target
			session.moveStartTime = time.Now()
			session.animationTime = 0.0
		}
	} else {
		// First state - no animation
		session.prevPos = seatPositions(state)
		session.targetPos = seatPositions(state)
		session.animationTime = 1.0
		session.cursor = Position{}
	}
	session.state = state
	session.legalMoves = nil
	session.lastUpdate = time.Now()
}

func seatPositions(state *GameState) []Position {
	positions := make([]Position, len(state.Seats))
	for i, seat := range state.Seats {
		positions[i] = seat.Position
	}
	return positions
}

// fetchGameState gets the current game state from the server
func (g *Game) fetchGameState(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	url := fmt.Sprintf("%s/api/sessions/%s/state", baseURL, session.sessionID)
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var state GameState
	if err := json.Unmarshal(body, &state); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	g.applyNewState(session, &state)
	g.stateMutex.Unlock()

	return nil
}

// fetchLegalMoves loads the legal destinations for the current seat so the
// board can highlight them.
func (g *Game) fetchLegalMoves(session *SessionData) error {
	if session.state == nil {
		return fmt.Errorf("no state loaded")
	}

	url := fmt.Sprintf("%s/api/sessions/%s/legal-moves?seat=%d", baseURL, session.sessionID, session.state.CurrentSeat)
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Moves []Position `json:"moves"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	g.stateMutex.Lock()
	session.legalMoves = result.Moves
	g.stateMutex.Unlock()
	return nil
}

// loadWelcomeData fetches available sessions and configs from server
func (g *Game) loadWelcomeData() {
	g.welcomeScreen.loading = true
	g.welcomeScreen.errorMsg = ""

	// Fetch available sessions
	resp, err := http.Get(fmt.Sprintf("%s/api/sessions", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading sessions: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var sessionsResp struct {
		Sessions []SessionListItem `json:"sessions"`
	}
	if err := json.Unmarshal(body, &sessionsResp); err == nil {
		g.welcomeScreen.availableSessions = sessionsResp.Sessions
	}

	// Fetch available configs
	resp, err = http.Get(fmt.Sprintf("%s/api/configs", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading configs: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	var configs []ConfigListItem
	if err := json.Unmarshal(body, &configs); err == nil {
		g.welcomeScreen.availableConfigs = configs
	}

	g.welcomeScreen.loading = false
}

// createNewSessionFromWelcome creates a new session with selected config
func (g *Game) createNewSessionFromWelcome() error {
	session := &SessionData{}
	if err := g.createSessionWithConfig(session, g.welcomeScreen.newSessionConfig); err != nil {
		return err
	}

	g.selectedSessions[session.sessionID] = true

	// Reload session list
	g.loadWelcomeData()
	return nil
}

// startGameWithSelectedSessions transitions to game screen with selected sessions
func (g *Game) startGameWithSelectedSessions() {
	if len(g.selectedSessions) == 0 {
		g.welcomeScreen.errorMsg = "Please select at least one session"
		return
	}

	for sessionID := range g.selectedSessions {
		g.addSession(sessionID)
	}

	g.currentScreen = ScreenGame
}

// sendMove submits the cursor cell as the current seat's destination.
func (g *Game) sendMove(session *SessionData) error {
	if session.state == nil {
		return fmt.Errorf("no state loaded")
	}
	state := session.state
	if state.Status != "in_progress" {
		return fmt.Errorf("game is over")
	}

	payload := fmt.Sprintf(`{"seat_id":%d,"to":{"row":%d,"col":%d},"version":%d}`,
		state.CurrentSeat, session.cursor.Row, session.cursor.Col, state.Version)

	url := fmt.Sprintf("%s/api/sessions/%s/move", baseURL, session.sessionID)
	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		g.stateMutex.Lock()
		session.rejectTime = time.Now()
		session.isRejecting = true
		g.stateMutex.Unlock()
		return fmt.Errorf("move rejected: %s", string(body))
	}

	return g.fetchGameState(session)
}

// sendReset restarts the active session's game
func (g *Game) sendReset(session *SessionData) error {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", baseURL, session.sessionID)
	resp, err := http.Post(url, "application/json", strings.NewReader("{}"))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return g.fetchGameState(session)
}

// Update updates game logic
func (g *Game) Update() error {
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenGame:
		return g.updateGameScreen()
	}
	return nil
}

// updateWelcomeScreen handles welcome screen input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	// Refresh data with F5
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	// Navigate with arrow keys
	totalItems := len(ws.availableSessions)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		ws.cursorPos++
		if ws.cursorPos >= totalItems {
			ws.cursorPos = totalItems - 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		ws.cursorPos--
		if ws.cursorPos < 0 {
			ws.cursorPos = 0
		}
	}

	// Toggle selection with Space
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if ws.cursorPos >= 0 && ws.cursorPos < len(ws.availableSessions) {
			sessionID := ws.availableSessions[ws.cursorPos].ID
			g.selectedSessions[sessionID] = !g.selectedSessions[sessionID]
			if !g.selectedSessions[sessionID] {
				delete(g.selectedSessions, sessionID)
			}
		}
	}

	// Cycle through configs with Tab
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if len(ws.availableConfigs) > 0 {
			currentIdx := -1
			for i, cfg := range ws.availableConfigs {
				if cfg.ConfigID == ws.newSessionConfig {
					currentIdx = i
					break
				}
			}
			currentIdx++
			if currentIdx >= len(ws.availableConfigs) {
				ws.newSessionConfig = "" // No config (default)
			} else {
				ws.newSessionConfig = ws.availableConfigs[currentIdx].ConfigID
			}
		}
	}

	// Create new session with N
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.createNewSessionFromWelcome(); err != nil {
			ws.errorMsg = fmt.Sprintf("Failed to create session: %v", err)
		}
	}

	// Start game with Enter
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.startGameWithSelectedSessions()
	}

	// Back to game screen with Escape (if sessions exist)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && len(g.sessions) > 0 {
		g.currentScreen = ScreenGame
	}

	return nil
}

// updateGameScreen handles game screen input
func (g *Game) updateGameScreen() error {
	if len(g.sessions) == 0 {
		return nil
	}

	// Update animation progress for all sessions
	g.stateMutex.Lock()
	for _, session := range g.sessions {
		if session.animationTime < 1.0 {
			elapsed := time.Since(session.moveStartTime)
			session.animationTime = float64(elapsed) / float64(animationDuration)
			if session.animationTime > 1.0 {
				session.animationTime = 1.0
			}
		}

		if session.isRejecting && time.Since(session.rejectTime) > rejectDuration {
			session.isRejecting = false
		}
	}
	g.stateMutex.Unlock()

	// Poll all sessions if WebSocket is not connected
	for _, session := range g.sessions {
		if session.wsConn == nil {
			if session.state == nil || time.Since(session.lastUpdate) > 500*time.Millisecond {
				if err := g.fetchGameState(session); err != nil {
					log.Printf("Error fetching state for %s: %v", session.sessionID, err)
				}
			}
		}
	}

	// Session switching with number keys (1-9)
	for i := ebiten.Key1; i <= ebiten.Key9; i++ {
		if inpututil.IsKeyJustPressed(i) {
			sessionIdx := int(i - ebiten.Key1)
			if sessionIdx < len(g.sessions) {
				g.activeSession = sessionIdx
				log.Printf("Switched to session %d: %s", sessionIdx+1, g.sessions[sessionIdx].sessionID)
			}
		}
	}

	// Add new session with N key
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if len(g.sessions) < 9 {
			g.addSession("")
			log.Printf("Added new session (total: %d)", len(g.sessions))
		}
	}

	session := g.sessions[g.activeSession]

	// Move the cursor for the active session
	if session.state != nil {
		n := session.state.GridSize
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
			session.cursor.Row = (session.cursor.Row - 1 + n) % n
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
			session.cursor.Row = (session.cursor.Row + 1) % n
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
			session.cursor.Col = (session.cursor.Col - 1 + n) % n
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
			session.cursor.Col = (session.cursor.Col + 1) % n
		}
	}

	// Commit the cursor cell as a move with Enter
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.sendMove(session); err != nil {
			log.Printf("Move failed: %v", err)
		}
	}

	// Highlight legal moves with L
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if err := g.fetchLegalMoves(session); err != nil {
			log.Printf("Failed to fetch legal moves: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sendReset(session); err != nil {
			log.Printf("Reset failed: %v", err)
		}
	}

	// Return to welcome screen with Escape
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
	}

	return nil
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenGame:
		g.drawGameScreen(screen)
	}
}

// drawWelcomeScreen renders the welcome/session selection screen
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	ws := g.welcomeScreen

	screen.Fill(color.RGBA{20, 20, 30, 255})

	y := 20
	ebitenutil.DebugPrintAt(screen, "=== CARDFALL - SESSION SELECT ===", 240, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading sessions...", 20, y)
		return
	}

	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 20
	}

	// Session list
	ebitenutil.DebugPrintAt(screen, "Available Sessions:", 20, y)
	y += 20

	if len(ws.availableSessions) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No sessions found. Press N to create one.", 20, y)
		y += 20
	} else {
		for i, session := range ws.availableSessions {
			cursor := "  "
			if i == ws.cursorPos {
				cursor = "> "
			}

			checkbox := "[ ]"
			if g.selectedSessions[session.ID] {
				checkbox = "[X]"
			}

			status := ""
			turn := 0
			alive := 0
			if session.GameState != nil {
				turn = session.GameState.Turn
				for _, seat := range session.GameState.Seats {
					if !seat.Finished {
						alive++
					}
				}
				if session.GameState.Status == "finished" {
					if session.GameState.Winner != nil {
						status = fmt.Sprintf(" WINNER: SEAT %d", *session.GameState.Winner)
					} else {
						status = " DRAW"
					}
				}
			}

			line := fmt.Sprintf("%s%s %s | %s | Turn:%d Alive:%d%s",
				cursor, checkbox, session.ID, session.ConfigName, turn, alive, status)

			ebitenutil.DebugPrintAt(screen, line, 20, y)
			y += 15
		}
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "─────────────────────────────────────────", 20, y)
	y += 20

	// New session creation
	ebitenutil.DebugPrintAt(screen, "Create New Session:", 20, y)
	y += 20

	configDisplay := "default"
	if ws.newSessionConfig != "" {
		configDisplay = ws.newSessionConfig
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  Selected Config: %s", configDisplay), 20, y)
	y += 15

	ebitenutil.DebugPrintAt(screen, "  Available Configs:", 20, y)
	y += 15
	for _, cfg := range ws.availableConfigs {
		marker := "  "
		if cfg.ConfigID == ws.newSessionConfig {
			marker = "→ "
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("    %s%s (%dx%d, %d seats) - %s",
			marker, cfg.ConfigID, cfg.GridSize, cfg.GridSize, cfg.SeatCount, cfg.Description), 20, y)
		y += 15
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "─────────────────────────────────────────", 20, y)
	y += 20

	selectedCount := len(g.selectedSessions)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Selected: %d session(s)", selectedCount), 20, y)
	y += 20

	// Controls
	y += 10
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 20
	ebitenutil.DebugPrintAt(screen, "  ↑/↓      - Navigate sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  SPACE    - Toggle session selection", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  TAB      - Cycle config for new session", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  N        - Create new session with selected config", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER    - Start game with selected sessions", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5       - Refresh session list", 20, y)
	y += 15
	if len(g.sessions) > 0 {
		ebitenutil.DebugPrintAt(screen, "  ESC      - Back to game", 20, y)
	}
}

// drawGameScreen renders the active session's board plus a header with all
// session stats. Boards differ per session, so only the active one is drawn.
func (g *Game) drawGameScreen(screen *ebiten.Image) {
	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	if len(g.sessions) == 0 {
		ebitenutil.DebugPrint(screen, "No sessions available. Press ESC to go to session select.")
		return
	}

	session := g.sessions[g.activeSession]
	if session.state == nil {
		ebitenutil.DebugPrint(screen, "Loading...")
		return
	}

	screen.Fill(color.RGBA{20, 20, 30, 255})
	g.drawSessionStats(screen)

	state := session.state
	gridOffsetY := headerHeight

	legal := make(map[Position]bool, len(session.legalMoves))
	for _, p := range session.legalMoves {
		legal[p] = true
	}

	// Draw the board
	for row, cells := range state.Board {
		for col, cell := range cells {
			pos := Position{Row: row, Col: col}
			cellColor := getCellColor(cell)
			if legal[pos] {
				cellColor = color.RGBA{60, 120, 60, 255} // Legal destination tint
			}
			ebitenutil.DrawRect(screen,
				float64(col*cellSize),
				float64(row*cellSize+gridOffsetY),
				cellSize-1, cellSize-1, cellColor)

			// Rank and suit on live cells
			if !cell.Invalid {
				label := fmt.Sprintf("%s%s", cell.Card.Rank, suitGlyph(cell.Card.Suit))
				ebitenutil.DebugPrintAt(screen, label, col*cellSize+4, row*cellSize+gridOffsetY+4)
			}
		}
	}

	// Draw seats with smooth interpolation
	for _, seat := range state.Seats {
		t := session.animationTime
		if t > 1.0 {
			t = 1.0
		}

		displayRow := float64(seat.Position.Row)
		displayCol := float64(seat.Position.Col)
		if seat.ID < len(session.prevPos) && seat.ID < len(session.targetPos) {
			displayRow = float64(session.prevPos[seat.ID].Row)*(1.0-t) + float64(session.targetPos[seat.ID].Row)*t
			displayCol = float64(session.prevPos[seat.ID].Col)*(1.0-t) + float64(session.targetPos[seat.ID].Col)*t
		}

		seatColor := seatColors[seat.ID%len(seatColors)]
		if seat.Finished {
			seatColor = color.RGBA{seatColor.R / 3, seatColor.G / 3, seatColor.B / 3, 255}
		}

		// Rejected-move flash: shake the current seat
		var shakeX, shakeY float64
		if session.isRejecting && seat.ID == state.CurrentSeat {
			progress := time.Since(session.rejectTime).Seconds() / rejectDuration.Seconds()
			intensity := 4.0 * (1.0 - progress)
			shakeX = intensity * math.Sin(progress*40)
			shakeY = intensity * math.Cos(progress*40)
		}

		screenX := displayCol*float64(cellSize) + 14 + shakeX
		screenY := displayRow*float64(cellSize) + float64(gridOffsetY) + 20 + shakeY

		ebitenutil.DrawRect(screen, screenX, screenY, cellSize-28, cellSize-28, seatColor)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", seat.ID), int(screenX)+10, int(screenY)+6)
	}

	// Draw the move cursor
	cursorX := float64(session.cursor.Col * cellSize)
	cursorY := float64(session.cursor.Row*cellSize + gridOffsetY)
	cursorColor := color.RGBA{255, 255, 255, 255}
	ebitenutil.DrawRect(screen, cursorX, cursorY, cellSize-1, 2, cursorColor)
	ebitenutil.DrawRect(screen, cursorX, cursorY+cellSize-3, cellSize-1, 2, cursorColor)
	ebitenutil.DrawRect(screen, cursorX, cursorY, 2, cellSize-1, cursorColor)
	ebitenutil.DrawRect(screen, cursorX+cellSize-3, cursorY, 2, cellSize-1, cursorColor)

	// Game over banner
	if state.Status == "finished" {
		banner := "DRAW - the board consumed every seat"
		if state.Winner != nil {
			banner = fmt.Sprintf("GAME OVER - SEAT %d WINS", *state.Winner)
		}
		ebitenutil.DebugPrintAt(screen, banner, 10, screenHeight-40)
	}

	// Footer controls
	ebitenutil.DebugPrintAt(screen, "1-9: Switch Session | N: New | Arrows/WASD: Cursor | ENTER: Move | L: Legal | R: Reset | ESC: Menu", 10, screenHeight-20)
}

// drawSessionStats draws stats for all sessions in header
func (g *Game) drawSessionStats(screen *ebiten.Image) {
	headerY := 5
	for idx, session := range g.sessions {
		if session.state == nil {
			continue
		}

		y := headerY + (idx * 15)
		state := session.state

		// Color indicator for the seat to move
		moveColor := seatColors[0]
		if state.CurrentSeat >= 0 && state.CurrentSeat < len(seatColors) {
			moveColor = seatColors[state.CurrentSeat]
		}
		ebitenutil.DrawRect(screen, 5, float64(y), 10, 10, moveColor)

		activeMarker := ""
		if idx == g.activeSession {
			activeMarker = ">>>"
		}

		connStatus := "POLL"
		if session.wsConn != nil {
			connStatus = "WS"
		}

		alive := 0
		for _, seat := range state.Seats {
			if !seat.Finished {
				alive++
			}
		}

		info := fmt.Sprintf("%s [%d] %s [%s] %s TURN:%d SEAT:%d ALIVE:%d/%d V:%d",
			activeMarker,
			idx+1,
			session.sessionID,
			connStatus,
			state.ConfigName,
			state.Turn,
			state.CurrentSeat,
			alive,
			len(state.Seats),
			state.Version)

		if state.Status == "finished" {
			if state.Winner != nil {
				info += fmt.Sprintf(" WINNER:%d", *state.Winner)
			} else {
				info += " DRAW"
			}
		}

		ebitenutil.DebugPrintAt(screen, info, 20, y)
	}
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// getCellColor returns the base color for a board cell
func getCellColor(cell Cell) color.Color {
	if cell.Invalid {
		return color.RGBA{35, 25, 25, 255} // Burned out
	}
	switch cell.Card.Suit {
	case "hearts", "diamonds":
		return color.RGBA{140, 70, 70, 255} // Red suits
	case "spades", "clubs":
		return color.RGBA{70, 70, 90, 255} // Black suits
	default:
		return color.RGBA{50, 50, 50, 255}
	}
}

// suitGlyph maps a suit name to its single-character symbol
func suitGlyph(suit string) string {
	switch suit {
	case "hearts":
		return "♥"
	case "diamonds":
		return "♦"
	case "spades":
		return "♠"
	case "clubs":
		return "♣"
	default:
		return "?"
	}
}

func main() {
	// Accept multiple session IDs as arguments
	sessionIDs := []string{}
	if len(os.Args) > 1 {
		sessionIDs = os.Args[1:]
	}

	game := NewGame(sessionIDs)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Cardfall - Multi-Session Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
