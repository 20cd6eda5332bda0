// Command bruteforcer plays solitaire games against a running Cardfall server
// and hunts for long survival runs. It repeatedly resets the session and plays
// greedy lookahead moves until it finds a run reaching the target length or
// exhausts its attempts.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Card struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

type Cell struct {
	Card       Card `json:"card"`
	Invalid    bool `json:"is_invalid"`
	OccupiedBy int  `json:"occupied_by"`
}

type Seat struct {
	ID       int      `json:"id"`
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Finished bool     `json:"is_finished"`
}

type GameState struct {
	GridSize    int      `json:"grid_size"`
	Topology    string   `json:"topology"`
	Seed        int64    `json:"seed"`
	Board       [][]Cell `json:"board"`
	Seats       []Seat   `json:"seats"`
	CurrentSeat int      `json:"current_seat"`
	Turn        int      `json:"turn"`
	Status      string   `json:"status"`
	Winner      *int     `json:"winner,omitempty"`
	Version     int      `json:"version"`
	ConfigName  string   `json:"config_name,omitempty"`
}

type SessionResponse struct {
	ID        string     `json:"id"`
	GameState *GameState `json:"game_state"`
}

type MoveRequest struct {
	SeatID  int      `json:"seat_id"`
	To      Position `json:"to"`
	Version int      `json:"version,omitempty"`
}

type MoveResponse struct {
	GameState *GameState `json:"game_state"`
	AutoMoves int        `json:"auto_moves"`
}

type ResetResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

type LegalMovesResponse struct {
	SeatID int        `json:"seat_id"`
	Moves  []Position `json:"moves"`
	Count  int        `json:"count"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*GameState, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &state, nil
}

func (c *Client) LegalMoves(seatID int) ([]Position, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/legal-moves?seat=%d", c.baseURL, c.sessionID, seatID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("legal moves: %w", err)
	}
	defer resp.Body.Close()

	var legal LegalMovesResponse
	if err := json.NewDecoder(resp.Body).Decode(&legal); err != nil {
		return nil, fmt.Errorf("parse legal moves: %w", err)
	}
	return legal.Moves, nil
}

func (c *Client) Move(seatID int, to Position, version int) (*GameState, error) {
	req := MoveRequest{SeatID: seatID, To: to, Version: version}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("move rejected: %s - %s", resp.Status, string(respBody))
	}

	var moveResp MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&moveResp); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}
	return moveResp.GameState, nil
}

func (c *Client) Reset() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}
	return resetResp.State, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "solitaire", "Game configuration ID")
	continueSession := flag.String("continue", "", "Resume an existing session by ID")
	targetMoves := flag.Int("target", 0, "Stop when a run reaches this many moves (0 = full board)")
	maxAttempts := flag.Int("max-attempts", 200, "Maximum attempts before giving up")
	seatID := flag.Int("seat", 0, "Seat to drive")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	log.Printf("Board: %dx%d (%s), seats: %d", state.GridSize, state.GridSize, state.Topology, len(state.Seats))

	target := *targetMoves
	if target == 0 {
		// A perfect run leaves no cell to stand on.
		target = state.GridSize*state.GridSize - 1
	}
	log.Printf("🎯 Target: survive %d moves", target)

	strategy := NewSurvivalStrategy()

	bestMoves := 0
	bestSeed := int64(0)

	for attempt := 1; attempt <= *maxAttempts; attempt++ {
		state, err = client.Reset()
		if err != nil {
			log.Printf("Failed to reset: %v", err)
			break
		}

		log.Printf("\n=== 🎮 Attempt %d/%d ===", attempt, *maxAttempts)

		moveCount := 0
		for state.Status == "in_progress" && state.CurrentSeat == *seatID {
			moves, err := client.LegalMoves(*seatID)
			if err != nil {
				log.Printf("Failed to fetch legal moves: %v", err)
				break
			}
			if len(moves) == 0 {
				break
			}

			to := strategy.ChooseMove(state, *seatID, moves)

			newState, err := client.Move(*seatID, to, state.Version)
			if err != nil {
				if *verbose {
					log.Printf("Move to (%d,%d) failed: %v", to.Row, to.Col, err)
				}
				// Re-sync and keep going; a stale version is recoverable.
				if state, err = client.GetState(); err != nil {
					break
				}
				continue
			}
			state = newState
			moveCount++

			if *verbose && moveCount%10 == 0 {
				log.Printf("Move %d: at (%d,%d), version %d",
					moveCount, state.Seats[*seatID].Position.Row, state.Seats[*seatID].Position.Col, state.Version)
			}

			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Attempt %d: survived %d moves (best %d)", attempt, moveCount, bestMoves)

		if moveCount > bestMoves {
			bestMoves = moveCount
			if state != nil {
				bestSeed = state.Seed
			}
		}

		if moveCount >= target {
			log.Printf("\n🎉 TARGET REACHED! %d moves in attempt %d", moveCount, attempt)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	log.Printf("\n❌ Target not reached after %d attempts. Best run: %d moves (seed %d)", *maxAttempts, bestMoves, bestSeed)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
