package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardfall/cardfall/game/engine"
	"github.com/cardfall/cardfall/game/service"
	"github.com/cardfall/cardfall/game/session"
)

// memConfigs is a minimal in-memory ConfigManager for API tests.
type memConfigs struct {
	configs map[string]*engine.GameConfig
	def     *engine.GameConfig
}

func newMemConfigs() *memConfigs {
	def := engine.DefaultConfig()
	def.Seed = 777
	return &memConfigs{
		configs: map[string]*engine.GameConfig{"duel": def},
		def:     def,
	}
}

func (m *memConfigs) LoadConfig(name string) (*engine.GameConfig, error) {
	cfg, ok := m.configs[name]
	if !ok {
		return nil, fmt.Errorf("config %s not found", name)
	}
	return cfg, nil
}

func (m *memConfigs) ListConfigs() ([]*service.ConfigInfo, error) {
	var out []*service.ConfigInfo
	for name, cfg := range m.configs {
		out = append(out, &service.ConfigInfo{
			ConfigID:  name,
			Name:      cfg.Name,
			GridSize:  cfg.GridSize,
			SeatCount: cfg.SeatCount,
			Topology:  cfg.Topology,
		})
	}
	return out, nil
}

func (m *memConfigs) GetDefault() *engine.GameConfig { return m.def }

func (m *memConfigs) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := service.NewGameService(session.NewManager(), newMemConfigs())
	return NewServer(svc, nil)
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, server *Server) *service.SessionInfo {
	t.Helper()
	rec := doJSON(t, server, "POST", "/api/sessions", map[string]string{"config_id": "duel"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d body %s", rec.Code, rec.Body.String())
	}
	var info service.SessionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode session info: %v", err)
	}
	return &info
}

func TestCreateAndGetSession(t *testing.T) {
	server := newTestServer(t)

	info := createSession(t, server)
	if info.ID == "" {
		t.Fatal("expected session ID")
	}
	if info.GameState == nil || info.GameState.GridSize != 6 {
		t.Errorf("expected 6x6 duel board, got %+v", info.GameState)
	}

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get session: status %d", rec.Code)
	}

	rec = doJSON(t, server, "GET", "/api/sessions/ffff", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", rec.Code)
	}
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/sessions", map[string]string{"config_id": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown config, got %d", rec.Code)
	}
}

func TestListSessions(t *testing.T) {
	server := newTestServer(t)

	createSession(t, server)
	createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sessions: status %d", rec.Code)
	}
	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if resp.Count != 1 || len(resp.Sessions) != 1 {
		t.Errorf("expected limit=1 to cap listing, got count=%d len=%d", resp.Count, len(resp.Sessions))
	}
}

func TestJoinSessionEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/join", map[string]string{"player_id": "alice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("join: status %d body %s", rec.Code, rec.Body.String())
	}
	var join service.JoinResult
	if err := json.NewDecoder(rec.Body).Decode(&join); err != nil {
		t.Fatalf("decode join: %v", err)
	}
	if join.SeatID != 0 || join.PlayerID != "alice" {
		t.Errorf("unexpected join result: %+v", join)
	}

	// The duel has one human seat; a second player gets a conflict.
	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/join", map[string]string{"player_id": "bob"})
	if rec.Code != http.StatusConflict {
		t.Errorf("full session join: expected 409, got %d", rec.Code)
	}
}

func TestLegalMovesEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/legal-moves?seat=0", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("legal moves: status %d", rec.Code)
	}
	var resp struct {
		SeatID int               `json:"seat_id"`
		Moves  []engine.Position `json:"moves"`
		Count  int               `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode legal moves: %v", err)
	}
	if resp.Count == 0 || len(resp.Moves) != resp.Count {
		t.Errorf("expected legal moves on a fresh board, got %+v", resp)
	}

	rec = doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/legal-moves", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing seat param: expected 400, got %d", rec.Code)
	}
}

func TestMoveEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/legal-moves?seat=0", nil)
	var legal struct {
		Moves []engine.Position `json:"moves"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&legal); err != nil {
		t.Fatalf("decode legal moves: %v", err)
	}
	if len(legal.Moves) == 0 {
		t.Fatal("expected legal moves")
	}

	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/move",
		service.MoveRequest{SeatID: 0, To: legal.Moves[0]})
	if rec.Code != http.StatusOK {
		t.Fatalf("move: status %d body %s", rec.Code, rec.Body.String())
	}
	var result service.MoveResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode move result: %v", err)
	}
	if len(result.Events) == 0 || result.Events[0].Type != engine.EventMoveCommitted {
		t.Errorf("expected move_committed event, got %v", result.Events)
	}

	// The departed cell burned, so replaying the same move conflicts.
	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/move",
		service.MoveRequest{SeatID: 0, To: legal.Moves[0]})
	if rec.Code != http.StatusConflict {
		t.Errorf("illegal move: expected 409, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestMoveVersionConflictEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/legal-moves?seat=0", nil)
	var legal struct {
		Moves []engine.Position `json:"moves"`
	}
	json.NewDecoder(rec.Body).Decode(&legal)

	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/move",
		service.MoveRequest{SeatID: 0, To: legal.Moves[0], Version: 42})
	if rec.Code != http.StatusConflict {
		t.Errorf("stale version: expected 409, got %d", rec.Code)
	}
}

func TestPathEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	from := info.GameState.Seats[0].Position
	steps := info.GameState.CardValueAt(from)

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/legal-moves?seat=0", nil)
	var legal struct {
		Moves []engine.Position `json:"moves"`
	}
	json.NewDecoder(rec.Body).Decode(&legal)
	if len(legal.Moves) == 0 {
		t.Fatal("expected legal moves")
	}

	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/path",
		service.PathRequest{From: from, To: legal.Moves[0], Steps: steps})
	if rec.Code != http.StatusOK {
		t.Fatalf("path: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Path  []engine.Position `json:"path"`
		Steps int               `json:"steps"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode path: %v", err)
	}
	if len(resp.Path) != steps {
		t.Errorf("expected a %d-cell walk, got %+v", steps, resp.Path)
	}
	if resp.Steps != steps {
		t.Errorf("reported steps %d, want %d", resp.Steps, steps)
	}

	// An unreachable request is a 404.
	rec = doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/path",
		service.PathRequest{From: from, To: legal.Moves[0], Steps: steps + 1})
	if rec.Code != http.StatusNotFound {
		t.Errorf("wrong-parity path: expected 404, got %d", rec.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "POST", "/api/sessions/"+info.ID+"/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: status %d", rec.Code)
	}
	var resp struct {
		State *engine.GameState `json:"state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode reset: %v", err)
	}
	if resp.State == nil || resp.State.Turn != 1 {
		t.Errorf("expected fresh state after reset, got %+v", resp.State)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	server := newTestServer(t)
	info := createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions/"+info.ID+"/history?page=1&limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: status %d", rec.Code)
	}
	var resp service.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if resp.TotalMoves != 0 || resp.Page != 1 {
		t.Errorf("expected empty first page, got %+v", resp)
	}
}

func TestConfigEndpoints(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/configs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list configs: status %d", rec.Code)
	}
	var configs []*service.ConfigInfo
	if err := json.NewDecoder(rec.Body).Decode(&configs); err != nil {
		t.Fatalf("decode configs: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "duel" {
		t.Errorf("expected the duel config, got %+v", configs)
	}

	rec = doJSON(t, server, "GET", "/api/configs/duel", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get config: status %d", rec.Code)
	}
	rec = doJSON(t, server, "GET", "/api/configs/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing config: expected 404, got %d", rec.Code)
	}

	newCfg := engine.DefaultConfig()
	newCfg.Name = "royale"
	newCfg.GridSize = 10
	newCfg.SeatCount = 4
	rec = doJSON(t, server, "POST", "/api/configs", newCfg)
	if rec.Code != http.StatusCreated {
		t.Errorf("create config: status %d body %s", rec.Code, rec.Body.String())
	}

	bad := engine.DefaultConfig()
	bad.Name = ""
	rec = doJSON(t, server, "POST", "/api/configs", bad)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("nameless config: expected 400, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}
}
