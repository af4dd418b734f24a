package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/knights-tour/game/engine"
	"github.com/wricardo/knights-tour/game/service"
)

// placedState returns a 5x5 game with the knight on A1
func placedState(t *testing.T) *engine.GameState {
	t.Helper()
	e, err := engine.NewEngine(engine.DefaultConfig(5))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	e.Click(0, 0)
	return e.GetState().Clone()
}

func newRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

// fakeAPI records the last request body and answers with the given value
type fakeAPI struct {
	server   *httptest.Server
	method   string
	path     string
	body     map[string]interface{}
	response interface{}
	status   int
}

func newFakeAPI(t *testing.T, response interface{}) *fakeAPI {
	t.Helper()
	f := &fakeAPI{response: response, status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.method = r.Method
		f.path = r.URL.RequestURI()
		f.body = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&f.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		json.NewEncoder(w).Encode(f.response)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	var requestID, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		contentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]string
	if err := client.apiCall(context.Background(), http.MethodPost, "/api/health", map[string]int{"x": 1}, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", response)
	}
	if requestID == "" {
		t.Error("Expected X-Request-ID header")
	}
	if contentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", contentType)
	}
}

func TestClient_apiCall_Errors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		if err := client.apiCall(context.Background(), http.MethodGet, "/api", nil, nil); err == nil {
			t.Error("Expected error for unreachable server")
		}
	})

	t.Run("json error body", func(t *testing.T) {
		api := newFakeAPI(t, map[string]string{"error": "session not found: abcd"})
		api.status = http.StatusNotFound

		err := NewClient(api.server.URL).apiCall(context.Background(), http.MethodGet, "/api/sessions/abcd", nil, nil)
		if err == nil || err.Error() != "session not found: abcd" {
			t.Errorf("Expected API error message, got %v", err)
		}
	})

	t.Run("plain error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), http.MethodGet, "/api", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "API error: 500") {
			t.Errorf("Expected 'API error: 500', got %v", err)
		}
	})
}

func TestClient_handleCreateSession(t *testing.T) {
	api := newFakeAPI(t, service.SessionInfo{
		ID:         "a1b2",
		ConfigName: "small",
		CreatedAt:  time.Now(),
		GameState:  engine.InitGameStateFromConfig(engine.DefaultConfig(5)),
	})
	client := NewClient(api.server.URL)

	result, err := client.handleCreateSession(context.Background(), newRequest("create_session", map[string]interface{}{
		"config_id":  "small",
		"board_size": float64(5),
	}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Created session: a1b2") {
		t.Errorf("Expected session ID in result, got: %s", text)
	}
	if api.method != http.MethodPost || api.path != "/api/sessions" {
		t.Errorf("Expected POST /api/sessions, got %s %s", api.method, api.path)
	}
	if api.body["config_id"] != "small" || api.body["board_size"] != float64(5) {
		t.Errorf("Unexpected request body: %v", api.body)
	}
}

func TestClient_handleMove(t *testing.T) {
	state := placedState(t)
	api := newFakeAPI(t, service.MoveResult{Success: true, Reason: engine.ReasonPlaced, GameState: state})
	client := NewClient(api.server.URL)
	ctx := context.Background()

	t.Run("by square name", func(t *testing.T) {
		result, _ := client.handleMove(ctx, newRequest("move", map[string]interface{}{
			"session_id": "a1b2",
			"square":     "A1",
			"intent":     "start in the corner",
		}))
		text := resultText(t, result)

		if !strings.Contains(text, "✓ Move successful") {
			t.Errorf("Expected success line, got: %s", text)
		}
		if api.path != "/api/sessions/a1b2/move" {
			t.Errorf("Unexpected path %s", api.path)
		}
		if api.body["square"] != "A1" {
			t.Errorf("Expected square in body, got %v", api.body)
		}
	})

	t.Run("by row and col", func(t *testing.T) {
		client.handleMove(ctx, newRequest("move", map[string]interface{}{
			"session_id": "a1b2",
			"row":        float64(1),
			"col":        float64(2),
		}))
		if api.body["row"] != float64(1) || api.body["col"] != float64(2) {
			t.Errorf("Expected row/col in body, got %v", api.body)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		result, _ := client.handleMove(ctx, newRequest("move", map[string]interface{}{
			"session_id": "a1b2",
			"row":        float64(1),
		}))
		if !result.IsError {
			t.Error("Expected an error result when col is missing")
		}
	})
}

func TestClient_handleBulkMove(t *testing.T) {
	state := placedState(t)
	api := newFakeAPI(t, service.BulkMoveResult{
		MovesExecuted:  1,
		RequestedMoves: 2,
		GameState:      state,
		StoppedReason:  "The knight cannot reach (1, A) from here.",
		StopReasonCode: engine.ReasonInvalidMove,
		StoppedOnMove:  2,
		Steps:          []service.StepInfo{{Idx: 1, To: engine.Coordinate{}, Square: "A1", Step: 1, Reason: engine.ReasonPlaced}},
		PossibleMoves:  []string{"C2", "B3"},
	})
	client := NewClient(api.server.URL)

	result, _ := client.handleBulkMove(context.Background(), newRequest("bulk_move", map[string]interface{}{
		"session_id": "a1b2",
		"squares":    []interface{}{"A1", "A2"},
	}))
	text := resultText(t, result)

	for _, want := range []string{"Executed 1/2 moves", "Stopped on move 2", "invalid_move", "1. step 1 → A1", "Possible moves: C2,B3"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}

	squares, ok := api.body["squares"].([]interface{})
	if !ok || len(squares) != 2 || squares[0] != "A1" {
		t.Errorf("Expected squares list in body, got %v", api.body)
	}

	result, _ = client.handleBulkMove(context.Background(), newRequest("bulk_move", map[string]interface{}{
		"session_id": "a1b2",
		"squares":    []interface{}{},
	}))
	if !result.IsError {
		t.Error("Expected an error result for an empty squares list")
	}
}

func TestStringSliceArg(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want int
	}{
		{"json array", []interface{}{"A1", "B3", 7}, 2},
		{"string slice", []string{"A1"}, 1},
		{"comma separated", "A1,B3,C5", 3},
		{"space separated", "A1 B3", 2},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stringSliceArg(map[string]interface{}{"squares": tt.arg}, "squares")
			if len(got) != tt.want {
				t.Errorf("Expected %d squares, got %v", tt.want, got)
			}
		})
	}
}

func TestClient_handleValidMoves(t *testing.T) {
	api := newFakeAPI(t, map[string]interface{}{
		"count": 2,
		"moves": []service.ValidMove{
			{Row: 1, Col: 2, Square: "C2", Onward: 5},
			{Row: 2, Col: 1, Square: "B3", Onward: 5},
		},
	})
	client := NewClient(api.server.URL)

	result, _ := client.handleValidMoves(context.Background(), newRequest("valid_moves", map[string]interface{}{"session_id": "a1b2"}))
	text := resultText(t, result)

	if !strings.Contains(text, "Legal moves (2)") || !strings.Contains(text, "C2 (row 1, col 2), onward moves: 5") {
		t.Errorf("Unexpected valid moves output: %s", text)
	}
	if api.path != "/api/sessions/a1b2/moves" {
		t.Errorf("Unexpected path %s", api.path)
	}
}

func TestClient_handleMoveHistory(t *testing.T) {
	api := newFakeAPI(t, service.HistoryResponse{
		Moves:      []engine.MoveHistoryEntry{{Row: 0, Col: 0, Step: 1, Square: "A1"}},
		TotalMoves: 1,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	})
	client := NewClient(api.server.URL)

	result, _ := client.handleMoveHistory(context.Background(), newRequest("move_history", map[string]interface{}{
		"session_id": "a1b2",
		"page":       float64(1),
		"order":      "asc",
	}))
	text := resultText(t, result)

	if !strings.Contains(text, "1. A1 (row 0, col 0)") {
		t.Errorf("Expected history line, got: %s", text)
	}
	if api.path != "/api/sessions/a1b2/history?order=asc&page=1" {
		t.Errorf("Unexpected path %s", api.path)
	}
}

func TestClient_handleDescribeSquare(t *testing.T) {
	api := newFakeAPI(t, placedState(t))
	client := NewClient(api.server.URL)
	ctx := context.Background()

	tests := []struct {
		square string
		want   string
	}{
		{"A1", "Knight is here (step 1)"},
		{"C2", "The knight can jump here now"},
		{"B2", "Not a knight's jump"},
		{"F6", "off the board"},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			result, _ := client.handleDescribeSquare(ctx, newRequest("describe_square", map[string]interface{}{
				"session_id": "a1b2",
				"square":     tt.square,
			}))
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q, got: %s", tt.want, text)
			}
		})
	}

	result, _ := client.handleDescribeSquare(ctx, newRequest("describe_square", map[string]interface{}{
		"session_id": "a1b2",
		"square":     "??",
	}))
	if !result.IsError {
		t.Error("Expected an error result for an unparseable square")
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(placedState(t))

	expected := []string{
		"Board: 5x5",
		"Knight: A1",
		"Visited: 1/25",
		"Status: in_progress",
		"♘",
		"●",
		"Next moves: C2,B3",
	}
	for _, field := range expected {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, result)
		}
	}

	if formatGameState(nil) != "No game state available" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	state := placedState(t)
	state.GameOver = true
	state.Status = engine.Lost
	if !strings.Contains(formatGameState(state), "💀 DEAD END") {
		t.Error("Expected dead end marker")
	}

	state.Victory = true
	state.Status = engine.Won
	if !strings.Contains(formatGameState(state), "🎉 TOUR COMPLETE!") {
		t.Error("Expected victory marker")
	}
}

func TestRenderBoard(t *testing.T) {
	state := placedState(t)
	lines := strings.Split(strings.TrimRight(renderBoard(state), "\n"), "\n")

	if len(lines) != 6 {
		t.Fatalf("Expected 5 rows plus labels, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], " 5 ") {
		t.Errorf("Expected top row to be row 5, got %q", lines[0])
	}
	if !strings.Contains(lines[4], "♘") {
		t.Errorf("Expected the knight on the bottom row, got %q", lines[4])
	}
	if strings.Fields(lines[5])[0] != "A" || strings.Fields(lines[5])[4] != "E" {
		t.Errorf("Unexpected column labels %q", lines[5])
	}
}

func TestFormatMoveResult_Refused(t *testing.T) {
	result := formatMoveResult(&service.MoveResult{
		Success:     false,
		Reason:      engine.ReasonInvalidMove,
		GameState:   placedState(t),
		AttemptedTo: &service.AttemptInfo{Row: 1, Col: 1, Square: "B2", OnBoard: true},
	})

	if !strings.Contains(result, "✗ Move refused (invalid_move)") {
		t.Errorf("Expected refusal line, got: %s", result)
	}
	if !strings.Contains(result, "Refused: B2 on_board=true visited=false knight_move=false") {
		t.Errorf("Expected attempt diagnostic, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), newRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}
	text := resultText(t, result)

	for _, content := range []string{"GAME OBJECTIVE:", "HOW TO PLAY:", "SQUARE NAMES:", "Warnsdorff", "COMPETITION:"} {
		if !strings.Contains(text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}
