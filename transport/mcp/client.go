package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/knights-tour/game/engine"
	"github.com/wricardo/knights-tour/game/service"
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
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Knight's Tour",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Knight's Tour - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Place a chess knight on any square, then jump it (L-shaped moves) so that it
lands on every square of the board exactly once.

SQUARES:
Squares can be given as names like "C2" (column letter, row number) or as
0-based row/col pairs. "C2" is row 1, col 2.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session: manage game sessions
- game_state: current board with step numbers
- valid_moves: legal next squares with how many onward moves each leaves
- move: click one square (the first click places the knight)
- bulk_move: click a sequence of squares
- reset_game / resize_board: start over, optionally on another size
- start_competition: timed ladder of growing boards
- move_history: visited squares, paginated
- list_configs: available board configurations
- describe_square: details about one square
- game_instructions: rules and strategy

TIP: prefer squares with the fewest onward moves (Warnsdorff's rule).`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config and board size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, e.g. classic or small (optional)",
				},
				"board_size": map[string]interface{}{
					"type":        "integer",
					"description": "Board size override, 1 to 26 (optional)",
				},
			},
		},
	}, c.handleCreateSession)

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
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, knight position and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Click a square: places the knight on the first click, jumps it afterwards",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"square": map[string]interface{}{
					"type":        "string",
					"description": "Square name such as C2 (alternative to row/col)",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "0-based row",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "0-based column",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this square was chosen",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Click a sequence of squares, stopping at the first refused click or when the game ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"squares": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Square names in order, e.g. [\"A1\", \"B3\", \"C5\"]",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind this sequence",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "squares"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Clear the board and start a new tour",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resize_board",
		Description: "Switch the session to another board size and reset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"board_size": map[string]interface{}{
					"type":        "integer",
					"description": "New board size, 1 to 26",
				},
			},
			Required: []string{"session_id", "board_size"},
		},
	}, c.handleResize)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "valid_moves",
		Description: "List the squares the knight can jump to next",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleValidMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the squares visited in the current game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
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
		Name:        "start_competition",
		Description: "Start a timed competition that climbs through several board sizes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"levels": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Board sizes in play order (default 5,6,7,8,9,10)",
				},
				"time_limit_seconds": map[string]interface{}{
					"type":        "integer",
					"description": "Time limit for the whole competition (default 600)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartCompetition)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the knight's tour and strategy hints",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_square",
		Description: "Describe one square: whether it is visited, reachable from the knight and how many onward moves it has",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"square": map[string]interface{}{
					"type":        "string",
					"description": "Square name such as C2",
				},
			},
			Required: []string{"session_id", "square"},
		},
	}, c.handleDescribeSquare)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
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

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// intArg reads a JSON number argument. ok is false when it is absent.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		// Also accept "A1 B3 C5" or "A1,B3,C5"
		return strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	}
	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if size, ok := intArg(args, "board_size"); ok {
		body["board_size"] = size
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", %dx%d, %s, %d/%d squares", s.GameState.BoardSize, s.GameState.BoardSize,
				s.GameState.Status, s.GameState.StepCount, s.GameState.BoardSize*s.GameState.BoardSize)
		}
		fmt.Fprintf(&b, "- %s (Config: %s%s, Created: %s)\n", s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	reset, _ := args["reset"].(bool)

	// intent is only there to make the caller explain itself
	_, _ = args["intent"].(string)

	body := map[string]interface{}{"reset": reset}
	if square, _ := args["square"].(string); square != "" {
		body["square"] = square
	} else {
		row, okRow := intArg(args, "row")
		col, okCol := intArg(args, "col")
		if !okRow || !okCol {
			return mcp.NewToolResultError("either square or both row and col are required"), nil
		}
		body["row"] = row
		body["col"] = col
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	reset, _ := args["reset"].(bool)
	squares := stringSliceArg(args, "squares")

	if len(squares) == 0 {
		return mcp.NewToolResultError("squares must contain at least one square"), nil
	}

	body := map[string]interface{}{
		"squares": squares,
		"reset":   reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleResize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	size, ok := intArg(args, "board_size")
	if !ok {
		return mcp.NewToolResultError("board_size is required"), nil
	}

	var state engine.GameState
	body := map[string]int{"board_size": size}
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/resize"), body, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleValidMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var response struct {
		Count int                 `json:"count"`
		Moves []service.ValidMove `json:"moves"`
	}
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/moves"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatValidMoves(response.Moves)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		hints := "off"
		if cfg.ShowHints {
			hints = "on"
		}
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Hints: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.BoardSize, cfg.BoardSize, hints)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleStartCompetition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)

	var opts service.CompetitionOptions
	if raw, ok := args["levels"].([]interface{}); ok {
		for _, v := range raw {
			if f, ok := v.(float64); ok {
				opts.Levels = append(opts.Levels, int(f))
			}
		}
	}
	if limit, ok := intArg(args, "time_limit_seconds"); ok {
		opts.TimeLimitSeconds = limit
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/competition"), opts, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Competition started.\n\n" + formatGameState(&state)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `♘ Knight's Tour - Complete Instructions

GAME OBJECTIVE:
Move a chess knight so that it visits every square of the board exactly once.

HOW TO PLAY:
• First click: place the knight on any square. That square is step 1.
• Every later click must be a knight's jump (two squares one way, one square
  the other) onto a square that has not been visited yet.
• Victory: all N x N squares visited.
• Dead end: the knight has no unvisited square to jump to. The game is lost.

SQUARE NAMES:
• Columns are letters from A, rows are numbers from 1.
• "C2" means row 1, col 2 (0-based). Tools accept either form.

BOARD LEGEND (game_state):
• numbers  step on which that square was visited
• ♘        the knight
• ●        a legal next jump (shown when hints are on)
• .        unvisited square

STRATEGY:
• Warnsdorff's rule: jump to the square with the fewest onward moves.
  valid_moves reports the onward count for each candidate.
• Corners have only two exits. Visit them early, never leave them stranded.
• Mobility CRITICAL means only one exit is left: take it.
• A 5x5 tour must start on a square with an even row+col sum.
• Boards of size 2, 3 and 4 have no complete tour.

COMPETITION:
• start_competition plays a ladder of board sizes (default 5 to 10) against
  one clock (default 600 seconds).
• Winning a level advances on the next click. A dead end resets the level.
• When time runs out the competition ends.

EFFICIENT PLAY:
• Use bulk_move with a planned list of squares. It stops at the first
  refused square and reports why.

Good luck on your tour! ♘`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	name, _ := args["square"].(string)

	pos, err := engine.ParseSquare(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeSquare(&state, pos)), nil
}

// Formatting helpers

func describeSquare(state *engine.GameState, pos engine.Coordinate) string {
	if !state.Board.Contains(pos) {
		return fmt.Sprintf("Square %s is off the board. The board is %dx%d (A1 to %s).",
			engine.SquareName(pos), state.BoardSize, state.BoardSize,
			engine.SquareName(engine.Coordinate{Row: state.BoardSize - 1, Col: state.BoardSize - 1}))
	}

	cell := state.Board.At(pos)
	var b strings.Builder
	fmt.Fprintf(&b, "Square %s (row %d, col %d):\n", engine.SquareName(pos), pos.Row, pos.Col)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")

	switch {
	case cell.IsCurrent:
		fmt.Fprintf(&b, "Knight is here (step %d)\n", cell.Step)
	case cell.Visited:
		fmt.Fprintf(&b, "Visited on step %d\n", cell.Step)
	default:
		b.WriteString("Not visited\n")
	}

	fmt.Fprintf(&b, "Unvisited neighbours: %d of %d\n",
		len(engine.UnvisitedMoves(state.Board, pos)), len(engine.GetValidMoves(pos.Row, pos.Col, state.BoardSize)))

	switch state.Status {
	case engine.NotStarted:
		b.WriteString("The knight can be placed here.\n")
	case engine.InProgress:
		if state.CanMoveTo(pos) {
			b.WriteString("✅ The knight can jump here now.\n")
		} else if !cell.Visited {
			b.WriteString("✗ Not a knight's jump from the current square.\n")
		}
	}

	return b.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	n := state.BoardSize

	position := "not placed"
	if state.CurrentPos != nil {
		position = engine.SquareName(*state.CurrentPos)
	}
	fmt.Fprintf(&b, "Board: %dx%d | Knight: %s | Visited: %d/%d | Status: %s | Clicks: %d\n",
		n, n, position, state.StepCount, n*n, state.Status, state.TotalClicks)
	if state.Mobility != "" {
		fmt.Fprintf(&b, "Mobility: %s\n", state.Mobility)
	}
	if comp := state.Competition; comp != nil {
		fmt.Fprintf(&b, "Competition: level %d/%d, %ds left, %d failures\n",
			comp.Level, len(comp.Levels), comp.TimeLeftSeconds, comp.Failures)
	}
	b.WriteString("\n")
	b.WriteString(renderBoard(state))

	if len(state.NextMoves) > 0 {
		names := make([]string, len(state.NextMoves))
		for i, m := range state.NextMoves {
			names[i] = engine.SquareName(m)
		}
		fmt.Fprintf(&b, "\nNext moves: %s\n", strings.Join(names, ","))
	}

	if state.GameOver {
		if state.Victory {
			b.WriteString("\n🎉 TOUR COMPLETE!")
		} else {
			b.WriteString("\n💀 DEAD END")
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

// renderBoard draws the board with the highest row at the top, like a chess diagram
func renderBoard(state *engine.GameState) string {
	var b strings.Builder
	n := len(state.Board)
	width := len(fmt.Sprint(n * n))
	if width < 2 {
		width = 2
	}

	next := map[engine.Coordinate]bool{}
	for _, m := range state.NextMoves {
		next[m] = true
	}

	for r := n - 1; r >= 0; r-- {
		fmt.Fprintf(&b, "%2d ", r+1)
		for c := 0; c < n; c++ {
			cell := state.Board[r][c]
			var mark string
			switch {
			case cell.IsCurrent:
				mark = "♘"
			case cell.Visited:
				mark = fmt.Sprint(cell.Step)
			case state.ShowHints && next[engine.Coordinate{Row: r, Col: c}]:
				mark = "●"
			default:
				mark = "."
			}
			fmt.Fprintf(&b, " %*s", width, mark)
		}
		b.WriteString("\n")
	}

	b.WriteString("   ")
	for c := 0; c < n; c++ {
		fmt.Fprintf(&b, " %*s", width, engine.ColumnLabel(c))
	}
	b.WriteString("\n")
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		fmt.Fprintf(&b, "✗ Move refused (%s)\n", result.Reason)
	}

	if s := result.Step; s != nil {
		from := "start"
		if s.From != nil {
			from = engine.SquareName(*s.From)
		}
		fmt.Fprintf(&b, "Step %d: %s→%s\n", s.Step, from, s.Square)
	}

	if a := result.AttemptedTo; a != nil {
		fmt.Fprintf(&b, "Refused: %s on_board=%v visited=%v knight_move=%v\n", a.Square, a.OnBoard, a.Visited, a.KnightMove)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size, configName := 0, ""
	if result.GameState != nil {
		size = result.GameState.BoardSize
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s • Board: %dx%d\n", sessionID, configName, size, size)

	fmt.Fprintf(&b, "Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d squares\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s (%s)\n", result.StoppedOnMove, result.StoppedReason, result.StopReasonCode)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			line := fmt.Sprintf("%d. step %d → %s", s.Idx, s.Step, s.Square)
			if s.Victory {
				line += " 🎉"
			}
			if s.DeadEnd {
				line += " (dead end)"
			}
			b.WriteString(line + "\n")
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(result.PossibleMoves, ","))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatValidMoves(moves []service.ValidMove) string {
	if len(moves) == 0 {
		return "No legal moves."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Legal moves (%d):\n", len(moves))
	for _, m := range moves {
		fmt.Fprintf(&b, "- %s (row %d, col %d), onward moves: %d\n", m.Square, m.Row, m.Col, m.Onward)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, %d squares):\n\n", history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		fmt.Fprintf(&b, "%3d. %s (row %d, col %d)\n", move.Step, move.Square, move.Row, move.Col)
	}

	if history.HasNext || history.HasPrevious {
		b.WriteString("\n")
		if history.HasPrevious {
			b.WriteString("← previous page available ")
		}
		if history.HasNext {
			b.WriteString("next page available →")
		}
		b.WriteString("\n")
	}

	return b.String()
}
