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

	"memorymatch/game/engine"
	"memorymatch/game/service"
	"memorymatch/scores"
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
		"Memory Match Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Memory Match Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Flip cards two at a time and find all matching pairs. Fewer moves and
faster completion yield a higher score.

AVAILABLE TOOLS:
- create_game: Start a new game session
- get_game_state: Get the current board and score
- flip_card: Flip one card by its ID - requires intent explanation
- request_hint: Reveal one matching pair (limited budget)
- toggle_pause: Pause or resume the timer
- reset_game: Re-deal the board
- list_games: List all active sessions
- list_levels: List selectable difficulty levels
- get_leaderboard: Top scores, remote when the score service is reachable
- sync_scores: Push locally stored scores to the remote leaderboard
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on flip_card serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new memory match session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Name recorded on the leaderboard",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Difficulty level ID (optional, defaults to the easiest level)",
				},
				"theme": map[string]interface{}{
					"type":        "string",
					"description": "Card theme name (optional)",
				},
			},
			Required: []string{"player_name"},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game_state",
		Description: "Get the current board, score and timer for a session",
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

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "flip_card",
		Description: "Flip one card by its ID. Two flipped cards form a pair; matches stay face up, mismatches turn back over after a short delay.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"card_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the card to flip (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this flip (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "card_id"},
		},
	}, c.handleFlipCard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "request_hint",
		Description: "Reveal the positions of one still-hidden matching pair. Budget is limited per session.",
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
	}, c.handleRequestHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_pause",
		Description: "Pause or resume the session timer",
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
	}, c.handleTogglePause)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Re-deal the board and restart the timer",
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
	}, c.handleResetGame)

	// Configuration and scores
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List selectable difficulty levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_leaderboard",
		Description: "Get the top scores. Served from the remote leaderboard when reachable, otherwise from local storage.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Restrict to one difficulty level (optional)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of entries (optional)",
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "sync_scores",
		Description: "Push locally stored scores to the remote leaderboard",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSyncScores)

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

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerName, _ := args["player_name"].(string)
	theme, _ := args["theme"].(string)

	body := map[string]interface{}{
		"player_name": playerName,
	}
	if level, ok := args["level"].(float64); ok {
		body["level"] = int(level)
	}
	if theme != "" {
		body["theme"] = theme
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\n\n%s", session.ID, formatSessionInfo(&session))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		levelName := ""
		if s.Level != nil {
			levelName = s.Level.Name
		}
		result += fmt.Sprintf("- %s (Player: %s, Level: %s, Created: %s)\n",
			s.ID, s.PlayerName, levelName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleFlipCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	cardID := int(args["card_id"].(float64))
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"card_id": cardID,
	}

	var result service.FlipResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/flip", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatFlipResult(cardID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRequestHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var hint service.HintResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/hint", sessionID), nil, &hint)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Hint: cards %d and %d both show %q\nHints remaining: %d",
		hint.Hint.CardIDs[0], hint.Hint.CardIDs[1], hint.Hint.Value, hint.HintsLeft)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTogglePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snap engine.Snapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/pause", sessionID), nil, &snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verb := "resumed"
	if snap.Status == engine.StatusPaused {
		verb = "paused"
	}
	result := fmt.Sprintf("Game %s at %ds elapsed", verb, snap.TimeSpent)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string           `json:"message"`
		Snapshot *engine.Snapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot, 0))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []service.LevelInfo
	err := c.apiCall("GET", "/api/levels", nil, &levels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Levels:\n\n"
	for _, level := range levels {
		result += fmt.Sprintf("• %d - %s\n  Grid: %dx%d (%d pairs), Time limit: %ds, Target flips: %d\n\n",
			level.ID, level.Name, level.Rows, level.Cols, level.Pairs, level.TimeLimit, level.TargetFlips)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	params := "?"
	if level, ok := args["level"].(float64); ok {
		params += fmt.Sprintf("level=%d&", int(level))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var board service.LeaderboardResponse
	err := c.apiCall("GET", "/api/leaderboard"+strings.TrimSuffix(params, "?"), nil, &board)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLeaderboard(&board)), nil
}

func (c *Client) handleSyncScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var report scores.ReconcileReport
	err := c.apiCall("POST", "/api/sync", nil, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Score sync complete\nAttempted: %d\nPushed: %d\nAlready on remote: %d\nFailed (kept for retry): %d",
		report.Attempted, report.Pushed, report.Duplicate, report.Failed)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Memory Match Game - Complete Instructions

GAME OBJECTIVE:
Find all matching pairs of cards. Every card has exactly one twin on the
board. The faster you finish and the fewer moves you take, the higher
your score.

GAME MECHANICS:
• Flip: Turn one card face up by its ID. A second flip completes a pair.
• Match: Matching pairs stay face up and award points immediately.
• Mismatch: Mismatched pairs stay visible for a moment, then turn back
  over. Flips are ignored during that window.
• Moves: Each completed pair attempt counts as one move, matched or not.
• Completion: Matching the final pair ends the game and records a final
  score with time and efficiency bonuses.

SCORING:
• +100 points per matched pair during play
• Final score = base score + time bonus + efficiency bonus
• Time bonus: 5 points per second under the level's time limit
• Efficiency bonus: scaled against the level's target flip count - fewer
  moves means a bigger bonus
• Pausing stops the clock; paused time never counts against you

HINTS:
• Each session starts with 3 hints
• A hint reveals the IDs of one still-hidden matching pair
• Hints do not flip cards and do not count as moves

🤖 AI AGENTS - SUCCESS STRATEGIES:

🧠 MEMORY DISCIPLINE (MOST IMPORTANT):
- Record every card value you see, keyed by card ID
- A mismatch shows you TWO values - both go into your map
- Before flipping blind, check your map for a known twin
- Once both positions of a value are known, match them immediately

🎯 OPENING STRATEGY:
- Early flips are information gathering - expect mismatches
- Sweep unexplored regions instead of re-flipping known cards
- Never flip the same unknown pairing twice

⏱️ TIMING:
- The pair resolution is deferred briefly after the second flip; read
  the snapshot returned by flip_card to see the pending state
- Flips during the mismatch cool-down are silently ignored - check the
  'accepted' field on every flip result

API USAGE:
- create_game, then flip_card twice per attempt
- get_game_state returns the full board with flip/match flags
- request_hint when stuck (budget of 3)
- get_leaderboard to compare scores across players

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state, level and theme

Good luck finding those pairs! 🃏✨`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	cols := 0
	levelName := ""
	if session.Level != nil {
		cols = session.Level.Cols
		levelName = session.Level.Name
	}
	return fmt.Sprintf("Session: %s\nPlayer: %s\nLevel: %s\nTheme: %s\nCreated: %s\n\n%s",
		session.ID, session.PlayerName, levelName, session.Theme,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.Snapshot, cols))
}

// formatSnapshot renders the board as a text grid. When cols is not
// known it picks the most square layout that fits the card count.
func formatSnapshot(snap *engine.Snapshot, cols int) string {
	if snap == nil {
		return "No game state available"
	}

	if cols <= 0 {
		cols = bestFitCols(len(snap.Cards))
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Status: %s | Score: %d | Moves: %d | Matched: %d/%d | Time: %ds | Hints: %d\n\n",
		snap.Status, snap.Score, snap.Moves,
		snap.MatchedCount, len(snap.Cards), snap.TimeSpent, snap.HintsLeft))

	if snap.FlipLocked {
		result.WriteString("⏳ Mismatch cool-down active - flips are ignored until cards turn back over\n\n")
	}

	// Board: face-down cards show their ID, visible cards their value
	for i, card := range snap.Cards {
		switch {
		case card.Matched:
			result.WriteString(fmt.Sprintf("[%s✓]", card.Value))
		case card.Flipped:
			result.WriteString(fmt.Sprintf("[%s ]", card.Value))
		default:
			result.WriteString(fmt.Sprintf("(%2d)", card.ID))
		}
		if cols > 0 && (i+1)%cols == 0 {
			result.WriteString("\n")
		} else {
			result.WriteString(" ")
		}
	}

	if snap.Status == engine.StatusComplete {
		result.WriteString("\n🎉 ALL PAIRS MATCHED!")
	}

	return result.String()
}

func formatFlipResult(cardID int, result *service.FlipResult) string {
	response := ""
	if result.Accepted {
		response = fmt.Sprintf("✓ Flipped card %d\n", cardID)
	} else {
		response = fmt.Sprintf("✗ Flip of card %d ignored\n", cardID)
	}

	if result.PairPending {
		response += "Pair complete - resolution pending, check the next state\n"
	}

	response += "\n" + formatSnapshot(result.Snapshot, 0)
	return response
}

func formatLeaderboard(board *service.LeaderboardResponse) string {
	var b strings.Builder

	scope := "all levels"
	if board.Level > 0 {
		scope = fmt.Sprintf("level %d", board.Level)
	}
	b.WriteString(fmt.Sprintf("Leaderboard (%s, served from %s):\n\n", scope, board.Source))

	if len(board.Records) == 0 {
		b.WriteString("(no scores recorded yet)")
		return b.String()
	}

	for i, rec := range board.Records {
		marker := ""
		if rec.Origin == scores.OriginLocalPending {
			marker = " [pending sync]"
		}
		b.WriteString(fmt.Sprintf("%d. %s - %d pts (level %d, %d flips, %ds)%s\n",
			i+1, rec.PlayerName, rec.Score, rec.Level, rec.CardsFlipped, rec.TimeTaken, marker))
	}

	return b.String()
}

// bestFitCols picks the widest divisor of n no greater than its square
// root counterpart, favoring square-ish boards.
func bestFitCols(n int) int {
	if n <= 0 {
		return 1
	}
	best := 1
	for c := 1; c*c <= n; c++ {
		if n%c == 0 {
			best = c
		}
	}
	return n / best
}
