// Package mcp provides a Model Context Protocol server for the memory
// match game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game and score operations
//   - Session-aware command execution
//
// All tools proxy to the REST API server rather than holding game state
// themselves, so agents and browsers always observe the same sessions.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_game: Start a new session with player, level and theme
//   - get_game_state: Get the board with flip/match flags rendered as text
//   - flip_card: Flip one card by ID
//   - request_hint: Reveal one hidden matching pair
//   - toggle_pause: Pause or resume the timer
//   - reset_game: Re-deal the board
//   - list_games: List all active sessions
//   - list_levels: List selectable difficulty levels
//   - get_leaderboard: Top scores with their serving source
//   - sync_scores: Push pending local scores to the remote leaderboard
//   - game_instructions: Comprehensive rules and strategy notes
//
// Session Management:
//
// Game tools take a session_id parameter, so agents can manage multiple
// concurrent sessions independently.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play memory match sessions
//   - Track card values across flips and plan matches
//   - Compare scores on the leaderboard
//   - Manage multiple game sessions
package mcp
