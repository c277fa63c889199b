// Package service provides the business logic layer for the memory
// matching game.
//
// The service package implements:
//   - Multi-session game management
//   - Flip, pause, hint and reset processing
//   - Score persistence on completion and leaderboard queries
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager serves the level table and card themes.
// ScoreStore is the offline-first score layer.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation and orchestration.
// Each session maintains its own game engine instance with independent
// state. The service wires every engine's callbacks: state changes are
// persisted and broadcast through the registered Notifier, and a
// finished game is turned into a score record and handed to the score
// store.
//
// Usage:
//
//	sessionMgr := session.NewManager(configMgr)
//	gameService := service.NewGameService(sessionMgr, configMgr, scoreStore)
//	gameService.SetNotifier(hub.BroadcastEvent)
//
//	// Create and play a session
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		LevelID: 1, PlayerName: "alice",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := gameService.Flip(ctx, info.ID, 3)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain
// independent game state. Multiple sessions can run concurrently with
// different levels and themes. Sessions track creation time and last
// access time, and are persisted across restarts.
package service
