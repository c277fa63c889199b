// Package api provides the HTTP REST surface of the memory match game.
//
// The api package implements:
//   - RESTful endpoints for session and board operations
//   - Level and theme listing
//   - Leaderboard, player stats and score sync endpoints
//   - QR join links for spectator screens
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board snapshot
//   - POST /api/sessions/{id}/flip - Flip a card: {"card_id": 5}
//   - POST /api/sessions/{id}/pause - Toggle pause
//   - POST /api/sessions/{id}/hint - Reveal a matching pair
//   - POST /api/sessions/{id}/reset - Re-deal the board
//   - GET /api/sessions/{id}/qr - PNG QR code linking to the session
//
// Configuration:
//   - GET /api/levels - Selectable difficulty levels
//   - GET /api/themes - Available card themes
//
// Scores:
//   - GET /api/leaderboard?level=&limit= - Top scores, remote when reachable
//   - GET /api/players/{name}/best - Per-level personal bests
//   - GET /api/stats - Aggregate play statistics
//   - GET /api/connectivity - Remote score store reachability
//   - POST /api/sync - Push pending local scores to the remote store
//
// Request/Response Format:
//
// All endpoints accept and return JSON, except the QR endpoint which
// returns image/png. Errors are returned as JSON with appropriate HTTP
// status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Live Updates:
//
// Clients open /ws?session={id} after creating or joining a session.
// State changes, including deferred pair resolution that happens after
// an HTTP response was already sent, are pushed over the socket.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
