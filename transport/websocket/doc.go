// Package websocket pushes live game updates to browsers watching a
// memory match session.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values. A "state_update"
// event carries the full board snapshot; "session_complete" and
// "session_deleted" carry event-specific data. Clients do not send
// game commands over the socket; moves go through the HTTP API and the
// resulting state is broadcast here.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=ab12) when establishing the connection.
// Updates are broadcast only to clients connected to the same session, so
// several spectators can follow one board.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler
//	hub.ServeWS(w, r, sessionID)
//
//	// from the game service notifier
//	hub.BroadcastSnapshot(sessionID, snapshot)
//
// Concurrency:
//
// All session map mutations happen on the hub's Run goroutine; producers
// only touch the buffered broadcast channel, so broadcasting from engine
// callbacks never races with connection churn.
package websocket
