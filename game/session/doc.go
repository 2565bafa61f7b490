// Package session keeps the live games of the snake server.
//
// A Manager maps short IDs to sessions. Creating a session builds an engine
// from a configuration, wraps it in a driver and starts the driver on its
// own goroutine; deleting or expiring the session cancels that goroutine.
// Every driver shares the manager's best score board and gets its renderer
// from the manager's factory, which in server mode is the websocket hub:
//
//	manager := session.NewManager(
//		session.WithBoard(board),
//		session.WithRendererFactory(hub.RendererFor),
//	)
//	sess, err := manager.Create("", config)
//
// IDs are four hex characters drawn from crypto/rand and are matched without
// regard to case, so "AB12" and "ab12" name the same game. Sessions idle for
// longer than the cleanup age are stopped by CleanupExpiredSessions.
package session
