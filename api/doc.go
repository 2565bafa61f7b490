// Package api provides HTTP REST API handlers for the snake game server.
//
// The api package implements:
//   - Session management endpoints
//   - Game controls (start, pause, reset, turn, key presses)
//   - Best score and configuration listing
//   - WebSocket upgrade handling
//   - The embedded browser client
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "fast"}, optional)
//   - GET /api/sessions - List sessions (?sort=accessed|created|score&order=asc|desc&limit=n)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Stop and remove a session
//
// Game Controls:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/start - Start a game (no-op while running)
//   - POST /api/sessions/{id}/pause - Toggle pause (no-op unless running)
//   - POST /api/sessions/{id}/reset - Stop and restore the initial position
//   - POST /api/sessions/{id}/turn - {"direction": "up|down|left|right"}
//   - POST /api/sessions/{id}/key - {"key": "ArrowUp"}, browser key names
//   - PUT /api/sessions/{id}/config - {"config_id": "large"}, switch preset and reset
//
// Other:
//   - GET /api/highscore - Best score shared by all sessions
//   - GET /api/keys - Keys whose default browser action must be suppressed
//   - GET /api/configs, GET /api/configs/{name} - Presets
//   - GET /ws?session={id} - Live frames for a session
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the service
// error: unknown sessions and configs are 404, bad input is 400, and a
// session whose game loop has stopped is 410.
//
//	{"error": "session not found"}
package api
