// Package service is the layer between the transports and the game drivers.
//
// GameService is what the REST API, the websocket hub and the MCP tools call.
// It resolves a session, turns the request into a driver command and waits
// for the driver to apply it, so every answer carries the state as it stood
// right after the command. The service never touches an engine directly.
//
// The managers it depends on are interfaces declared here and implemented by
// the session and config packages:
//
//	sessions := session.NewManager(session.WithBoard(board))
//	configs, _ := config.NewManager("configs")
//	games := service.NewGameService(sessions, configs, board)
//
//	info, _ := games.CreateSession(ctx, "fast")
//	state, err := games.Start(ctx, info.ID)
//
// Lookup failures are reported with the sentinel errors of this package
// (ErrSessionNotFound, ErrConfigNotFound and friends) so callers can map them
// with errors.Is.
package service
