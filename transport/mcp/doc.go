// Package mcp exposes the snake game to Model Context Protocol clients.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, so an agent plays the same live sessions a browser does. Game
// state is rendered as text with an ASCII board.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: current state with the board drawn as text
//   - start_game, toggle_pause, reset_game: game controls
//   - turn: queue a direction for the next step
//   - press_key: send a raw key name
//   - change_config: switch a session to another configuration
//   - high_score, list_configs, game_instructions: reference data
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
