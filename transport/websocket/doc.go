// Package websocket pushes game frames to browsers and takes their input.
//
// One Hub serves every session. Its Run loop owns the client sets, so
// registration, removal and broadcast never race. Drivers reach the hub
// through RendererFor, whose Render queues the frame and returns at once; if
// the queue is full the frame is dropped rather than stalling the game. A
// client that cannot keep up with its own send buffer is disconnected.
//
// On connect a client receives {"session_id", "event": "state", "state"}.
// After that every driver frame arrives with its event name (tick, ate_food,
// game_over and so on). A client may send {"key": "ArrowUp"},
// {"command": "start"} or {"direction": "left"}; input the service rejects
// comes back as {"event": "error", "error": "..."}.
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	hub.SetInputHandler(games)
//	sessions := session.NewManager(session.WithRendererFactory(hub.RendererFor))
package websocket
