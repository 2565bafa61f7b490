// Command desktop is a window client for a running snake server. It opens or
// creates a session over the REST API, follows it over the WebSocket and
// sends key presses back, so the window and any browser watching the same
// session stay in step.
//
// Usage:
//
//	desktop [-server http://localhost:8080] [-config fast] [session-id]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	boardSize    = 400
	headerHeight = 40
	footerHeight = 24
	screenWidth  = boardSize
	screenHeight = headerHeight + boardSize + footerHeight
)

var (
	colorBackground = color.RGBA{17, 17, 17, 255}
	colorGrid       = color.RGBA{30, 30, 30, 255}
	colorHead       = color.RGBA{102, 255, 102, 255}
	colorBody       = color.RGBA{46, 160, 67, 255}
	colorFood       = color.RGBA{255, 80, 80, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
)

// Cell is a grid coordinate
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameState mirrors the server's game state
type GameState struct {
	Snake     []Cell `json:"snake"`
	Food      Cell   `json:"food"`
	HasFood   bool   `json:"has_food"`
	Score     int    `json:"score"`
	BestScore int    `json:"best_score"`
	Speed     int    `json:"speed"`
	Running   bool   `json:"running"`
	Paused    bool   `json:"paused"`
	GameOver  bool   `json:"game_over"`
	NewBest   bool   `json:"new_best,omitempty"`
	GridCells int    `json:"grid_cells"`
}

// WSMessage is one frame from the server
type WSMessage struct {
	SessionID string     `json:"session_id"`
	Event     string     `json:"event"`
	State     *GameState `json:"state,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// keyBindings maps window keys to the key names the server understands
var keyBindings = []struct {
	keys []ebiten.Key
	name string
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, "ArrowUp"},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, "ArrowDown"},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, "ArrowLeft"},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, "ArrowRight"},
	{[]ebiten.Key{ebiten.KeySpace}, " "},
	{[]ebiten.Key{ebiten.KeyEnter}, "Enter"},
	{[]ebiten.Key{ebiten.KeyR}, "r"},
}

// Game implements ebiten.Game
type Game struct {
	serverURL string
	sessionID string
	conn      *websocket.Conn

	stateMutex sync.RWMutex
	state      *GameState
	lastEvent  string
	lastError  string
}

// createSession asks the server for a new session and returns its ID
func createSession(serverURL, configID string) (string, error) {
	payload := "{}"
	if configID != "" {
		payload = fmt.Sprintf(`{"config_id":%q}`, configID)
	}

	resp, err := http.Post(serverURL+"/api/sessions", "application/json", strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("create session: %s", body.Error)
	}
	return body.ID, nil
}

// connectWebSocket dials the session's WebSocket
func (g *Game) connectWebSocket() error {
	base, err := url.Parse(g.serverURL)
	if err != nil {
		return err
	}

	scheme := "ws"
	if base.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := url.URL{Scheme: scheme, Host: base.Host, Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", g.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	g.conn = conn
	log.Printf("WebSocket connected for session %s", g.sessionID)
	return nil
}

// listenWebSocket applies frames until the connection closes
func (g *Game) listenWebSocket() {
	defer g.conn.Close()

	for {
		_, message, err := g.conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", g.sessionID, err)
			g.stateMutex.Lock()
			g.lastError = "disconnected"
			g.stateMutex.Unlock()
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}

		g.stateMutex.Lock()
		if msg.Error != "" {
			g.lastError = msg.Error
		}
		if msg.State != nil {
			g.state = msg.State
			g.lastEvent = msg.Event
		}
		g.stateMutex.Unlock()
	}
}

// sendKey forwards a key press. Only Update writes to the connection.
func (g *Game) sendKey(name string) {
	if g.conn == nil {
		return
	}
	g.conn.SetWriteDeadline(time.Now().Add(time.Second))
	if err := g.conn.WriteJSON(map[string]string{"key": name}); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}

// Update handles input
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, binding := range keyBindings {
		for _, key := range binding.keys {
			if inpututil.IsKeyJustPressed(key) {
				g.sendKey(binding.name)
				break
			}
		}
	}
	return nil
}

// Draw renders the board
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g.stateMutex.RLock()
	state := g.state
	event := g.lastEvent
	lastError := g.lastError
	g.stateMutex.RUnlock()

	if state == nil || state.GridCells == 0 {
		ebitenutil.DebugPrint(screen, "Connecting...")
		return
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Session %s   Score: %d   Best: %d   Speed: %dms",
		g.sessionID, state.Score, state.BestScore, state.Speed), 8, 12)

	cell := float64(boardSize) / float64(state.GridCells)
	top := float64(headerHeight)

	for i := 0; i <= state.GridCells; i++ {
		offset := float64(i) * cell
		ebitenutil.DrawRect(screen, offset, top, 1, boardSize, colorGrid)
		ebitenutil.DrawRect(screen, 0, top+offset, boardSize, 1, colorGrid)
	}

	if state.HasFood {
		ebitenutil.DrawRect(screen, float64(state.Food.X)*cell+2, top+float64(state.Food.Y)*cell+2, cell-4, cell-4, colorFood)
	}
	for i := len(state.Snake) - 1; i >= 0; i-- {
		c := colorBody
		if i == 0 {
			c = colorHead
		}
		segment := state.Snake[i]
		ebitenutil.DrawRect(screen, float64(segment.X)*cell+1, top+float64(segment.Y)*cell+1, cell-2, cell-2, c)
	}

	message := ""
	switch {
	case state.Paused:
		message = "PAUSED"
	case state.GameOver && event == "new_best":
		message = fmt.Sprintf("NEW BEST: %d - Enter to play again", state.BestScore)
	case state.GameOver:
		message = fmt.Sprintf("GAME OVER - score %d - Enter to play again", state.Score)
	case !state.Running:
		message = "Press Enter to start"
	}
	if message != "" {
		ebitenutil.DrawRect(screen, 0, top+boardSize/2-16, boardSize, 32, colorOverlay)
		ebitenutil.DebugPrintAt(screen, message, boardSize/2-len(message)*3, int(top)+boardSize/2-8)
	}

	footer := "Arrows/WASD: Turn | Space: Pause | Enter: Start | R: Reset | Esc: Quit"
	if lastError != "" {
		footer = "Error: " + lastError
	}
	ebitenutil.DebugPrintAt(screen, footer, 8, headerHeight+boardSize+4)
}

// Layout returns the logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Snake server URL")
	configID := flag.String("config", "", "Config for a new session (optional)")
	flag.Parse()

	game := &Game{serverURL: strings.TrimSuffix(*serverURL, "/")}

	if flag.NArg() > 0 {
		game.sessionID = flag.Arg(0)
	} else {
		id, err := createSession(game.serverURL, *configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		game.sessionID = id
		log.Printf("Created session %s", id)
	}

	if err := game.connectWebSocket(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	go game.listenWebSocket()

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Snake - " + game.sessionID)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
