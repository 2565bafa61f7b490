package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/snake-game/api"
	"github.com/wricardo/snake-game/game/config"
	"github.com/wricardo/snake-game/game/scores"
	"github.com/wricardo/snake-game/game/service"
	"github.com/wricardo/snake-game/game/session"
	"github.com/wricardo/snake-game/transport/mcp"
	"github.com/wricardo/snake-game/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

const (
	cleanupInterval = 1 * time.Hour
	sessionMaxAge   = 24 * time.Hour
)

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "Enable ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "Ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "Custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

// services holds everything the HTTP surface needs
type services struct {
	configs  *config.Manager
	sessions *session.Manager
	hub      *websocket.Hub
	game     service.GameService
}

// initializeServices wires the config and session managers, the websocket
// hub and the game service around a shared best score board.
func initializeServices(configDir string, board *scores.Board) (*services, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	hub := websocket.NewHub()
	sessionManager := session.NewManager(
		session.WithBoard(board),
		session.WithRendererFactory(hub.RendererFor),
	)

	gameService := service.NewGameService(sessionManager, configManager, board)
	hub.SetInputHandler(gameService)

	return &services{
		configs:  configManager,
		sessions: sessionManager,
		hub:      hub,
		game:     gameService,
	}, nil
}

// newHTTPHandler combines the API server with the /mcp endpoint
func newHTTPHandler(svcs *services, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(svcs.game, svcs.hub))

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// startServices opens the board and starts the hub and the cleanup routine
func startServices(ctx context.Context, cmd *cli.Command) (*services, error) {
	board, err := newBoard(cmd.String("scores-file"), cmd.Bool("no-save"))
	if err != nil {
		return nil, err
	}

	svcs, err := initializeServices(cmd.String("config-dir"), board)
	if err != nil {
		return nil, err
	}
	if name := cmd.String("config"); name != "" {
		if err := svcs.configs.SetDefault(name); err != nil {
			return nil, err
		}
	}

	go svcs.hub.Run(ctx)
	go sessionCleanupRoutine(ctx, svcs.sessions, cleanupInterval, sessionMaxAge)

	return svcs, nil
}

// runServe starts the HTTP server with REST API, WebSocket hub, browser
// client and an /mcp proxy endpoint. If ngrok is enabled it also provisions
// a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	log.Printf("Starting %s v%s (serve)", AppName, Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svcs, err := startServices(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcs.sessions.Close()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newHTTPHandler(svcs, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("Game UI: http://%s/", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, handler, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled
func runNgrok(ctx context.Context, handler http.Handler, authToken, domain string) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  Game UI (ngrok): %s/", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runMCP runs an MCP stdio server. It reuses an external API at
// http://localhost:<port> when one answers; otherwise it starts an internal
// HTTP API on a random loopback port and targets that.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := fmt.Sprintf("http://localhost:%d", int(cmd.Int("port")))
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		if err == nil {
			resp.Body.Close()
		}
		log.Printf("No external API server found, starting internal HTTP server")

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		svcs, err := startServices(ctx, cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer svcs.sessions.Close()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

		httpServer := &http.Server{Handler: api.NewServer(svcs.game, svcs.hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		log.Printf("Internal HTTP server on %s for MCP stdio", listener.Addr())
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
