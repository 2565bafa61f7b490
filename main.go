// Command snake plays the classic snake game.
//
// It supports three commands:
//  1. "play" (default) – plays in the terminal
//  2. "serve" – runs the HTTP server exposing the REST API, WebSocket, a browser client and an /mcp endpoint
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the config directory and preset, where the best
// score is kept, debug logging, sound, and optional ngrok tunneling.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/snake-game/game/scores"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snake"
)

// defaultScoresFile returns where the best score is kept when no
// --scores-file is given
func defaultScoresFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "snake-game", "scores.json")
	}
	return "scores.json"
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "snake",
		Usage:   AppName + " in the terminal, the browser or over MCP",
		Version: Version,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration to play (default: classic)",
			},
			&cli.StringFlag{
				Name:    "scores-file",
				Value:   defaultScoresFile(),
				Usage:   "File keeping the best score",
				Sources: cli.EnvVars("SNAKE_SCORES_FILE"),
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Keep the best score in memory only",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
		}, playFlags()...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("debug"))
			return ctx, nil
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "Play in the terminal (default)",
				Action: runPlay,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP server with REST API, WebSocket, browser client and MCP endpoint",
				Flags:  serveFlags(),
				Action: runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "Run an MCP stdio server backed by the HTTP API",
				Action:  runMCP,
			},
		},
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// newBoard opens the best score board
func newBoard(scoresFile string, noSave bool) (*scores.Board, error) {
	if noSave {
		return scores.NewBoard(scores.NewMemoryStore()), nil
	}

	store, err := scores.NewFileStore(scoresFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores file: %w", err)
	}
	return scores.NewBoard(store), nil
}

// main loads .env, then runs the selected command until it returns or a
// signal arrives.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
