package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/snake-game/game/config"
	"github.com/wricardo/snake-game/game/driver"
	"github.com/wricardo/snake-game/game/engine"
	"github.com/wricardo/snake-game/sound"
	"github.com/wricardo/snake-game/ui/terminal"
)

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "sound",
			Usage: "Play sound effects",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write log output to this file while playing",
		},
	}
}

// redirectLog sends log output to path, or discards it, so it does not
// draw over the board
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// loadPlayConfig returns the named preset, or the default one
func loadPlayConfig(configDir, name string) (*engine.GameConfig, error) {
	configs, err := config.NewManager(configDir)
	if err != nil {
		log.Printf("Warning: %v; using built-in defaults", err)
		if name != "" {
			return nil, err
		}
		return engine.DefaultGameConfig(), nil
	}
	if name == "" {
		return configs.GetDefault(), nil
	}
	return configs.LoadConfig(name)
}

// runPlay plays one terminal session until the player quits
func runPlay(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadPlayConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}

	board, err := newBoard(cmd.String("scores-file"), cmd.Bool("no-save"))
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	restore, err := redirectLog(cmd.String("log-file"))
	if err != nil {
		return err
	}
	defer restore()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen)
	opts := []driver.Option{
		driver.WithName("terminal"),
		driver.WithBoard(board),
		driver.WithRenderer(renderer),
	}
	if cmd.Bool("sound") {
		player := sound.NewPlayer()
		defer player.Close()
		opts = append(opts, driver.WithRenderer(player))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := driver.New(eng, opts...)
	go d.Run(ctx)

	log.Printf("Playing %q, best score %d", cfg.Name, board.Best())

	err = terminal.Play(ctx, screen, d, renderer)
	if errors.Is(err, terminal.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
