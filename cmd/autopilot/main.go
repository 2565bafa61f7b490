// Command autopilot plays snake on a running server. It creates or follows a
// session over the REST API, then steers from the WebSocket frames: a
// shortest path to the food when one exists, otherwise the move that keeps
// the most room. Open the browser client on the same session to watch.
package main

import (
	"flag"
	"log"

	"github.com/wricardo/snake-game/game/engine"
)

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Game configuration for a new session (classic, fast, large)")
	continueSession := flag.String("continue", "", "Play an existing session by ID")
	games := flag.Int("games", 1, "Number of games to play")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	if *continueSession != "" {
		client.UseSession(*continueSession)
	} else if _, err := client.CreateSession(*configID); err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	log.Printf("Session %s", client.SessionID())

	if err := client.Connect(); err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()

	scores, err := play(client, &Strategy{}, *games, *verbose)
	if err != nil {
		log.Fatalf("Autopilot stopped: %v", err)
	}

	best, total := 0, 0
	for _, s := range scores {
		total += s
		if s > best {
			best = s
		}
	}
	if len(scores) > 0 {
		log.Printf("Played %d games: best %d, average %.1f", len(scores), best, float64(total)/float64(len(scores)))
	}
}

// pilot is the part of Client that play needs
type pilot interface {
	Next() (*Frame, error)
	Command(name string) error
	Turn(d engine.Direction) error
}

// play starts games and steers until the requested number of games is over.
// It returns the final score of each game.
func play(client pilot, strategy *Strategy, games int, verbose bool) ([]int, error) {
	var scores []int

	if err := client.Command("start"); err != nil {
		return nil, err
	}

	for len(scores) < games {
		frame, err := client.Next()
		if err != nil {
			return scores, err
		}
		if frame.Error != "" {
			log.Printf("Server error: %s", frame.Error)
			continue
		}
		state := frame.State
		if state == nil {
			continue
		}

		switch frame.Event {
		case "game_over":
			scores = append(scores, state.Score)
			log.Printf("Game %d over: score %d (hit %s)", len(scores), state.Score, state.Collision)
			if len(scores) < games {
				if err := client.Command("start"); err != nil {
					return scores, err
				}
			}
			continue
		case "new_best":
			log.Printf("New best score: %d", state.BestScore)
			continue
		}

		if !state.Running || state.Paused {
			continue
		}

		d, ok := strategy.NextDirection(state)
		if !ok || d == state.Pending {
			continue
		}
		if verbose {
			log.Printf("Score %d, head %s, turning %s", state.Score, state.Head(), d)
		}
		if err := client.Turn(d); err != nil {
			return scores, err
		}
	}

	return scores, nil
}
