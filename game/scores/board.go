package scores

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
)

// HighScoreKey is the store key holding the best score
const HighScoreKey = "snakeHighScore"

// Board tracks the process-wide best score
type Board struct {
	store Store
	best  int
	mu    sync.RWMutex
}

// NewBoard reads the persisted best score once. A missing, unreadable or
// malformed value counts as no saved score.
func NewBoard(store Store) *Board {
	b := &Board{store: store}

	raw, ok, err := store.Get(HighScoreKey)
	switch {
	case err != nil:
		log.Printf("Warning: failed to read best score: %v", err)
	case ok:
		best, parseErr := ParseScore(raw)
		if parseErr != nil {
			log.Printf("Warning: ignoring saved best score: %v", parseErr)
		}
		b.best = best
	}

	return b
}

// Best returns the best score known to this process
func (b *Board) Best() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.best
}

// Submit records a finished game's score. The store is written only when the
// score beats the current best; improved reports whether it did. The
// in-memory best is updated even if the write fails.
func (b *Board) Submit(score int) (improved bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if score <= b.best {
		return false, nil
	}
	b.best = score

	if err := b.store.Set(HighScoreKey, strconv.Itoa(score)); err != nil {
		return true, fmt.Errorf("failed to persist best score: %w", err)
	}
	return true, nil
}

// ParseScore decodes a stored score. Anything that is not a non-negative
// decimal integer yields 0 and an error.
func ParseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty score")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("malformed score %q", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative score %d", n)
	}
	return n, nil
}
