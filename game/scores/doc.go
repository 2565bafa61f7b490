// Package scores persists the best score across game sessions.
//
// A Store is a small string key-value store, the same shape as browser
// local storage. FileStore keeps its values in one JSON file; MemoryStore
// keeps them in a map. Board sits on top of a Store and owns the best score
// under the "snakeHighScore" key: it is read once when the board is
// created, and written only when a finished game beats it.
//
// Usage:
//
//	store, err := scores.NewFileStore("snake_scores.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	board := scores.NewBoard(store)
//
//	improved, err := board.Submit(finalScore)
package scores
