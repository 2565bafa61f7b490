package main

import "github.com/wricardo/snake-game/game/engine"

// Strategy picks the snake's next direction: the first step of a shortest
// path to the food, or when the food is cut off the safe step that leaves
// the most room.
type Strategy struct{}

// blocked reports the cells the head cannot move into. The tail counts: it
// is tested before it is vacated.
func blocked(state *engine.GameState) map[engine.Cell]bool {
	cells := make(map[engine.Cell]bool, len(state.Snake))
	for _, segment := range state.Snake {
		cells[segment] = true
	}
	return cells
}

func open(state *engine.GameState, walls map[engine.Cell]bool, c engine.Cell) bool {
	return state.InBounds(c) && !walls[c]
}

// candidates returns the directions the snake may legally take
func candidates(state *engine.GameState) []engine.Direction {
	var dirs []engine.Direction
	for _, d := range engine.Directions {
		if d.IsOpposite(state.Direction) {
			continue
		}
		dirs = append(dirs, d)
	}
	return dirs
}

// BFS returns the first direction of a shortest path from the head to goal
func (s *Strategy) BFS(state *engine.GameState, goal engine.Cell) (engine.Direction, bool) {
	walls := blocked(state)
	head := state.Head()

	type queueItem struct {
		pos   engine.Cell
		first engine.Direction
	}

	visited := map[engine.Cell]bool{head: true}
	var queue []queueItem
	for _, d := range candidates(state) {
		next := head.Add(d)
		if !open(state, walls, next) {
			continue
		}
		if next == goal {
			return d, true
		}
		visited[next] = true
		queue = append(queue, queueItem{pos: next, first: d})
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range engine.Directions {
			next := current.pos.Add(d)
			if visited[next] || !open(state, walls, next) {
				continue
			}
			if next == goal {
				return current.first, true
			}
			visited[next] = true
			queue = append(queue, queueItem{pos: next, first: current.first})
		}
	}

	return engine.Direction{}, false
}

// room counts the open cells reachable from start
func room(state *engine.GameState, walls map[engine.Cell]bool, start engine.Cell) int {
	visited := map[engine.Cell]bool{start: true}
	queue := []engine.Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range engine.Directions {
			next := current.Add(d)
			if !visited[next] && open(state, walls, next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited)
}

// NextDirection chooses the next direction. ok is false when every move
// collides.
func (s *Strategy) NextDirection(state *engine.GameState) (engine.Direction, bool) {
	if len(state.Snake) == 0 {
		return engine.Direction{}, false
	}

	if state.HasFood {
		if d, ok := s.BFS(state, state.Food); ok {
			return d, true
		}
	}

	walls := blocked(state)
	head := state.Head()
	best, bestRoom := engine.Direction{}, 0
	for _, d := range candidates(state) {
		next := head.Add(d)
		if !open(state, walls, next) {
			continue
		}
		if r := room(state, walls, next); r > bestRoom {
			best, bestRoom = d, r
		}
	}
	return best, bestRoom > 0
}
