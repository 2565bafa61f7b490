package engine

// InBounds reports whether c lies on the grid
func (gs *GameState) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < gs.GridCells && c.Y >= 0 && c.Y < gs.GridCells
}

// Occupies reports whether any snake segment, tail included, sits on c
func (gs *GameState) Occupies(c Cell) bool {
	for _, segment := range gs.Snake {
		if segment == c {
			return true
		}
	}
	return false
}

// CheckCollision returns what the head would hit at c. The wall check wins
// over the self check; the tail is still counted as occupied because it has
// not been vacated yet when the new head is tested.
func (gs *GameState) CheckCollision(c Cell) Collision {
	if !gs.InBounds(c) {
		return WallCollision
	}
	if gs.Occupies(c) {
		return SelfCollision
	}
	return NoCollision
}

// Head returns the first snake segment
func (gs *GameState) Head() Cell {
	return gs.Snake[0]
}

// Tail returns the last snake segment
func (gs *GameState) Tail() Cell {
	return gs.Snake[len(gs.Snake)-1]
}

// advance moves the snake one cell along its committed direction and reports
// the outcome. Food placement and speed changes are left to the caller.
func (gs *GameState) advance() (Cell, Collision) {
	gs.Direction = gs.Pending
	newHead := gs.Head().Add(gs.Direction)

	if collision := gs.CheckCollision(newHead); collision != NoCollision {
		return newHead, collision
	}

	// Prepend the new head
	gs.Snake = append(gs.Snake, Cell{})
	copy(gs.Snake[1:], gs.Snake)
	gs.Snake[0] = newHead
	return newHead, NoCollision
}

// dropTail removes the last segment
func (gs *GameState) dropTail() {
	gs.Snake = gs.Snake[:len(gs.Snake)-1]
}

// FreeCells lists every cell not covered by the snake, row by row
func (gs *GameState) FreeCells() []Cell {
	occupied := make(map[Cell]struct{}, len(gs.Snake))
	for _, segment := range gs.Snake {
		occupied[segment] = struct{}{}
	}

	free := make([]Cell, 0, gs.GridCells*gs.GridCells-len(occupied))
	for y := 0; y < gs.GridCells; y++ {
		for x := 0; x < gs.GridCells; x++ {
			c := Cell{X: x, Y: y}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	return free
}

// Clone returns a deep copy safe to hand to renderers on other goroutines
func (gs *GameState) Clone() *GameState {
	clone := *gs
	clone.Snake = make([]Cell, len(gs.Snake))
	copy(clone.Snake, gs.Snake)
	return &clone
}
