package engine

import (
	"fmt"
	"strings"
)

// Directions lists the four movement directions in up, down, left, right order
var Directions = []Direction{Up, Down, Left, Right}

// Opposite returns the anti-parallel direction
func (d Direction) Opposite() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

// Valid reports whether d is one of the four unit directions
func (d Direction) Valid() bool {
	for _, dir := range Directions {
		if d == dir {
			return true
		}
	}
	return false
}

// IsOpposite reports whether other points exactly the other way
func (d Direction) IsOpposite(other Direction) bool {
	return d.X == -other.X && d.Y == -other.Y
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

// ParseDirection converts "up", "down", "left" or "right" (any case) to a Direction
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Direction{}, fmt.Errorf("invalid direction %q", name)
}

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to Cell) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// InitialSnake builds the starting body: length cells on row, head rightmost at x = length-1
func InitialSnake(length, row int) []Cell {
	snake := make([]Cell, 0, length)
	for x := length - 1; x >= 0; x-- {
		snake = append(snake, Cell{X: x, Y: row})
	}
	return snake
}
