package maze

// Cell represents a single cell in a maze grid.
// Walls are removed in matched pairs between neighbours, never one side alone.
type Cell struct {
	TopWall    bool `json:"top"`    // TopWall indicates whether there is a wall on the top side of the cell.
	BottomWall bool `json:"bottom"` // BottomWall indicates whether there is a wall on the bottom side of the cell.
	LeftWall   bool `json:"left"`   // LeftWall indicates whether there is a wall on the left side of the cell.
	RightWall  bool `json:"right"`  // RightWall indicates whether there is a wall on the right side of the cell.
	Visited    bool `json:"-"`      // Visited is only meaningful while the generator is carving.
}

// closedCell returns a cell with all four walls present and not yet visited.
func closedCell() Cell {
	return Cell{
		TopWall:    true,
		BottomWall: true,
		LeftWall:   true,
		RightWall:  true,
	}
}

// HasWall reports whether the side of the cell facing d is walled.
func (c *Cell) HasWall(d Direction) bool {
	switch d {
	case Up:
		return c.TopWall
	case Right:
		return c.RightWall
	case Down:
		return c.BottomWall
	case Left:
		return c.LeftWall
	default:
		return true
	}
}

// removeWall opens the side of the cell facing d.
func (c *Cell) removeWall(d Direction) {
	switch d {
	case Up:
		c.TopWall = false
	case Right:
		c.RightWall = false
	case Down:
		c.BottomWall = false
	case Left:
		c.LeftWall = false
	}
}

// Position is a cell coordinate. X grows to the right, Y grows downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}
