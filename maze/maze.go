/*
Package maze provides tools for creating and querying rectangular perfect mazes.

It defines the `Maze` structure, a fixed-size grid of `Cell` objects carrying four wall flags.
Mazes are carved with a randomized depth-first backtracker driven by an explicit stack, so the
passages always form a spanning tree: exactly one simple path joins any two cells.

The package also offers wall queries for movement validation, regeneration from an arbitrary
cell, flood-fill reachability and an ASCII visualization of the maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxDimension bounds each side of a maze.
	MaxDimension = 256
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position is out of the maze")
)

// Maze is a rectangular grid of cells. Its dimensions never change after New.
type Maze struct {
	width  int
	height int
	grid   [][]Cell // grid[y][x]
	rng    Rand
}

// DimensionsFor derives the grid size from a display size and a cell size in pixels.
func DimensionsFor(screenWidth, screenHeight, cellSize int) (int, int, error) {
	if cellSize <= 0 || screenWidth < cellSize || screenHeight < cellSize {
		return 0, 0, ErrInvalidDimensions
	}
	return screenWidth / cellSize, screenHeight / cellSize, nil
}

// New initializes a maze of the given dimensions and carves it starting from (0, 0).
func New(width, height int, rng Rand) (*Maze, error) {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if rng == nil {
		return nil, errors.New("maze needs a random source")
	}

	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
	}

	m := &Maze{
		width:  width,
		height: height,
		grid:   grid,
		rng:    rng,
	}
	m.reset()
	m.carve(Position{})
	return m, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// InBound reports whether p lies inside the grid.
func (m *Maze) InBound(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// HasWall reports whether moving from p in direction d is blocked.
// Positions outside the grid are treated as solid.
func (m *Maze) HasWall(p Position, d Direction) bool {
	if !m.InBound(p) {
		return true
	}
	return m.grid[p.Y][p.X].HasWall(d)
}

// Cell returns a copy of the cell at p. The zero Cell is returned for positions outside the grid.
func (m *Maze) Cell(p Position) Cell {
	if !m.InBound(p) {
		return Cell{}
	}
	return m.grid[p.Y][p.X]
}

// Walls returns a deep copy of the grid, indexed [y][x].
func (m *Maze) Walls() [][]Cell {
	out := make([][]Cell, m.height)
	for y := range m.grid {
		out[y] = make([]Cell, m.width)
		copy(out[y], m.grid[y])
	}
	return out
}

// Regenerate rebuilds the whole maze, carving from start.
func (m *Maze) Regenerate(start Position) error {
	if !m.InBound(start) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, start.X, start.Y)
	}
	m.reset()
	m.carve(start)
	return nil
}

// reset closes every wall and clears the visited flags.
func (m *Maze) reset() {
	for y := range m.grid {
		for x := range m.grid[y] {
			m.grid[y][x] = closedCell()
		}
	}
}

// frame is one level of the carving walk: a cell and the order its directions are tried in.
type frame struct {
	pos  Position
	dirs [4]Direction
	next int
}

// newFrame shuffles the four directions with an in-place Fisher-Yates pass.
func (m *Maze) newFrame(p Position) frame {
	f := frame{pos: p, dirs: Directions}
	for i := 0; i < len(f.dirs); i++ {
		j := m.rng.IntRange(i, len(f.dirs)-1)
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	}
	return f
}

// carve performs the randomized depth-first walk from start.
// Each frame descends into at most one neighbour per step and resumes
// its remaining directions once the descent backtracks.
func (m *Maze) carve(start Position) {
	stack := make([]frame, 0, m.width*m.height)
	m.grid[start.Y][start.X].Visited = true
	stack = append(stack, m.newFrame(start))

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		descended := false

		for top.next < len(top.dirs) {
			d := top.dirs[top.next]
			top.next++

			n := top.pos.Step(d)
			if !m.InBound(n) || m.grid[n.Y][n.X].Visited {
				continue
			}

			m.openWall(top.pos, d)
			m.grid[n.Y][n.X].Visited = true
			stack = append(stack, m.newFrame(n))
			descended = true
			break
		}

		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
}

// openWall removes the wall pair between p and its neighbour in direction d.
func (m *Maze) openWall(p Position, d Direction) {
	n := p.Step(d)
	m.grid[p.Y][p.X].removeWall(d)
	m.grid[n.Y][n.X].removeWall(d.Opposite())
}

// Passages counts the removed wall pairs. A perfect maze has width*height-1.
func (m *Maze) Passages() int {
	count := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := m.grid[y][x]
			if x+1 < m.width && !c.RightWall {
				count++
			}
			if y+1 < m.height && !c.BottomWall {
				count++
			}
		}
	}
	return count
}

// Reachable returns how many cells can be reached from start through open walls.
func (m *Maze) Reachable(start Position) int {
	if !m.InBound(start) {
		return 0
	}

	visited := make([][]bool, m.height)
	for y := range visited {
		visited[y] = make([]bool, m.width)
	}

	stack := []Position{start}
	visited[start.Y][start.X] = true
	count := 0

	for len(stack) > 0 {
		cell := pop(&stack)
		count++

		for _, d := range Directions {
			if m.grid[cell.Y][cell.X].HasWall(d) {
				continue
			}
			n := cell.Step(d)
			if m.InBound(n) && !visited[n.Y][n.X] {
				visited[n.Y][n.X] = true
				stack = append(stack, n)
			}
		}
	}

	return count
}

// pop removes and returns the last element of a stack of positions.
func pop(s *[]Position) Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return m.Render(nil)
}

// Render draws the maze as ASCII, placing a marker rune in the cells listed in marks.
func (m *Maze) Render(marks map[Position]rune) string {
	return RenderWalls(m.grid, marks)
}

// RenderWalls draws a wall grid indexed [y][x], such as the one returned by Walls.
func RenderWalls(walls [][]Cell, marks map[Position]rune) string {
	if len(walls) == 0 {
		return ""
	}
	width := len(walls[0])

	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", width) + "\n")

	for y, row := range walls {
		b.WriteString("|")
		for x, cell := range row {
			if r, ok := marks[Position{X: x, Y: y}]; ok {
				b.WriteString(" " + string(r) + " ")
			} else {
				b.WriteString("   ")
			}

			if cell.RightWall {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")

		b.WriteString("+")
		for _, cell := range row {
			if cell.BottomWall {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
