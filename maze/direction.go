package maze

// Direction is one of the four axis-aligned unit moves.
type Direction int

// The order matters: the generator permutes this list.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in canonical order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Delta returns the (dx, dy) offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

// DirectionOf maps a unit vector to its direction. Diagonal, zero and
// longer vectors are rejected.
func DirectionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return Up, true
	case dx == 1 && dy == 0:
		return Right, true
	case dx == 0 && dy == 1:
		return Down, true
	case dx == -1 && dy == 0:
		return Left, true
	}
	return 0, false
}
