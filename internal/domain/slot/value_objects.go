package slot

import "errors"

var (
	ErrInvalidPosition = errors.New("row and column must be positive")
	ErrInvalidStatus   = errors.New("invalid slot status")
)

// Position identifies a physical parking space by (row, column).
// The pair is globally unique.
type Position struct {
	row int
	col int
}

func NewPosition(row, col int) (Position, error) {
	if row <= 0 || col <= 0 {
		return Position{}, ErrInvalidPosition
	}
	return Position{row: row, col: col}, nil
}

func (p Position) Row() int {
	return p.row
}

func (p Position) Col() int {
	return p.col
}
