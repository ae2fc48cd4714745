// Package match3 implements the tile-matching engine: the board, run
// detection, cascade resolution, swap validation and the timed session that
// ties them together. It has no dependencies outside the standard library so
// that game logic stays pure and testable; presentation layers drive it
// through Session and observe it through events.
package match3

import (
	"fmt"
	"math/rand"
	"strings"
)

// Tile is a tile type in [0, kinds), or Empty.
type Tile int8

// Empty marks a vacated cell.
const Empty Tile = -1

// Pos is a board coordinate. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is shorthand for Pos{Row: row, Col: col}.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Fall records a tile moved by gravity.
type Fall struct {
	From Pos
	To   Pos
}

// Board is a fixed-size grid of tiles. Dimensions never change after
// construction. Accessors panic with *OutOfBoundsError on invalid coordinates.
type Board struct {
	rows  int
	cols  int
	cells []Tile
}

// NewBoard creates a rows x cols board with every cell Empty.
func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("match3: invalid board size %dx%d", rows, cols))
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Tile, rows*cols),
	}
	for i := range b.cells {
		b.cells[i] = Empty
	}
	return b
}

// Initialize creates a board filled with uniformly random tiles in [0, kinds).
func Initialize(rows, cols, kinds int, rng *rand.Rand) *Board {
	if kinds < 1 {
		panic(fmt.Sprintf("match3: invalid tile kinds %d", kinds))
	}
	b := NewBoard(rows, cols)
	for i := range b.cells {
		b.cells[i] = Tile(rng.Intn(kinds))
	}
	return b
}

// FromRows builds a board from a row-major literal. All rows must have the
// same length.
func FromRows(rows [][]Tile) *Board {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("match3: empty board literal")
	}
	b := NewBoard(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != b.cols {
			panic(fmt.Sprintf("match3: ragged board literal at row %d", r))
		}
		copy(b.cells[r*b.cols:(r+1)*b.cols], row)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether p addresses a cell of this board.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

func (b *Board) index(p Pos) int {
	if !b.InBounds(p) {
		panic(&OutOfBoundsError{Pos: p, Rows: b.rows, Cols: b.cols})
	}
	return p.Row*b.cols + p.Col
}

// Get returns the tile at (row, col).
func (b *Board) Get(row, col int) Tile {
	return b.cells[b.index(Pos{row, col})]
}

// At returns the tile at p.
func (b *Board) At(p Pos) Tile {
	return b.cells[b.index(p)]
}

// Set stores t at (row, col).
func (b *Board) Set(row, col int, t Tile) {
	b.cells[b.index(Pos{row, col})] = t
}

// SetAt stores t at p.
func (b *Board) SetAt(p Pos, t Tile) {
	b.cells[b.index(p)] = t
}

// Swap exchanges two cells. Adjacency is the caller's concern.
func (b *Board) Swap(a, c Pos) {
	i, j := b.index(a), b.index(c)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// ApplyGravity settles every column: non-empty tiles drop to the bottom
// keeping their relative order and the vacated top cells become Empty.
// Returns the tiles that moved, column by column, bottom first.
func (b *Board) ApplyGravity() []Fall {
	var falls []Fall
	for c := 0; c < b.cols; c++ {
		write := b.rows - 1
		for r := b.rows - 1; r >= 0; r-- {
			t := b.cells[r*b.cols+c]
			if t == Empty {
				continue
			}
			if write != r {
				b.cells[write*b.cols+c] = t
				b.cells[r*b.cols+c] = Empty
				falls = append(falls, Fall{From: Pos{r, c}, To: Pos{write, c}})
			}
			write--
		}
	}
	return falls
}

// FillEmpty assigns a random tile in [0, kinds) to every Empty cell and
// returns the filled positions in row-major order.
func (b *Board) FillEmpty(kinds int, rng *rand.Rand) []Pos {
	var filled []Pos
	for i, t := range b.cells {
		if t != Empty {
			continue
		}
		b.cells[i] = Tile(rng.Intn(kinds))
		filled = append(filled, Pos{i / b.cols, i % b.cols})
	}
	return filled
}

// Randomize assigns a fresh random tile to each listed cell.
func (b *Board) Randomize(cells []Pos, kinds int, rng *rand.Rand) {
	for _, p := range cells {
		b.cells[b.index(p)] = Tile(rng.Intn(kinds))
	}
}

// CountEmpty returns the number of Empty cells.
func (b *Board) CountEmpty() int {
	n := 0
	for _, t := range b.cells {
		if t == Empty {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, cols: b.cols, cells: make([]Tile, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether both boards have the same size and cells.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Grid returns the cells as a fresh row-major slice of rows.
func (b *Board) Grid() [][]Tile {
	g := make([][]Tile, b.rows)
	for r := range g {
		g[r] = make([]Tile, b.cols)
		copy(g[r], b.cells[r*b.cols:(r+1)*b.cols])
	}
	return g
}

// String dumps the board one row per line, "." for Empty.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			t := b.cells[r*b.cols+c]
			if t == Empty {
				sb.WriteByte('.')
			} else {
				fmt.Fprintf(&sb, "%d", t)
			}
		}
	}
	return sb.String()
}
