package match3

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Scoring constants: a run of MinRun scores BasePoints, each extra tile adds
// BonusPerTile.
const (
	BasePoints   = 10
	BonusPerTile = 5
)

// Axis is the direction of a run.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Match is a contiguous run of at least MinRun identical tiles along one row
// or column. Cells are ordered left to right or top to bottom.
type Match struct {
	Tile  Tile
	Axis  Axis
	Cells []Pos
}

// Len returns the number of cells in the run.
func (m Match) Len() int {
	return len(m.Cells)
}

// Points returns the score for this run.
func (m Match) Points() int {
	return RunPoints(len(m.Cells))
}

// RunPoints returns the score for a run of the given length:
// 10 + 5*(length-3).
func RunPoints(length int) int {
	if length < MinRun {
		return 0
	}
	return BasePoints + BonusPerTile*(length-MinRun)
}

// RoundPoints sums the points of every match. Overlapping row and column
// matches are scored independently.
func RoundPoints(matches []Match) int {
	total := 0
	for _, m := range matches {
		total += m.Points()
	}
	return total
}

// FindAllMatches scans every row left to right, then every column top to
// bottom, and returns one Match per maximal run. A cell that belongs to both a
// horizontal and a vertical run appears in both matches. Empty never matches.
func FindAllMatches(b *Board) []Match {
	var matches []Match
	for r := 0; r < b.rows; r++ {
		matches = scanLine(b, matches, Pos{r, 0}, Pos{0, 1}, b.cols, Horizontal)
	}
	for c := 0; c < b.cols; c++ {
		matches = scanLine(b, matches, Pos{0, c}, Pos{1, 0}, b.rows, Vertical)
	}
	return matches
}

// HasMatch reports whether the board contains at least one run.
func HasMatch(b *Board) bool {
	return len(FindAllMatches(b)) > 0
}

// scanLine walks n cells from start in steps of step, appending runs to dst.
func scanLine(b *Board, dst []Match, start, step Pos, n int, axis Axis) []Match {
	at := func(i int) Tile {
		return b.cells[(start.Row+step.Row*i)*b.cols+start.Col+step.Col*i]
	}

	for i := 0; i+MinRun <= n; {
		t := at(i)
		if t == Empty || at(i+1) != t || at(i+2) != t {
			i++
			continue
		}

		end := i + MinRun
		for end < n && at(end) == t {
			end++
		}

		m := Match{Tile: t, Axis: axis, Cells: make([]Pos, 0, end-i)}
		for k := i; k < end; k++ {
			m.Cells = append(m.Cells, Pos{start.Row + step.Row*k, start.Col + step.Col*k})
		}
		dst = append(dst, m)
		i = end
	}
	return dst
}

// distinctCells returns every coordinate of the matches once, in first-seen
// order.
func distinctCells(matches []Match) []Pos {
	seen := make(map[Pos]struct{})
	var cells []Pos
	for _, m := range matches {
		for _, p := range m.Cells {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			cells = append(cells, p)
		}
	}
	return cells
}
