// This file is part of wpfunge - https://github.com/wpfunge/wpfunge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "strings"

// b93 dimensions, fixed.
const (
	b93Width  = 80
	b93Height = 25
)

// point is an (x, y) playfield coordinate.
type point struct {
	X, Y Cell
}

// Playfield is the 2D program store: a sparse mapping from coordinates to
// cells, plus extent bookkeeping. In B93 mode the extent is pinned to the
// 80x25 torus and writes/moves wrap modulo those dimensions. In B98 mode
// the extent is the tight bounding box of every written cell and grows
// monotonically; it never shrinks.
type Playfield struct {
	dialect Dialect
	cells   map[point]Cell
	xmin    Cell
	xmax    Cell
	ymin    Cell
	ymax    Cell
}

// NewPlayfield returns an empty Playfield for the given dialect. In B93
// mode the extent is immediately fixed at 80x25.
func NewPlayfield(d Dialect) *Playfield {
	f := &Playfield{dialect: d, cells: make(map[point]Cell)}
	if d == B93 {
		f.xmax, f.ymax = b93Width, b93Height
	}
	return f
}

// Extent returns the bounding box [xmin, xmax) x [ymin, ymax).
func (f *Playfield) Extent() (xmin, xmax, ymin, ymax Cell) {
	return f.xmin, f.xmax, f.ymin, f.ymax
}

func (f *Playfield) growExtent(x, y Cell) {
	if f.dialect == B93 {
		return
	}
	if f.xmin == f.xmax && f.ymin == f.ymax && len(f.cells) == 0 {
		f.xmin, f.xmax, f.ymin, f.ymax = x, x+1, y, y+1
		return
	}
	if x < f.xmin {
		f.xmin = x
	}
	if x >= f.xmax {
		f.xmax = x + 1
	}
	if y < f.ymin {
		f.ymin = y
	}
	if y >= f.ymax {
		f.ymax = y + 1
	}
}

func (f *Playfield) wrapCoord(x, y Cell) (Cell, Cell) {
	if f.dialect != B93 {
		return x, y
	}
	x %= b93Width
	if x < 0 {
		x += b93Width
	}
	y %= b93Height
	if y < 0 {
		y += b93Height
	}
	return x, y
}

// Get returns the cell at (x, y), or the space code point if unwritten.
func (f *Playfield) Get(x, y Cell) Cell {
	x, y = f.wrapCoord(x, y)
	if c, ok := f.cells[point{x, y}]; ok {
		return c
	}
	return spaceCell
}

// Set writes a cell at (x, y), growing the extent as needed. In B93 mode
// the coordinate wraps modulo (80, 25) first.
func (f *Playfield) Set(x, y, c Cell) {
	x, y = f.wrapCoord(x, y)
	f.growExtent(x, y)
	if c == spaceCell {
		// storing a space is observationally identical to leaving the cell
		// unwritten; dropping it keeps the sparse map from growing forever
		// under programs that scribble spaces over their own source.
		delete(f.cells, point{x, y})
		return
	}
	f.cells[point{x, y}] = c
}

// InsertBlock writes text as a rectangle with its top-left corner at
// (x0, y0). Lines are split on '\n'; '\r' immediately before a '\n' is
// dropped. Cells within the rectangle that correspond to a shorter line are
// left untouched (not blanked).
func (f *Playfield) InsertBlock(text string, x0, y0 Cell) (width, height Cell) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	height = Cell(len(lines))
	for row, line := range lines {
		runes := []rune(line)
		if Cell(len(runes)) > width {
			width = Cell(len(runes))
		}
		for col, r := range runes {
			f.Set(x0+Cell(col), y0+Cell(row), Cell(r))
		}
	}
	return width, height
}

// Render returns a textual dump of the extent rectangle for the debugger,
// one line per row, non-printable cells shown as the generic substitute
// character 0xA4.
func (f *Playfield) Render() string {
	var b strings.Builder
	for y := f.ymin; y < f.ymax; y++ {
		for x := f.xmin; x < f.xmax; x++ {
			c := f.Get(x, y)
			if c >= 0x20 && c < 0x7f {
				b.WriteRune(rune(c))
			} else {
				b.WriteRune(nonPrintableSubstitute)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// contains reports whether (x, y) lies within the current extent.
func (f *Playfield) contains(x, y Cell) bool {
	return x >= f.xmin && x < f.xmax && y >= f.ymin && y < f.ymax
}

// wrap implements Lahey-space wrapping: starting from a point already
// outside the extent, step backward along -delta until leaving the extent
// on the far side, then take one step forward along delta. This works for
// any delta magnitude and any extent, including deltas set by `x` with
// |delta| > 1.
func (f *Playfield) wrap(p point, delta point) point {
	if delta.X == 0 && delta.Y == 0 {
		return p
	}
	for {
		p.X -= delta.X
		p.Y -= delta.Y
		if !f.contains(p.X, p.Y) {
			break
		}
	}
	return point{p.X + delta.X, p.Y + delta.Y}
}
