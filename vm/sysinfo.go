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

// handprint is this interpreter's self-identifier, returned by `y` field 3.
// It doubles as the module's name.
const handprint = "wpfunge"

// packLE packs s's bytes into a single Cell, first character as the least
// significant byte ("little-endian by byte", the `y` handprint field).
func packLE(s string) Cell {
	var v Cell
	for i := 0; i < len(s) && i < 8; i++ {
		v |= Cell(s[i]) << uint(8*i)
	}
	return v
}

// pushZString pushes s onto stk such that popping stk afterwards yields s's
// code points in order followed by a terminating 0 -- the layout expected
// of a "zero-terminated string" field in the `y` vector (argv/env fields).
func pushZString(stk *ValueStack, s string) {
	stk.Push(0)
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		stk.Push(Cell(runes[i]))
	}
}

// sysinfoField appends the Cells of system-info field n (1-indexed) to out,
// in push order (the field's own last component ends up on top once
// pushed).
func (in *Interpreter) sysinfoField(ip *IP, n int, out []Cell) []Cell {
	xmin, xmax, ymin, ymax := in.Field.Extent()
	now := in.Host.Now()
	switch n {
	case 1:
		return append(out, 15)
	case 2:
		return append(out, 0) // arbitrary-precision cells: no fixed byte width
	case 3:
		return append(out, packLE(handprint))
	case 4:
		return append(out, 1)
	case 5:
		return append(out, 1) // paradigm: 1 = system()
	case 6:
		return append(out, Cell(in.Host.PathSeparator()))
	case 7:
		return append(out, 2)
	case 8:
		return append(out, Cell(ip.ID))
	case 9:
		return append(out, 0)
	case 10:
		return append(out, ip.Pos.X, ip.Pos.Y)
	case 11:
		return append(out, ip.Delta.X, ip.Delta.Y)
	case 12:
		return append(out, ip.Offset.X, ip.Offset.Y)
	case 13:
		return append(out, xmin, ymin)
	case 14:
		return append(out, xmax-1, ymax-1)
	case 15:
		return append(out, Cell(now.Year()-1900)*65536+Cell(now.Month())*256+Cell(now.Day()))
	case 16:
		return append(out, Cell(now.Hour())*65536+Cell(now.Minute())*256+Cell(now.Second()))
	case 17:
		return append(out, Cell(ip.Stacks.Count()))
	case 18:
		sizes := ip.Stacks.Sizes() // TOSS-first
		for i := len(sizes) - 1; i >= 0; i-- {
			out = append(out, sizes[i])
		}
		return out
	case 19:
		tmp := &ValueStack{}
		argv := in.Host.Argv()
		for i := len(argv) - 1; i >= 0; i-- {
			pushZString(tmp, argv[i])
		}
		return append(out, tmp.Values()...)
	case 20:
		tmp := &ValueStack{}
		env := in.Host.Environ()
		for i := len(env) - 1; i >= 0; i-- {
			pushZString(tmp, env[i])
		}
		tmp.Push(0)
		return append(out, tmp.Values()...)
	default:
		return out
	}
}

// sysinfoVector implements `y`: n<=0 pushes all 20 fields in order (field
// 20's last component ends on top); n in [1,20] pushes only that field;
// n>20 pushes the (n-20)-th TOSS cell counting from the top (or 0 if out of
// range).
func (in *Interpreter) sysinfoVector(ip *IP, n Cell) {
	stk := ip.Stacks.TOSS()
	if n > 20 {
		vals := stk.Values()
		idx := len(vals) - int(n-20)
		if idx < 0 || idx >= len(vals) {
			stk.Push(0)
			return
		}
		stk.Push(vals[idx])
		return
	}
	if n >= 1 && n <= 20 {
		out := in.sysinfoField(ip, int(n), nil)
		for _, v := range out {
			stk.Push(v)
		}
		return
	}
	var out []Cell
	for f := 1; f <= 20; f++ {
		out = in.sysinfoField(ip, f, out)
	}
	for _, v := range out {
		stk.Push(v)
	}
}
