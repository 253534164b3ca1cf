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

// FingerprintOp is a fingerprint instruction handler. No concrete
// fingerprint ships with this implementation; the type
// exists so `(`/`)` have somewhere to register a handler if one is ever
// added.
type FingerprintOp func(ip *IP, interp *Interpreter) error

// IP is a single instruction pointer: its position, movement delta,
// storage offset (for `g`/`p`), owned stack-of-stacks, string-mode flag,
// and a run-unique id.
type IP struct {
	Pos          point
	Delta        point
	Offset       point
	Stacks       *StackStack
	StringMode   bool
	ID           int64
	Fingerprints map[rune]FingerprintOp

	// done is set by `@` to remove this IP from the interpreter's live list
	// at the end of the current dispatch.
	done bool
	// pendingIterations threads a `k` repeat count through IPs spawned by
	// `t` mid-iteration, so a split produced while iterating still
	// performs the remaining repeats.
	pendingIterations Cell
	pendingOpcode     rune
}

// newIP returns a freshly seeded IP: position (x0, y0), delta (1, 0), a
// single empty TOSS, and the given id.
func newIP(x0, y0 Cell, id int64) *IP {
	return &IP{
		Pos:    point{x0, y0},
		Delta:  point{1, 0},
		Stacks: NewStackStack(),
		ID:     id,
	}
}

// clone returns a deep copy of ip with a fresh id, used by `t`.
func (ip *IP) clone(id int64) *IP {
	c := *ip
	c.ID = id
	c.Stacks = ip.Stacks.Clone()
	if ip.Fingerprints != nil {
		c.Fingerprints = make(map[rune]FingerprintOp, len(ip.Fingerprints))
		for k, v := range ip.Fingerprints {
			c.Fingerprints[k] = v
		}
	}
	return &c
}

// reflect reverses the IP's delta, the universal "something went wrong,
// undo this instruction" response.
func (ip *IP) reflect() {
	ip.Delta.X, ip.Delta.Y = -ip.Delta.X, -ip.Delta.Y
}

// move computes the IP's next position, applying torus wrap in B93 mode or
// Lahey-space wrap in B98 mode.
func (ip *IP) move(f *Playfield) point {
	p := point{ip.Pos.X + ip.Delta.X, ip.Pos.Y + ip.Delta.Y}
	if f.dialect == B93 {
		x, y := f.wrapCoord(p.X, p.Y)
		return point{x, y}
	}
	if f.contains(p.X, p.Y) {
		return p
	}
	return f.wrap(p, ip.Delta)
}

// advance performs one move, then applies the dialect- and mode-specific
// skip policy:
//
//   - B93: no skip loop at all, in or out of string mode; every cell,
//     including a space, consumes exactly one tick.
//   - B98, not in string mode: the line-comment and space-skipping loop
//     (steps 1-4), parking the IP on the next live instruction.
//   - B98, in string mode: if the move lands on a run of spaces, push a
//     single 0x20 for the whole run and move past it; ';' is just string
//     data here, not a comment marker.
func (ip *IP) advance(f *Playfield) {
	ip.Pos = ip.move(f)
	ip.skip(f)
}

// skip applies the dialect- and mode-specific skip policy to the IP's
// current position without performing the leading move; advance() calls
// it right after its move.
func (ip *IP) skip(f *Playfield) {
	if f.dialect == B93 {
		return
	}
	if ip.StringMode {
		if f.Get(ip.Pos.X, ip.Pos.Y) == spaceCell {
			ip.Stacks.TOSS().Push(spaceCell)
			for f.Get(ip.Pos.X, ip.Pos.Y) == spaceCell {
				ip.Pos = ip.move(f)
			}
		}
		return
	}
	for {
		c := f.Get(ip.Pos.X, ip.Pos.Y)
		if c == ';' {
			// consume the comment body and its closing ';'
			ip.Pos = ip.move(f)
			for f.Get(ip.Pos.X, ip.Pos.Y) != ';' {
				ip.Pos = ip.move(f)
			}
			ip.Pos = ip.move(f)
			continue
		}
		if c == spaceCell {
			ip.Pos = ip.move(f)
			continue
		}
		return
	}
}
