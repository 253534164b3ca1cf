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

// fingerprintID pops n, then pops n cells off stk to assemble a
// fingerprint id the way `(`/`)` expect: each
// popped cell is a byte of the id, most-recently-pushed byte most
// significant.
func fingerprintID(stk *ValueStack) Cell {
	n := stk.Pop()
	var id Cell
	for k := Cell(0); k < n; k++ {
		id = id<<8 | (stk.Pop() & 0xff)
	}
	return id
}

// loadFingerprint handles `(`: it reads and discards the requested
// fingerprint id and always reflects, since this implementation ships no
// concrete fingerprint.
func (ip *IP) loadFingerprint() {
	fingerprintID(ip.Stacks.TOSS())
	ip.reflect()
}

// unloadFingerprint handles `)`: reads and discards the id. Unlike `(` it
// does not reflect -- unloading a fingerprint that was never loaded is not
// an error, it's a no-op.
func (ip *IP) unloadFingerprint() {
	fingerprintID(ip.Stacks.TOSS())
}
