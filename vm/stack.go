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

// ValueStack is a LIFO of Cells. Popping an empty stack yields 0 and leaves
// the stack empty; there is no underflow error.
type ValueStack struct {
	v []Cell
}

// Len returns the number of values currently on the stack.
func (s *ValueStack) Len() int {
	return len(s.v)
}

// Push appends a value to the top of the stack.
func (s *ValueStack) Push(n Cell) {
	s.v = append(s.v, n)
}

// Pop removes and returns the top value, or 0 if the stack is empty.
func (s *ValueStack) Pop() Cell {
	l := len(s.v)
	if l == 0 {
		return 0
	}
	n := s.v[l-1]
	s.v = s.v[:l-1]
	return n
}

// PopPair pops b then a (b was pushed last) and returns them as (a, b), so
// that callers implementing a non-commutative binary op of the form
// "a op b" can read the result left to right.
func (s *ValueStack) PopPair() (a, b Cell) {
	b = s.Pop()
	a = s.Pop()
	return a, b
}

// Peek returns the top value without removing it, or 0 if the stack is
// empty.
func (s *ValueStack) Peek() Cell {
	l := len(s.v)
	if l == 0 {
		return 0
	}
	return s.v[l-1]
}

// SwapTopTwo exchanges the top two values. Missing operands read as 0:
// swapping on a stack of length 0 or 1 pads with zeros as needed.
func (s *ValueStack) SwapTopTwo() {
	a := s.Pop()
	b := s.Pop()
	s.Push(a)
	s.Push(b)
}

// DuplicateTop pushes a copy of the top value (0 if the stack is empty).
func (s *ValueStack) DuplicateTop() {
	s.Push(s.Peek())
}

// Clear empties the stack.
func (s *ValueStack) Clear() {
	s.v = s.v[:0]
}

// transfer pushes |n| zeros onto dst (n < 0), or moves the top n values
// from src onto dst in their original bottom-to-top order (n >= 0).
// It is the shared primitive behind the `{`/`}`/`u` stack-of-stacks
// transfer operators.
func transfer(dst, src *ValueStack, n Cell) {
	if n < 0 {
		for k := Cell(0); k < -n; k++ {
			dst.Push(0)
		}
		return
	}
	buf := make([]Cell, n)
	for k := Cell(0); k < n; k++ {
		buf[n-1-k] = src.Pop()
	}
	for _, v := range buf {
		dst.Push(v)
	}
}

// Values returns the stack contents, bottom to top. The returned slice
// aliases the stack's backing array and must not be retained across further
// mutation.
func (s *ValueStack) Values() []Cell {
	return s.v
}
