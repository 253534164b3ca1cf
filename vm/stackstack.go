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

// StackStack is an ordered collection of ValueStacks. The last element is
// the TOSS (top of stack-stack); the one below it, when present, is the
// SOSS. It is never empty: a freshly constructed StackStack owns one empty
// TOSS.
type StackStack struct {
	s []*ValueStack
}

// NewStackStack returns a StackStack instantiated with a single empty TOSS.
func NewStackStack() *StackStack {
	return &StackStack{s: []*ValueStack{{}}}
}

// TOSS returns the top stack, creating an empty one first if the
// stack-stack is somehow empty (it never should be in normal operation).
func (ss *StackStack) TOSS() *ValueStack {
	if len(ss.s) == 0 {
		ss.s = append(ss.s, &ValueStack{})
	}
	return ss.s[len(ss.s)-1]
}

// SOSS returns the second-from-top stack, or nil if only one stack exists.
func (ss *StackStack) SOSS() *ValueStack {
	if len(ss.s) < 2 {
		return nil
	}
	return ss.s[len(ss.s)-2]
}

// PushNewStack pushes a fresh empty stack, which becomes the new TOSS.
func (ss *StackStack) PushNewStack() *ValueStack {
	v := &ValueStack{}
	ss.s = append(ss.s, v)
	return v
}

// PopStack removes and returns the current TOSS. Behavior is undefined if
// only one stack remains; callers (dispatch.go's `}` handler) must guard
// with Count() first.
func (ss *StackStack) PopStack() *ValueStack {
	l := len(ss.s)
	v := ss.s[l-1]
	ss.s = ss.s[:l-1]
	return v
}

// Count returns the number of stacks in the stack-stack.
func (ss *StackStack) Count() int {
	return len(ss.s)
}

// Sizes returns the size of each stack from TOSS down to the bottom
// (system-info field 18's required order).
func (ss *StackStack) Sizes() []Cell {
	out := make([]Cell, len(ss.s))
	for i, v := range ss.s {
		out[len(ss.s)-1-i] = Cell(v.Len())
	}
	return out
}

// Clone returns a deep copy of the stack-stack, used by `t` (split) so the
// clone's stacks are independent of the parent's.
func (ss *StackStack) Clone() *StackStack {
	out := &StackStack{s: make([]*ValueStack, len(ss.s))}
	for i, v := range ss.s {
		cp := make([]Cell, v.Len())
		copy(cp, v.Values())
		out.s[i] = &ValueStack{v: cp}
	}
	return out
}
