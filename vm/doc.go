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

// Package vm implements the Befunge-93 and Befunge-98 interpreter core:
// the playfield, the stack-of-stacks, one or more instruction pointers, and
// the per-tick scheduler that advances them.
//
// Dialect selection (Befunge-93's fixed 80x25 torus vs. Befunge-98's
// unbounded sparse playfield with concurrent IPs) is a property of the
// Playfield, not of the instruction set: both dialects run the same
// dispatch switch in dispatch.go, with the few behavioral differences
// (movement wrap, line comments, string-mode space handling) gated on the
// playfield's own dialect field. Interpreter.Dialect mirrors it for callers
// that don't otherwise hold the Playfield.
//
// The main purpose of this implementation is to stay readable rather than
// fast: dispatch is a direct-threaded switch on the opcode rune, with no
// bytecode compilation step. A program that needs to run for a very long
// time should not reach for this package.
//
// One deliberate departure from the Befunge-98 reference behavior: `i`
// never reflects on file-read failure, it pushes (x0, y0, 0, 0) instead.
package vm
