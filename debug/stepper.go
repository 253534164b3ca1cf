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

// Package debug provides the adapter surface an interactive front end
// drives: single-stepping, state snapshots, and a captured output stream,
// without assuming a TTY is attached.
package debug

import (
	"bytes"

	"github.com/wpfunge/wpfunge/vm"
)

// IPSnapshot is one instruction pointer's position, exposed to a debugger
// front end without handing out the live *vm.IP.
type IPSnapshot struct {
	ID   int64
	X, Y vm.Cell
}

// CallbackInput is a vm.InputAdapter that defers every read to a
// caller-supplied function, letting a debugger front end prompt its own
// UI for input instead of reading from a pipe.
type CallbackInput struct {
	Prompt func() (string, bool)
}

// ReadInt reads one line via Prompt and parses its first integer.
func (c CallbackInput) ReadInt() (vm.Cell, bool) {
	s, ok := c.Prompt()
	if !ok {
		return 0, false
	}
	return scanInt(s)
}

// ReadChar reads one line via Prompt and returns its first rune.
func (c CallbackInput) ReadChar() (vm.Cell, bool) {
	s, ok := c.Prompt()
	if !ok || len(s) == 0 {
		return 0, false
	}
	r := []rune(s)[0]
	return vm.Cell(r), true
}

// scanInt mirrors vm's own digit-run scan so CallbackInput's ReadInt
// behaves identically to the non-interactive adapters.
func scanInt(s string) (vm.Cell, bool) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] < '0' || runes[i] > '9' {
			continue
		}
		start := i
		if start > 0 && runes[start-1] == '-' {
			start--
		}
		j := i
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		neg := runes[start] == '-'
		k := start
		if neg {
			k++
		}
		var v int64
		for ; k < j; k++ {
			v = v*10 + int64(runes[k]-'0')
		}
		if neg {
			v = -v
		}
		return vm.Cell(v), true
	}
	return 0, false
}

// Stepper wraps an *vm.Interpreter with the snapshot/single-step surface a
// debugger front end needs, keeping its own buffered capture of the
// interpreter's output so OutputSnapshot can report everything written so
// far without the front end owning a terminal.
type Stepper struct {
	interp *vm.Interpreter
	out    *bytes.Buffer
}

// NewStepper builds a Stepper around a fresh Interpreter over field, using
// prompt (if non-nil) as the `&`/`~` input source instead of a fixed
// buffer.
func NewStepper(field *vm.Playfield, prompt func() (string, bool), opts ...vm.Option) (*Stepper, error) {
	buf := &bytes.Buffer{}
	allOpts := append([]vm.Option{vm.WithOutput(buf)}, opts...)
	if prompt != nil {
		allOpts = append(allOpts, vm.WithInput(CallbackInput{Prompt: prompt}))
	}
	interp, err := vm.NewInterpreter(field, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Stepper{interp: interp, out: buf}, nil
}

// RenderPlayfield returns the current extent of the playfield as text.
func (s *Stepper) RenderPlayfield() string {
	return s.interp.Field.Render()
}

// OutputSnapshot returns everything written to the program's output stream
// so far.
func (s *Stepper) OutputSnapshot() string {
	return s.out.String()
}

// IPsSnapshot returns the position of every currently live IP, oldest
// first.
func (s *Stepper) IPsSnapshot() []IPSnapshot {
	ips := s.interp.IPs()
	out := make([]IPSnapshot, len(ips))
	for i, ip := range ips {
		out[i] = IPSnapshot{ID: ip.ID, X: ip.Pos.X, Y: ip.Pos.Y}
	}
	return out
}

// StepCount returns the number of ticks executed so far.
func (s *Stepper) StepCount() int64 { return s.interp.StepCount() }

// Terminated reports whether the program has finished running.
func (s *Stepper) Terminated() bool { return s.interp.Terminated() }

// ExitStatus returns the status popped by `q`, or 0 if the program never
// used it.
func (s *Stepper) ExitStatus() vm.Cell { return s.interp.ExitStatus() }

// Step runs up to n ticks (one if n <= 0), stopping early if the program
// terminates.
func (s *Stepper) Step(n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if !s.interp.Tick() {
			return
		}
	}
}
