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

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/wpfunge/wpfunge/internal/hostenv"
)

// Option configures an Interpreter at construction time, in the same
// functional-options style as the teacher's vm.Option.
type Option func(*Interpreter) error

// WithInput sets the input adapter used by `&` and `~`.
func WithInput(in InputAdapter) Option {
	return func(i *Interpreter) error { i.Input = in; return nil }
}

// WithOutput sets the output sink written to by `.` and `,`.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) error { i.Output = hostenv.NewErrWriter(w); return nil }
}

// WithHost sets the host-services implementation consulted by `y`.
func WithHost(h hostenv.Services) Option {
	return func(i *Interpreter) error { i.Host = h; return nil }
}

// WithRandSource sets the random source consulted by `?`.
func WithRandSource(src rand.Source) Option {
	return func(i *Interpreter) error { i.rng = rand.New(src); return nil }
}

// Interpreter owns the playfield, the ordered list of live IPs (oldest
// first), the input adapter, the output sink, the step counter, and the
// termination flag. It runs the program seeded into its Playfield one tick
// at a time.
type Interpreter struct {
	Field  *Playfield
	Dialect Dialect
	Input  InputAdapter
	Output *hostenv.ErrWriter
	Host   hostenv.Services

	ips        []*IP
	nextID     int64
	stepCount  int64
	terminated bool
	aborted    bool
	exitStatus Cell
	rng        *rand.Rand
}

// NewInterpreter returns an Interpreter seeded with one IP at (0,0) with
// delta (1,0). field's dialect determines the
// Interpreter's dialect.
func NewInterpreter(field *Playfield, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		Field:   field,
		Dialect: field.dialect,
		Input:   NewBufferedInput(nil),
		Output:  hostenv.NewErrWriter(os.Stdout),
		Host:    hostenv.OS(os.Args),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	in.ips = []*IP{newIP(0, 0, in.spawnID())}
	return in, nil
}

func (in *Interpreter) spawnID() int64 {
	id := in.nextID
	in.nextID++
	return id
}

// IPs returns a snapshot of the currently live instruction pointers,
// oldest first -- the debugger surface's ips.snapshot().
func (in *Interpreter) IPs() []*IP {
	out := make([]*IP, len(in.ips))
	copy(out, in.ips)
	return out
}

// StepCount returns the number of ticks executed so far.
func (in *Interpreter) StepCount() int64 { return in.stepCount }

// Terminated reports whether the interpreter has stopped: either every IP
// ran `@`, or `q` was executed.
func (in *Interpreter) Terminated() bool { return in.terminated }

// ExitStatus returns the value popped by `q`, or 0 if the program ended
// without using `q`.
func (in *Interpreter) ExitStatus() Cell { return in.exitStatus }

// Tick executes exactly one dispatch on every currently live IP, in
// insertion order. It returns false once the
// interpreter has terminated.
func (in *Interpreter) Tick() bool {
	if in.terminated {
		return false
	}
	in.stepCount++
	current := in.ips
	next := make([]*IP, 0, len(current))
	for _, ip := range current {
		succ := in.stepIP(ip)
		if in.aborted {
			next = nil
			break
		}
		next = append(next, succ...)
	}
	in.ips = next
	if len(in.ips) == 0 {
		in.terminated = true
	}
	return !in.terminated
}

// Run ticks the interpreter until it terminates and returns the exit
// status (0 unless `q` was used).
func (in *Interpreter) Run() Cell {
	for in.Tick() {
	}
	return in.exitStatus
}
