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

// Package hostenv is a thin seam between the vm package's `y`
// (system-information) instruction and the process's actual environment,
// argv, and wall clock. Tests inject a Fixed() implementation so that `y`'s
// output is deterministic; cmd/wpfunge wires OS() at startup.
package hostenv

import (
	"os"
	"time"
)

// Services is everything the `y` instruction needs from the outside world.
type Services interface {
	// Argv returns the program name followed by its arguments, in the
	// order they should appear in system-info field 19.
	Argv() []string
	// Environ returns "KEY=VALUE" pairs for system-info field 20.
	Environ() []string
	// Now returns the current time for system-info fields 15 and 16.
	Now() time.Time
	// PathSeparator returns the host's path separator code point for
	// system-info field 6.
	PathSeparator() rune
}

type osServices struct {
	argv []string
}

func (s osServices) Argv() []string         { return s.argv }
func (s osServices) Environ() []string      { return os.Environ() }
func (s osServices) Now() time.Time         { return time.Now() }
func (s osServices) PathSeparator() rune    { return rune(os.PathSeparator) }

// OS returns a Services backed by the real process environment. argv is the
// program name followed by its arguments, exactly as the front-end received
// them.
func OS(argv []string) Services {
	return osServices{argv: argv}
}

// Fixed returns a Services with deterministic, caller-supplied values, for
// tests that assert on `y`'s exact output.
func Fixed(argv, environ []string, now time.Time, sep rune) Services {
	return fixedServices{argv: argv, environ: environ, now: now, sep: sep}
}

type fixedServices struct {
	argv    []string
	environ []string
	now     time.Time
	sep     rune
}

func (s fixedServices) Argv() []string      { return s.argv }
func (s fixedServices) Environ() []string   { return s.environ }
func (s fixedServices) Now() time.Time      { return s.now }
func (s fixedServices) PathSeparator() rune { return s.sep }
