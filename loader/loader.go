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

// Package loader reads Befunge source files off disk and into a
// vm.Playfield: shebang stripping, line-ending normalization, and the
// line/column-carrying LoadError reported when a file can't be read at
// all.
package loader

import (
	"fmt"
	"os"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"

	"github.com/wpfunge/wpfunge/vm"
)

// LoadError collects the problems encountered while loading a source file.
// Its shape -- a slice of (position, message) pairs joined with newlines --
// is the same one the assembler uses for its own error list.
type LoadError []struct {
	Pos scanner.Position
	Msg string
}

func (e LoadError) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

// Load reads the file at path, strips a leading shebang line if present,
// and inserts the remaining text into field at (0, 0). It returns the
// width and height of the inserted block.
func Load(path string, field *vm.Playfield) (width, height vm.Cell, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, LoadError{{
			Pos: scanner.Position{Filename: path},
			Msg: errors.Wrap(err, "read failed").Error(),
		}}
	}
	text := stripShebang(string(data))
	w, h := field.InsertBlock(text, 0, 0)
	return w, h, nil
}

// LoadString inserts text directly into field at (0, 0), after stripping a
// leading shebang line. It never fails; it exists for callers (tests, the
// debugger) that already have source text in memory.
func LoadString(text string, field *vm.Playfield) (width, height vm.Cell) {
	return field.InsertBlock(stripShebang(text), 0, 0)
}

// stripShebang removes a leading shebang line so a source file can be
// invoked directly from a shell without the interpreter trying to execute
// the shebang as playfield content. Only the two documented invocations are
// recognized; anything else starting with "#!" is ordinary source (`#`
// trampolines over `!` logical-not is a plausible golfed opener).
func stripShebang(text string) string {
	if !strings.HasPrefix(text, "#!/usr/bin/env befunge") && !strings.HasPrefix(text, "#!/usr/bin/env -S befunge") {
		return text
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return ""
}
