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

package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wpfunge/wpfunge/vm"
)

func TestLoadStripsShebang(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	w, h := LoadString("#!/usr/bin/env befunge\n12+.@", f)
	if w != 5 || h != 1 {
		t.Fatalf("LoadString() = (%d,%d), want (5,1)", w, h)
	}
	if f.Get(0, 0) != '1' {
		t.Fatalf("Get(0,0) = %q, want '1' (shebang line should be gone)", f.Get(0, 0))
	}
}

func TestLoadStripsEnvDashSShebang(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	w, h := LoadString("#!/usr/bin/env -S befunge\n12+.@", f)
	if w != 5 || h != 1 {
		t.Fatalf("LoadString() = (%d,%d), want (5,1)", w, h)
	}
	if f.Get(0, 0) != '1' {
		t.Fatalf("Get(0,0) = %q, want '1' (shebang line should be gone)", f.Get(0, 0))
	}
}

func TestLoadStringWithoutShebangIsUnchanged(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	w, h := LoadString("@", f)
	if w != 1 || h != 1 {
		t.Fatalf("LoadString() = (%d,%d), want (1,1)", w, h)
	}
	if f.Get(0, 0) != '@' {
		t.Fatalf("Get(0,0) = %q, want '@'", f.Get(0, 0))
	}
}

func TestLoadDoesNotStripLookalikeHashBang(t *testing.T) {
	// `#!` is a plausible golfed opener (trampoline then logical-not), not
	// every line starting with "#!" is a shebang.
	f := vm.NewPlayfield(vm.B98)
	w, h := LoadString("#!/usr/bin/env wpfunge\n@", f)
	if w != len("#!/usr/bin/env wpfunge") || h != 2 {
		t.Fatalf("LoadString() = (%d,%d), want the look-alike line preserved as source", w, h)
	}
	if f.Get(0, 0) != '#' {
		t.Fatalf("Get(0,0) = %q, want '#' (not a recognized shebang, must not be stripped)", f.Get(0, 0))
	}
}

func TestLoadMissingFileReturnsLoadError(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.bf"), f)
	if err == nil {
		t.Fatalf("Load() on a missing file should fail")
	}
	var le LoadError
	if !asLoadError(err, &le) {
		t.Fatalf("Load() error type = %T, want LoadError", err)
	}
	if len(le) != 1 {
		t.Fatalf("LoadError has %d entries, want 1", len(le))
	}
	if !strings.Contains(le.Error(), "read failed") {
		t.Fatalf("LoadError.Error() = %q, want it to mention the read failure", le.Error())
	}
}

func asLoadError(err error, out *LoadError) bool {
	le, ok := err.(LoadError)
	if ok {
		*out = le
	}
	return ok
}

func TestLoadSuccessfulFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hi.bf")
	if err := os.WriteFile(path, []byte(`"!iH",,,,@`), 0644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	f := vm.NewPlayfield(vm.B98)
	w, h, err := Load(path, f)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if h != 1 || w != 10 {
		t.Fatalf("Load() = (%d,%d), want (10,1)", w, h)
	}
}
