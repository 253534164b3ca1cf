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
	"bytes"
	"strings"
	"testing"
)

func runProgram(t *testing.T, dialect Dialect, src string, opts ...Option) (string, *Interpreter) {
	t.Helper()
	f := NewPlayfield(dialect)
	f.InsertBlock(src, 0, 0)
	out := &bytes.Buffer{}
	allOpts := append([]Option{WithOutput(out)}, opts...)
	interp, err := NewInterpreter(f, allOpts...)
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}
	interp.Run()
	return out.String(), interp
}

func TestHelloWorld(t *testing.T) {
	// Pushes "Hello, World!" in reverse (so popping prints it forward), then
	// pops and prints it one character at a time.
	const src = `"!dlroW ,olleH",,,,,,,,,,,,,@`
	got, _ := runProgram(t, B98, src)
	if got != "Hello, World!" {
		t.Fatalf("output = %q, want %q", got, "Hello, World!")
	}
}

func TestArithmeticOrderOfOperands(t *testing.T) {
	// 2 - 3 must print -1: Befunge's `-` subtracts the top of stack from
	// the value beneath it, not the other way around.
	got, _ := runProgram(t, B98, `23-.@`)
	if strings.TrimSpace(got) != "-1" {
		t.Fatalf("23-. output = %q, want -1", got)
	}
}

func TestArithmeticChain(t *testing.T) {
	got, _ := runProgram(t, B98, `23*4+.@`)
	if strings.TrimSpace(got) != "10" {
		t.Fatalf("23*4+. output = %q, want 10", got)
	}
}

func TestDivisionByZeroPushesZero(t *testing.T) {
	got, _ := runProgram(t, B98, `50/.@`)
	if strings.TrimSpace(got) != "0" {
		t.Fatalf("5 0/ output = %q, want 0", got)
	}
}

func TestStorageRoundTrip(t *testing.T) {
	// Stores 7 at (5,1) with `p`, then reads it back with `g`. The cell is
	// off the IP's row, so the store does not overwrite the program itself.
	got, _ := runProgram(t, B98, `751p51g.@`)
	if strings.TrimSpace(got) != "7" {
		t.Fatalf("storage round trip output = %q, want 7", got)
	}
}

func TestJumpSkipsCells(t *testing.T) {
	// `j` with n=2 moves two cells from its own position (skipping `X` and
	// `.`, neither of which is ever dispatched), then still falls through to
	// the ordinary trailing move-then-skip every instruction performs,
	// landing one cell further still -- on `@`, with nothing printed.
	got, interp := runProgram(t, B98, `52jX.@`)
	if got != "" {
		t.Fatalf("jump-skip output = %q, want empty (the `.` is skipped over, not executed)", got)
	}
	if !interp.Terminated() {
		t.Fatalf("program should have terminated via the trailing `@`")
	}
}

func TestIterateRepeatsTargetOpcode(t *testing.T) {
	// `k` captures the opcode after it (`.`) and executes it 3 times
	// against the IP, printing the stack top-down.
	got, _ := runProgram(t, B98, `7893k.@@@@@`)
	if strings.TrimSpace(got) != "9 8 7" {
		t.Fatalf("iterate output = %q, want \"9 8 7\"", got)
	}
}

func TestStackOfStacksRoundTrip(t *testing.T) {
	f := NewPlayfield(B98)
	f.InsertBlock(`1232{2}@`, 0, 0)
	interp, err := NewInterpreter(f, WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}
	for i := 0; i < 7; i++ {
		if !interp.Tick() {
			t.Fatalf("interpreter terminated early at tick %d", i)
		}
	}
	ips := interp.IPs()
	if len(ips) != 1 {
		t.Fatalf("IPs = %d, want 1", len(ips))
	}
	if ips[0].Stacks.Count() != 1 {
		t.Fatalf("Stacks.Count() = %d, want 1 (back to a single stack)", ips[0].Stacks.Count())
	}
	got := ips[0].Stacks.TOSS().Values()
	want := []Cell{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("TOSS values = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TOSS values = %v, want %v", got, want)
		}
	}
}

func TestSplitProducesTwoIPs(t *testing.T) {
	f := NewPlayfield(B98)
	f.InsertBlock("t@\n@", 0, 0)
	interp, err := NewInterpreter(f, WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}
	interp.Tick()
	if len(interp.IPs()) != 2 {
		t.Fatalf("after one tick of `t`, IPs = %d, want 2", len(interp.IPs()))
	}
}

func TestSysinfoDimensionality(t *testing.T) {
	got, _ := runProgram(t, B98, `7y.@`)
	if strings.TrimSpace(got) != "2" {
		t.Fatalf("y field 7 (dimensionality) = %q, want 2", got)
	}
}

func TestQuitSetsExitStatus(t *testing.T) {
	_, interp := runProgram(t, B98, `42*q`)
	if interp.ExitStatus() != 8 {
		t.Fatalf("ExitStatus() = %d, want 8", interp.ExitStatus())
	}
}

func TestUnknownOpcodeReflects(t *testing.T) {
	f := NewPlayfield(B98)
	f.InsertBlock(`1@`, 0, 0)
	f.Set(0, 0, 1) // 0x01 is not a defined opcode
	interp, err := NewInterpreter(f, WithOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewInterpreter() error = %v", err)
	}
	interp.Tick()
	ips := interp.IPs()
	if len(ips) != 1 {
		t.Fatalf("IPs after unknown opcode = %d, want 1", len(ips))
	}
	if ips[0].Delta.X != -1 {
		t.Fatalf("delta after reflect = %v, want (-1,0)", ips[0].Delta)
	}
}
