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

package debug

import (
	"strings"
	"testing"

	"github.com/wpfunge/wpfunge/vm"
)

func TestScanIntFindsFirstNumber(t *testing.T) {
	v, ok := scanInt("x=-12 rest")
	if !ok || v != -12 {
		t.Fatalf("scanInt() = (%d, %v), want (-12, true)", v, ok)
	}
}

func TestScanIntNoDigitsFails(t *testing.T) {
	if _, ok := scanInt("nothing here"); ok {
		t.Fatalf("scanInt() on a digit-free string should fail")
	}
}

func TestCallbackInputReadInt(t *testing.T) {
	calls := 0
	c := CallbackInput{Prompt: func() (string, bool) {
		calls++
		return "42", true
	}}
	v, ok := c.ReadInt()
	if !ok || v != 42 || calls != 1 {
		t.Fatalf("ReadInt() = (%d, %v), calls = %d", v, ok, calls)
	}
}

func TestCallbackInputReadCharEmptyLineFails(t *testing.T) {
	c := CallbackInput{Prompt: func() (string, bool) { return "", true }}
	if _, ok := c.ReadChar(); ok {
		t.Fatalf("ReadChar() on an empty line should fail")
	}
}

func TestStepperStepAndSnapshots(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	f.InsertBlock(`12+.@`, 0, 0)
	s, err := NewStepper(f, nil)
	if err != nil {
		t.Fatalf("NewStepper() error = %v", err)
	}
	s.Step(4) // push 1, push 2, add, print
	if !strings.Contains(s.OutputSnapshot(), "3") {
		t.Fatalf("OutputSnapshot() = %q, want it to contain 3", s.OutputSnapshot())
	}
	if s.Terminated() {
		t.Fatalf("program should not be terminated before `@` runs")
	}
	if s.StepCount() != 4 {
		t.Fatalf("StepCount() = %d, want 4", s.StepCount())
	}
	snaps := s.IPsSnapshot()
	if len(snaps) != 1 || snaps[0].X != 4 {
		t.Fatalf("IPsSnapshot() = %v, want one IP parked at x=4", snaps)
	}
	s.Step(1)
	if !s.Terminated() {
		t.Fatalf("program should be terminated after `@` runs")
	}
}

func TestStepperUsesPromptForInput(t *testing.T) {
	f := vm.NewPlayfield(vm.B98)
	f.InsertBlock(`&.@`, 0, 0)
	prompted := false
	s, err := NewStepper(f, func() (string, bool) {
		prompted = true
		return "9", true
	})
	if err != nil {
		t.Fatalf("NewStepper() error = %v", err)
	}
	s.Step(2)
	if !prompted {
		t.Fatalf("`&` should have called the prompt function")
	}
	if !strings.Contains(s.OutputSnapshot(), "9") {
		t.Fatalf("OutputSnapshot() = %q, want it to contain 9", s.OutputSnapshot())
	}
}
