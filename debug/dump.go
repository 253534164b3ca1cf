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
	"io"
	"strconv"

	"github.com/wpfunge/wpfunge/vm"
)

// dumpValues writes prefix followed by a's values separated by single
// spaces, with no trailing separator. Shape matches a classic
// prefix-byte-then-space-separated-values golden dump line.
func dumpValues(w io.Writer, prefix byte, a []vm.Cell) error {
	b := make([]byte, 0, 16)
	b = append(b, prefix)
	l := len(a) - 1
	for i := 0; i <= l; i++ {
		b = strconv.AppendInt(b, int64(a[i]), 10)
		if i < l {
			b = append(b, ' ')
		}
	}
	b = append(b, '\n')
	_, err := w.Write(b)
	return err
}

// Dump writes a stable, text-based snapshot of interp's state to w: step
// count, termination status, every live IP's position/delta/stacks, and
// the playfield's rendered extent. It is meant for golden-file regression
// tests, not for the interactive debugger (see Stepper for that).
func Dump(interp *vm.Interpreter, w io.Writer) error {
	if err := dumpValues(w, 'S', []vm.Cell{vm.Cell(interp.StepCount())}); err != nil {
		return err
	}
	term := vm.Cell(0)
	if interp.Terminated() {
		term = 1
	}
	if err := dumpValues(w, 'T', []vm.Cell{term, interp.ExitStatus()}); err != nil {
		return err
	}
	for _, ip := range interp.IPs() {
		if err := dumpValues(w, 'I', []vm.Cell{vm.Cell(ip.ID), ip.Pos.X, ip.Pos.Y, ip.Delta.X, ip.Delta.Y, ip.Offset.X, ip.Offset.Y}); err != nil {
			return err
		}
		if err := dumpValues(w, 'V', ip.Stacks.TOSS().Values()); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, interp.Field.Render()); err != nil {
		return err
	}
	return nil
}
