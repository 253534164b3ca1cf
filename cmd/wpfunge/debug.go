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

package main

import (
	"fmt"
	"os"

	"github.com/wpfunge/wpfunge/debug"
	"github.com/wpfunge/wpfunge/vm"
)

// runDebug steps interp one keypress at a time (rate ticks per keypress),
// rendering a dump of its state between stops. It falls back to a plain,
// uninterrupted run if the terminal can't be switched to raw mode.
func runDebug(interp *vm.Interpreter, rate int) {
	teardown, err := setRawIO()
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug: raw tty unavailable (%v), running without stepping\n", err)
		interp.Run()
		return
	}
	defer teardown()

	key := make([]byte, 1)
	for !interp.Terminated() {
		fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
		debug.Dump(interp, os.Stdout)
		fmt.Fprint(os.Stdout, "\r\n-- press any key to step, q to quit --\r\n")
		if _, err := os.Stdin.Read(key); err != nil {
			return
		}
		if key[0] == 'q' {
			return
		}
		for i := 0; i < rate; i++ {
			if !interp.Tick() {
				break
			}
		}
	}
}
