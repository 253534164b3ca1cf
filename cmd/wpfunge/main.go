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
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wpfunge/wpfunge/debug"
	"github.com/wpfunge/wpfunge/internal/hostenv"
	"github.com/wpfunge/wpfunge/loader"
	"github.com/wpfunge/wpfunge/vm"
)

const version = "1.0.0"

// dialectFlag adapts vm.Dialect to flag.Value, accepting "93"/"98" or
// "b93"/"b98".
type dialectFlag vm.Dialect

func (d *dialectFlag) String() string {
	if vm.Dialect(*d) == vm.B93 {
		return "93"
	}
	return "98"
}

func (d *dialectFlag) Set(s string) error {
	switch strings.TrimPrefix(strings.ToLower(s), "b") {
	case "93":
		*d = dialectFlag(vm.B93)
	case "98":
		*d = dialectFlag(vm.B98)
	default:
		return errors.Errorf("unsupported dialect %q", s)
	}
	return nil
}

// debugRate is both a boolean-style switch (bare -debug enables stepping
// one tick at a time) and an optional rate (-debug=N steps N ticks per
// keypress). IsBoolFlag lets the flag package accept it without a value.
type debugRate struct {
	enabled bool
	rate    int
}

func (d *debugRate) String() string { return strconv.Itoa(d.rate) }

func (d *debugRate) Set(s string) error {
	d.enabled = true
	if s == "" || s == "true" {
		d.rate = 1
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrap(err, "invalid debug rate")
	}
	d.rate = n
	return nil
}

func (d *debugRate) IsBoolFlag() bool { return true }

func atExit(interp *vm.Interpreter, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if interp != nil {
		fmt.Fprintf(os.Stderr, "step %d, IPs: %d\n", interp.StepCount(), len(interp.IPs()))
	}
	os.Exit(1)
}

func main() {
	dialect := dialectFlag(vm.B98)
	var dbg debugRate
	var dump bool
	var showVersion bool

	flag.Var(&dialect, "dialect", "dialect to interpret as: 93 or 98")
	flag.Var(&dialect, "e", "shorthand for -dialect")
	flag.Var(&dbg, "debug", "step interactively, optionally at `RATE` ticks per keypress")
	flag.Var(&dbg, "d", "shorthand for -debug")
	flag.BoolVar(&dump, "dump", false, "dump interpreter state to stdout on exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&showVersion, "v", false, "shorthand for -version")
	flag.Parse()

	if showVersion {
		fmt.Println("wpfunge", version)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: wpfunge [flags] <source> [args...]")
		os.Exit(2)
	}
	sourcePath, progArgs := args[0], args[1:]

	field := vm.NewPlayfield(vm.Dialect(dialect))
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		// no such file: the argument itself is the program text
		loader.LoadString(sourcePath, field)
	} else if _, _, err := loader.Load(sourcePath, field); err != nil {
		atExit(nil, err)
	}

	out := bufio.NewWriter(os.Stdout)
	interp, err := vm.NewInterpreter(field,
		vm.WithOutput(out),
		vm.WithInput(vm.NewInteractiveInput(os.Stdin)),
		vm.WithHost(hostenv.OS(append([]string{sourcePath}, progArgs...))),
	)
	if err != nil {
		atExit(nil, err)
	}

	if dbg.enabled {
		runDebug(interp, dbg.rate)
	} else {
		interp.Run()
	}
	out.Flush()

	if dump {
		if err := debug.Dump(interp, os.Stdout); err != nil {
			atExit(interp, err)
		}
	}

	os.Exit(int(interp.ExitStatus()))
}
