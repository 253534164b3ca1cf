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
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// popZString pops Cells off stk until (and including) a 0, in the
// "0gnirts" convention: the string's first character ends up on top, so
// popping yields it first, then the rest in order, with the terminating 0
// consumed last. This is the inverse of pushZString (sysinfo.go).
func popZString(stk *ValueStack) string {
	var b strings.Builder
	for {
		c := stk.Pop()
		if c == 0 {
			break
		}
		b.WriteRune(rune(c))
	}
	return b.String()
}

// stepIP executes exactly one tick's worth of work for ip: either the
// resumption of an in-progress `k` replay, or one fresh opcode dispatch.
// It returns the IPs that should be live for the next tick in ip's place
// (zero on `@`, one normally, more on `t` or `k`-induced splits).
func (in *Interpreter) stepIP(ip *IP) []*IP {
	if ip.pendingIterations > 0 {
		return in.replay(ip)
	}
	c := in.Field.Get(ip.Pos.X, ip.Pos.Y)
	return in.executeOpcode(ip, rune(c))
}

// replay resumes an IP that was spawned mid-`k`-iteration: it still owes
// ip.pendingIterations more executions of ip.pendingOpcode: a split
// produced mid-iteration still owes the remaining repeats, just on its own
// next tick instead of this one.
func (in *Interpreter) replay(ip *IP) []*IP {
	remaining := ip.pendingIterations
	op := ip.pendingOpcode
	ip.pendingIterations = 0
	var spawned []*IP
	for remaining > 0 {
		remaining--
		s := in.dispatchOne(ip, op)
		spawned = append(spawned, s...)
		if ip.done {
			break
		}
	}
	if ip.done {
		return spawned
	}
	return append([]*IP{ip}, spawned...)
}

// executeOpcode applies the dispatch classification: string mode literal
// push, fingerprint handler, or the main instruction switch.
func (in *Interpreter) executeOpcode(ip *IP, c rune) []*IP {
	field := in.Field
	if ip.StringMode && c != '"' {
		ip.Stacks.TOSS().Push(Cell(c))
		ip.advance(field)
		return []*IP{ip}
	}
	if h, ok := ip.Fingerprints[c]; ok {
		if err := h(ip, in); err != nil {
			ip.reflect()
		}
		ip.advance(field)
		return []*IP{ip}
	}
	return in.dispatchOne(ip, c)
}

// diagnostic reports an unhandled opcode to the output sink and reflects,
// the reflect-on-unknown-opcode policy.
func (in *Interpreter) diagnostic(ip *IP, c rune) []*IP {
	shown := c
	if !printable(Cell(c)) {
		shown = rune(nonPrintableSubstitute)
	}
	fmt.Fprintf(in.Output, "\n*** unhandled instruction %q at (%d,%d) ***\n", shown, ip.Pos.X, ip.Pos.Y)
	ip.reflect()
	ip.advance(in.Field)
	return []*IP{ip}
}

// dispatchOne executes the single opcode c against ip, including the
// trailing advance() that ends every instruction except `@` and `q` (`t`,
// `j`, and `k` perform theirs inside their own helpers). It is also the function `k` calls once per iteration of
// its target opcode.
func (in *Interpreter) dispatchOne(ip *IP, c rune) []*IP {
	field := in.Field
	toss := ip.Stacks.TOSS()

	switch {
	case c >= '0' && c <= '9':
		toss.Push(Cell(c - '0'))
	case c >= 'a' && c <= 'f':
		toss.Push(Cell(c-'a') + 10)
	default:
		switch c {
		case ' ':
			// no-op under the skip policy; reached in B93 mode, and in B98
			// only when the IP already sits on a space (its starting cell, or
			// a cell overwritten with a space after it parked there).
		case '+':
			a, b := toss.PopPair()
			toss.Push(a + b)
		case '-':
			a, b := toss.PopPair()
			toss.Push(a - b)
		case '*':
			a, b := toss.PopPair()
			toss.Push(a * b)
		case '/':
			a, b := toss.PopPair()
			if b == 0 {
				toss.Push(0)
			} else {
				toss.Push(a / b)
			}
		case '%':
			a, b := toss.PopPair()
			if b == 0 {
				toss.Push(0)
			} else {
				toss.Push(a % b)
			}
		case '!':
			if toss.Pop() == 0 {
				toss.Push(1)
			} else {
				toss.Push(0)
			}
		case '`':
			a, b := toss.PopPair()
			if a > b {
				toss.Push(1)
			} else {
				toss.Push(0)
			}
		case '>':
			ip.Delta = point{1, 0}
		case '<':
			ip.Delta = point{-1, 0}
		case '^':
			ip.Delta = point{0, -1}
		case 'v':
			ip.Delta = point{0, 1}
		case '?':
			ip.Delta = []point{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}[in.rng.Intn(4)]
		case '_':
			if toss.Pop() == 0 {
				ip.Delta = point{1, 0}
			} else {
				ip.Delta = point{-1, 0}
			}
		case '|':
			if toss.Pop() == 0 {
				ip.Delta = point{0, 1}
			} else {
				ip.Delta = point{0, -1}
			}
		case '"':
			ip.StringMode = !ip.StringMode
		case ':':
			toss.DuplicateTop()
		case '\\':
			toss.SwapTopTwo()
		case '$':
			toss.Pop()
		case '.':
			fmt.Fprintf(in.Output, "%d ", toss.Pop())
		case ',':
			in.Output.Write([]byte(string(rune(toss.Pop()))))
		case '#':
			ip.Pos = ip.move(field)
		case 'p':
			y, x, v := toss.Pop(), toss.Pop(), toss.Pop()
			field.Set(x+ip.Offset.X, y+ip.Offset.Y, v)
		case 'g':
			y, x := toss.Pop(), toss.Pop()
			toss.Push(field.Get(x+ip.Offset.X, y+ip.Offset.Y))
		case '&':
			if v, ok := in.Input.ReadInt(); ok {
				toss.Push(v)
			} else {
				ip.reflect()
			}
		case '~':
			if v, ok := in.Input.ReadChar(); ok {
				toss.Push(v)
			} else {
				ip.reflect()
			}
		case '@':
			ip.done = true
			return nil
		case '[':
			ip.Delta = point{ip.Delta.Y, -ip.Delta.X}
		case ']':
			ip.Delta = point{-ip.Delta.Y, ip.Delta.X}
		case '\'':
			ip.Pos = ip.move(field)
			toss.Push(field.Get(ip.Pos.X, ip.Pos.Y))
		case '{':
			in.beginStack(ip, toss)
		case '}':
			in.endStack(ip)
		case '=':
			in.shellExec(toss)
		case '(':
			ip.loadFingerprint()
		case ')':
			ip.unloadFingerprint()
		case 'i':
			in.includeFile(ip, toss)
		case 'o':
			in.writeFile(ip, toss)
		case 'j':
			return in.jump(ip, toss.Pop())
		case 'k':
			return in.iterate(ip, toss)
		case 'n':
			toss.Clear()
		case 'q':
			in.exitStatus = toss.Peek()
			in.aborted = true
			return nil
		case 'r':
			ip.reflect()
		case 's':
			v := toss.Pop()
			ip.Pos = ip.move(field)
			field.Set(ip.Pos.X, ip.Pos.Y, v)
		case 't':
			return in.split(ip)
		case 'u':
			in.stackTransfer(ip, toss)
		case 'w':
			a, b := toss.PopPair()
			if a < b {
				ip.Delta = point{ip.Delta.Y, -ip.Delta.X}
			} else if a > b {
				ip.Delta = point{-ip.Delta.Y, ip.Delta.X}
			}
		case 'x':
			dy, dx := toss.Pop(), toss.Pop()
			ip.Delta = point{dx, dy}
		case 'y':
			in.sysinfoVector(ip, toss.Pop())
		case 'z':
			// no-op, consumes a tick
		default:
			return in.diagnostic(ip, c)
		}
	}
	ip.advance(field)
	return []*IP{ip}
}

func (in *Interpreter) beginStack(ip *IP, old *ValueStack) {
	n := old.Pop()
	fresh := &ValueStack{}
	transfer(fresh, old, n)
	old.Push(ip.Offset.X)
	old.Push(ip.Offset.Y)
	ip.Stacks.s = append(ip.Stacks.s, fresh)
	ip.Offset = ip.move(in.Field)
}

func (in *Interpreter) endStack(ip *IP) {
	if ip.Stacks.Count() < 2 {
		ip.reflect()
		return
	}
	discarded := ip.Stacks.TOSS()
	n := discarded.Pop()
	ip.Stacks.PopStack()
	newToss := ip.Stacks.TOSS()
	oy := newToss.Pop()
	ox := newToss.Pop()
	ip.Offset = point{ox, oy}
	transfer(newToss, discarded, n)
}

func (in *Interpreter) stackTransfer(ip *IP, toss *ValueStack) {
	if ip.Stacks.Count() < 2 {
		ip.reflect()
		return
	}
	soss := ip.Stacks.SOSS()
	n := toss.Pop()
	switch {
	case n > 0:
		transfer(toss, soss, n)
	case n < 0:
		transfer(soss, toss, -n)
	}
}

func (in *Interpreter) split(ip *IP) []*IP {
	clone := ip.clone(in.spawnID())
	clone.reflect()
	clone.advance(in.Field)
	ip.advance(in.Field)
	return []*IP{ip, clone}
}

// jump implements `j`: negative n moves backward |n| cells rather than
// forward n cells regardless of sign. The n raw moves are not the whole
// story: like every instruction except `@` and `q`, `j` still finishes
// with the ordinary trailing move-then-skip once it's done, so it
// ends up one cell further than its own n moves would suggest.
func (in *Interpreter) jump(ip *IP, n Cell) []*IP {
	field := in.Field
	if n < 0 {
		ip.reflect()
		for k := Cell(0); k < -n; k++ {
			ip.Pos = ip.move(field)
		}
		ip.reflect()
	} else {
		for k := Cell(0); k < n; k++ {
			ip.Pos = ip.move(field)
		}
	}
	ip.advance(field)
	return []*IP{ip}
}

// iterate implements `k`: find the target opcode (advancing once past the
// `k` cell itself), then execute it n times against ip within this same
// tick. Spawns produced along the way carry the remaining count forward to
// their own next tick via pendingIterations/pendingOpcode.
func (in *Interpreter) iterate(ip *IP, toss *ValueStack) []*IP {
	field := in.Field
	n := toss.Pop()
	ip.advance(field)
	target := rune(field.Get(ip.Pos.X, ip.Pos.Y))
	if n <= 0 {
		ip.advance(field)
		return []*IP{ip}
	}
	remaining := n
	var clones []*IP
	for remaining > 0 {
		remaining--
		for _, s := range in.dispatchOne(ip, target) {
			if s != ip {
				clones = append(clones, s)
			}
		}
		if ip.done {
			break
		}
	}
	for _, c := range clones {
		c.pendingIterations = remaining
		c.pendingOpcode = target
	}
	if ip.done {
		return clones
	}
	return append([]*IP{ip}, clones...)
}

func (in *Interpreter) shellExec(toss *ValueStack) {
	cmdline := popZString(toss)
	cmd := exec.Command("sh", "-c", cmdline)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	status := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			status = ee.ExitCode()
		} else {
			status = -1
		}
	}
	toss.Push(Cell(status))
}

func (in *Interpreter) includeFile(ip *IP, toss *ValueStack) {
	filename := popZString(toss)
	flags := toss.Pop()
	y0 := toss.Pop()
	x0 := toss.Pop()
	data, err := os.ReadFile(filename)
	if err != nil {
		toss.Push(x0)
		toss.Push(y0)
		toss.Push(0)
		toss.Push(0)
		return
	}
	var width, height Cell
	if flags&1 != 0 {
		line := strings.ReplaceAll(string(data), "\n", "")
		width, height = in.Field.InsertBlock(line, x0, y0)
	} else {
		width, height = in.Field.InsertBlock(string(data), x0, y0)
	}
	toss.Push(x0)
	toss.Push(y0)
	toss.Push(width)
	toss.Push(height)
}

func (in *Interpreter) writeFile(ip *IP, toss *ValueStack) {
	filename := popZString(toss)
	flags := toss.Pop()
	y0 := toss.Pop()
	x0 := toss.Pop()
	width := toss.Pop()
	height := toss.Pop()
	lines := make([]string, 0, height)
	for row := Cell(0); row < height; row++ {
		var b strings.Builder
		for col := Cell(0); col < width; col++ {
			b.WriteRune(rune(in.Field.Get(x0+col, y0+row)))
		}
		lines = append(lines, b.String())
	}
	if flags&1 != 0 {
		for i, l := range lines {
			lines[i] = strings.TrimRight(l, " ")
		}
	}
	content := strings.Join(lines, "\n")
	if flags&1 != 0 {
		content = strings.TrimRight(content, "\n")
	}
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		ip.reflect()
	}
}
