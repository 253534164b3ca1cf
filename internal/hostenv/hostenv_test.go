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

package hostenv

import (
	"errors"
	"testing"
	"time"
)

func TestFixedServices(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := Fixed([]string{"prog", "arg1"}, []string{"K=V"}, now, '/')
	if s.Argv()[0] != "prog" || len(s.Argv()) != 2 {
		t.Fatalf("Argv() = %v", s.Argv())
	}
	if len(s.Environ()) != 1 || s.Environ()[0] != "K=V" {
		t.Fatalf("Environ() = %v", s.Environ())
	}
	if !s.Now().Equal(now) {
		t.Fatalf("Now() = %v, want %v", s.Now(), now)
	}
	if s.PathSeparator() != '/' {
		t.Fatalf("PathSeparator() = %q, want '/'", s.PathSeparator())
	}
}

func TestOSServicesArgv(t *testing.T) {
	s := OS([]string{"wpfunge", "a.bf"})
	if len(s.Argv()) != 2 || s.Argv()[0] != "wpfunge" {
		t.Fatalf("Argv() = %v", s.Argv())
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestErrWriterStickyError(t *testing.T) {
	w := NewErrWriter(failingWriter{})
	_, err := w.Write([]byte("a"))
	if err == nil {
		t.Fatalf("first write should have failed")
	}
	if w.Err == nil {
		t.Fatalf("Err should be set after a failed write")
	}
	n, err2 := w.Write([]byte("b"))
	if n != 0 || err2 != w.Err {
		t.Fatalf("second write should short-circuit to the same sticky error, got (%d, %v)", n, err2)
	}
}

type countingWriter struct {
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return len(p), nil
}

func TestErrWriterPassesThroughOnSuccess(t *testing.T) {
	cw := &countingWriter{}
	w := NewErrWriter(cw)
	if _, err := w.Write([]byte("ok")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if cw.writes != 1 {
		t.Fatalf("underlying writer called %d times, want 1", cw.writes)
	}
	if w.Err != nil {
		t.Fatalf("Err = %v, want nil after a successful write", w.Err)
	}
}
