// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package pipe

import (
	"context"
	"os"
	"reflect"
	"testing"

	"github.com/grailbio/textslice/internal/sumsq"
)

// helperArg marks an invocation of the test binary that should act
// as the protocol subprocess instead of running tests.
const helperArg = "sumsq-helper"

// TestHelperProcess is not a real test: when the test binary is
// re-executed with helperArg as its final argument, it speaks the
// subprocess side of the protocol over stdin/stdout and exits.
func TestHelperProcess(t *testing.T) {
	if len(os.Args) == 0 || os.Args[len(os.Args)-1] != helperArg {
		return
	}
	if err := sumsq.Run(os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

// helperCommand returns a command line that re-executes the test
// binary as a protocol subprocess.
func helperCommand() (name string, args []string) {
	return os.Args[0], []string{"-test.run=TestHelperProcess", "--", helperArg}
}

func TestProcessExec(t *testing.T) {
	name, args := helperCommand()
	p, err := Start(context.Background(), name, args...)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	for _, c := range []struct {
		record []float64
		sum    float64
	}{
		{[]float64{3, 4}, 25},
		{[]float64{1, 2, 3}, 14},
		{[]float64{4}, 16},
		{[]float64{0.5}, 0.25},
	} {
		got, err := p.Exec(c.record)
		if err != nil {
			t.Fatalf("exec %v: %v", c.record, err)
		}
		if want := c.sum; got != want {
			t.Errorf("exec %v: got %v, want %v", c.record, got, want)
		}
	}
}

func TestProcessExecEmpty(t *testing.T) {
	name, args := helperCommand()
	p, err := Start(context.Background(), name, args...)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if _, err := p.Exec(nil); err == nil {
		t.Error("expected error for empty record")
	}
	// The process is still usable after a rejected record.
	got, err := p.Exec([]float64{2})
	if err != nil {
		t.Fatal(err)
	}
	if want := 4.0; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProcessClose(t *testing.T) {
	name, args := helperCommand()
	p, err := Start(context.Background(), name, args...)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Exec([]float64{1}); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	name, args := helperCommand()
	lines := []string{"1 2 3", "", "4 x 5"}
	out, err := Run(context.Background(), name, args, lines)
	if err != nil {
		t.Fatal(err)
	}
	// The empty line produces no output, so two lines come back, in
	// input order.
	if got, want := out, []string{"14", "16"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
