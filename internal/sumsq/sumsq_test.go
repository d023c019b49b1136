// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package sumsq

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	for _, c := range []struct {
		in  string
		out string
	}{
		{"3 4\n", "25\n"},
		{"1 2 3\n\n4 x 5\n", "14\n16\n"},
		{"", ""},
		{"x\n", ""},
		{"0.5\n", "0.25\n"},
		{"1 2\n3 4\n5 6\n", "5\n25\n61\n"},
	} {
		var b bytes.Buffer
		if err := Run(strings.NewReader(c.in), &b); err != nil {
			t.Fatalf("input %q: %v", c.in, err)
		}
		if got, want := b.String(), c.out; got != want {
			t.Errorf("input %q: got %q, want %q", c.in, got, want)
		}
	}
}
