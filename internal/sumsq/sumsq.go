// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package sumsq implements the subprocess side of the pipe protocol:
// it reads lines of whitespace-separated numbers and answers each
// with the sum of their squares. It is shared by cmd/sumsq and by
// tests that need a live subprocess.
package sumsq

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Run processes the protocol stream: for each input line read from
// r, the leading run of numeric fields is parsed (parsing stops at
// the first field that is not a number, keeping the fields before
// it). A line with no parsed numbers produces no output; otherwise
// one line carrying the sum of squares of the parsed numbers,
// accumulated left to right from zero, is written to w. Output lines
// appear in input-line order. Run returns when r reaches end of
// stream.
func Run(r io.Reader, w io.Writer) error {
	var (
		scan = bufio.NewScanner(r)
		out  = bufio.NewWriter(w)
	)
	for scan.Scan() {
		var (
			acc float64
			n   int
		)
		for _, field := range strings.Fields(scan.Text()) {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			acc += x * x
			n++
		}
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintln(out, strconv.FormatFloat(acc, 'g', -1, 64)); err != nil {
			return err
		}
		// Flush per line so a synchronous caller can read the
		// response before writing its next record.
		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scan.Err()
}
