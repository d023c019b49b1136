// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package pipe implements a line-oriented protocol for delegating
// per-record numeric computation to an external subprocess. Each
// record is encoded as one line of whitespace-separated decimal
// numbers on the subprocess's standard input; the subprocess answers
// with one line per record carrying a single aggregate value, in
// input order.
//
// The protocol is strictly sequential: a Process must not be shared
// across concurrent callers. Parallel drivers give each worker its
// own Process; see SumSquares for the bigslice arrangement.
package pipe

import (
	"fmt"
	"strconv"
	"strings"
)

// A ParseError reports a subprocess output line that could not be
// decoded as a number.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pipe: cannot parse %q as a number", e.Line)
}

// EncodeLine encodes a record of numbers as one protocol line:
// whitespace-separated decimal representations terminated by a
// newline.
func EncodeLine(record []float64) string {
	fields := make([]string, len(record))
	for i, x := range record {
		fields[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(fields, " ") + "\n"
}

// DecodeLine decodes one subprocess output line as a single number,
// returning a *ParseError if the line is not a valid representation.
func DecodeLine(line string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, &ParseError{Line: line}
	}
	return x, nil
}

// ParseFields parses the leading numeric fields of a protocol input
// line. Parsing stops at the first field that does not parse as a
// number; fields before it are kept and the rest of the line is
// discarded. A line with no leading numeric field yields an empty
// record. This truncating behavior is part of the protocol: the
// subprocess applies the same rule to its input, and emits no output
// line for an empty record.
func ParseFields(line string) []float64 {
	var record []float64
	for _, field := range strings.Fields(line) {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			break
		}
		record = append(record, x)
	}
	return record
}
