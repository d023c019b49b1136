// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Sumsq is the numeric subprocess used by package pipe: it reads
// lines of whitespace-separated numbers on standard input and writes
// one line per record carrying the sum of their squares. It exits
// when standard input reaches end of stream.
package main

import (
	"os"

	"github.com/grailbio/base/log"
	"github.com/grailbio/textslice/internal/sumsq"
)

func main() {
	if err := sumsq.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
