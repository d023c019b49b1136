// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package textslice

import (
	"bufio"
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bigslice"
	"github.com/grailbio/bigslice/sliceio"
)

// Lines returns a Slice<string> of the lines of the provided files,
// one shard per file. Files are resolved through grailbio/base/file,
// so any registered scheme (e.g. s3://) may be used. Line
// terminators are not included.
func Lines(files []string) bigslice.Slice {
	ctx := context.Background()
	type state struct {
		file file.File
		scan *bufio.Scanner
	}
	return bigslice.ReaderFunc(len(files), func(shard int, state *state, lines []string) (n int, err error) {
		if state.file == nil {
			log.Printf("reading file %s", files[shard])
			state.file, err = file.Open(ctx, files[shard])
			if err != nil {
				return
			}
			state.scan = bufio.NewScanner(state.file.Reader(ctx))
		}
		for i := range lines {
			if !state.scan.Scan() {
				if err := state.scan.Err(); err != nil {
					return i, err
				}
				state.file.Close(ctx)
				return i, sliceio.EOF
			}
			lines[i] = state.scan.Text()
		}
		return len(lines), nil
	})
}
