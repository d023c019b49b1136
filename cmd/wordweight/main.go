// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Wordweight is a bigslice demo program that tokenizes and scores
// text. It reads newline-delimited text from the provided paths
// (local or s3://), and, depending on flags, computes per-token
// occurrence counts, per-line letter weights, or per-line sums of
// squares delegated to an external subprocess. It also maintains an
// exact count of nonempty input lines, reported at the end of the
// run.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	_ "net/http/pprof"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bigmachine/ec2system"
	"github.com/grailbio/bigslice"
	"github.com/grailbio/bigslice/exec"
	"github.com/grailbio/bigslice/metrics"
	"github.com/grailbio/bigslice/slicecmd"
	"github.com/grailbio/bigslice/sliceio"
	"github.com/grailbio/textslice"
	"github.com/grailbio/textslice/broadcast"
	"github.com/grailbio/textslice/pipe"
)

func init() {
	file.RegisterImplementation("s3", s3file.NewImplementation(
		s3file.NewDefaultProvider(session.Options{})))
}

var nonemptyLines = metrics.NewCounter()

// write returns a stage that writes the tab-separated records of its
// input slice to one output file per shard under prefix.
func write(slice bigslice.Slice, prefix string, body func(w io.Writer, scan *sliceio.Scanner) error) bigslice.Slice {
	ctx := context.Background()
	nshard := slice.NumShard()
	return bigslice.Scan(slice, func(shard int, scan *sliceio.Scanner) error {
		f, err := file.Create(ctx, fmt.Sprintf("%s-%03d-of-%03d", prefix, shard, nshard))
		if err != nil {
			return err
		}
		w := bufio.NewWriter(f.Writer(ctx))
		if err := body(w, scan); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		return f.Close(ctx)
	})
}

var tokenCounts = bigslice.Func(func(files []string, prefix string) bigslice.Slice {
	slice := textslice.CountNonEmpty(textslice.Lines(files), nonemptyLines)
	counts := textslice.PartitionByToken(textslice.TokenCounts(slice))
	return write(counts, prefix, func(w io.Writer, scan *sliceio.Scanner) error {
		var (
			token string
			count int
		)
		for scan.Scan(context.Background(), &token, &count) {
			fmt.Fprintf(w, "%s\t%d\n", token, count)
		}
		return scan.Err()
	})
})

var lineWeights = bigslice.Func(func(files []string, table broadcast.Handle, pos int, prefix string) bigslice.Slice {
	slice := textslice.CountNonEmpty(textslice.Lines(files), nonemptyLines)
	weights := textslice.LineWeights(slice, table, textslice.Position(pos))
	return write(weights, prefix, func(w io.Writer, scan *sliceio.Scanner) error {
		var (
			line   string
			weight int
		)
		for scan.Scan(context.Background(), &line, &weight) {
			fmt.Fprintf(w, "%s\t%d\n", line, weight)
		}
		return scan.Err()
	})
})

var pipeSums = bigslice.Func(func(files []string, command []string, prefix string) bigslice.Slice {
	slice := textslice.CountNonEmpty(textslice.Lines(files), nonemptyLines)
	sums := pipe.SumSquares(slice, command[0], command[1:]...)
	return write(sums, prefix, func(w io.Writer, scan *sliceio.Scanner) error {
		var (
			line string
			sum  float64
		)
		for scan.Scan(context.Background(), &line, &sum) {
			fmt.Fprintf(w, "%s\t%g\n", line, sum)
		}
		return scan.Err()
	})
})

func main() {
	var (
		out     = flag.String("out", "", "output path prefix")
		mode    = flag.String("mode", "counts", "computation to run: counts, weights, or pipe")
		pos     = flag.String("pos", "first", "token letter scored by -mode=weights: first or last")
		pipeCmd = flag.String("pipe", "sumsq", "subprocess command run by -mode=pipe")
	)
	slicecmd.RegisterSystem("ec2", &ec2system.System{
		InstanceType: "m5.xlarge",
	})
	slicecmd.Main(func(sess *exec.Session, args []string) error {
		if *out == "" {
			return fmt.Errorf("missing flag -out")
		}
		if len(args) == 0 {
			return fmt.Errorf("no input files")
		}
		ctx := context.Background()
		var (
			res *exec.Result
			err error
		)
		switch *mode {
		case "counts":
			res, err = sess.Run(ctx, tokenCounts, args, *out)
		case "weights":
			var position textslice.Position
			switch *pos {
			case "first":
				position = textslice.First
			case "last":
				position = textslice.Last
			default:
				return fmt.Errorf("invalid position %q", *pos)
			}
			var table broadcast.Handle
			table, err = broadcast.Register(textslice.Alphabet())
			if err != nil {
				return err
			}
			res, err = sess.Run(ctx, lineWeights, args, table, int(position), *out)
		case "pipe":
			command := strings.Fields(*pipeCmd)
			if len(command) == 0 {
				return fmt.Errorf("missing flag -pipe")
			}
			res, err = sess.Run(ctx, pipeSums, args, command, *out)
		default:
			return fmt.Errorf("invalid mode %q", *mode)
		}
		if err != nil {
			return err
		}
		log.Printf("nonempty lines: %d", nonemptyLines.Value(res.Scope()))
		return nil
	})
}
