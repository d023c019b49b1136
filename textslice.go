// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package textslice

import (
	"context"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bigslice"
	"github.com/grailbio/bigslice/metrics"
	"github.com/grailbio/textslice/broadcast"
	"github.com/spaolacci/murmur3"
)

// Tokens tokenizes each line of slice, which must have type
// Slice<string>, flattening the result into a Slice<string> of
// tokens in line order.
func Tokens(slice bigslice.Slice) bigslice.Slice {
	return bigslice.Flatmap(slice, Tokenize)
}

// TokenCounts computes occurrence counts for each token in slice,
// which must have type Slice<string> of lines. The returned slice
// has type Slice<string, int>.
func TokenCounts(slice bigslice.Slice) bigslice.Slice {
	tokens := bigslice.Map(Tokens(slice), func(tok string) (string, int) {
		return tok, 1
	})
	return bigslice.Fold(tokens, func(a, e int) int { return a + e })
}

// LineWeights scores each line of slice, which must have type
// Slice<string>, by the weight Table named by handle, returning a
// Slice<string, int> of (line, weight) pairs. The table is resolved
// through the broadcast cache, so it is materialized at most once
// per worker process no matter how many lines are scored there.
//
// LineWeights panics during evaluation if handle does not resolve;
// a handle obtained from broadcast.Register on the driver always
// resolves.
func LineWeights(slice bigslice.Slice, handle broadcast.Handle, pos Position) bigslice.Slice {
	return bigslice.Map(slice, func(line string) (string, int) {
		v, err := handle.Value()
		if err != nil {
			log.Panicf("textslice.LineWeights: resolving weight table: %v", err)
		}
		return line, Weight(line, v.(Table), pos)
	})
}

// CountNonEmpty returns slice (of type Slice<string>) unchanged,
// incrementing counter once for each line that is nonempty after
// trimming leading and trailing whitespace. Increments are recorded
// in the task's metrics scope and merged by summation, so the final
// counter value is exact for any number of shards or workers:
// no increment is lost or applied twice.
func CountNonEmpty(slice bigslice.Slice, counter metrics.Counter) bigslice.Slice {
	return bigslice.Map(slice, func(ctx context.Context, line string) string {
		if strings.TrimSpace(line) != "" {
			counter.Incr(metrics.ContextScope(ctx), 1)
		}
		return line
	})
}

// PartitionByToken repartitions slice, which must have type
// Slice<string, int> keyed by token, assigning each record a shard
// by hash of its token. Records with equal tokens are thereby
// colocated ahead of keyed operations, so that subsequent
// same-keyed steps need not move data again.
func PartitionByToken(slice bigslice.Slice) bigslice.Slice {
	return bigslice.Repartition(slice, func(nshard int, token string, count int) int {
		return int(murmur3.Sum32([]byte(token)) % uint32(nshard))
	})
}
