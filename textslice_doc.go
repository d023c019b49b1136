// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
	Package textslice provides bigslice operators for simple text
	analytics: tokenizing lines of text, scoring lines by letter
	weights, and counting nonempty lines with exact-once accounting
	across shards.

	The package's transforms are deliberately small, pure functions
	(Tokenize, Weight) wrapped into Slice combinators so they can be
	applied per record by the bigslice runtime, locally or
	distributed. Shared read-only state, such as a weight Table, is
	passed through package broadcast so that it is transmitted to
	each worker process at most once and cached thereafter.

	Delegation of per-record numeric computation to an external
	subprocess is provided by package pipe.
*/
package textslice
