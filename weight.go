// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package textslice

import (
	"encoding/gob"
	"unicode"
	"unicode/utf8"
)

func init() {
	// Tables are distributed through package broadcast, which
	// serializes values with gob.
	gob.Register(Table{})
}

// A Table assigns integer weights to letters. Tables must not be
// mutated after construction; a constructed Table may be shared
// freely across goroutines and worker processes.
type Table map[rune]int

// Alphabet returns the alphabetic rank table: 'a' through 'z' are
// assigned weights 0 through 25. Lookups are case-insensitive.
func Alphabet() Table {
	t := make(Table, 26)
	for r := 'a'; r <= 'z'; r++ {
		t[r] = int(r - 'a')
	}
	return t
}

// Lookup returns the weight of r, folding case. Letters absent from
// the table weigh 0.
func (t Table) Lookup(r rune) int {
	return t[unicode.ToLower(r)]
}

// Position selects which letter of a token contributes its weight.
type Position int

const (
	// First selects a token's first letter.
	First Position = iota
	// Last selects a token's last letter.
	Last
)

// Weight scores a line of text: it is the sum, over the purely
// alphabetic tokens of the line, of the table weight of the letter
// selected by pos. Tokens containing non-letter characters are
// skipped, and letters absent from the table contribute 0, so Weight
// never fails.
func Weight(line string, t Table, pos Position) int {
	var sum int
	for _, tok := range Tokenize(line) {
		if !alphabetic(tok) {
			continue
		}
		var r rune
		if pos == Last {
			r, _ = utf8.DecodeLastRuneInString(tok)
		} else {
			r, _ = utf8.DecodeRuneInString(tok)
		}
		sum += t.Lookup(r)
	}
	return sum
}
