// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package textslice

import (
	"strings"
	"unicode"
)

// punctuation is the set of characters stripped from lines before
// they are split into tokens.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenize splits a line of text into tokens: the line is stripped
// of punctuation, lowercased, and split on runs of whitespace.
// Tokenize is total over all inputs; a line containing no token
// characters yields no tokens.
func Tokenize(line string) []string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Fields(b.String())
}

// alphabetic tells whether s consists only of letters. The empty
// string is not alphabetic.
func alphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
