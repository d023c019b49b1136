// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package textslice

import (
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
)

func TestTokenize(t *testing.T) {
	for _, c := range []struct {
		line   string
		tokens []string
	}{
		{"", nil},
		{"Hello, World!", []string{"hello", "world"}},
		{"   ", nil},
		{"...", nil},
		{"a  b\tc", []string{"a", "b", "c"}},
		{"it's", []string{"its"}},
		{"E = mc^2", []string{"e", "mc2"}},
		{"  Leading and trailing.  ", []string{"leading", "and", "trailing"}},
	} {
		got := Tokenize(c.line)
		if len(got) != len(c.tokens) {
			t.Errorf("tokenize %q: got %v, want %v", c.line, got, c.tokens)
			continue
		}
		for i := range got {
			if got[i] != c.tokens[i] {
				t.Errorf("tokenize %q: got %v, want %v", c.line, got, c.tokens)
				break
			}
		}
	}
}

// Stripping punctuation can only shrink or merge tokens; it
// introduces no new separators, so a line never tokenizes to more
// tokens than it has whitespace-delimited words.
func TestTokenizeNoNewTokens(t *testing.T) {
	fz := fuzz.New()
	const N = 1000
	for i := 0; i < N; i++ {
		var line string
		fz.Fuzz(&line)
		if got, limit := len(Tokenize(line)), len(strings.Fields(line)); got > limit {
			t.Errorf("tokenize %q: %d tokens from %d words", line, got, limit)
		}
	}
}

func TestAlphabetic(t *testing.T) {
	for _, c := range []struct {
		token string
		ok    bool
	}{
		{"cat", true},
		{"c4t", false},
		{"", false},
		{"naïve", true},
	} {
		if got, want := alphabetic(c.token), c.ok; got != want {
			t.Errorf("alphabetic %q: got %v, want %v", c.token, got, want)
		}
	}
}
