// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package broadcast

import (
	"bytes"
	"encoding/gob"
	"reflect"
	"testing"
)

type table map[string]int

func init() {
	gob.Register(table{})
}

func TestRegister(t *testing.T) {
	value := table{"a": 0, "b": 1}
	h, err := Register(value)
	if err != nil {
		t.Fatal(err)
	}
	v, err := h.Value()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.(table), value; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Registering equal content must yield interchangeable handles.
func TestRegisterContentHash(t *testing.T) {
	h1, err := Register(table{"a": 0})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Register(table{"a": 0})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := h2.Hash(), h1.Hash(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	if _, err := h.Value(); err == nil {
		t.Error("expected error resolving zero handle")
	}
}

// A handle that rides a gob stream must resolve to the one cached
// instance on arrival, not to a fresh copy per decode.
func TestGobRoundTrip(t *testing.T) {
	value := table{"x": 42}
	h, err := Register(value)
	if err != nil {
		t.Fatal(err)
	}
	first, err := h.Value()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		var b bytes.Buffer
		if err := gob.NewEncoder(&b).Encode(&h); err != nil {
			t.Fatal(err)
		}
		var decoded Handle
		if err := gob.NewDecoder(&b).Decode(&decoded); err != nil {
			t.Fatal(err)
		}
		// The payload is dropped when the value is already cached.
		if decoded.payload != nil {
			t.Error("expected payload to be dropped on decode")
		}
		v, err := decoded.Value()
		if err != nil {
			t.Fatal(err)
		}
		if got, want := reflect.ValueOf(v).Pointer(), reflect.ValueOf(first).Pointer(); got != want {
			t.Error("decoded handle did not resolve to the cached instance")
		}
	}
}
