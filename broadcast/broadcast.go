// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package broadcast implements once-per-process sharing of read-only
// values. A value is registered on the driver, producing a small
// Handle that names the value by a hash of its encoded content.
// Handles may be passed through bigslice func invocations; the first
// time a handle is resolved in a process the value is decoded and
// installed in a process-global registry, and every later resolution
// on that process returns the cached copy. Registered values must be
// treated as immutable: the cache hands out the same instance to all
// callers.
package broadcast

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/spaolacci/murmur3"
)

var (
	mu sync.Mutex
	// values holds the per-process cache of resolved broadcast
	// values, keyed by content hash.
	values = map[uint64]interface{}{}
)

// A Handle names a registered broadcast value. Handles are small
// and gob-encodable; the zero Handle names no value.
type Handle struct {
	hash    uint64
	payload []byte
}

// Register encodes value with gob, installs it in the process-local
// cache, and returns a handle under which it can be resolved. The
// handle is derived from the encoded content, so registering equal
// values yields interchangeable handles. Concrete types passed
// through interface values must be registered with gob by the
// caller.
func Register(value interface{}) (Handle, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(&value); err != nil {
		return Handle{}, errors.E(err, "broadcast: encoding value")
	}
	h := Handle{hash: murmur3.Sum64(b.Bytes()), payload: b.Bytes()}
	mu.Lock()
	if _, ok := values[h.hash]; !ok {
		values[h.hash] = value
	}
	mu.Unlock()
	return h, nil
}

// Hash returns the content hash under which the handle's value is
// registered.
func (h Handle) Hash() uint64 { return h.hash }

// Value resolves the handle's value from the process-local cache,
// decoding the handle's payload on first use. Value returns a
// NotExist error for the zero handle or for a handle whose value is
// neither cached nor carried.
func (h Handle) Value() (interface{}, error) {
	mu.Lock()
	v, ok := values[h.hash]
	mu.Unlock()
	if ok {
		return v, nil
	}
	if h.payload == nil {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("broadcast: no value for handle %016x", h.hash))
	}
	var value interface{}
	if err := gob.NewDecoder(bytes.NewReader(h.payload)).Decode(&value); err != nil {
		return nil, errors.E(err, "broadcast: decoding value")
	}
	mu.Lock()
	// Another goroutine may have installed the value while we were
	// decoding; the first install wins so that all callers share
	// one instance.
	if cached, ok := values[h.hash]; ok {
		value = cached
	} else {
		values[h.hash] = value
	}
	mu.Unlock()
	return value, nil
}

// GobEncode implements a custom gob encoder for handles.
func (h Handle) GobEncode() ([]byte, error) {
	var b bytes.Buffer
	enc := gob.NewEncoder(&b)
	if err := enc.Encode(h.hash); err != nil {
		return nil, err
	}
	if err := enc.Encode(h.payload); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// GobDecode implements a custom gob decoder for handles. If the
// handle's value is already cached in this process, the carried
// payload is dropped so that repeated invocations do not retain
// duplicate copies of the encoded value.
func (h *Handle) GobDecode(p []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(p))
	if err := dec.Decode(&h.hash); err != nil {
		return err
	}
	if err := dec.Decode(&h.payload); err != nil {
		return err
	}
	mu.Lock()
	if _, ok := values[h.hash]; ok {
		h.payload = nil
	}
	mu.Unlock()
	return nil
}
