// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package pipe

import (
	"context"
	"reflect"

	"github.com/grailbio/bigslice"
	"github.com/grailbio/bigslice/frame"
	"github.com/grailbio/bigslice/slicefunc"
	"github.com/grailbio/bigslice/sliceio"
	"github.com/grailbio/bigslice/slicetype"
	"github.com/grailbio/bigslice/typecheck"
)

var (
	typeOfString  = reflect.TypeOf("")
	typeOfFloat64 = reflect.TypeOf(float64(0))
)

type pipedSlice struct {
	name bigslice.Name
	bigslice.Slice
	out     slicetype.Type
	command []string
}

// SumSquares pipes each line of slice, which must have type
// Slice<string>, through the named subprocess command, returning a
// Slice<string, float64> of (line, aggregate) pairs. Each shard owns
// a private subprocess instance for the duration of its read, so
// shards never share a pipe; the instance is started lazily on first
// read and closed when the shard is exhausted.
//
// Lines with no leading numeric field are dropped before they reach
// the subprocess, preserving the one-request-one-response alignment
// of the protocol. Output order within a shard follows input order.
func SumSquares(slice bigslice.Slice, name string, args ...string) bigslice.Slice {
	if slice.NumOut() != 1 || slice.Out(0) != typeOfString {
		typecheck.Panicf(1, "pipe.SumSquares: expected Slice<string>, got %s", slicetype.String(slice))
	}
	return &pipedSlice{
		name:    bigslice.MakeName("sumsquares"),
		Slice:   slice,
		out:     slicetype.New(typeOfString, typeOfFloat64),
		command: append([]string{name}, args...),
	}
}

func (p *pipedSlice) Name() bigslice.Name         { return p.name }
func (p *pipedSlice) NumOut() int                 { return p.out.NumOut() }
func (p *pipedSlice) Out(c int) reflect.Type      { return p.out.Out(c) }
func (*pipedSlice) NumDep() int                   { return 1 }
func (p *pipedSlice) Dep(i int) bigslice.Dep      { return bigslice.Dep{Slice: p.Slice} }
func (*pipedSlice) Combiner() slicefunc.Func      { return slicefunc.Nil }

func (p *pipedSlice) Reader(shard int, deps []sliceio.Reader) sliceio.Reader {
	return &pipedReader{op: p, reader: deps[0]}
}

type pipedReader struct {
	op     *pipedSlice
	reader sliceio.Reader

	proc *Process
	in   frame.Frame
	err  error
}

func (r *pipedReader) Read(ctx context.Context, out frame.Frame) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.proc == nil {
		r.proc, r.err = Start(ctx, r.op.command[0], r.op.command[1:]...)
		if r.err != nil {
			return 0, r.err
		}
	}
	if r.in.IsZero() {
		r.in = frame.Make(r.op.Slice, out.Len(), out.Len())
	} else {
		r.in = r.in.Ensure(out.Len())
	}
	n, err := r.reader.Read(ctx, r.in)
	if err != nil && err != sliceio.EOF {
		r.err = err
		return 0, err
	}
	var (
		lines = r.in.Interface(0).([]string)
		col0  = out.Interface(0).([]string)
		col1  = out.Interface(1).([]float64)
		m     int
	)
	for _, line := range lines[:n] {
		record := ParseFields(line)
		if len(record) == 0 {
			// No response line is forthcoming for an empty record;
			// drop the line to keep the exchange aligned.
			continue
		}
		sum, execErr := r.proc.Exec(record)
		if execErr != nil {
			r.err = execErr
			r.proc.Close()
			r.proc = nil
			return m, r.err
		}
		col0[m] = line
		col1[m] = sum
		m++
	}
	if err == sliceio.EOF {
		closeErr := r.proc.Close()
		r.proc = nil
		if closeErr != nil {
			r.err = closeErr
			return m, closeErr
		}
		r.err = sliceio.EOF
		return m, sliceio.EOF
	}
	return m, nil
}
