// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package pipe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/grailbio/base/errors"
)

// A Process is a handle to one running subprocess speaking the line
// protocol. A Process is strictly sequential: Exec writes one record
// and blocks until the corresponding response line is read back.
// Processes are not safe for concurrent use; callers that process
// records in parallel must give each worker its own Process.
type Process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Scanner
}

// Start launches the named command and returns a Process bound to
// its standard input and output. The subprocess's standard error is
// passed through. The subprocess is bound to ctx: cancellation kills
// it. No per-exchange timeout is applied, so a stalled subprocess
// blocks Exec until ctx is done.
func Start(ctx context.Context, name string, args ...string) (*Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.E(err, fmt.Sprintf("pipe: starting %s", name))
	}
	return &Process{cmd: cmd, stdin: stdin, out: bufio.NewScanner(stdout)}, nil
}

// Exec writes one record to the subprocess and reads back its
// aggregate. The record must be nonempty: the subprocess emits no
// response line for an empty record, which would desynchronize the
// exchange, so Exec rejects empty records before writing.
func (p *Process) Exec(record []float64) (float64, error) {
	if len(record) == 0 {
		return 0, errors.E(errors.Invalid, "pipe: empty record")
	}
	if _, err := io.WriteString(p.stdin, EncodeLine(record)); err != nil {
		return 0, errors.E(err, "pipe: writing record")
	}
	if !p.out.Scan() {
		if err := p.out.Err(); err != nil {
			return 0, errors.E(err, "pipe: reading response")
		}
		return 0, errors.E(errors.Unavailable, "pipe: subprocess closed its output")
	}
	return DecodeLine(p.out.Text())
}

// Close closes the subprocess's input, signaling end of stream, and
// waits for it to exit.
func (p *Process) Close() error {
	if err := p.stdin.Close(); err != nil {
		p.cmd.Process.Kill()
		p.cmd.Wait()
		return err
	}
	return p.cmd.Wait()
}
