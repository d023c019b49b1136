// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package pipe

import (
	"bufio"
	"context"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Run streams the provided input lines through a single instance of
// the named command, returning the subprocess's output lines in
// order. Input is fed and output drained concurrently so that
// neither side can deadlock on a full pipe buffer. Note that lines
// whose leading fields do not parse as numbers produce no output
// line, so the returned slice may be shorter than the input.
func Run(ctx context.Context, name string, args []string, lines []string) ([]string, error) {
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
		return nil, err
	}
	var out []string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stdin.Close()
		w := bufio.NewWriter(stdin)
		for _, line := range lines {
			if _, err := w.WriteString(line); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return w.Flush()
	})
	g.Go(func() error {
		scan := bufio.NewScanner(stdout)
		for scan.Scan() {
			out = append(out, scan.Text())
		}
		return scan.Err()
	})
	if err := g.Wait(); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
