// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// process is a running engine binary, talked to line by line over its
// standard input and output. It is shared by the protocol implementations.
type process struct {
	config Config

	*exec.Cmd

	state State

	writer *bufio.Writer
	reader *bufio.Reader
	stderr *os.File

	lines chan string
	done  chan struct{}

	group errgroup.Group
}

func startProcess(config Config) (*process, error) {
	var engine process
	engine.config = config
	if engine.config.Name == "" {
		engine.config.Name = config.Cmd
	}

	engine.Cmd = exec.Command(config.Cmd, strings.Fields(config.Arg)...)
	engine.Dir = config.Dir

	stdin, err := engine.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := engine.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if config.Stderr != "" {
		if engine.stderr, err = os.Create(config.Stderr); err != nil {
			return nil, err
		}

		engine.Cmd.Stderr = engine.stderr
	}

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)
	engine.lines = make(chan string, 64)
	engine.done = make(chan struct{})

	if err := engine.Start(); err != nil {
		engine.closeStderr()
		return nil, fmt.Errorf("engine: starting %s: %w", config.Cmd, err)
	}

	engine.group.Go(engine.readLines)

	if config.InitStr != "" {
		for _, line := range strings.Split(strings.ReplaceAll(config.InitStr, `\n`, "\n"), "\n") {
			if err := engine.Write("%s", line); err != nil {
				engine.kill()
				return nil, err
			}
		}
	}

	return &engine, nil
}

// kill stops the engine without the quit handshake, and waits for it
// and its reader to finish.
func (engine *process) kill() {
	close(engine.done)
	_ = engine.Process.Kill()
	_ = engine.group.Wait()

	engine.closeStderr()
	engine.setState(Terminated)
}

// readLines forwards the engine's output to the lines channel until the
// process exits, and then reaps it.
func (engine *process) readLines() error {
	defer close(engine.lines)

	for {
		line, err := engine.reader.ReadString('\n')
		if err != nil {
			// the pipe has been closed: wait for the process to exit
			return engine.Wait()
		}

		line = strings.Trim(line, " \n\t\r")
		logrus.Debugf("(%s)> %s", engine.config.Name, line)

		select {
		case engine.lines <- line:
		case <-engine.done:
			// nobody is listening anymore; drain the pipe
		}
	}
}

func (engine *process) setState(state State) {
	logrus.WithFields(logrus.Fields{
		"engine": engine.config.Name,
		"from":   engine.state,
		"to":     state,
	}).Trace("session state changed")

	engine.state = state
}

// State returns the session's current state.
func (engine *process) State() State {
	return engine.state
}

// Write sends a single formatted line to the engine.
func (engine *process) Write(format string, a ...any) error {
	logrus.Debugf("(%s)< "+format, append([]any{engine.config.Name}, a...)...)

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return fmt.Errorf("%w: %v", ErrProcessExited, err)
	}

	if err := engine.writer.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrProcessExited, err)
	}

	return nil
}

// Await waits for a line from the engine for which match returns true,
// and returns it. Every line received is passed to match. It fails with
// ErrReadTimeout if no such line arrives within the timeout. A timeout of
// zero or less waits for as long as the engine is alive.
func (engine *process) Await(ctx context.Context, timeout time.Duration, match func(string) bool) (string, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case <-expired:
			// timer ran out: wait timeout
			return "", ErrReadTimeout

		case line, ok := <-engine.lines:
			if !ok {
				return "", engine.exitError()
			}

			if match(line) {
				// line is the expected line
				return line, nil
			}
		}
	}
}

// AwaitPattern waits for a line matching the given regular expression.
func (engine *process) AwaitPattern(ctx context.Context, pattern string, timeout time.Duration) (string, error) {
	regex := regexp.MustCompile(pattern)
	return engine.Await(ctx, timeout, regex.MatchString)
}

func (engine *process) exitError() error {
	if engine.ProcessState != nil {
		return fmt.Errorf("%w (%s)", ErrProcessExited, engine.ProcessState)
	}

	return ErrProcessExited
}

// quit sends the given quit command and waits for the engine to exit,
// killing it if it takes longer than QuitTimeout.
func (engine *process) quit(command string) error {
	if engine.state == Terminated {
		return nil
	}

	engine.setState(Quitting)
	defer engine.setState(Terminated)
	defer engine.closeStderr()

	// the engine may already be dead, in which case this fails
	_ = engine.Write(command)
	close(engine.done)

	exited := make(chan error, 1)
	go func() {
		exited <- engine.group.Wait()
	}()

	select {
	case err := <-exited:
		return ignoreExitStatus(err)

	case <-time.After(QuitTimeout):
		logrus.Warnf("(%s) engine did not quit in time, killing it", engine.config.Name)
		if err := engine.Process.Kill(); err != nil {
			return err
		}

		<-exited
		return nil
	}
}

func (engine *process) closeStderr() {
	if engine.stderr != nil {
		_ = engine.stderr.Close()
		engine.stderr = nil
	}
}

// ignoreExitStatus drops errors which only report a non-zero exit status,
// which many engines return on quit.
func ignoreExitStatus(err error) error {
	if _, ok := err.(*exec.ExitError); ok {
		return nil
	}

	return err
}
