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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownProtocol is returned by New for an unsupported protocol.
	ErrUnknownProtocol = errors.New("engine: unknown protocol")

	// ErrSessionTimeout is returned by Search when the engine didn't send
	// a move in time, even after being told to stop.
	ErrSessionTimeout = errors.New("engine: search timed out")

	// ErrProcessExited is returned once the engine process has died.
	ErrProcessExited = errors.New("engine: process exited")

	// ErrReadTimeout is returned when an expected line doesn't arrive.
	ErrReadTimeout = errors.New("engine: read i/o timeout")
)

// Session is a running engine which can be asked for its move in a series
// of positions, one at a time.
type Session interface {
	// Search sends the position to the engine, lets it search for the
	// given time, and returns its move.
	Search(ctx context.Context, fen string, budget time.Duration) (Result, error)

	// State returns the session's current state.
	State() State

	// Close quits the engine, killing it if it doesn't exit in time.
	Close() error
}

// Result is an engine's answer to a search.
type Result struct {
	Move   string   // best move, in coordinate notation
	Ponder string   // expected reply, if the engine sent one
	PV     []string // last principal variation reported

	Elapsed time.Duration

	// Stopped is set if the engine overran its budget and had to be
	// told to stop before it sent its move.
	Stopped bool
}

// New starts the engine described by the config and completes the
// protocol handshake. The returned Session is ready to search.
func New(config Config) (Session, error) {
	switch strings.ToLower(config.Protocol) {
	case "", "uci":
		return NewUCI(config)
	case "xboard", "cecp", "winboard":
		return NewXboard(config)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProtocol, config.Protocol)
	}
}

// CheckProtocol verifies that the protocol is supported without starting
// an engine.
func CheckProtocol(protocol string) error {
	switch strings.ToLower(protocol) {
	case "", "uci", "xboard", "cecp", "winboard":
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownProtocol, protocol)
	}
}

// State is the lifecycle state of a Session.
type State int

const (
	Unstarted State = iota
	Handshaking
	Ready
	Searching
	ResultReady
	Quitting
	Terminated
)

func (state State) String() string {
	switch state {
	case Unstarted:
		return "unstarted"
	case Handshaking:
		return "handshaking"
	case Ready:
		return "ready"
	case Searching:
		return "searching"
	case ResultReady:
		return "result-ready"
	case Quitting:
		return "quitting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
