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

	"laptudirm.com/x/epdtest/internal/util"
)

// UCI is a Session with an engine speaking the Universal Chess Interface.
// Positions are sent whole, and the engine replies with its move once the
// search is over.
type UCI struct {
	*process
}

// NewUCI starts an engine and performs the UCI handshake, configuring its
// options on the way.
func NewUCI(config Config) (*UCI, error) {
	process, err := startProcess(config)
	if err != nil {
		return nil, err
	}

	engine := &UCI{process: process}
	if err := engine.Initialize(); err != nil {
		_ = engine.Close()
		return nil, err
	}

	return engine, nil
}

// Initialize initializes the engine on startup.
func (engine *UCI) Initialize() error {
	engine.setState(Handshaking)

	if err := engine.Write("uci"); err != nil {
		return err
	}

	if _, err := engine.AwaitPattern(context.Background(), "^uciok", HandshakeTimeout); err != nil {
		return fmt.Errorf("engine: uci handshake: %w", err)
	}

	if err := engine.configure(); err != nil {
		return err
	}

	if err := engine.Synchronize(context.Background()); err != nil {
		return err
	}

	engine.setState(Ready)
	return nil
}

func (engine *UCI) configure() error {
	config := engine.config

	if config.Hash > 0 {
		if err := engine.SetOption("Hash", fmt.Sprint(config.Hash)); err != nil {
			return err
		}
	}

	if config.Threads > 0 {
		if err := engine.SetOption("Threads", fmt.Sprint(config.Threads)); err != nil {
			return err
		}
	}

	if config.Tablebases != "" {
		if err := engine.SetOption("SyzygyPath", config.Tablebases); err != nil {
			return err
		}
	}

	// custom options are always sent in the same order
	for _, name := range util.SortedKeys(config.Options) {
		if err := engine.SetOption(name, config.Options[name]); err != nil {
			return err
		}
	}

	return nil
}

// SetOption sets the value of one of the engine's options.
func (engine *UCI) SetOption(name, value string) error {
	return engine.Write("setoption name %s value %s", name, value)
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (engine *UCI) Synchronize(ctx context.Context) error {
	if err := engine.Write("isready"); err != nil {
		return err
	}

	_, err := engine.AwaitPattern(ctx, "^readyok", HandshakeTimeout)
	return err
}

// Search implements Session.
func (engine *UCI) Search(ctx context.Context, fen string, budget time.Duration) (Result, error) {
	if engine.state != Ready {
		return Result{}, fmt.Errorf("engine: search in %s state", engine.state)
	}

	// Make sure that the engine is idle, whatever happened to the last
	// search, before sending it a new position.
	if err := engine.Write("stop"); err != nil {
		return Result{}, err
	}

	if err := engine.Write("ucinewgame"); err != nil {
		return Result{}, err
	}

	if err := engine.Synchronize(ctx); err != nil {
		if errors.Is(err, ErrReadTimeout) {
			return Result{}, fmt.Errorf("%w: engine is not responding", ErrSessionTimeout)
		}

		return Result{}, err
	}

	if err := engine.Write("position fen %s", fen); err != nil {
		return Result{}, err
	}

	if err := engine.Write("go movetime %d", budget.Milliseconds()); err != nil {
		return Result{}, err
	}

	engine.setState(Searching)
	defer engine.setState(Ready)

	var result Result
	start := time.Now()

	collect := func(line string) bool {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return false
		}

		switch fields[0] {
		case "info":
			if pv := infoPV(fields); pv != nil {
				result.PV = pv
			}

			return false

		case "bestmove":
			return len(fields) >= 2
		}

		return false
	}

	line, err := engine.Await(ctx, budget+engine.config.margin(), collect)
	if errors.Is(err, ErrReadTimeout) {
		// the engine has overrun its budget: stop it and give it a last
		// chance to send its move
		result.Stopped = true
		if err := engine.Write("stop"); err != nil {
			return result, err
		}

		line, err = engine.Await(ctx, engine.config.grace(), collect)
		if errors.Is(err, ErrReadTimeout) {
			return result, ErrSessionTimeout
		}
	}

	if err != nil {
		return result, err
	}

	engine.setState(ResultReady)
	result.Elapsed = time.Since(start)
	result.Move, result.Ponder = parseBestMove(line)
	return result, nil
}

// Close quits the engine.
func (engine *UCI) Close() error {
	return engine.quit("quit")
}

// parseBestMove parses a "bestmove <move> [ponder <move>]" line.
func parseBestMove(line string) (string, string) {
	fields := strings.Fields(line)

	var move, ponder string
	if len(fields) >= 2 {
		move = fields[1]
	}

	if len(fields) >= 4 && fields[2] == "ponder" {
		ponder = fields[3]
	}

	return move, ponder
}

// infoPV returns the principal variation in an info line, if any.
func infoPV(fields []string) []string {
	for i, field := range fields {
		if field == "pv" && i+1 < len(fields) {
			return append([]string(nil), fields[i+1:]...)
		}
	}

	return nil
}
