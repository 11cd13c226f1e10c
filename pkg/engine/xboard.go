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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/epdtest/internal/util"
)

// Xboard is a Session with an engine speaking the Xboard (CECP) protocol.
// The engine is kept in force mode, given positions with setboard, and
// told to move with go.
type Xboard struct {
	*process

	// features announced by the engine during the handshake
	features map[string]string
	pings    int

	// searches which were given up on before the engine moved
	unanswered int
}

// NewXboard starts an engine and performs the Xboard handshake,
// configuring its options on the way.
func NewXboard(config Config) (*Xboard, error) {
	process, err := startProcess(config)
	if err != nil {
		return nil, err
	}

	engine := &Xboard{process: process, features: make(map[string]string)}
	if err := engine.Initialize(); err != nil {
		_ = engine.Close()
		return nil, err
	}

	return engine, nil
}

// Initialize initializes the engine on startup.
func (engine *Xboard) Initialize() error {
	engine.setState(Handshaking)

	if err := engine.Write("xboard"); err != nil {
		return err
	}

	if err := engine.Write("protover 2"); err != nil {
		return err
	}

	done := func(line string) bool {
		if !strings.HasPrefix(line, "feature ") {
			return false
		}

		for name, value := range parseFeatures(line) {
			engine.features[name] = value
		}

		return engine.features["done"] == "1"
	}

	_, err := engine.Await(context.Background(), HandshakeTimeout, done)
	if errors.Is(err, ErrReadTimeout) && engine.features["done"] == "0" {
		// done=0 lifts the timeout until the engine sends done=1
		_, err = engine.Await(context.Background(), 0, done)
	}

	switch {
	case errors.Is(err, ErrReadTimeout):
		// Engines which don't know protover 2 never send done=1.
		logrus.Debugf("(%s) no feature done=1 received, continuing", engine.config.Name)
	case err != nil:
		return fmt.Errorf("engine: xboard handshake: %w", err)
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

func (engine *Xboard) configure() error {
	config := engine.config

	if config.Hash > 0 {
		if err := engine.Write("memory %d", config.Hash); err != nil {
			return err
		}
	}

	if config.Threads > 0 {
		if err := engine.Write("cores %d", config.Threads); err != nil {
			return err
		}
	}

	if config.Tablebases != "" {
		if err := engine.Write("egtpath syzygy %s", config.Tablebases); err != nil {
			return err
		}
	}

	for _, name := range util.SortedKeys(config.Options) {
		if err := engine.Write("option %s=%s", name, config.Options[name]); err != nil {
			return err
		}
	}

	return nil
}

// Synchronize waits for the engine to process every command sent so far.
// Engines which don't support ping are assumed to be in sync.
func (engine *Xboard) Synchronize(ctx context.Context) error {
	if engine.features["ping"] != "1" {
		return nil
	}

	engine.pings++
	if err := engine.Write("ping %d", engine.pings); err != nil {
		return err
	}

	_, err := engine.AwaitPattern(ctx, fmt.Sprintf("^pong %d$", engine.pings), HandshakeTimeout)
	return err
}

// Search implements Session.
func (engine *Xboard) Search(ctx context.Context, fen string, budget time.Duration) (Result, error) {
	if engine.state != Ready {
		return Result{}, fmt.Errorf("engine: search in %s state", engine.state)
	}

	// Force mode stops any search still running from the last position.
	for _, command := range []string{"force", "new", "force", "post"} {
		if err := engine.Write(command); err != nil {
			return Result{}, err
		}
	}

	if err := engine.Synchronize(ctx); err != nil {
		if errors.Is(err, ErrReadTimeout) {
			return Result{}, fmt.Errorf("%w: engine is not responding", ErrSessionTimeout)
		}

		return Result{}, err
	}

	if err := engine.settle(ctx); err != nil {
		return Result{}, err
	}

	if err := engine.Write("setboard %s", fen); err != nil {
		return Result{}, err
	}

	// st only takes whole seconds
	seconds := int(math.Ceil(budget.Seconds()))
	if err := engine.Write("st %d", seconds); err != nil {
		return Result{}, err
	}

	if err := engine.Write("go"); err != nil {
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

		if fields[0] == "move" {
			return len(fields) >= 2
		}

		if pv := thinkingPV(fields); pv != nil {
			result.PV = pv
		}

		return false
	}

	deadline := time.Duration(seconds)*time.Second + engine.config.margin()
	line, err := engine.Await(ctx, deadline, collect)
	if errors.Is(err, ErrReadTimeout) {
		// tell the engine to move now
		result.Stopped = true
		if err := engine.Write("?"); err != nil {
			return result, err
		}

		line, err = engine.Await(ctx, engine.config.grace(), collect)
		if errors.Is(err, ErrReadTimeout) {
			engine.unanswered++
			return result, ErrSessionTimeout
		}
	}

	if err != nil {
		return result, err
	}

	engine.setState(ResultReady)
	result.Elapsed = time.Since(start)
	result.Move = strings.Fields(line)[1]
	return result, nil
}

// settle discards the late moves of searches which were given up on, so
// that they are not taken as the answer to the next position. A pong has
// already flushed them out of engines which support ping; other engines
// get the grace period to send them.
func (engine *Xboard) settle(ctx context.Context) error {
	if engine.unanswered == 0 {
		return nil
	}

	defer func() { engine.unanswered = 0 }()
	if engine.features["ping"] == "1" {
		return nil
	}

	_, err := engine.Await(ctx, engine.config.grace(), func(line string) bool {
		if strings.HasPrefix(line, "move ") {
			logrus.Debugf("(%s) discarding late %s", engine.config.Name, line)
			engine.unanswered--
		}

		return engine.unanswered == 0
	})

	if errors.Is(err, ErrReadTimeout) {
		return nil
	}

	return err
}

// Close quits the engine.
func (engine *Xboard) Close() error {
	return engine.quit("quit")
}

// parseFeatures parses the name=value pairs of a feature line. Values may
// be double-quoted strings containing spaces.
func parseFeatures(line string) map[string]string {
	features := make(map[string]string)

	rest := strings.TrimPrefix(line, "feature ")
	for {
		rest = strings.TrimSpace(rest)
		name, value, found := strings.Cut(rest, "=")
		if !found || name == "" {
			return features
		}

		if strings.HasPrefix(value, `"`) {
			end := strings.IndexByte(value[1:], '"')
			if end < 0 {
				features[name] = value[1:]
				return features
			}

			features[name] = value[1 : end+1]
			rest = value[end+2:]
			continue
		}

		value, rest, _ = strings.Cut(value, " ")
		features[name] = value
	}
}

// thinkingPV returns the principal variation from an Xboard thinking
// output line: ply score time nodes pv...
func thinkingPV(fields []string) []string {
	if len(fields) < 5 {
		return nil
	}

	for _, field := range fields[:4] {
		// the ply count may be followed by a . or & marker
		if _, err := strconv.Atoi(strings.TrimRight(field, ".&")); err != nil {
			return nil
		}
	}

	return append([]string(nil), fields[4:]...)
}
