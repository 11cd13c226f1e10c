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

import "time"

// Default timings used when a Config leaves them unset.
const (
	DefaultMargin = time.Second
	DefaultGrace  = 2 * time.Second

	// QuitTimeout is how long a quitting engine has to exit before it
	// is killed.
	QuitTimeout = 2 * time.Second
)

// HandshakeTimeout bounds the wait for the engine's handshake and
// synchronization replies.
var HandshakeTimeout = 5 * time.Second

// Config describes how to start and configure an engine.
type Config struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	// Protocol is one of uci (the default) or xboard.
	Protocol string `yaml:"protocol"`

	// Stderr is a file the engine's standard error is redirected to.
	Stderr string `yaml:"stderr"`

	// InitStr is sent to the engine before the handshake. It may
	// contain several lines separated by '\n'.
	InitStr string `yaml:"init-string"`

	Hash       int    `yaml:"hash"`    // hash table size in MB
	Threads    int    `yaml:"threads"` // number of search threads
	Tablebases string `yaml:"tablebases"`

	// Options are custom engine options, forwarded verbatim.
	Options map[string]string `yaml:"options"`

	// Margin is the time the engine may go over its search budget
	// before it is told to stop. Grace is the time it then has to
	// send a move before the search is given up on.
	Margin time.Duration `yaml:"margin"`
	Grace  time.Duration `yaml:"grace"`
}

func (config Config) margin() time.Duration {
	if config.Margin <= 0 {
		return DefaultMargin
	}

	return config.Margin
}

func (config Config) grace() time.Duration {
	if config.Grace <= 0 {
		return DefaultGrace
	}

	return config.Grace
}
