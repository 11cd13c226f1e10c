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

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/epdtest/pkg/common"
	"laptudirm.com/x/epdtest/pkg/engine"
)

// ErrConfiguration is returned for invalid command lines and configs.
var ErrConfiguration = errors.New("invalid configuration")

// Config is the configuration of a suite run, as read from a YAML file
// and then overridden by command-line flags.
type Config struct {
	Engine engine.Config `yaml:"engine"`

	Suite  string `yaml:"suite"`
	Time   string `yaml:"time"`
	Output string `yaml:"output"`

	Strict   bool `yaml:"strict"`
	Validate bool `yaml:"validate"`
}

// loadConfig reads the configuration file at path. If path is empty the
// default configuration file is used, if it exists.
func loadConfig(path string) (Config, error) {
	config := Config{Time: "1"}

	if path == "" {
		if !common.Exists(common.ConfigFile) {
			return config, nil
		}

		path = common.ConfigFile
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}

	return config, nil
}

// applyFlags overrides the config with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, config *Config) error {
	strings := map[string]*string{
		"engine":   &config.Engine.Cmd,
		"name":     &config.Engine.Name,
		"arg":      &config.Engine.Arg,
		"dir":      &config.Engine.Dir,
		"protocol": &config.Engine.Protocol,
		"stderr":   &config.Engine.Stderr,
		"tb":       &config.Engine.Tablebases,
		"file":     &config.Suite,
		"time":     &config.Time,
		"output":   &config.Output,
	}

	for name, value := range strings {
		if flags.Changed(name) {
			*value, _ = flags.GetString(name)
		}
	}

	if flags.Changed("hash") {
		config.Engine.Hash, _ = flags.GetInt("hash")
	}

	if flags.Changed("threads") {
		config.Engine.Threads, _ = flags.GetInt("threads")
	}

	if flags.Changed("margin") {
		config.Engine.Margin, _ = flags.GetDuration("margin")
	}

	if flags.Changed("grace") {
		config.Engine.Grace, _ = flags.GetDuration("grace")
	}

	if flags.Changed("strict") {
		config.Strict, _ = flags.GetBool("strict")
	}

	if flags.Changed("validate") {
		config.Validate, _ = flags.GetBool("validate")
	}

	if flags.Changed("option") {
		options, err := flags.GetStringToString("option")
		if err != nil {
			return err
		}

		if config.Engine.Options == nil {
			config.Engine.Options = make(map[string]string)
		}

		for name, value := range options {
			config.Engine.Options[name] = value
		}
	}

	return nil
}

// validate checks that the config describes a runnable suite.
func (config *Config) validate() error {
	switch {
	case config.Engine.Cmd == "":
		return fmt.Errorf("%w: no engine given", ErrConfiguration)
	case config.Suite == "":
		return fmt.Errorf("%w: no epd suite given", ErrConfiguration)
	}

	if err := engine.CheckProtocol(config.Engine.Protocol); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if _, err := engine.ParseBudget(config.Time); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return nil
}
