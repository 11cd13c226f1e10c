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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/epdtest/pkg/common"
	"laptudirm.com/x/epdtest/pkg/engine"
	"laptudirm.com/x/epdtest/pkg/epd"
	"laptudirm.com/x/epdtest/pkg/suite"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "epdtest",
		Short: "Run an EPD test suite against a chess engine",
		Long: heredoc.Doc(`
			Run an EPD test suite against a chess engine.

			Every record of the suite is searched by the engine for the given
			time, and the engine's move is checked against the record's best
			move (bm) or avoid move (am) operation. Failed records are written
			to <suite>.failed.epd next to the suite, ready to be run again.

			Settings are read from $XDG_CONFIG_HOME/epdtest/config.yaml, or the
			file given with --config, and can be overridden with flags.
		`),
		Example: heredoc.Doc(`
			$ epdtest -e ./stockfish -f wac.epd -t 0.5
			$ epdtest -e ./crafty -p xboard -f bk.epd -t 10s --hash 256
			$ epdtest -e ./engine -f suite.epd -o "Move Overhead=0" -o UCI_Chess960=false
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usage(cmd, fmt.Errorf("%w: %v", ErrConfiguration, err))
			}

			return nil
		},

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case cmd.Flag("trace").Changed:
				logrus.SetLevel(logrus.TraceLevel)
			case cmd.Flag("debug").Changed:
				logrus.SetLevel(logrus.DebugLevel)
			}
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configure(cmd)
			if err != nil {
				return usage(cmd, err)
			}

			return run(cmd, config)
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show epdtest's Version")
	root.PersistentFlags().Bool("trace", false, "Show Trace Information")
	root.PersistentFlags().Bool("debug", false, "Show Engine Communication")
	root.PersistentFlags().StringP("file", "f", "", "EPD suite to run")
	root.PersistentFlags().String("config", "", "Configuration file to use")

	flags := root.Flags()

	// engine flags
	flags.StringP("engine", "e", "", "Engine binary to test")
	flags.String("name", "", "Name of the engine in logs")
	flags.String("arg", "", "Argument to pass to the engine")
	flags.String("dir", "", "Working directory of the engine")
	flags.StringP("protocol", "p", "uci", "Engine protocol (uci or xboard)")
	flags.String("stderr", "", "File to write the engine's stderr to")
	flags.Int("hash", 0, "Hash table size in MB")
	flags.Int("threads", 0, "Number of search threads")
	flags.String("tb", "", "Syzygy tablebase path")
	flags.StringToStringP("option", "o", nil, "Engine option as name=value")
	flags.Duration("margin", engine.DefaultMargin, "Time allowed past the budget before stopping")
	flags.Duration("grace", engine.DefaultGrace, "Time allowed for an answer after stopping")

	// suite flags
	flags.StringP("time", "t", "1", "Search time per position (seconds or duration)")
	flags.String("output", "", "File to write failed records to")
	flags.Bool("strict", false, "Abort at the first malformed record")
	flags.Bool("validate", false, "Check engine moves for legality")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usage(cmd, fmt.Errorf("%w: %v", ErrConfiguration, err))
	})

	// TODO: set version from build info
	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	root.AddCommand(Check())

	return root
}

// usage prints the usage of the command and returns the error.
func usage(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n\n", err)
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return err
}

// configure builds the run's config from the config file and flags.
func configure(cmd *cobra.Command) (Config, error) {
	file, _ := cmd.Flags().GetString("config")

	config, err := loadConfig(file)
	if err != nil {
		return config, err
	}

	if err := applyFlags(cmd.Flags(), &config); err != nil {
		return config, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return config, config.validate()
}

// run runs the configured suite and reports its results.
func run(cmd *cobra.Command, config Config) error {
	budget, _ := engine.ParseBudget(config.Time)

	file, err := os.Open(config.Suite)
	if err != nil {
		return err
	}

	defer file.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if config.Engine.Name == "" {
		config.Engine.Name = config.Engine.Cmd
	}

	logrus.Infof("starting engine %s", config.Engine.Name)
	session, err := engine.New(config.Engine)
	if err != nil {
		return err
	}

	defer func() {
		if err := session.Close(); err != nil {
			logrus.Warnf("closing engine: %v", err)
		}
	}()

	report := &console{out: cmd.OutOrStdout()}
	runner := suite.Runner{
		Session:  session,
		Reporter: report,
		Options: suite.Options{
			Budget:   budget,
			Strict:   config.Strict,
			Validate: config.Validate,
		},
	}

	err = runner.Run(ctx, epd.NewLoader(file))
	if errors.Is(err, context.Canceled) {
		logrus.Warn("suite interrupted")
		err = nil
	}

	output := config.Output
	if output == "" {
		output = common.FailuresFile(config.Suite)
	}

	written, writeErr := runner.Summary.WriteFailures(output)
	if writeErr != nil {
		logrus.Errorf("writing failures: %v", writeErr)
	}

	if !written {
		output = ""
	}

	report.Summary(&runner.Summary, output)
	return err
}
