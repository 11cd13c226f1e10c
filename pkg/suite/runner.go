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

package suite

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/epdtest/pkg/engine"
	"laptudirm.com/x/epdtest/pkg/epd"
	"laptudirm.com/x/epdtest/pkg/notation"
	"laptudirm.com/x/epdtest/pkg/oracle"
)

// Source is a sequence of EPD records, like an *epd.Loader.
type Source interface {
	Next() (*epd.Record, error)
}

// Reporter is told about the progress of a suite run.
type Reporter interface {
	Searching(record *epd.Record)
	Verdict(verdict *Verdict, summary *Summary)
	Skipped(err *epd.ParseError)
}

// Options configure a suite run.
type Options struct {
	// Budget is the search time given to the engine for every position.
	Budget time.Duration

	// Strict aborts the run at the first malformed record instead of
	// skipping it.
	Strict bool

	// Validate checks engine moves for legality before judging them.
	Validate bool
}

// Runner runs the records of a suite through an engine, one at a time,
// and keeps the running totals.
type Runner struct {
	Session  engine.Session
	Reporter Reporter
	Options  Options

	Summary Summary
}

// Run tests every record from the source in order. It returns early if the
// engine dies, the context is cancelled, or in strict mode a malformed
// record is found; the Summary covers every test finished by then.
func (runner *Runner) Run(ctx context.Context, source Source) error {
	for {
		record, err := source.Next()

		var parseErr *epd.ParseError
		switch {
		case errors.Is(err, io.EOF):
			return nil

		case errors.As(err, &parseErr):
			if runner.Options.Strict {
				return err
			}

			runner.Summary.Malformed = append(runner.Summary.Malformed, parseErr)
			runner.report().Skipped(parseErr)
			continue

		case err != nil:
			return err
		}

		verdict, err := runner.Test(ctx, record)
		if err != nil {
			return err
		}

		runner.Summary.Add(verdict)
		runner.report().Verdict(verdict, &runner.Summary)
	}
}

// Test runs a single record through the engine and judges its move. An
// error is only returned when the run can't go on.
func (runner *Runner) Test(ctx context.Context, record *epd.Record) (*Verdict, error) {
	verdict := Verdict{Record: record}

	runner.report().Searching(record)
	result, err := runner.Session.Search(ctx, record.Position.FEN(), runner.Options.Budget)
	verdict.Result = result

	switch {
	case errors.Is(err, engine.ErrSessionTimeout):
		verdict.Reason = err
		return &verdict, nil
	case err != nil:
		return nil, err
	}

	if runner.Options.Validate {
		legal, err := oracle.IsLegal(record.Position.FEN(), result.Move)
		switch {
		case err != nil:
			logrus.WithField("id", record.ID).Warn(err)
		case !legal:
			verdict.Reason = ErrIllegalMove
			return &verdict, nil
		}
	}

	judgement, err := notation.Judge(record, result.Move)
	verdict.Judgement = judgement
	if err != nil {
		verdict.Reason = err
		return &verdict, nil
	}

	verdict.Success = judgement.Success
	return &verdict, nil
}

func (runner *Runner) report() Reporter {
	if runner.Reporter == nil {
		return discard{}
	}

	return runner.Reporter
}

type discard struct{}

func (discard) Searching(*epd.Record)      {}
func (discard) Verdict(*Verdict, *Summary) {}
func (discard) Skipped(*epd.ParseError)    {}
