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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/epdtest/pkg/epd"
	"laptudirm.com/x/epdtest/internal/util"
	"laptudirm.com/x/epdtest/pkg/suite"
)

var (
	success = color.New(color.FgGreen).SprintFunc()
	failure = color.New(color.FgRed).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

// console reports the progress of a suite run to a terminal.
type console struct {
	out io.Writer
}

var _ suite.Reporter = (*console)(nil)

func (report *console) Searching(record *epd.Record) {
	util.StartSpinner(fmt.Sprintf("searching %s", record.ID))
}

func (report *console) Verdict(verdict *suite.Verdict, summary *suite.Summary) {
	util.PauseSpinner()

	record := verdict.Record

	expected := strings.Join(record.Moves, " ")
	if record.Avoid {
		expected = "not " + expected
	}

	san := verdict.Judgement.SAN
	if san == "" {
		san = "-"
	}

	result := success(verdict)
	if !verdict.Success {
		result = failure(verdict)
	}

	fmt.Fprintf(report.out, "%4d. %s\n", summary.Tests, record.ID)
	fmt.Fprintf(report.out, "      expected %s, played %s (%s)\n", expected, verdict.Result.Move, san)
	if len(verdict.Result.PV) > 0 {
		fmt.Fprintf(report.out, "      %s\n", faint("pv "+strings.Join(verdict.Result.PV, " ")))
	}

	fmt.Fprintf(report.out, "      %s, %d/%d %.2f%%\n", result, summary.Successes, summary.Tests, summary.Rate())
}

func (report *console) Skipped(err *epd.ParseError) {
	util.PauseSpinner()
	logrus.Warnf("skipping %v", err)
}

// Summary prints the final results of the run.
func (report *console) Summary(summary *suite.Summary, failures string) {
	util.PauseSpinner()

	lower, upper := summary.Interval()

	fmt.Fprintln(report.out)
	fmt.Fprintln(report.out, "------------------------------------------")
	fmt.Fprintf(report.out, "Tests:     %d\n", summary.Tests)
	fmt.Fprintf(report.out, "Successes: %d\n", summary.Successes)
	fmt.Fprintf(report.out, "Failures:  %d\n", len(summary.Failures))
	if len(summary.Malformed) > 0 {
		fmt.Fprintf(report.out, "Skipped:   %d malformed records\n", len(summary.Malformed))
	}

	fmt.Fprintf(report.out, "Rate:      %.2f%% (95%% %.2f%% - %.2f%%)\n", summary.Rate(), lower, upper)
	if failures != "" {
		fmt.Fprintf(report.out, "Failed records written to %s\n", failures)
	}

	fmt.Fprintln(report.out, "------------------------------------------")
}
