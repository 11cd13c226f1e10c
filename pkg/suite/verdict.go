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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"laptudirm.com/x/epdtest/pkg/common"
	"laptudirm.com/x/epdtest/pkg/engine"
	"laptudirm.com/x/epdtest/pkg/epd"
	"laptudirm.com/x/epdtest/pkg/notation"
	"laptudirm.com/x/epdtest/pkg/stats"
)

// ErrIllegalMove is the reason given for engine moves rejected by the
// legality oracle.
var ErrIllegalMove = errors.New("suite: illegal engine move")

// Verdict is the outcome of a single test.
type Verdict struct {
	Record *epd.Record

	Result    engine.Result
	Judgement notation.Judgement

	Success bool

	// Reason explains failures which happened before the engine's move
	// could be judged, like timeouts and unreadable moves.
	Reason error
}

// String returns a string representation of the verdict.
func (verdict *Verdict) String() string {
	switch {
	case verdict.Success:
		return "Success"
	case verdict.Reason != nil:
		return fmt.Sprintf("Failure (%v)", verdict.Reason)
	default:
		return "Failure"
	}
}

// Summary holds the running totals of a suite run.
type Summary struct {
	Tests     int
	Successes int

	// Failures holds the failed records, in suite order.
	Failures []*epd.Record

	// Malformed holds the lines skipped as malformed records.
	Malformed []*epd.ParseError
}

// Add records the verdict in the summary.
func (summary *Summary) Add(verdict *Verdict) {
	summary.Tests++
	if verdict.Success {
		summary.Successes++
		return
	}

	summary.Failures = append(summary.Failures, verdict.Record)
}

// Rate returns the percentage of successful tests, rounded to two
// decimal places.
func (summary *Summary) Rate() float64 {
	return stats.SuccessRate(summary.Successes, summary.Tests)
}

// Interval returns the 95% confidence interval of the success rate.
func (summary *Summary) Interval() (float64, float64) {
	return stats.Interval(summary.Successes, summary.Tests, 0.95)
}

// WriteFailures writes the raw lines of the failed records to the given
// file, one per line, in suite order. If every test succeeded nothing is
// written, any file left at path by an earlier run is removed, and false
// is returned.
func (summary *Summary) WriteFailures(path string) (bool, error) {
	if len(summary.Failures) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}

		return false, nil
	}

	var data strings.Builder
	for _, record := range summary.Failures {
		data.WriteString(record.Line)
		data.WriteByte('\n')
	}

	if dir := filepath.Dir(path); !common.Exists(dir) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, err
		}
	}

	if err := os.WriteFile(path, []byte(data.String()), common.FilePermissions); err != nil {
		return false, err
	}

	return true, nil
}
