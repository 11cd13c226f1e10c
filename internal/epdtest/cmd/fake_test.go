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
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
)

// fakeEngineEnv selects the behaviour of the UCI engine run by
// TestHelperProcess.
const fakeEngineEnv = "EPDTEST_FAKE_ENGINE"

// fakeEngineArgs returns the flags which make the test binary act as a
// UCI engine playing e2e4 in every position. Its behaviour is one of:
//
//	normal:    answers every search
//	crash:     exits when told to search a second time
//	interrupt: interrupts the harness during its second search, and then
//	           never answers
func fakeEngineArgs(t *testing.T, behaviour string) []string {
	t.Helper()
	t.Setenv(fakeEngineEnv, behaviour)

	return []string{"-e", os.Args[0], "--arg=-test.run=^TestHelperProcess$"}
}

func TestHelperProcess(t *testing.T) {
	behaviour := os.Getenv(fakeEngineEnv)
	if behaviour == "" {
		t.Skip("only run as a fake engine")
	}

	searches := 0

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "uci":
			fmt.Println("id name Fake")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "go":
			searches++
			switch {
			case searches == 1 || behaviour == "normal":
				fmt.Println("bestmove e2e4")
			case behaviour == "crash":
				os.Exit(3)
			case behaviour == "interrupt":
				parent, err := os.FindProcess(os.Getppid())
				if err == nil {
					_ = parent.Signal(os.Interrupt)
				}
			}
		case "quit":
			os.Exit(0)
		}
	}

	os.Exit(0)
}
