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
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// fakeEngineEnv selects the behaviour of the fake engine run by
// TestHelperProcess, as "<protocol>:<behaviour>".
const fakeEngineEnv = "EPDTEST_FAKE_ENGINE"

// fakeEngine returns a Config which runs the test binary as a scripted
// engine with the given protocol and behaviour:
//
//	normal: answers searches immediately
//	slow:   only answers once told to stop
//	hang:   never answers a search
//	crash:  exits when told to search
//
// Xboard fakes also know these behaviours:
//
//	late:  without ping, ignores ? in its first search and only moves
//	       a2a3 once put in force mode, answering later searches normally
//	done0: holds the handshake open with feature done=0 for a while
func fakeEngine(t *testing.T, protocol, behaviour string) Config {
	t.Helper()
	t.Setenv(fakeEngineEnv, protocol+":"+behaviour)

	return Config{
		Name:     "fake",
		Cmd:      os.Args[0],
		Arg:      "-test.run=^TestHelperProcess$",
		Protocol: protocol,
		Margin:   50 * time.Millisecond,
		Grace:    200 * time.Millisecond,
	}
}

func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(fakeEngineEnv)
	if mode == "" {
		t.Skip("only run as a fake engine")
	}

	protocol, behaviour, _ := strings.Cut(mode, ":")
	switch protocol {
	case "uci":
		fakeUCI(behaviour)
	case "xboard":
		fakeXboard(behaviour)
	}

	os.Exit(0)
}

// fakeUCI plays the move set with the Move option, e2e4 by default.
func fakeUCI(behaviour string) {
	options := map[string]string{"Move": "e2e4"}
	searching := false

	bestmove := func() {
		if searching {
			fmt.Println("info depth 1 score cp 12 pv " + options["Move"] + " e7e5")
			fmt.Println("bestmove " + options["Move"] + " ponder e7e5")
			searching = false
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "uci":
			fmt.Println("id name Fake")
			fmt.Println("option name Move type string default e2e4")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "setoption":
			// setoption name <name> value <value>
			if len(fields) >= 5 {
				options[fields[2]] = fields[4]
			}
		case "go":
			searching = true
			switch behaviour {
			case "normal":
				bestmove()
			case "crash":
				os.Exit(3)
			}
		case "stop":
			if behaviour != "hang" {
				bestmove()
			}
		case "quit":
			return
		}
	}
}

// fakeXboard plays the move set with the Move option, e2e4 by default.
func fakeXboard(behaviour string) {
	options := map[string]string{"Move": "e2e4"}
	searching := false
	searches := 0

	move := func() {
		if searching {
			fmt.Println("3 25 10 1000 " + options["Move"] + " e7e5")
			fmt.Println("move " + options["Move"])
			searching = false
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "protover":
			switch behaviour {
			case "late":
				fmt.Println(`feature myname="Fake Engine" setboard=1`)
			case "done0":
				fmt.Println("feature done=0")
				time.Sleep(300 * time.Millisecond)
				fmt.Println(`feature myname="Fake Engine" ping=1 setboard=1`)
			default:
				fmt.Println(`feature myname="Fake Engine" ping=1 setboard=1`)
			}

			fmt.Println("feature done=1")
		case "ping":
			fmt.Println("pong " + fields[1])
		case "option":
			if name, value, found := strings.Cut(fields[1], "="); found {
				options[name] = value
			}
		case "go":
			searching = true
			searches++
			switch {
			case behaviour == "normal" || behaviour == "done0":
				move()
			case behaviour == "late" && searches > 1:
				move()
			case behaviour == "crash":
				os.Exit(3)
			}
		case "?":
			if behaviour != "hang" && behaviour != "late" {
				move()
			}
		case "force":
			if searching && behaviour == "late" {
				fmt.Println("move a2a3")
			}

			searching = false
		case "quit":
			return
		}
	}
}
