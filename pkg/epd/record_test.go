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

package epd

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		id    string
		fen   string
		moves []string
		avoid bool
	}{
		{
			name:  "six position fields",
			line:  italian + ` w KQkq - 0 3 id "test1"; bm Nc3;`,
			id:    "test1",
			fen:   italian + " w KQkq - 0 3",
			moves: []string{"Nc3"},
		},
		{
			name:  "four position fields",
			line:  `1k1r4/pp1b1R2/3q2pp/4p3/2B5/4Q3/PPP2B2/2K5 b - - bm Qd1+; id "BK.01";`,
			id:    "BK.01",
			fen:   "1k1r4/pp1b1R2/3q2pp/4p3/2B5/4Q3/PPP2B2/2K5 b - - 0 1",
			moves: []string{"Qd1+"},
		},
		{
			name:  "several moves and spaces in id",
			line:  `  r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - bm Bf5 Re6 ; id "WAC 21 (alt)" ;  `,
			id:    "WAC 21 (alt)",
			fen:   "r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - 0 1",
			moves: []string{"Bf5", "Re6"},
		},
		{
			name:  "avoid move",
			line:  `6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - am Rd7; id "avoid";`,
			id:    "avoid",
			fen:   "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
			moves: []string{"Rd7"},
			avoid: true,
		},
		{
			name:  "unknown operations are ignored",
			line:  `6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - c0 "bm Rd7; comment"; bm Rd8#; acd 20; id "x";`,
			id:    "x",
			fen:   "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
			moves: []string{"Rd8#"},
		},
		{
			name:  "missing final semicolon",
			line:  `6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - id "x"; bm Rd8`,
			id:    "x",
			fen:   "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
			moves: []string{"Rd8"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := Parse(test.line)
			if err != nil {
				t.Fatal(err)
			}

			if record.ID != test.id {
				t.Errorf("ID = %q, want %q", record.ID, test.id)
			}

			if got := record.Position.FEN(); got != test.fen {
				t.Errorf("FEN = %q, want %q", got, test.fen)
			}

			if !slices.Equal(record.Moves, test.moves) {
				t.Errorf("Moves = %q, want %q", record.Moves, test.moves)
			}

			if record.Avoid != test.avoid {
				t.Errorf("Avoid = %v, want %v", record.Avoid, test.avoid)
			}

			if record.Line != test.line {
				t.Errorf("Line = %q, want the raw line", record.Line)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", `8/8/8/8/8/8/8/8 w -`},
		{"bad diagram", `8/8/8/8/8/8/8 w - - id "x"; bm Ka1;`},
		{"missing id", `6k1/8/8/8/8/8/8/6K1 w - - bm Kf1;`},
		{"missing moves", `6k1/8/8/8/8/8/8/6K1 w - - id "x";`},
		{"empty move list", `6k1/8/8/8/8/8/8/6K1 w - - id "x"; bm ;`},
		{"both bm and am", `6k1/8/8/8/8/8/8/6K1 w - - id "x"; bm Kf1; am Kh1;`},
		{"half-move clock only", `6k1/8/8/8/8/8/8/6K1 w - - 0 id "x"; bm Kf1;`},
		{"unterminated string", `6k1/8/8/8/8/8/8/6K1 w - - id "x; bm Kf1;`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.line)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("Parse() error = %v, want ErrMalformedRecord", err)
			}
		})
	}
}

func TestParseIsWhitespaceInsensitive(t *testing.T) {
	a, err := Parse(italian + ` w KQkq - 0 3 id "test1"; bm Nc3 Nxe5;`)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Parse("\t  " + italian + "   w KQkq -  0 3   id \"test1\" ;bm  Nc3   Nxe5 ;  \r\n")
	if err != nil {
		t.Fatal(err)
	}

	if a.ID != b.ID || a.Position.FEN() != b.Position.FEN() || !slices.Equal(a.Moves, b.Moves) {
		t.Errorf("records differ: %+v vs %+v", a, b)
	}
}
