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

package oracle

import "testing"

func TestIsLegal(t *testing.T) {
	const italian = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3"

	tests := []struct {
		move  string
		legal bool
	}{
		{"b1c3", true},
		{"f3e5", true},
		{"f1c4", true},
		{"e4e5", false},
		{"e1g1", false},
		{"a1a3", false},
	}

	oracle, err := New(italian)
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range tests {
		if got := oracle.IsLegal(test.move); got != test.legal {
			t.Errorf("IsLegal(%s) = %v, want %v", test.move, got, test.legal)
		}
	}

	if len(oracle.Moves()) == 0 {
		t.Error("expected legal moves")
	}
}

func TestIsLegalCastling(t *testing.T) {
	legal, err := IsLegal("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1", "e1g1")
	if err != nil {
		t.Fatal(err)
	}

	if !legal {
		t.Error("e1g1 should be legal")
	}
}
