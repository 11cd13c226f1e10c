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

import "testing"

const italian = "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R"

func mustSquare(t *testing.T, s string) Square {
	t.Helper()

	square, err := ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}

	return square
}

func TestPieceAt(t *testing.T) {
	position, err := NewPosition(italian, "w", "KQkq", "-")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		square string
		piece  Piece
	}{
		{"b1", 'N'},
		{"c3", NoPiece},
		{"f3", 'N'},
		{"g1", NoPiece},
		{"h1", 'R'},
		{"c6", 'n'},
		{"e4", 'P'},
		{"e5", 'p'},
		{"d7", 'p'},
		{"e7", NoPiece},
		{"a8", 'r'},
		{"b8", NoPiece},
		{"h8", 'r'},
	}

	for _, test := range tests {
		if got := position.PieceAt(mustSquare(t, test.square)); got != test.piece {
			t.Errorf("PieceAt(%s) = %q, want %q", test.square, got, test.piece)
		}
	}

	if got := position.PieceAt(Square{8, 0}); got != NoPiece {
		t.Errorf("PieceAt(off board) = %q, want no piece", got)
	}
}

func TestPieceKind(t *testing.T) {
	if Piece('n').Kind() != 'N' || Piece('N').Kind() != 'N' {
		t.Error("Kind should ignore colour")
	}

	if !Piece('p').IsPawn() || Piece('k').IsPawn() || !Piece('k').IsKing() {
		t.Error("pawn/king predicates are wrong")
	}
}

func TestNewPositionErrors(t *testing.T) {
	tests := []struct {
		name                         string
		diagram, side, castling, ep string
	}{
		{"seven ranks", "8/8/8/8/8/8/8", "w", "-", "-"},
		{"long rank", "9/8/8/8/8/8/8/8", "w", "-", "-"},
		{"short rank", "7/8/8/8/8/8/8/8", "w", "-", "-"},
		{"bad piece", "x7/8/8/8/8/8/8/8", "w", "-", "-"},
		{"bad side", "8/8/8/8/8/8/8/8", "x", "-", "-"},
		{"bad en-passant", "8/8/8/8/8/8/8/8", "w", "-", "e9"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewPosition(test.diagram, test.side, test.castling, test.ep); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFEN(t *testing.T) {
	position, err := NewPosition(italian, "b", "KQkq", "e3")
	if err != nil {
		t.Fatal(err)
	}

	want := italian + " b KQkq e3 0 1"
	if got := position.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}

	position.HalfMove, position.FullMove = "2", "3"
	want = italian + " b KQkq e3 2 3"
	if got := position.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestSquareString(t *testing.T) {
	for _, s := range []string{"a1", "h8", "e4", "c6"} {
		if got := mustSquare(t, s).String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}

	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}

	for _, s := range []string{"", "a", "i1", "a0", "a9", "e44"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) should fail", s)
		}
	}
}
