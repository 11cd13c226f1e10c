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

import "fmt"

// Square represents a square on the chess board. Files and ranks are both
// zero indexed, so a1 is {0, 0} and h8 is {7, 7}.
type Square struct {
	File, Rank int
}

// NoSquare is the Square used when a position has no en-passant target.
var NoSquare = Square{-1, -1}

// ParseSquare parses a square in the algebraic a1-h8 format.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("epd: invalid square %q", s)
	}

	square := Square{
		File: int(s[0]) - 'a',
		Rank: int(s[1]) - '1',
	}

	if !square.Valid() {
		return NoSquare, fmt.Errorf("epd: invalid square %q", s)
	}

	return square, nil
}

// Valid checks if the square lies on the board.
func (square Square) Valid() bool {
	return square.File >= 0 && square.File < 8 &&
		square.Rank >= 0 && square.Rank < 8
}

// FileString returns the file letter of the square.
func (square Square) FileString() string {
	return string(rune('a' + square.File))
}

// RankString returns the rank digit of the square.
func (square Square) RankString() string {
	return string(rune('1' + square.Rank))
}

func (square Square) String() string {
	if !square.Valid() {
		return "-"
	}

	return square.FileString() + square.RankString()
}
