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

package notation

import (
	"errors"
	"fmt"
	"strings"

	"laptudirm.com/x/epdtest/pkg/epd"
)

// ErrBadMove is returned for engine moves which are not well-formed
// coordinate moves in the given position.
var ErrBadMove = errors.New("notation: bad engine move")

// Move is a move in coordinate notation, as sent by engines: the source
// square, the target square, and an optional promotion piece.
type Move struct {
	From, To  epd.Square
	Promotion byte // upper-case piece letter, 0 if not a promotion
}

// ParseMove parses a four or five character coordinate move like e2e4 or
// e7e8q.
func ParseMove(s string) (Move, error) {
	var move Move

	if len(s) != 4 && len(s) != 5 {
		return move, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	var err error
	if move.From, err = epd.ParseSquare(s[:2]); err != nil {
		return move, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	if move.To, err = epd.ParseSquare(s[2:4]); err != nil {
		return move, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	if len(s) == 5 {
		promotion := strings.ToUpper(s[4:])
		if !strings.Contains("NBRQ", promotion) {
			return move, fmt.Errorf("%w: %q has invalid promotion", ErrBadMove, s)
		}

		move.Promotion = promotion[0]
	}

	return move, nil
}

func (move Move) String() string {
	s := move.From.String() + move.To.String()
	if move.Promotion != 0 {
		s += strings.ToLower(string(move.Promotion))
	}

	return s
}
