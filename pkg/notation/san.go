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
	"fmt"
	"strings"

	"laptudirm.com/x/epdtest/pkg/epd"
)

// castles maps the king's coordinate moves while castling to their SAN.
var castles = map[string]string{
	"e1g1": "0-0", "e8g8": "0-0",
	"e1c1": "0-0-0", "e8c8": "0-0-0",
}

// SAN converts a coordinate move into the shortest form of Standard
// Algebraic Notation it can have without disambiguation: it never adds
// the source file or rank of a piece, or check and mate suffixes.
func SAN(position *epd.Position, move Move) (string, error) {
	piece := position.PieceAt(move.From)
	if piece == epd.NoPiece {
		return "", fmt.Errorf("%w: no piece on %s", ErrBadMove, move.From)
	}

	// En-passant captures land on an empty square.
	if piece.IsPawn() && move.To == position.EnPassant {
		return move.From.FileString() + "x" + move.To.String(), nil
	}

	if piece.IsKing() {
		if san, found := castles[move.From.String()+move.To.String()]; found {
			return san, nil
		}
	}

	var san strings.Builder

	prefix := string(piece.Kind())
	if piece.IsPawn() {
		prefix = ""
	}

	if position.PieceAt(move.To) != epd.NoPiece {
		if piece.IsPawn() {
			// pawn captures are prefixed with the source file
			prefix = move.From.FileString()
		}

		prefix += "x"
	}

	san.WriteString(prefix)
	san.WriteString(move.To.String())

	if move.Promotion != 0 {
		san.WriteByte('=')
		san.WriteByte(move.Promotion)
	}

	return san.String(), nil
}
