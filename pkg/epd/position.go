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
	"fmt"
	"strings"
)

// Piece is a piece letter taken from a board diagram. Upper-case letters
// are white pieces and lower-case letters are black pieces.
type Piece byte

// NoPiece represents an empty square.
const NoPiece Piece = 0

// Kind returns the piece's upper-case letter, irrespective of colour.
func (piece Piece) Kind() byte {
	if piece >= 'a' && piece <= 'z' {
		return byte(piece) - 'a' + 'A'
	}

	return byte(piece)
}

func (piece Piece) IsPawn() bool { return piece.Kind() == 'P' }
func (piece Piece) IsKing() bool { return piece.Kind() == 'K' }

func (piece Piece) String() string {
	if piece == NoPiece {
		return ""
	}

	return string(rune(piece))
}

// Position is a parsed EPD position. It only knows what is needed to turn
// a coordinate move into notation, and is never modified after parsing.
type Position struct {
	// ranks holds the board diagram's ranks, rank 8 first.
	ranks [8]string

	SideToMove string
	Castling   string
	EnPassant  Square

	// Move counters, empty if the record didn't carry them.
	HalfMove, FullMove string
}

// NewPosition parses the four core fields of an EPD position.
func NewPosition(diagram, side, castling, enPassant string) (*Position, error) {
	var position Position

	ranks := strings.Split(diagram, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("epd: diagram %q has %d ranks", diagram, len(ranks))
	}

	for i, rank := range ranks {
		if err := checkRank(rank); err != nil {
			return nil, fmt.Errorf("epd: diagram %q: %w", diagram, err)
		}

		position.ranks[i] = rank
	}

	switch side {
	case "w", "b":
		position.SideToMove = side
	default:
		return nil, fmt.Errorf("epd: invalid side to move %q", side)
	}

	position.Castling = castling

	position.EnPassant = NoSquare
	if enPassant != "-" {
		square, err := ParseSquare(enPassant)
		if err != nil {
			return nil, err
		}

		position.EnPassant = square
	}

	return &position, nil
}

func checkRank(rank string) error {
	files := 0
	for _, char := range rank {
		switch {
		case char >= '1' && char <= '8':
			files += int(char - '0')
		case strings.ContainsRune("pnbrqkPNBRQK", char):
			files++
		default:
			return fmt.Errorf("invalid character %q in rank %q", char, rank)
		}
	}

	if files != 8 {
		return fmt.Errorf("rank %q covers %d files", rank, files)
	}

	return nil
}

// PieceAt returns the piece on the given square, or NoPiece if the square
// is empty or lies outside the board.
func (position *Position) PieceAt(square Square) Piece {
	if !square.Valid() {
		return NoPiece
	}

	file := 0
	for _, char := range position.ranks[7-square.Rank] {
		if char >= '1' && char <= '8' {
			file += int(char - '0')
			if file > square.File {
				// square lies inside this run of empty squares
				return NoPiece
			}

			continue
		}

		if file == square.File {
			return Piece(char)
		}

		file++
	}

	return NoPiece
}

// Diagram returns the board diagram the position was parsed from.
func (position *Position) Diagram() string {
	return strings.Join(position.ranks[:], "/")
}

// FEN returns the position as a six field FEN string. Missing move
// counters are filled with their starting values.
func (position *Position) FEN() string {
	halfMove, fullMove := position.HalfMove, position.FullMove
	if halfMove == "" {
		halfMove = "0"
	}

	if fullMove == "" {
		fullMove = "1"
	}

	castling := position.Castling
	if castling == "" {
		castling = "-"
	}

	return strings.Join([]string{
		position.Diagram(),
		position.SideToMove,
		castling,
		position.EnPassant.String(),
		halfMove, fullMove,
	}, " ")
}
