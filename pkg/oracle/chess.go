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

// Package oracle checks engine moves against the rules of chess.
package oracle

import (
	"fmt"
	"strings"

	"laptudirm.com/x/mess/pkg/board"
	"laptudirm.com/x/mess/pkg/board/move"
	"laptudirm.com/x/mess/pkg/formats/fen"
)

// ChessOracle knows the legal moves of a single position.
type ChessOracle struct {
	board *board.Board
	moves []move.Move
}

// New creates an oracle for the given six field FEN position.
func New(fenstr string) (oracle *ChessOracle, err error) {
	// mess panics on positions it can't make sense of
	defer func() {
		if r := recover(); r != nil {
			oracle, err = nil, fmt.Errorf("oracle: invalid position %q: %v", fenstr, r)
		}
	}()

	oracle = &ChessOracle{}
	oracle.board = board.New(board.FEN(fen.FromString(fenstr)))
	oracle.moves = oracle.board.GenerateMoves(false)
	return oracle, nil
}

// IsLegal checks if the coordinate move is legal in the position.
func (oracle *ChessOracle) IsLegal(mov_str string) bool {
	for _, mov := range oracle.moves {
		if strings.EqualFold(mov.String(), mov_str) {
			return true
		}
	}

	return false
}

// Moves returns the legal moves of the position in coordinate notation.
func (oracle *ChessOracle) Moves() []string {
	moves := make([]string, len(oracle.moves))
	for i, mov := range oracle.moves {
		moves[i] = mov.String()
	}

	return moves
}

// IsLegal checks if the coordinate move is legal in the FEN position.
func IsLegal(fenstr, mov_str string) (bool, error) {
	oracle, err := New(fenstr)
	if err != nil {
		return false, err
	}

	return oracle.IsLegal(mov_str), nil
}
