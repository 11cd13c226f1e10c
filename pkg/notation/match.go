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
	"strings"

	"laptudirm.com/x/epdtest/pkg/epd"
)

// NormalizeTarget reduces a target move from an EPD record to the form
// generated by SAN: check and mate markers (including the old ++ mate
// suffix) are removed and O-O castling is written with zeros.
func NormalizeTarget(target string) string {
	target = strings.TrimSpace(target)

	target = strings.TrimSuffix(target, "#")
	target = strings.TrimSuffix(target, "+")
	target = strings.TrimSuffix(target, "+")

	switch target {
	case "O-O":
		return "0-0"
	case "O-O-O":
		return "0-0-0"
	}

	return target
}

// Matches reports whether the move, with the given SAN, is one of the
// targets. Targets with a file, rank, or square disambiguator match if
// the disambiguator agrees with the move's source square. The first
// matching target is returned.
func Matches(targets []string, move Move, san string) (string, bool) {
	from := move.From.String()

	for _, target := range targets {
		reduced := NormalizeTarget(target)

		if reduced == san {
			return target, true
		}

		if stripped, ok := stripDisambiguator(reduced, from); ok && stripped == san {
			return target, true
		}
	}

	return "", false
}

// stripDisambiguator removes the disambiguating file, rank, or square
// from a piece move, provided it agrees with the source square from.
func stripDisambiguator(target, from string) (string, bool) {
	// Single file or rank: Nbd7, R1e2, Nbxd7.
	if len(target) > 3 && target[1] != 'x' &&
		(target[2] == 'x' || len(target) == 4) &&
		strings.IndexByte(from, target[1]) >= 0 {
		return target[:1] + target[2:], true
	}

	// Full square: Qh4e1, Qh4xe1.
	if len(target) >= 5 && strings.IndexByte("NBRQK", target[0]) >= 0 &&
		target[1:3] == from && (target[3] == 'x' || len(target) == 5) {
		return target[:1] + target[3:], true
	}

	return "", false
}

// Judgement is the outcome of comparing an engine's move to a Record.
type Judgement struct {
	Move Move
	SAN  string

	// Target is the record's move matched by the engine move, if any.
	Target string

	Success bool
}

// Judge decides whether the engine's coordinate move passes the record's
// test. For bm records the move has to match one of the targets, for am
// records it must match none of them. An engine move which can't be read
// fails either way, and is returned alongside ErrBadMove.
func Judge(record *epd.Record, engineMove string) (Judgement, error) {
	move, err := ParseMove(engineMove)
	if err != nil {
		return Judgement{}, err
	}

	san, err := SAN(record.Position, move)
	if err != nil {
		return Judgement{Move: move}, err
	}

	target, matched := Matches(record.Moves, move, san)

	return Judgement{
		Move:    move,
		SAN:     san,
		Target:  target,
		Success: matched != record.Avoid,
	}, nil
}
