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
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformedRecord is wrapped by every error returned for an EPD line
// which can't be turned into a Record.
var ErrMalformedRecord = errors.New("malformed epd record")

// ParseError describes a malformed EPD line.
type ParseError struct {
	Line int    // line number in the suite, 0 if unknown
	Text string // the offending line
	Err  error
}

func (err *ParseError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("epd: line %d: %v", err.Line, err.Err)
	}

	return fmt.Sprintf("epd: %v", err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func malformed(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedRecord}, a...)...)
}

// Record is a single test case from an EPD suite.
type Record struct {
	// Line is the raw text of the record, as found in the suite.
	Line string

	ID       string
	Position *Position

	// Moves holds the targets of the bm or am operation, in the order
	// they appear on the line, as written (possibly abbreviated) SAN.
	Moves []string

	// Avoid is set for am records, where the engine must not play any
	// of the target moves.
	Avoid bool
}

// Opcode returns the name of the record's move operation.
func (record *Record) Opcode() string {
	if record.Avoid {
		return "am"
	}

	return "bm"
}

// Parse parses a single EPD line into a Record. Every error it returns
// wraps ErrMalformedRecord.
func Parse(line string) (*Record, error) {
	record := Record{Line: strings.TrimRight(line, "\r\n")}

	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, malformed("expected at least 4 position fields, found %d", len(fields))
	}

	position, err := NewPosition(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	// The half-move clock and full-move counter are optional in EPD.
	positionFields := 4
	if len(fields) > 4 && isNumeric(fields[4]) {
		if len(fields) < 6 || !isNumeric(fields[5]) {
			return nil, malformed("half-move clock %q without a full-move number", fields[4])
		}

		position.HalfMove, position.FullMove = fields[4], fields[5]
		positionFields = 6
	}

	record.Position = position

	operations, err := parseOperations(skipFields(line, positionFields))
	if err != nil {
		return nil, err
	}

	var hasID, hasBest, hasAvoid bool
	for _, operation := range operations {
		switch operation.opcode {
		case "id":
			if len(operation.operands) == 0 {
				return nil, malformed("id operation without an operand")
			}

			record.ID = strings.Join(operation.operands, " ")
			hasID = true

		case "bm", "am":
			if len(operation.operands) == 0 {
				return nil, malformed("%s operation without any moves", operation.opcode)
			}

			record.Moves = operation.operands
			record.Avoid = operation.opcode == "am"

			if record.Avoid {
				hasAvoid = true
			} else {
				hasBest = true
			}
		}
	}

	switch {
	case !hasID:
		return nil, malformed("missing id operation")
	case !hasBest && !hasAvoid:
		return nil, malformed("missing bm or am operation")
	case hasBest && hasAvoid:
		return nil, malformed("both bm and am operations present")
	}

	return &record, nil
}

type operation struct {
	opcode   string
	operands []string
}

// parseOperations parses the operation section of an EPD line. Operands
// are whitespace separated, may be double-quoted, and each operation ends
// at a semicolon or at the end of the line.
func parseOperations(s string) ([]operation, error) {
	var operations []operation

	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return operations, nil
		}

		var op operation
		op.opcode, s = nextWord(s)

		for {
			s = strings.TrimLeftFunc(s, unicode.IsSpace)
			if s == "" {
				break
			}

			if s[0] == ';' {
				s = s[1:]
				break
			}

			if s[0] == '"' {
				end := strings.IndexByte(s[1:], '"')
				if end < 0 {
					return nil, malformed("unterminated string in %s operation", op.opcode)
				}

				op.operands = append(op.operands, s[1:end+1])
				s = s[end+2:]
				continue
			}

			var operand string
			operand, s = nextWord(s)
			op.operands = append(op.operands, operand)
		}

		if op.opcode != "" {
			operations = append(operations, op)
		}
	}
}

// nextWord splits s at the first whitespace character or semicolon.
func nextWord(s string) (string, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})

	if end < 0 {
		return s, ""
	}

	return s[:end], s[end:]
}

// skipFields returns what remains of s after its first n fields.
func skipFields(s string, n int) string {
	for i := 0; i < n; i++ {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			return ""
		}

		s = s[end:]
	}

	return s
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}
