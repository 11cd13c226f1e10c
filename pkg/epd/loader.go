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
	"bufio"
	"errors"
	"io"
	"strings"
)

// Loader reads Records from an EPD suite one line at a time. Blank lines
// are skipped. A Loader can't be rewound.
type Loader struct {
	scanner *bufio.Scanner
	line    int
}

// NewLoader returns a Loader which reads the suite from the given reader.
func NewLoader(r io.Reader) *Loader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	return &Loader{scanner: scanner}
}

// Next returns the next Record in the suite. It returns io.EOF once the
// suite is exhausted. A malformed line is returned as a *ParseError, and
// the following call continues with the next line.
func (loader *Loader) Next() (*Record, error) {
	for loader.scanner.Scan() {
		loader.line++

		text := loader.scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		record, err := Parse(text)
		if err != nil {
			return nil, &ParseError{Line: loader.line, Text: text, Err: err}
		}

		return record, nil
	}

	if err := loader.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

// Line returns the line number of the last line read.
func (loader *Loader) Line() int {
	return loader.line
}

// LoadAll reads every Record in the suite. Malformed lines are collected
// and returned alongside the well-formed Records.
func LoadAll(r io.Reader) ([]*Record, []*ParseError, error) {
	loader := NewLoader(r)

	var records []*Record
	var malformed []*ParseError
	for {
		record, err := loader.Next()

		var parseErr *ParseError
		switch {
		case err == nil:
			records = append(records, record)
		case errors.Is(err, io.EOF):
			return records, malformed, nil
		case errors.As(err, &parseErr):
			malformed = append(malformed, parseErr)
		default:
			return records, malformed, err
		}
	}
}
