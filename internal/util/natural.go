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

package util

import (
	"regexp"
	"sort"
	"strconv"
)

var chunks = regexp.MustCompile(`\d+|\D+`)

// NaturalLess reports whether a sorts before b in natural order, where
// runs of digits are compared by their numeric value, so that "Hash2"
// comes before "Hash10".
func NaturalLess(a, b string) bool {
	chunksA := chunks.FindAllString(a, -1)
	chunksB := chunks.FindAllString(b, -1)

	for i := 0; i < len(chunksA) && i < len(chunksB); i++ {
		x, y := chunksA[i], chunksB[i]
		if x == y {
			continue
		}

		numX, errX := strconv.Atoi(x)
		numY, errY := strconv.Atoi(y)
		if errX == nil && errY == nil && numX != numY {
			return numX < numY
		}

		return x < y
	}

	return len(chunksA) < len(chunksB)
}

// SortedKeys returns the keys of the map in natural order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return NaturalLess(keys[i], keys[j])
	})

	return keys
}
