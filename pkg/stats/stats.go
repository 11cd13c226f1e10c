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

package stats

import "math"

// SuccessRate returns the percentage of successes among the given number
// of tests, rounded to two decimal places. It is zero when there were no
// tests.
func SuccessRate(successes, tests int) float64 {
	if tests == 0 {
		return 0
	}

	return math.Round(10000*float64(successes)/float64(tests)) / 100
}

// Interval returns the Wilson score interval, as percentages, of the
// success rate at the given confidence level, e.g. 0.95.
func Interval(successes, tests int, confidence float64) (lower float64, upper float64) {
	if tests == 0 {
		return 0, 100
	}

	n := float64(tests)
	p := float64(successes) / n
	z := phiInv(1 - (1-confidence)/2)

	center := p + z*z/(2*n)
	spread := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))
	denominator := 1 + z*z/n

	lower = math.Max(0, (center-spread)/denominator)
	upper = math.Min(1, (center+spread)/denominator)
	return 100 * lower, 100 * upper
}

// phiInv is the quantile function of the standard normal distribution.
func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
