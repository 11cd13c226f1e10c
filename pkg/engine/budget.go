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

package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseBudget parses a per-position search time. A bare number is read as
// seconds, anything else as a Go duration like 1500ms.
func ParseBudget(budget_str string) (time.Duration, error) {
	budget_str = strings.TrimSpace(budget_str)

	var budget time.Duration
	if secs, err := strconv.ParseFloat(budget_str, 64); err == nil {
		budget = time.Millisecond * time.Duration(secs*1000)
	} else {
		budget, err = time.ParseDuration(budget_str)
		if err != nil {
			return 0, fmt.Errorf("parse budget: invalid search time %q", budget_str)
		}
	}

	if budget <= 0 {
		return 0, errors.New("parse budget: search time must be positive")
	}

	return budget, nil
}
