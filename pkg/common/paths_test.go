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

package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFailuresFile(t *testing.T) {
	tests := map[string]string{
		"suites/wac.epd":   filepath.Join("suites", "wac.failed.epd"),
		"bk":               "bk.failed.epd",
		"/tmp/sts/sts1.epd": filepath.Join("/tmp/sts", "sts1.failed.epd"),
	}

	for suite, want := range tests {
		if got := FailuresFile(suite); got != want {
			t.Errorf("FailuresFile(%q) = %q, want %q", suite, got, want)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "suite.epd")

	if Exists(file) {
		t.Errorf("%s should not exist", file)
	}

	if err := os.WriteFile(file, nil, FilePermissions); err != nil {
		t.Fatal(err)
	}

	if !Exists(file) {
		t.Errorf("%s should exist", file)
	}
}
