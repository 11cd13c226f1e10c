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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const FilePermissions = 0644

var (
	// Directory is where epdtest looks for its configuration.
	Directory = filepath.Join(xdg.ConfigHome, "epdtest")

	// ConfigFile is the configuration file used when none is given.
	ConfigFile = filepath.Join(Directory, "config.yaml")
)

// Exists checks if a file exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// FailuresFile returns the path of the file the failed records of the
// given suite are written to: <suite-name>.failed.epd next to the suite.
func FailuresFile(suite string) string {
	name := strings.TrimSuffix(filepath.Base(suite), filepath.Ext(suite))
	return filepath.Join(filepath.Dir(suite), name+".failed.epd")
}
