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

package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/epdtest/pkg/epd"
)

func Check() *cobra.Command {
	return &cobra.Command{
		Use:   "check [suite...]",
		Short: "Check EPD suites for malformed records",
		Long: heredoc.Doc(`
			Parse EPD suites without running an engine, and list every record
			which would be skipped by a suite run. The suites are given as
			arguments or with --file.
		`),
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				args = append(args, file)
			}

			if len(args) == 0 {
				return usage(cmd, fmt.Errorf("%w: no epd suite given", ErrConfiguration))
			}

			malformed := 0
			for _, path := range args {
				n, err := check(cmd, path)
				if err != nil {
					return err
				}

				malformed += n
			}

			if malformed > 0 {
				return fmt.Errorf("%d malformed records", malformed)
			}

			return nil
		},
	}
}

// check reports the malformed records of the suite at path.
func check(cmd *cobra.Command, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	records, malformed, err := epd.LoadAll(file)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	avoid := 0
	for _, record := range records {
		if record.Avoid {
			avoid++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d records (%d bm, %d am), %d malformed\n",
		path, len(records), len(records)-avoid, avoid, len(malformed))

	for _, err := range malformed {
		fmt.Fprintf(out, "  %s\n", failure(err))
	}

	return len(malformed), nil
}
