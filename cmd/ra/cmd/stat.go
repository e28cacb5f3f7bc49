/*
 * Copyright 2024 The ra Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(statCmd)
}

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Print source length, component count, and on-disk size.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		a, err := openAccessor(path)
		if err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		label, count := componentCount(a)
		fmt.Printf("variant: %s\n", variant)
		fmt.Printf("source_length: %d\n", a.SourceLength())
		fmt.Printf("%s: %d\n", label, count)
		fmt.Printf("size: %s\n", humanize.Bytes(uint64(info.Size())))
		return nil
	},
}
