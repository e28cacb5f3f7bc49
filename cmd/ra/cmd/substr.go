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
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(substrCmd)
}

var substrCmd = &cobra.Command{
	Use:   "substr <path> <i> <l>",
	Short: "Print T[i..i+l).",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("parse i: %w", err)
		}
		l, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("parse l: %w", err)
		}
		a, err := openAccessor(args[0])
		if err != nil {
			return err
		}
		buf, err := a.Substr(nil, i, l)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(buf, '\n'))
		return err
	},
}
