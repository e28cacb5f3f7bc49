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

// Package cmd implements the ra command-line tool: random access and
// substring extraction over a grammar or LZ-End index file, mirroring
// badger/cmd's cobra command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var variant, indexPath string
var delta uint64

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "ra",
	Short:             "Random access over compressed text indexes.",
	PersistentPreRunE: validateRootCmdArgs,
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main and only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&variant, "variant", "slg",
		`Index format to read: "slg" (grammar tuple file) or "lzend" (LZ-End parse file).`)
	RootCmd.PersistentFlags().Uint64Var(&delta, "delta", 0,
		"Sample spacing for the slg variant; defaults to slg.Delta512 when 0.")
}

func validateRootCmdArgs(cmd *cobra.Command, args []string) error {
	if strings.HasPrefix(cmd.Use, "help") {
		return nil
	}
	switch variant {
	case "slg", "lzend":
	default:
		return errors.New(`--variant must be "slg" or "lzend"`)
	}
	return nil
}
