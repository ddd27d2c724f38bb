// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exampleForCanonicalizeCmd = `
  jcs canonicalize payload.json
  cat payload.yaml | jcs canonicalize -f yaml -o payload.json
  jcs canonicalize --newline --reject-duplicates config.toml
`

func newCanonicalizeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "canonicalize [FILE]",
		Aliases: []string{"c14n"},
		Short:   "Print the canonical JSON form of a document",
		Long:    "Read a JSON, YAML, or TOML document from FILE or standard input and write its RFC 8785 canonical JSON form.",
		Example: exampleForCanonicalizeCmd,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings(v)
			out, _, err := canonicalInput(cmd, args, s)
			if err != nil {
				return err
			}
			if s.Newline {
				out = append(out, '\n')
			}
			return writeOutput(cmd, s.Output, out)
		},
	}
	cmd.Flags().StringP("output", "o", "", "write to this file instead of standard output")
	cmd.Flags().Bool("newline", false, "append a newline to the output")
	return cmd
}
