// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var supportedAlgorithms = map[string]func() hash.Hash{
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

var exampleForDigestCmd = `
  jcs digest payload.json
  jcs digest -a sha512 payload.yaml
`

func newDigestCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "digest [FILE]",
		Short:   "Print the hash of the canonical form of a document",
		Long:    "Hash the RFC 8785 canonical JSON form of a document, so that equal data has equal digests regardless of formatting.",
		Example: exampleForDigestCmd,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings(v)
			newHash, ok := supportedAlgorithms[s.Algorithm]
			if !ok {
				return errors.Errorf("unsupported hash algorithm %q", s.Algorithm)
			}
			out, name, err := canonicalInput(cmd, args, s)
			if err != nil {
				return err
			}
			h := newHash()
			h.Write(out)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%x  %s\n", h.Sum(nil), name)
			return errors.Wrap(err, "failed to write output")
		},
	}
	cmd.Flags().StringP("algorithm", "a", "sha256", "hash algorithm: sha256, sha384, or sha512")
	return cmd
}
