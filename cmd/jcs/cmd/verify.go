// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-json-experiment/jcs"
)

// errNotCanonical reports valid JSON that is not in canonical form.
var errNotCanonical = errors.New("not in canonical form")

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check that a JSON document is already in canonical form",
		Long: `Exit with a non-zero status unless the JSON document in FILE or standard input
is byte for byte identical to its RFC 8785 canonical form.
With --newline, a single trailing newline is permitted.`,
		Example: "  jcs verify signed.json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings(v)
			r, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer r.Close()
			if format, err := resolveFormat(s.InputFormat, name); err != nil {
				return err
			} else if format != formatJSON {
				return errors.Errorf("cannot verify %s input, only JSON is canonical", format)
			}

			in, err := io.ReadAll(r)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", name)
			}
			if s.Newline {
				in = bytes.TrimSuffix(in, []byte("\n"))
			}
			out, err := jcs.Canonicalize(in, jcs.RejectDuplicateNames(s.RejectDuplicates))
			if err != nil {
				return errors.Wrapf(err, "failed to canonicalize %s", name)
			}
			if !bytes.Equal(in, out) {
				logrus.Debugf("canonical form of %s:\n%s", name, out)
				return errors.Wrap(errNotCanonical, name)
			}
			logrus.Infof("%s is in canonical form", name)
			return nil
		},
	}
	cmd.Flags().Bool("newline", false, "permit a single trailing newline")
	return cmd
}
