// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-json-experiment/jcs"
)

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"

	stdinName = "-"
)

// openInput opens the file named by the only argument,
// or standard input if there is no argument or it is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		return io.NopCloser(cmd.InOrStdin()), stdinName, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open input")
	}
	return f, args[0], nil
}

// resolveFormat picks the input format, guessing from the file
// extension if the format is auto.
func resolveFormat(format, name string) (string, error) {
	switch format = strings.ToLower(format); format {
	case formatJSON, formatYAML, formatTOML:
		return format, nil
	case formatAuto, "":
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			return formatYAML, nil
		case ".toml":
			return formatTOML, nil
		default:
			return formatJSON, nil
		}
	default:
		return "", errors.Errorf("unsupported input format %q, the possible values are %v",
			format, []string{formatAuto, formatJSON, formatYAML, formatTOML})
	}
}

// canonicalInput reads the document named by args and returns it in canonical form.
// It also returns the display name of the input.
func canonicalInput(cmd *cobra.Command, args []string, s settings) ([]byte, string, error) {
	r, name, err := openInput(cmd, args)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	format, err := resolveFormat(s.InputFormat, name)
	if err != nil {
		return nil, name, err
	}
	logrus.Debugf("canonicalizing %s as %s", name, format)

	opts := jcs.RejectDuplicateNames(s.RejectDuplicates)
	var out []byte
	switch format {
	case formatJSON:
		var buf bytes.Buffer
		err = jcs.PipeWrite(&buf, r, opts)
		out = buf.Bytes()
	case formatYAML:
		var v any
		if err := yaml.NewDecoder(r).Decode(&v); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, name, errors.Wrapf(err, "failed to decode YAML from %s", name)
		}
		out, err = jcs.Marshal(v, opts)
	case formatTOML:
		var v map[string]any
		if _, err := toml.NewDecoder(r).Decode(&v); err != nil {
			return nil, name, errors.Wrapf(err, "failed to decode TOML from %s", name)
		}
		out, err = jcs.Marshal(v, opts)
	}
	if err != nil {
		return nil, name, errors.Wrapf(err, "failed to canonicalize %s", name)
	}
	logrus.Debugf("canonical form of %s is %d bytes", name, len(out))
	return out, name, nil
}

// writeOutput writes b to the named file, or to standard output if name is empty.
func writeOutput(cmd *cobra.Command, name string, b []byte) error {
	if name == "" || name == stdinName {
		_, err := cmd.OutOrStdout().Write(b)
		return errors.Wrap(err, "failed to write output")
	}
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	logrus.Debugf("wrote %d bytes to %s", len(b), name)
	return nil
}
