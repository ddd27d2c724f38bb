// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-json-experiment/jcs"
)

// gitVersion is set at build time with
// -ldflags "-X github.com/go-json-experiment/jcs/cmd/jcs/cmd.gitVersion=v1.2.3".
var gitVersion = "v0.0.0-dev"

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Compiler  string `json:"compiler" yaml:"compiler"`
	Platform  string `json:"platform" yaml:"platform"`
}

func getVersionInfo() versionInfo {
	return versionInfo{
		Version:   gitVersion,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func NewVersionCmd() *cobra.Command {
	var (
		shortPrint bool
		output     string
	)
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version info",
		Args:    cobra.NoArgs,
		Example: `jcs version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return errors.New("output format must be yaml or json")
			}
			if shortPrint {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), gitVersion)
				return err
			}

			var (
				marshalled []byte
				err        error
			)
			info := getVersionInfo()
			switch output {
			case "yaml":
				marshalled, err = yaml.Marshal(&info)
			case "json":
				marshalled, err = jcs.Marshal(&info)
				marshalled = append(marshalled, '\n')
			}
			if err != nil {
				return errors.Wrapf(err, "failed to marshal %s", output)
			}
			_, err = cmd.OutOrStdout().Write(marshalled)
			return err
		},
	}
	versionCmd.Flags().BoolVar(&shortPrint, "short", false, "If true, print just the version number.")
	versionCmd.Flags().StringVarP(&output, "output", "o", "yaml", "choose `yaml` or `json` format to print version info")
	return versionCmd
}
