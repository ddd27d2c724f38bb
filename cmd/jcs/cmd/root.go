// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the jcs tool.
package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "JCS"

type rootOpts struct {
	cfgFile string
	debug   bool
}

var longRootCmdDescription = `jcs converts JSON, YAML, and TOML documents into the JSON
Canonicalization Scheme (RFC 8785), where equal data always has identical bytes.

Every flag may also be set with an environment variable named after the flag
with a JCS_ prefix (e.g., JCS_REJECT_DUPLICATES=true) or in a config file.
`

// NewRootCmd returns the jcs command with all of its subcommands.
// Settings are resolved from flags, then JCS_* environment variables,
// then the config file.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var opts rootOpts

	rootCmd := &cobra.Command{
		Use:           "jcs",
		Short:         "Canonicalize JSON per RFC 8785",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v, &opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file of jcs tool (default is $HOME/.jcs.yaml)")
	pf.BoolVarP(&opts.debug, "debug", "d", false, "turn on debug mode")
	pf.StringP("input-format", "f", formatAuto, "format of the input: auto, json, yaml, or toml")
	pf.Bool("reject-duplicates", false, "fail on duplicate object names instead of keeping the first")

	rootCmd.AddCommand(newCanonicalizeCmd(v), newDigestCmd(v), newVerifyCmd(v), NewVersionCmd())
	return rootCmd
}

// Execute runs the jcs command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("jcs-%s: %v", gitVersion, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set,
// and binds the flags of the command being run.
func initConfig(cmd *cobra.Command, v *viper.Viper, opts *rootOpts) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", opts.cfgFile)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".jcs" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(".jcs")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return errors.Wrap(err, "failed to read config file")
			}
		}
	}

	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if opts.debug || v.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if f := v.ConfigFileUsed(); f != "" {
		logrus.Debugf("using config file %s", f)
	}
	return nil
}

// settings are the options shared by the commands that read a document.
type settings struct {
	InputFormat      string
	Output           string
	Algorithm        string
	RejectDuplicates bool
	Newline          bool
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		InputFormat:      v.GetString("input-format"),
		Output:           v.GetString("output"),
		Algorithm:        v.GetString("algorithm"),
		RejectDuplicates: v.GetBool("reject-duplicates"),
		Newline:          v.GetBool("newline"),
	}
}
