/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scoir/canis-wallet/pkg/config"
	"github.com/scoir/canis-wallet/pkg/template"
)

var logger = log.New("canis-wallet/proofctl")

var cfgFile string

var conf config.Config
var resolver template.Resolver

// newResolver is replaced in tests.
var newResolver = func(c config.Config) (template.Resolver, error) {
	return c.TemplateResolver()
}

var rootCmd = &cobra.Command{
	Use:   "canis-proofctl",
	Short: "canis-proofctl builds proof requests and reads presentations.",
	Long: `canis-proofctl builds proof requests and reads presentations.

 It resolves proof request templates, turns them or presentation definitions into AnonCreds
 proof requests, and groups the attributes a holder shared by credential.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/canis-wallet/canis-wallet-config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: critical, error, warning, info or debug")
	rootCmd.PersistentFlags().String("templates-file", "", "load proof request templates from this YAML or JSON bundle")
	rootCmd.PersistentFlags().String("templates-url", "", "fetch proof request templates from this base url")
	rootCmd.PersistentFlags().Bool("dev-restrictions", false, "also accept credentials matching development restrictions")
}

// initConfig reads in config file, ENV variables and flags.
func initConfig(cmd *cobra.Command, _ []string) error {
	vp := &config.ViperConfigProvider{Flags: cmd.Root().PersistentFlags()}

	var err error
	conf, err = vp.Load(cfgFile)
	if err != nil {
		return errors.Wrap(err, "unable to read config")
	}

	level, err := log.ParseLevel(conf.LogLevel())
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", conf.LogLevel())
	}

	log.SetLevel("", level)
	logger.Debugf("log level set to %s", conf.LogLevel())

	resolver, err = newResolver(conf)
	if err != nil {
		return errors.Wrap(err, "unable to load proof request templates")
	}

	return nil
}

func devRestrictions() (bool, error) {
	tc, err := conf.Templates()
	if err != nil {
		return false, err
	}

	return tc.DevRestrictions, nil
}

func readJSON(file string, v interface{}) error {
	d, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", file)
	}

	return errors.Wrapf(json.Unmarshal(d, v), "invalid json in %s", file)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to marshal output")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(d))

	return err
}
