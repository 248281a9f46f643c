/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"net/http"
	"strings"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scoir/canis-wallet/pkg/template"
)

var logger = log.New("canis-wallet/config")

const (
	defaultConfigName    = "canis-wallet-config"
	defaultTemplatesName = "canis-wallet-templates-config"
	envPrefix            = "CANIS_WALLET"
)

// Flags that override config keys when set on the command line.
var flagKeys = map[string]string{
	"log.level":                 "log-level",
	"templates.file":            "templates-file",
	"templates.remote.url":      "templates-url",
	"templates.devRestrictions": "dev-restrictions",
}

// Option configures the config...
type Option func(opts *vpr)

// WithFile sets the file merged by a With* call.
func WithFile(file string) Option {
	return func(opts *vpr) {
		opts.file = file
	}
}

type ViperConfigProvider struct {
	DefaultConfigName string
	Flags             *pflag.FlagSet
}

type vpr struct {
	*viper.Viper
	file string
}

// Load reads file, or the default config from the standard locations when file is empty. A
// missing default config is not an error.
func (r *ViperConfigProvider) Load(file string) (Config, error) {
	config := &vpr{
		viper.New(),
		"",
	}

	if file != "" {
		config.SetConfigFile(file)
	} else {
		name := r.DefaultConfigName
		if name == "" {
			name = defaultConfigName
		}

		config.SetConfigType("yaml")
		config.AddConfigPath("/etc/canis-wallet/")
		config.AddConfigPath("./deploy/")
		config.SetConfigName(name)
	}

	config.SetDefault("log.level", "info")
	config.SetDefault("templates.remote.retries", 3)
	config.SetDefault("templates.remote.timeout", "10s")

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	flags := r.Flags
	if flags == nil {
		flags = pflag.CommandLine
	}

	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := config.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag %s", name)
			}
		}
	}

	err := config.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			logger.Debugf("no config file found, using defaults")
			return config, nil
		}

		return nil, errors.Wrapf(err, "failed to read config %s", config.ConfigFileUsed())
	}

	return config, nil
}

func (r *vpr) WithTemplates(opts ...Option) (Config, error) {
	for _, opt := range opts {
		opt(r)
	}

	return r.with(r.file, defaultTemplatesName)
}

func (r *vpr) with(file, defawlt string) (Config, error) {
	if file != "" {
		return r.withFile(r.SetConfigFile, file)
	}

	return r.withFile(r.SetConfigName, defawlt)
}

func (r *vpr) withFile(setter func(name string), file string) (Config, error) {
	setter(file)

	err := r.MergeInConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to merge %s", r.ConfigFileUsed())
	}

	return r, nil
}

func (r *vpr) LogLevel() string {
	return r.GetString("log.level")
}

func (r *vpr) Templates() (*TemplatesConfig, error) {
	tc := &TemplatesConfig{Remote: &RemoteConfig{}}

	err := r.UnmarshalKey("templates", tc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load key templates")
	}

	// UnmarshalKey only sees values set under the templates tree, not env or flag overrides.
	tc.File = r.Viper.GetString("templates.file")
	tc.DevRestrictions = r.Viper.GetBool("templates.devRestrictions")
	tc.Remote.URL = r.Viper.GetString("templates.remote.url")
	tc.Remote.Retries = uint64(r.Viper.GetInt64("templates.remote.retries"))
	tc.Remote.Timeout = r.Viper.GetDuration("templates.remote.timeout")

	return tc, nil
}

// TemplateResolver builds the template source the templates config selects.
func (r *vpr) TemplateResolver() (template.Resolver, error) {
	tc, err := r.Templates()
	if err != nil {
		return nil, err
	}

	if tc.Remote.URL != "" {
		logger.Infof("using proof request templates from %s", tc.Remote.URL)

		return template.NewRemoteResolver(tc.Remote.URL,
			template.WithRetries(tc.Remote.Retries),
			template.WithHTTPClient(&http.Client{Timeout: tc.Remote.Timeout}),
		), nil
	}

	var catalog *template.Catalog
	if tc.File != "" {
		templates, err := template.Load(tc.File)
		if err != nil {
			return nil, err
		}

		catalog, err = template.NewCatalog(templates...)
		if err != nil {
			return nil, err
		}
	} else {
		catalog, err = template.DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}

	return template.NewCatalogResolver(catalog), nil
}

// GetString uses Get because recursion
func (r *vpr) GetString(s string) string {
	ret, _ := r.Get(s).(string)

	return ret
}

// GetInt uses Get because same recursion
func (r *vpr) GetInt(s string) int {
	ret, _ := r.Get(s).(int)

	return ret
}
