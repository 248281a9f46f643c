/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/scoir/canis-wallet/pkg/template"
)

// Provider rename to ConfigBuilder
type Provider interface {
	Load(file string) (Config, error)
}

// Config
type Config interface {
	WithTemplates(opts ...Option) (Config, error)
	Templates() (*TemplatesConfig, error)
	TemplateResolver() (template.Resolver, error)

	LogLevel() string

	GetString(s string) string
	GetInt(s string) int
}

// TemplatesConfig selects where proof request templates come from. A remote url wins over a
// file, the built in catalog is used when neither is set.
type TemplatesConfig struct {
	File            string        `mapstructure:"file"`
	DevRestrictions bool          `mapstructure:"devRestrictions"`
	Remote          *RemoteConfig `mapstructure:"remote"`
}

type RemoteConfig struct {
	URL     string        `mapstructure:"url"`
	Retries uint64        `mapstructure:"retries"`
	Timeout time.Duration `mapstructure:"timeout"`
}
