/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package proofrequest materializes proof request templates and presentation definitions into
// concrete AnonCreds proof requests.
package proofrequest

import (
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/scoir/canis-wallet/pkg/schema"
	"github.com/scoir/canis-wallet/pkg/template"
)

var logger = log.New("canis-wallet/proofrequest")

// Result is either an *AnonCredsResult or a *NotSupported.
type Result interface {
	result()
}

// AnonCredsResult carries the request built from an AnonCreds template.
type AnonCredsResult struct {
	Request *schema.ProofRequest `json:"anoncreds"`
}

func (r *AnonCredsResult) result() {}

// NotSupported is returned for template payloads no request can be built from yet.
type NotSupported struct {
	Type template.ProofRequestType `json:"type"`
}

func (r *NotSupported) result() {}

// CustomValues overrides parameterizable predicate thresholds, keyed by schema then
// attribute name.
type CustomValues map[string]map[string]int64

func (r CustomValues) lookup(schemaName, name string) (int64, bool) {
	values, ok := r[schemaName]
	if !ok {
		return 0, false
	}

	v, ok := values[name]

	return v, ok
}

type buildOpts struct {
	nonce string
	now   func() time.Time
}

// Option configures request building.
type Option func(opts *buildOpts)

// WithNonce fixes the request nonce.
func WithNonce(nonce string) Option {
	return func(opts *buildOpts) {
		opts.nonce = nonce
	}
}

// WithClock sets the clock a template request nonce is derived from.
func WithClock(now func() time.Time) Option {
	return func(opts *buildOpts) {
		opts.now = now
	}
}

func newBuildOpts(opts []Option) *buildOpts {
	o := &buildOpts{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	return o
}
