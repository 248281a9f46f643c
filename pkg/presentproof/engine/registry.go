/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"

	"github.com/scoir/canis-wallet/pkg/presentproof"
)

var logger = log.New("canis-wallet/presentproof/engine")

// ErrNoProofFormat is returned when format data holds no request and presentation pair in a
// known format.
var ErrNoProofFormat = errors.New("no supported proof format")

// Formats in order of preference.
const (
	AnonCredsFormat = "anoncreds"
	IndyFormat      = "indy"
)

//go:generate mockery -name=ProofEngine
type ProofEngine interface {
	Accept(format string) bool
	Parse(request, presentation json.RawMessage) (*presentproof.ParsedProof, error)
}

// FormatData is the agent's view of a proof exchange: the request and the presentation,
// each keyed by proof format.
type FormatData struct {
	Request      map[string]json.RawMessage `json:"request,omitempty"`
	Presentation map[string]json.RawMessage `json:"presentation,omitempty"`
}

type Option func(opts *Registry)

type Registry struct {
	engines []ProofEngine
	formats []string
}

func New(opts ...Option) *Registry {
	reg := &Registry{engines: []ProofEngine{}, formats: []string{AnonCredsFormat, IndyFormat}}

	for _, opt := range opts {
		opt(reg)
	}

	return reg
}

// ProofData parses the first format, in order of preference, for which fd carries both a
// request and a presentation.
func (r *Registry) ProofData(fd *FormatData) (*presentproof.ParsedProof, error) {
	if fd == nil {
		return nil, ErrNoProofFormat
	}

	for _, format := range r.formats {
		req, ok := fd.Request[format]
		if !ok {
			continue
		}

		pres, ok := fd.Presentation[format]
		if !ok {
			continue
		}

		e, err := r.resolveEngine(format)
		if err != nil {
			return nil, err
		}

		logger.Debugf("parsing %s proof", format)

		return e.Parse(req, pres)
	}

	return nil, ErrNoProofFormat
}

func (r *Registry) resolveEngine(format string) (ProofEngine, error) {
	for _, e := range r.engines {
		if e.Accept(format) {
			return e, nil
		}
	}

	return nil, errors.Errorf("proof format %s not supported by any engine", format)
}

// WithEngine adds a proof format implementation to the registry.
func WithEngine(e ProofEngine) Option {
	return func(opts *Registry) {
		opts.engines = append(opts.engines, e)
	}
}

// WithFormats replaces the format preference order.
func WithFormats(formats ...string) Option {
	return func(opts *Registry) {
		opts.formats = formats
	}
}
